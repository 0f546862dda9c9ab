// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Group errors
	CodeGroupInvalid     Code = "GROUP_INVALID"
	CodeGroupParseFailed Code = "GROUP_PARSE_FAILED"
	CodeGroupTooLarge    Code = "GROUP_TOO_LARGE"

	// Permutation errors
	CodePermParseFailed     Code = "PERM_PARSE_FAILED"
	CodeElementOutsideGroup Code = "ELEMENT_OUTSIDE_GROUP"

	// Covering errors
	CodeSignatureMalformed Code = "SIGNATURE_MALFORMED"
	CodeSubgroupInvalid    Code = "SUBGROUP_INVALID"
	CodeParentInconsistent Code = "PARENT_INCONSISTENT"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
	CodeConflict Code = "CONFLICT"

	// Query errors
	CodeFilterInvalid Code = "FILTER_INVALID"

	// Scenario errors
	CodeScenarioLoadFailed Code = "SCENARIO_LOAD_FAILED"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeGroupInvalid,
		CodeGroupParseFailed,
		CodePermParseFailed,
		CodeElementOutsideGroup,
		CodeSignatureMalformed,
		CodeSubgroupInvalid,
		CodeFilterInvalid,
		CodeScenarioLoadFailed:
		return codes.InvalidArgument

	// FailedPrecondition - the data does not admit the operation
	case CodeParentInconsistent:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeNotFound:
		return codes.NotFound

	// AlreadyExists - unique resource constraint
	case CodeConflict:
		return codes.AlreadyExists

	// ResourceExhausted - input exceeds supported size
	case CodeGroupTooLarge:
		return codes.ResourceExhausted

	default:
		return codes.Internal
	}
}
