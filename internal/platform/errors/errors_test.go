package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := New(CodeGroupParseFailed, "parse group")
	wrapped := fmt.Errorf("compute tower: %w", err)

	if !stderrors.Is(wrapped, New(CodeGroupParseFailed, "other message")) {
		t.Fatal("expected errors with the same code to match")
	}
	if stderrors.Is(wrapped, New(CodeNotFound, "parse group")) {
		t.Fatal("expected errors with different codes not to match")
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(CodeUnknown, "wrapper", cause)

	if !stderrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable")
	}
	if err.Error() != "wrapper" {
		t.Fatalf("Error() = %q, want %q", err.Error(), "wrapper")
	}
}

func TestGRPCCode(t *testing.T) {
	tests := []struct {
		name string
		code Code
		want codes.Code
	}{
		{name: "group parse", code: CodeGroupParseFailed, want: codes.InvalidArgument},
		{name: "malformed signature", code: CodeSignatureMalformed, want: codes.InvalidArgument},
		{name: "invalid subgroup", code: CodeSubgroupInvalid, want: codes.InvalidArgument},
		{name: "inconsistent parent", code: CodeParentInconsistent, want: codes.FailedPrecondition},
		{name: "not found", code: CodeNotFound, want: codes.NotFound},
		{name: "conflict", code: CodeConflict, want: codes.AlreadyExists},
		{name: "group too large", code: CodeGroupTooLarge, want: codes.ResourceExhausted},
		{name: "unknown", code: CodeUnknown, want: codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.code.GRPCCode(); got != tt.want {
				t.Fatalf("GRPCCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToGRPCStatusAttachesDetails(t *testing.T) {
	err := WithMetadata(CodeGroupTooLarge, "order above cap", map[string]string{
		"Order": "5040",
		"Limit": "2000",
	})

	st, ok := status.FromError(err.ToGRPCStatus("en-US", "Group order 5040 exceeds the supported limit 2000"))
	if !ok {
		t.Fatal("expected a gRPC status error")
	}
	if st.Code() != codes.ResourceExhausted {
		t.Fatalf("status code = %v, want %v", st.Code(), codes.ResourceExhausted)
	}
	if st.Message() != "order above cap" {
		t.Fatalf("status message = %q, want internal message", st.Message())
	}

	var info *errdetails.ErrorInfo
	var localized *errdetails.LocalizedMessage
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.ErrorInfo:
			info = d
		case *errdetails.LocalizedMessage:
			localized = d
		}
	}
	if info == nil {
		t.Fatal("expected ErrorInfo detail")
	}
	if info.Reason != string(CodeGroupTooLarge) {
		t.Fatalf("ErrorInfo.Reason = %q, want %q", info.Reason, CodeGroupTooLarge)
	}
	if info.Domain != Domain {
		t.Fatalf("ErrorInfo.Domain = %q, want %q", info.Domain, Domain)
	}
	if info.Metadata["Order"] != "5040" {
		t.Fatalf("ErrorInfo.Metadata[Order] = %q, want %q", info.Metadata["Order"], "5040")
	}
	if localized == nil {
		t.Fatal("expected LocalizedMessage detail")
	}
	if localized.Locale != "en-US" {
		t.Fatalf("LocalizedMessage.Locale = %q, want en-US", localized.Locale)
	}
}
