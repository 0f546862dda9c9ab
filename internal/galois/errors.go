package galois

import "errors"

var (
	// ErrInvalidGroup rejects covering construction over a nil or empty group.
	ErrInvalidGroup = errors.New("invalid covering group")

	// ErrInvalidSubgroup rejects transfer requests for groups that are not
	// subgroups of the covering group, or class indexes out of range.
	ErrInvalidSubgroup = errors.New("not a subgroup of the covering group")

	// ErrMalformedSignature rejects signatures whose length does not match
	// the group's ramification types or that carry known-negative counts.
	ErrMalformedSignature = errors.New("malformed signature")

	// ErrInconsistentParent marks transfer arithmetic that contradicts the
	// parent covering, such as a non-integral point count over a branch value.
	ErrInconsistentParent = errors.New("inconsistent parent covering")
)
