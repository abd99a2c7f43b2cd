package resolver

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCandidateSet indicates the candidate set is not closed or offers a package without versions.
	ErrInvalidCandidateSet = errors.New("invalid candidate set")
	// ErrNoCombinations indicates the permutation table has nothing to enumerate.
	ErrNoCombinations = errors.New("candidate set has no combinations")
	// ErrSearchSpaceTooLarge indicates the number of combinations does not fit in 64 bits.
	ErrSearchSpaceTooLarge = errors.New("search space exceeds 2^64 combinations")
	// ErrUnknownPackage indicates a state names a package missing from the candidate set.
	ErrUnknownPackage = errors.New("package not in candidate set")
	// ErrUnknownVersion indicates a state assigns a version the candidate set does not offer.
	ErrUnknownVersion = errors.New("version not in candidate set")
)

// StateError reports a state that does not match its candidate set.
type StateError struct {
	Package string
	Version string
	Err     error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("state %s@%s: %v", e.Package, e.Version, e.Err)
}

func (e *StateError) Unwrap() error { return e.Err }
