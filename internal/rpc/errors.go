package rpc

import (
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bayleafwalker/dnp-manager/internal/resolver"
)

const errorDomain = "dnp.resolver.v1"

var callerErrors = []struct {
	reason string
	err    error
}{
	{"UNKNOWN_PACKAGE", resolver.ErrUnknownPackage},
	{"UNKNOWN_VERSION", resolver.ErrUnknownVersion},
	{"INVALID_CANDIDATE_SET", resolver.ErrInvalidCandidateSet},
	{"NO_COMBINATIONS", resolver.ErrNoCombinations},
	{"SEARCH_SPACE_TOO_LARGE", resolver.ErrSearchSpaceTooLarge},
}

// remoteError is a caller error reported by the server. It unwraps to the
// matching resolver sentinel.
type remoteError struct {
	msg      string
	sentinel error
}

func (e *remoteError) Error() string { return e.msg }
func (e *remoteError) Unwrap() error { return e.sentinel }

// toStatus maps a resolver error onto a gRPC status. Caller errors become
// InvalidArgument with an ErrorInfo naming the sentinel.
func toStatus(err error) error {
	for _, ce := range callerErrors {
		if !errors.Is(err, ce.err) {
			continue
		}
		st := status.New(codes.InvalidArgument, err.Error())
		if detailed, derr := st.WithDetails(&errdetails.ErrorInfo{Reason: ce.reason, Domain: errorDomain}); derr == nil {
			st = detailed
		}
		return st.Err()
	}
	return status.Error(codes.Internal, err.Error())
}

// fromStatus restores resolver sentinels from a status produced by toStatus.
func fromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	for _, d := range st.Details() {
		info, ok := d.(*errdetails.ErrorInfo)
		if !ok || info.GetDomain() != errorDomain {
			continue
		}
		for _, ce := range callerErrors {
			if ce.reason == info.GetReason() {
				return &remoteError{msg: st.Message(), sentinel: ce.err}
			}
		}
	}
	return err
}
