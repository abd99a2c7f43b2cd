package resolver

import "context"

// Resolver computes a consistent set of package versions for a Request.
//
// A returned error means the request itself is inconsistent (see errors.go).
// When no consistent set exists, or the search runs out of time, Resolve
// returns a Result with Success=false and a nil error.
type Resolver interface {
	Resolve(ctx context.Context, req Request) (Result, error)
}
