package resolver

import "github.com/go-logr/logr"

// Tracer observes every combination the search verifies.
type Tracer interface {
	Trace(index uint64, state State, v Verification)
}

type nopTracer struct{}

func (nopTracer) Trace(uint64, State, Verification) {}

// LogTracer writes each verified combination to Logger at V(2).
type LogTracer struct {
	Logger logr.Logger
}

func (t LogTracer) Trace(index uint64, state State, v Verification) {
	l := t.Logger.V(2)
	if !l.Enabled() {
		return
	}
	if v.Valid {
		l.Info("combination accepted", "index", index, "state", state)
		return
	}
	l.Info("combination rejected", "index", index, "state", state, "conflict", v.Reason.String())
}
