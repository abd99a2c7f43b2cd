package resolver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"k8s.io/utils/clock"

	"github.com/bayleafwalker/dnp-manager/internal/graph"
)

// DefaultTimeout bounds a single search.
const DefaultTimeout = 10 * time.Second

// DefaultResolver walks the permutation table in priority order and returns
// the first combination that satisfies every declared dependency range.
//
// It keeps no state between calls and is safe for concurrent use.
type DefaultResolver struct {
	timeout time.Duration
	clock   clock.PassiveClock
	log     logr.Logger
	tracer  Tracer
}

type Option func(*DefaultResolver)

// WithTimeout sets the search budget. Zero or negative disables it.
func WithTimeout(d time.Duration) Option {
	return func(r *DefaultResolver) { r.timeout = d }
}

// WithClock replaces the wall clock used for the search budget.
func WithClock(c clock.PassiveClock) Option {
	return func(r *DefaultResolver) { r.clock = c }
}

func WithLogger(l logr.Logger) Option {
	return func(r *DefaultResolver) { r.log = l }
}

func WithTracer(t Tracer) Option {
	return func(r *DefaultResolver) { r.tracer = t }
}

func NewDefault(opts ...Option) *DefaultResolver {
	r := &DefaultResolver{
		timeout: DefaultTimeout,
		clock:   clock.RealClock{},
		log:     logr.Discard(),
		tracer:  nopTracer{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Timeout returns the configured search budget.
func (r *DefaultResolver) Timeout() time.Duration { return r.timeout }

// Resolve searches req for a consistent state.
//
// ctx is not consulted for cancellation: a search ends on success,
// exhaustion, or when the timeout elapses.
func (r *DefaultResolver) Resolve(_ context.Context, req Request) (Result, error) {
	if err := validate(req); err != nil {
		return Result{}, err
	}
	table, err := BuildTable(req)
	if err != nil {
		return Result{}, err
	}
	total := table.Total()
	if total == 0 {
		return Result{}, ErrNoCombinations
	}

	logger := r.log.WithValues("requested", req.Requested, "packages", len(table), "combinations", total)
	logger.V(1).Info("searching for compatible state")

	v := newVerifier(req.Packages)
	conflicts := make(Conflicts)
	start := r.clock.Now()
	deadline := start.Add(r.timeout)

	var checked uint64
	timedOut := false
	for i := uint64(0); i < total; i++ {
		state := table.At(i)
		res, err := v.check(state)
		if err != nil {
			return Result{}, err
		}
		checked++
		r.tracer.Trace(i, state, res)

		if res.Valid {
			msg := fmt.Sprintf("Found compatible state at case %d/%d", i+1, total)
			logger.V(1).Info("search succeeded", "case", i+1)
			return Result{
				Success: true,
				Message: msg,
				State:   installable(state, req),
				Outcome: OutcomeSuccess,
				Checked: checked,
				Total:   total,
			}, nil
		}
		conflicts.Add(res.Reason)

		if i+1 < total && r.timeout > 0 && r.clock.Now().After(deadline) {
			timedOut = true
			break
		}
	}

	outcome := OutcomeExhausted
	if timedOut {
		outcome = OutcomeTimedOut
	}
	msg := RenderFailure(timedOut, r.timeout, checked, total, conflicts)
	logger.Info("search failed", "outcome", outcome, "checked", checked)
	return Result{
		Success: false,
		Message: msg,
		State:   map[string]string{},
		Outcome: outcome,
		Checked: checked,
		Total:   total,
	}, nil
}

// validate rejects requests the upstream aggregator should never produce.
func validate(req Request) error {
	if req.Requested != "" {
		if _, ok := req.Packages[req.Requested]; !ok {
			return fmt.Errorf("%w: requested package %s is not a candidate", ErrInvalidCandidateSet, req.Requested)
		}
	}

	versions := make(map[string]map[string]map[string]string, len(req.Packages))
	for name, pkg := range req.Packages {
		byVersion := make(map[string]map[string]string, len(pkg.Versions))
		for version, deps := range pkg.Versions {
			byVersion[version] = deps
		}
		versions[name] = byVersion
	}
	missing := graph.Build(versions).Missing()
	if len(missing) == 0 {
		return nil
	}
	parts := make([]string, 0, len(missing))
	for _, e := range missing {
		parts = append(parts, fmt.Sprintf("%s -> %s", e.From, e.Dependency))
	}
	return fmt.Errorf("%w: dependencies missing from candidate set: %s", ErrInvalidCandidateSet, strings.Join(parts, ", "))
}

// installable drops packages that need no action: unassigned ones, new
// packages that no chosen version depends on, and packages already
// installed at the chosen version.
func installable(state State, req Request) map[string]string {
	needed := make(map[string]bool, len(state))
	var queue []string
	for name, version := range state {
		if version == "" {
			continue
		}
		if name == req.Requested || req.Packages[name].IsInstalled {
			needed[name] = true
			queue = append(queue, name)
		}
	}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		for dep := range req.Packages[name].Versions[state[name]] {
			if needed[dep] || state[dep] == "" {
				continue
			}
			needed[dep] = true
			queue = append(queue, dep)
		}
	}

	out := make(map[string]string, len(needed))
	for name := range needed {
		version := state[name]
		if pkg := req.Packages[name]; pkg.IsInstalled && pkg.InstalledVersion == version {
			continue
		}
		out[name] = version
	}
	return out
}
