package resolver

import (
	"sort"

	"github.com/bayleafwalker/dnp-manager/internal/semver"
)

// NoVersion stands in for the version of a dependency that is not part of a state.
const NoVersion = "no-version"

// Verify checks that every dependency range declared by every package in
// state is satisfied by the version state assigns to that dependency.
//
// The first unsatisfied range, in package then dependency name order, is
// returned as the Reason. Malformed versions and ranges never satisfy.
// A state naming a package or version missing from set is a caller error.
func Verify(state State, set CandidateSet) (Verification, error) {
	return newVerifier(set).check(state)
}

// verifier holds what stays fixed across the states of one search.
type verifier struct {
	set   CandidateSet
	order []string
	// satisfied memoizes range checks keyed by version and range.
	satisfied map[[2]string]bool
}

func newVerifier(set CandidateSet) *verifier {
	order := make([]string, 0, len(set))
	for name := range set {
		order = append(order, name)
	}
	sort.Strings(order)
	return &verifier{set: set, order: order, satisfied: make(map[[2]string]bool)}
}

func (v *verifier) check(state State) (Verification, error) {
	if err := v.unknownPackage(state); err != nil {
		return Verification{}, err
	}

	for _, name := range v.order {
		version := state[name]
		if version == "" {
			continue
		}
		deps, ok := v.set[name].Versions[version]
		if !ok {
			return Verification{}, &StateError{Package: name, Version: version, Err: ErrUnknownVersion}
		}
		for _, dep := range sortedDeps(deps) {
			rng := deps[dep]
			assigned := state[dep]
			if v.satisfies(assigned, rng) {
				continue
			}
			if assigned == "" {
				assigned = NoVersion
			}
			return Verification{Reason: &Conflict{
				Requirer:   name + "@" + version,
				Dependency: dep + "@" + assigned,
				Range:      rng,
			}}, nil
		}
	}
	return Verification{Valid: true}, nil
}

// unknownPackage reports the lowest-named package of state that set lacks.
func (v *verifier) unknownPackage(state State) error {
	var missing string
	for name, version := range state {
		if version == "" {
			continue
		}
		if _, ok := v.set[name]; ok {
			continue
		}
		if missing == "" || name < missing {
			missing = name
		}
	}
	if missing == "" {
		return nil
	}
	return &StateError{Package: missing, Version: state[missing], Err: ErrUnknownPackage}
}

func (v *verifier) satisfies(version, rng string) bool {
	key := [2]string{version, rng}
	if ok, seen := v.satisfied[key]; seen {
		return ok
	}
	ok := semver.SatisfiesRaw(version, rng)
	v.satisfied[key] = ok
	return ok
}

func sortedDeps(deps Dependencies) []string {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
