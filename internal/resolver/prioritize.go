package resolver

import (
	"fmt"
	"sort"

	"github.com/bayleafwalker/dnp-manager/internal/semver"
)

// PrioritizeVersions orders the versions of pkg from first to last tried.
//
//   - requested package: newest first
//   - installed package: closest to the installed version first
//   - new dependency: newest first
func PrioritizeVersions(pkg Package, isRequested bool) ([]string, error) {
	if len(pkg.Versions) == 0 {
		return nil, fmt.Errorf("%w: no versions offered", ErrInvalidCandidateSet)
	}
	raw := make([]string, 0, len(pkg.Versions))
	for v := range pkg.Versions {
		raw = append(raw, v)
	}

	switch {
	case isRequested:
		return semver.SortDescending(raw), nil
	case pkg.IsInstalled:
		return closestTo(raw, pkg.InstalledVersion), nil
	default:
		return semver.SortDescending(raw), nil
	}
}

// closestTo orders raw by distance to installed, measured in positions of the
// ascending version list. An installed version that is not offered sits
// halfway between its neighbours. Equal distances prefer the higher version.
// Without a usable installed version the oldest offered version goes first.
func closestTo(raw []string, installed string) []string {
	asc := semver.SortAscending(raw)
	inst, err := semver.ParseVersion(installed)
	if installed == "" || err != nil {
		return asc
	}

	type ranked struct {
		raw   string
		valid bool
		rank  int
	}
	// Positions are doubled so the halfway slot stays an integer.
	pos, below := -1, 0
	items := make([]ranked, len(asc))
	for i, r := range asc {
		v, err := semver.ParseVersion(r)
		items[i] = ranked{raw: r, valid: err == nil, rank: 2 * i}
		if err != nil {
			continue
		}
		switch cmp := semver.Compare(v, inst); {
		case cmp < 0:
			below = i + 1
		case cmp == 0 && pos < 0:
			pos = 2 * i
		}
	}
	if pos < 0 {
		pos = 2*below - 1
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.valid != b.valid {
			return a.valid
		}
		if !a.valid {
			return false
		}
		da, db := abs(a.rank-pos), abs(b.rank-pos)
		if da != db {
			return da < db
		}
		return a.rank > b.rank
	})

	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.raw
	}
	return out
}

// PrioritizePackages orders package names for the permutation table: the
// requested package, then installed packages, then new ones. Names break ties.
//
// The table gives the first package the largest stride, so it keeps its
// preferred version for the longest run of combinations.
func PrioritizePackages(req Request) []string {
	names := make([]string, 0, len(req.Packages))
	for name := range req.Packages {
		names = append(names, name)
	}
	group := func(name string) int {
		switch {
		case name == req.Requested:
			return 0
		case req.Packages[name].IsInstalled:
			return 1
		default:
			return 2
		}
	}
	sort.Slice(names, func(i, j int) bool {
		gi, gj := group(names[i]), group(names[j])
		if gi != gj {
			return gi < gj
		}
		return names[i] < names[j]
	})
	return names
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
