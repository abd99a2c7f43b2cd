package semver

import (
	"fmt"
	"sort"
	"strings"

	mm "github.com/Masterminds/semver/v3"
)

// Version is a semantic version.
//
// This is a thin wrapper around github.com/Masterminds/semver/v3.
type Version struct {
	v *mm.Version
}

// Constraint is a semantic version range.
//
// Examples:
// - ">=1.2.0 <2.0.0"
// - "^1.0.0"
// - "0.1.4" (exact)
//
// Pre-release versions take part in range checks under plain semver
// precedence, so "1.0.0-beta" satisfies ">=0.9.0" and does not satisfy
// ">=1.0.0".
type Constraint struct {
	c *mm.Constraints
}

func ParseVersion(raw string) (Version, error) {
	v, err := mm.NewVersion(strings.TrimSpace(raw))
	if err != nil {
		return Version{}, fmt.Errorf("semver: parse version %q: %w", raw, err)
	}
	return Version{v: v}, nil
}

func ParseConstraint(raw string) (Constraint, error) {
	c, err := mm.NewConstraint(strings.TrimSpace(raw))
	if err != nil {
		return Constraint{}, fmt.Errorf("semver: parse constraint %q: %w", raw, err)
	}
	c.IncludePrerelease = true
	return Constraint{c: c}, nil
}

// Valid reports whether v holds a parsed version.
func (v Version) Valid() bool { return v.v != nil }

func (v Version) String() string {
	if v.v == nil {
		return ""
	}
	return v.v.Original()
}

func Satisfies(v Version, c Constraint) bool {
	if v.v == nil || c.c == nil {
		return false
	}
	return c.c.Check(v.v)
}

// SatisfiesRaw parses both sides and checks the range.
//
// It never fails: an empty or malformed version, or a malformed range, is
// reported as not satisfying.
func SatisfiesRaw(version, constraint string) bool {
	if strings.TrimSpace(version) == "" {
		return false
	}
	v, err := ParseVersion(version)
	if err != nil {
		return false
	}
	c, err := ParseConstraint(constraint)
	if err != nil {
		return false
	}
	return Satisfies(v, c)
}

// Compare compares a and b, returning:
// -1 if a < b
//
//	0 if a == b
//	1 if a > b
//
// Unparsed versions order before parsed ones.
func Compare(a, b Version) int {
	if a.v == nil && b.v == nil {
		return 0
	}
	if a.v == nil {
		return -1
	}
	if b.v == nil {
		return 1
	}
	return a.v.Compare(b.v)
}

// SortAscending returns raw sorted from lowest to highest version.
//
// Malformed entries go last, ordered lexically, so the result is a total
// order for any input. Equal versions spelled differently ("1.0" and
// "1.0.0") keep lexical order between them.
func SortAscending(raw []string) []string {
	out := sortable(raw)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].less(out[j])
	})
	return strs(out)
}

// SortDescending returns raw sorted from highest to lowest version.
//
// Malformed entries still go last.
func SortDescending(raw []string) []string {
	out := sortable(raw)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.v.Valid() != b.v.Valid() {
			return a.v.Valid()
		}
		if !a.v.Valid() {
			return a.raw < b.raw
		}
		if cmp := Compare(a.v, b.v); cmp != 0 {
			return cmp > 0
		}
		return a.raw < b.raw
	})
	return strs(out)
}

type parsed struct {
	raw string
	v   Version
}

func (a parsed) less(b parsed) bool {
	if a.v.Valid() != b.v.Valid() {
		return a.v.Valid()
	}
	if !a.v.Valid() {
		return a.raw < b.raw
	}
	if cmp := Compare(a.v, b.v); cmp != 0 {
		return cmp < 0
	}
	return a.raw < b.raw
}

func sortable(raw []string) []parsed {
	out := make([]parsed, 0, len(raw))
	for _, r := range raw {
		v, _ := ParseVersion(r)
		out = append(out, parsed{raw: r, v: v})
	}
	return out
}

func strs(in []parsed) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		out = append(out, p.raw)
	}
	return out
}
