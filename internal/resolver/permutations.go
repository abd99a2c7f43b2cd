package resolver

import (
	"fmt"
	"math/bits"
)

// TableEntry describes how one package's version varies with the combination index.
//
// The version for index i is Versions[(i/M)%N].
type TableEntry struct {
	Name     string
	Versions []string
	// N is len(Versions).
	N uint64
	// M is the stride: the product of N over all later entries.
	M uint64
}

// Table is a mixed-radix index over the cross-product of candidate versions.
// Combinations are computed on demand and never materialized.
type Table []TableEntry

// BuildTable orders packages and their versions by priority and assigns strides.
//
// Entries keep priority order. Strides grow from the last entry, which has
// M=1, so the first entry changes least often: every combination of the
// other packages is tried before it leaves its preferred version.
func BuildTable(req Request) (Table, error) {
	names := PrioritizePackages(req)
	table := make(Table, len(names))
	for i, name := range names {
		versions, err := PrioritizeVersions(req.Packages[name], name == req.Requested)
		if err != nil {
			return nil, fmt.Errorf("package %s: %w", name, err)
		}
		table[i] = TableEntry{Name: name, Versions: versions, N: uint64(len(versions))}
	}

	m := uint64(1)
	for i := len(table) - 1; i >= 0; i-- {
		table[i].M = m
		hi, lo := bits.Mul64(m, table[i].N)
		if hi != 0 {
			return nil, fmt.Errorf("%w: overflow at package %s", ErrSearchSpaceTooLarge, table[i].Name)
		}
		m = lo
	}
	return table, nil
}

// Total returns the number of combinations. An empty table has none.
func (t Table) Total() uint64 {
	if len(t) == 0 {
		return 0
	}
	total := uint64(1)
	for _, e := range t {
		total *= e.N
	}
	return total
}

// At returns combination i. It costs one division per package regardless of i.
func (t Table) At(i uint64) State {
	state := make(State, len(t))
	for _, e := range t {
		state[e.Name] = e.Versions[(i/e.M)%e.N]
	}
	return state
}
