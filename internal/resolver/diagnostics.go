package resolver

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// maxReportedConflicts bounds how many tied conflicts a failure message lists.
const maxReportedConflicts = 4

// Conflicts counts how often each conflict stopped a combination.
type Conflicts map[Conflict]int

// Add records one occurrence of reason. A nil reason is ignored.
func (c Conflicts) Add(reason *Conflict) {
	if reason == nil {
		return
	}
	c[*reason]++
}

// Top returns the conflicts seen most often, ordered by signature, and their count.
func (c Conflicts) Top() ([]Conflict, int) {
	best := 0
	for _, n := range c {
		if n > best {
			best = n
		}
	}
	if best == 0 {
		return nil, 0
	}
	top := make([]Conflict, 0)
	for conflict, n := range c {
		if n == best {
			top = append(top, conflict)
		}
	}
	sort.Slice(top, func(i, j int) bool {
		return top[i].Signature() < top[j].Signature()
	})
	return top, best
}

// RenderFailure explains why a search ended without a compatible state.
// The message depends only on its arguments.
func RenderFailure(timedOut bool, timeout time.Duration, checked, total uint64, conflicts Conflicts) string {
	var b strings.Builder
	b.WriteString("Could not find a compatible state")
	if timedOut {
		fmt.Fprintf(&b, ": search timed out after %s having checked %d/%d combinations", timeout, checked, total)
	} else {
		fmt.Fprintf(&b, ": checked all %d/%d combinations", checked, total)
	}

	top, count := conflicts.Top()
	if len(top) == 0 {
		b.WriteString(".")
		return b.String()
	}
	parts := make([]string, 0, min(len(top), maxReportedConflicts))
	for i := 0; i < len(top) && i < maxReportedConflicts; i++ {
		parts = append(parts, top[i].String())
	}
	if len(top) > maxReportedConflicts {
		parts = append(parts, fmt.Sprintf("and %d more", len(top)-maxReportedConflicts))
	}
	noun := "conflict"
	if len(top) > 1 {
		noun = "conflicts"
	}
	fmt.Fprintf(&b, "; most frequent %s (seen %d times): %s.", noun, count, strings.Join(parts, "; "))
	return b.String()
}
