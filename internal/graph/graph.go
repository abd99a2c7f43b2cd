// Package graph models the dependency edges declared by a candidate set.
//
// The resolver only needs it to check that a candidate set is closed: every
// dependency named by some package version is itself part of the set.
// No traversal order is derived from the edges, so cycles are fine.
package graph

import (
	"fmt"
	"sort"
)

// Node is one package version that declares dependencies.
type Node struct {
	Package string
	Version string
}

func (n Node) String() string { return fmt.Sprintf("%s@%s", n.Package, n.Version) }

// Edge is one declared dependency range.
type Edge struct {
	From       Node
	Dependency string
	Range      string
}

type DependencyGraph struct {
	Packages map[string]struct{}
	Edges    []Edge
}

// Build collects the edges of versions, keyed by package name then version,
// in a deterministic order.
func Build(versions map[string]map[string]map[string]string) DependencyGraph {
	g := DependencyGraph{Packages: make(map[string]struct{}, len(versions))}
	for _, name := range sortedKeys(versions) {
		g.Packages[name] = struct{}{}
		for _, version := range sortedKeys(versions[name]) {
			deps := versions[name][version]
			for _, dep := range sortedKeys(deps) {
				g.Edges = append(g.Edges, Edge{
					From:       Node{Package: name, Version: version},
					Dependency: dep,
					Range:      deps[dep],
				})
			}
		}
	}
	return g
}

// Missing returns the edges pointing at packages that are not in the graph.
func (g DependencyGraph) Missing() []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if _, ok := g.Packages[e.Dependency]; !ok {
			out = append(out, e)
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
