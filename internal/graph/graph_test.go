package graph

import "testing"

func TestBuild_MissingDependencies(t *testing.T) {
	g := Build(map[string]map[string]map[string]string{
		"a": {
			"1.0.0": {"b": "^1.0.0", "ghost": "*"},
			"2.0.0": {"b": "^2.0.0"},
		},
		"b": {
			"1.0.0": {"a": "^1.0.0"},
			"2.0.0": {},
		},
	})

	if len(g.Edges) != 4 {
		t.Fatalf("expected 4 edges, got %d", len(g.Edges))
	}
	missing := g.Missing()
	if len(missing) != 1 {
		t.Fatalf("expected 1 missing edge, got %d", len(missing))
	}
	if missing[0].From.String() != "a@1.0.0" || missing[0].Dependency != "ghost" {
		t.Fatalf("unexpected missing edge: %+v", missing[0])
	}
}

func TestBuild_CyclesAreNotRejected(t *testing.T) {
	g := Build(map[string]map[string]map[string]string{
		"a": {"1.0.0": {"b": "1.0.0"}},
		"b": {"1.0.0": {"a": "1.0.0"}},
	})
	if len(g.Missing()) != 0 {
		t.Fatalf("expected closed graph, got missing %+v", g.Missing())
	}
}
