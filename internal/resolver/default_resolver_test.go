package resolver

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	clocktesting "k8s.io/utils/clock/testing"
)

func TestDefaultResolver_PrefersNewestConsistentRequestedVersion(t *testing.T) {
	r := NewDefault()

	req := Request{
		Requested: "app",
		Packages: CandidateSet{
			"app": {Versions: map[string]Dependencies{
				"1.0.0": {"lib": "^1.0.0"},
				"2.0.0": {"lib": "^2.0.0"},
				"3.0.0": {"lib": "^3.0.0"},
			}},
			"lib": {Versions: versions("1.0.0", "2.0.0")},
		},
	}

	res, err := r.Resolve(context.Background(), req)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success, got %q", res.Message)
	}
	want := map[string]string{"app": "2.0.0", "lib": "2.0.0"}
	if !reflect.DeepEqual(res.State, want) {
		t.Fatalf("expected state %v, got %v", want, res.State)
	}
	if res.Message != "Found compatible state at case 3/6" {
		t.Fatalf("unexpected message %q", res.Message)
	}
	if res.Outcome != OutcomeSuccess || res.Checked != 3 || res.Total != 6 {
		t.Fatalf("unexpected stats: %+v", res)
	}
}

func TestDefaultResolver_FindsOlderRequestedVersionWhenNewestConflicts(t *testing.T) {
	r := NewDefault()

	req := Request{
		Requested: "app",
		Packages: CandidateSet{
			"app": {Versions: map[string]Dependencies{
				"1.0.0": {"lib": "^1.0.0"},
				"2.0.0": {"lib": "^2.0.0"},
				"3.0.0": {"lib": "^3.0.0"},
			}},
			"lib": {Versions: versions("1.0.0")},
		},
	}

	res, err := r.Resolve(context.Background(), req)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success, got %q", res.Message)
	}
	if res.State["app"] != "1.0.0" {
		t.Fatalf("expected app@1.0.0, got %v", res.State)
	}
	if res.Message != "Found compatible state at case 3/3" {
		t.Fatalf("unexpected message %q", res.Message)
	}
}

func TestDefaultResolver_IsDeterministic(t *testing.T) {
	r := NewDefault(WithTimeout(0))

	req := Request{
		Requested: "web",
		Packages: CandidateSet{
			"web":   {Versions: map[string]Dependencies{"2.0.0": {"api": "^1.1.0", "cache": ">=1.0.0"}, "1.0.0": {"api": "^1.0.0"}}},
			"api":   {IsInstalled: true, InstalledVersion: "1.0.0", Versions: map[string]Dependencies{"1.0.0": {"db": "1.x"}, "1.1.0": {"db": "^2.0.0"}, "1.2.0": {"db": "^2.0.0"}}},
			"db":    {IsInstalled: true, InstalledVersion: "1.4.0", Versions: versions("1.4.0", "2.0.0", "2.1.0")},
			"cache": {Versions: versions("1.0.0", "1.1.0")},
		},
	}

	first, err := r.Resolve(context.Background(), req)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := r.Resolve(context.Background(), req)
		if err != nil {
			t.Fatalf("Resolve error: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("expected identical results, got %+v vs %+v", first, again)
		}
	}
	if !first.Success {
		t.Fatalf("expected success, got %q", first.Message)
	}
	want := map[string]string{"web": "2.0.0", "api": "1.1.0", "db": "2.0.0", "cache": "1.1.0"}
	if !reflect.DeepEqual(first.State, want) {
		t.Fatalf("expected state %v, got %v", want, first.State)
	}
}

func TestDefaultResolver_Exhausted(t *testing.T) {
	r := NewDefault()

	res, err := r.Resolve(context.Background(), Request{Requested: "A", Packages: CandidateSet{
		"A": {Versions: map[string]Dependencies{"1.0.0": {"C": "^1.0.0"}}},
		"C": {Versions: versions("2.0.0", "3.0.0")},
	}})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if res.Success {
		t.Fatalf("expected failure")
	}
	if res.Outcome != OutcomeExhausted || res.Checked != 2 || res.Total != 2 {
		t.Fatalf("unexpected stats: %+v", res)
	}
	if res.State == nil || len(res.State) != 0 {
		t.Fatalf("expected empty non-nil state, got %#v", res.State)
	}
	if !strings.Contains(res.Message, "checked all 2/2") {
		t.Fatalf("unexpected message %q", res.Message)
	}
}

func TestDefaultResolver_TimesOutBeforeEndOfEnumeration(t *testing.T) {
	clk := &clocktesting.SimpleIntervalClock{Time: time.Unix(0, 0), Duration: time.Second}
	r := NewDefault(WithClock(clk), WithTimeout(10*time.Second))

	libVersions := make([]string, 0, 50)
	for i := 0; i < 50; i++ {
		libVersions = append(libVersions, fmt.Sprintf("1.0.%d", i))
	}
	req := Request{
		Requested: "app",
		Packages: CandidateSet{
			"app": {Versions: map[string]Dependencies{"1.0.0": {"lib": "^9.0.0"}}},
			"lib": {Versions: versions(libVersions...)},
		},
	}

	res, err := r.Resolve(context.Background(), req)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if res.Success {
		t.Fatalf("expected failure")
	}
	if res.Outcome != OutcomeTimedOut {
		t.Fatalf("expected timeout, got %s", res.Outcome)
	}
	if res.Checked != 11 || res.Checked >= res.Total {
		t.Fatalf("expected a partial search of 11/50, got %d/%d", res.Checked, res.Total)
	}
	if !strings.Contains(res.Message, "timed out") || !strings.Contains(res.Message, "11/50") {
		t.Fatalf("unexpected message %q", res.Message)
	}
}

func TestDefaultResolver_SkipsMalformedRanges(t *testing.T) {
	r := NewDefault()

	res, err := r.Resolve(context.Background(), Request{Requested: "app", Packages: CandidateSet{
		"app": {Versions: map[string]Dependencies{
			"2.0.0": {"lib": "><garbage"},
			"1.0.0": {"lib": "^1.0.0"},
		}},
		"lib": {Versions: versions("1.0.0", "not-semver")},
	}})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if !res.Success || res.State["app"] != "1.0.0" || res.State["lib"] != "1.0.0" {
		t.Fatalf("expected app@1.0.0 lib@1.0.0, got %+v", res)
	}
}

func TestDefaultResolver_ToleratesCycles(t *testing.T) {
	r := NewDefault()

	res, err := r.Resolve(context.Background(), Request{Requested: "a", Packages: CandidateSet{
		"a": {Versions: map[string]Dependencies{"1.0.0": {"b": "1.0.0"}}},
		"b": {Versions: map[string]Dependencies{"1.0.0": {"a": "^1.0.0"}}},
	}})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success, got %q", res.Message)
	}
}

func TestDefaultResolver_CallerErrors(t *testing.T) {
	r := NewDefault()

	cases := []struct {
		name string
		req  Request
		want error
	}{
		{
			name: "missing dependency",
			req: Request{Requested: "a", Packages: CandidateSet{
				"a": {Versions: map[string]Dependencies{"1.0.0": {"ghost": "*"}}},
			}},
			want: ErrInvalidCandidateSet,
		},
		{
			name: "package without versions",
			req: Request{Requested: "a", Packages: CandidateSet{
				"a": {Versions: map[string]Dependencies{"1.0.0": {"b": "*"}}},
				"b": {},
			}},
			want: ErrInvalidCandidateSet,
		},
		{
			name: "requested package not a candidate",
			req:  Request{Requested: "nope", Packages: CandidateSet{"a": {Versions: versions("1.0.0")}}},
			want: ErrInvalidCandidateSet,
		},
		{
			name: "empty candidate set",
			req:  Request{},
			want: ErrNoCombinations,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := r.Resolve(context.Background(), tc.req)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if res.Success {
				t.Fatalf("expected no success alongside an error")
			}
		})
	}
}

type recordingTracer struct {
	indexes []uint64
}

func (t *recordingTracer) Trace(index uint64, _ State, _ Verification) {
	t.indexes = append(t.indexes, index)
}

func TestDefaultResolver_TracesEveryCombination(t *testing.T) {
	tr := &recordingTracer{}
	r := NewDefault(WithTracer(tr))

	_, err := r.Resolve(context.Background(), Request{Requested: "A", Packages: CandidateSet{
		"A": {Versions: map[string]Dependencies{"1.0.0": {"C": "^1.0.0"}}},
		"C": {Versions: versions("1.0.0", "2.0.0", "3.0.0")},
	}})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if !reflect.DeepEqual(tr.indexes, []uint64{0, 1, 2}) {
		t.Fatalf("expected indexes [0 1 2], got %v", tr.indexes)
	}
}

func TestDefaultResolver_LeavesUnneededNewPackagesOut(t *testing.T) {
	r := NewDefault()

	res, err := r.Resolve(context.Background(), Request{Requested: "app", Packages: CandidateSet{
		"app": {Versions: map[string]Dependencies{
			"2.0.0": {},
			"1.0.0": {"legacy": "^1.0.0"},
		}},
		"legacy": {Versions: versions("1.0.0")},
	}})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	want := map[string]string{"app": "2.0.0"}
	if !res.Success || !reflect.DeepEqual(res.State, want) {
		t.Fatalf("expected state %v, got %+v", want, res)
	}
}

func TestDefaultResolver_KeepsTransitiveDependencies(t *testing.T) {
	r := NewDefault()

	res, err := r.Resolve(context.Background(), Request{Requested: "app", Packages: CandidateSet{
		"app":    {Versions: map[string]Dependencies{"1.0.0": {"lib": "^1.0.0"}}},
		"lib":    {Versions: map[string]Dependencies{"1.0.0": {"core": "^2.0.0"}}},
		"core":   {Versions: versions("2.0.0")},
		"unused": {Versions: versions("0.1.0")},
		"agent": {IsInstalled: true, InstalledVersion: "1.0.0", Versions: map[string]Dependencies{
			"1.0.0": {"helper": "*"},
		}},
		"helper": {Versions: versions("3.0.0")},
	}})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	want := map[string]string{"app": "1.0.0", "lib": "1.0.0", "core": "2.0.0", "helper": "3.0.0"}
	if !res.Success || !reflect.DeepEqual(res.State, want) {
		t.Fatalf("expected state %v, got %+v", want, res)
	}
}
