package resolver

import (
	"strings"
	"testing"
	"time"
)

func TestConflicts_TopReturnsTiesSorted(t *testing.T) {
	c := make(Conflicts)
	x := &Conflict{Requirer: "b@1.0.0", Dependency: "c@2.0.0", Range: "^1.0.0"}
	y := &Conflict{Requirer: "a@1.0.0", Dependency: "c@2.0.0", Range: "^1.0.0"}
	z := &Conflict{Requirer: "a@1.0.0", Dependency: "c@no-version", Range: "^1.0.0"}
	c.Add(x)
	c.Add(x)
	c.Add(y)
	c.Add(y)
	c.Add(z)
	c.Add(nil)

	top, count := c.Top()
	if count != 2 {
		t.Fatalf("expected count 2, got %d", count)
	}
	if len(top) != 2 || top[0] != *y || top[1] != *x {
		t.Fatalf("expected [%v %v], got %v", *y, *x, top)
	}
}

func TestRenderFailure_Exhausted(t *testing.T) {
	c := make(Conflicts)
	c.Add(&Conflict{Requirer: "A@1.0.0", Dependency: "C@2.0.0", Range: "^1.0.0"})

	msg := RenderFailure(false, 10*time.Second, 2, 2, c)
	if !strings.Contains(msg, "checked all 2/2") {
		t.Fatalf("expected exhaustion count in %q", msg)
	}
	if strings.Contains(msg, "timed out") {
		t.Fatalf("did not expect timeout wording in %q", msg)
	}
	if !strings.Contains(msg, "A@1.0.0 is incompatible with C@2.0.0 (requires ^1.0.0)") {
		t.Fatalf("expected conflict in %q", msg)
	}
	if RenderFailure(false, 10*time.Second, 2, 2, c) != msg {
		t.Fatalf("expected the message to depend only on its inputs")
	}
}

func TestRenderFailure_TimedOut(t *testing.T) {
	msg := RenderFailure(true, 10*time.Second, 11, 50, Conflicts{})
	if !strings.Contains(msg, "timed out after 10s") || !strings.Contains(msg, "11/50") {
		t.Fatalf("unexpected message %q", msg)
	}
	if strings.Contains(msg, "Found compatible state") {
		t.Fatalf("failure message must not claim success: %q", msg)
	}
}

func TestRenderFailure_BoundsTiedConflicts(t *testing.T) {
	c := make(Conflicts)
	for _, r := range []string{"a", "b", "c", "d", "e", "f"} {
		c.Add(&Conflict{Requirer: r + "@1.0.0", Dependency: "x@no-version", Range: "*"})
	}
	msg := RenderFailure(false, 0, 6, 6, c)
	if !strings.Contains(msg, "and 2 more") {
		t.Fatalf("expected truncated conflict list in %q", msg)
	}
	if strings.Contains(msg, "e@1.0.0") {
		t.Fatalf("expected e@1.0.0 to be cut from %q", msg)
	}
}
