package resolver

import "fmt"

// Dependencies maps a dependency package name to the semver range required of it.
type Dependencies map[string]string

// Package is one entry of a candidate set.
type Package struct {
	// IsInstalled reports whether the package is currently present on the host.
	IsInstalled bool `json:"isInstalled"`
	// InstalledVersion is the version present on the host, if known.
	// It drives the closeness ordering of installed packages, and a resolved
	// version equal to it is left out of the result.
	InstalledVersion string `json:"installedVersion,omitempty"`
	// Versions holds every candidate version with its declared dependencies.
	Versions map[string]Dependencies `json:"versions"`
}

// CandidateSet is the closed collection of packages considered by one resolution.
type CandidateSet map[string]Package

// Request is the input of a resolution.
type Request struct {
	// Requested names the package the user asked to install or upgrade.
	Requested string       `json:"requested"`
	Packages  CandidateSet `json:"packages"`
}

// State is one combination: a version per package. An empty version means
// the package is not installed in this outcome.
type State map[string]string

// Conflict identifies one incompatibility: Requirer ("name@version") declares
// Range on Dependency ("name@version", or "name@no-version" when the
// dependency is not part of the state).
type Conflict struct {
	Requirer   string `json:"requirer"`
	Dependency string `json:"dependency"`
	Range      string `json:"range"`
}

// Signature is the conflict key used in diagnostics.
func (c Conflict) Signature() string {
	return fmt.Sprintf("%s#%s#%s", c.Requirer, c.Dependency, c.Range)
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s is incompatible with %s (requires %s)", c.Requirer, c.Dependency, c.Range)
}

// Verification is the outcome of checking one State.
type Verification struct {
	Valid  bool
	Reason *Conflict
}

// Outcome is the terminal state of a search.
type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomeExhausted Outcome = "exhausted"
	OutcomeTimedOut  Outcome = "timeout"
)

// Result is the output of the resolver.
//
// A Result with Success=false is a normal answer ("install nothing"), not an error.
type Result struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	State   map[string]string `json:"state"`

	Outcome Outcome `json:"outcome"`
	// Checked is the number of combinations verified; Total is the size of the search space.
	Checked uint64 `json:"checked"`
	Total   uint64 `json:"total"`
}
