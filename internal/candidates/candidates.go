// Package candidates reads resolution requests from YAML or JSON documents.
//
// A document names the requested package and lists the candidate set the
// aggregator produced:
//
//	requested: core.dnp.dappnode.eth
//	packages:
//	  core.dnp.dappnode.eth:
//	    isInstalled: true
//	    installedVersion: 0.1.11
//	    versions:
//	      0.1.15:
//	        bind.dnp.dappnode.eth: 0.1.4
//	  bind.dnp.dappnode.eth:
//	    versions:
//	      0.1.4: {}
package candidates

import (
	"errors"
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/bayleafwalker/dnp-manager/internal/resolver"
)

// ErrEmpty indicates a document without any candidate packages.
var ErrEmpty = errors.New("candidates: no packages")

// Load reads the request stored at path.
func Load(path string) (resolver.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return resolver.Request{}, fmt.Errorf("candidates: read %s: %w", path, err)
	}
	req, err := Parse(data)
	if err != nil {
		return resolver.Request{}, fmt.Errorf("%s: %w", path, err)
	}
	return req, nil
}

// Parse decodes a YAML or JSON request. Unknown fields are rejected.
func Parse(data []byte) (resolver.Request, error) {
	var req resolver.Request
	if err := yaml.UnmarshalStrict(data, &req); err != nil {
		return resolver.Request{}, fmt.Errorf("candidates: decode: %w", err)
	}
	if len(req.Packages) == 0 {
		return resolver.Request{}, ErrEmpty
	}
	for name, pkg := range req.Packages {
		if pkg.Versions == nil {
			pkg.Versions = map[string]resolver.Dependencies{}
			req.Packages[name] = pkg
		}
	}
	return req, nil
}

// Encode renders v as YAML, or as JSON when asJSON is set.
func Encode(v any, asJSON bool) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("candidates: encode: %w", err)
	}
	if !asJSON {
		return data, nil
	}
	out, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("candidates: encode: %w", err)
	}
	return out, nil
}
