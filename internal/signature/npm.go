package signature

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/z0mbix/whence/internal/platform"
)

// npmSignature recognises globally installed npm packages on every platform.
type npmSignature struct{}

func (npmSignature) ID() string                        { return "npm" }
func (npmSignature) Name() string                      { return "npm (global)" }
func (npmSignature) Supports(p platform.Platform) bool { return true }

func (s npmSignature) Match(path string, ctx Context) *Candidate {
	if !containsAny(path,
		"/lib/node_modules/",
		"/.npm-global/",
		"/node_modules/",
		`\node_modules\`,
		`\npm\`,
	) {
		return nil
	}
	cand := &Candidate{
		ManagerID:   s.ID(),
		ManagerName: s.Name(),
		Path:        path,
		Specificity: SpecificityPrefix,
	}
	if pkg := nodePackage(path); pkg != "" {
		cand.Package = pkg
		cand.Specificity = SpecificityStrong
	}
	return cand
}

// Verify queries the global npm tree for the candidate package.
func (s npmSignature) Verify(ctx context.Context, cand Candidate) (Verification, error) {
	name := cand.Package
	if name == "" {
		name = commandFromPath(cand.Path)
	}
	out, err := exec.CommandContext(ctx,
		"npm", "ls", "--global", "--depth=0", "--json", name).Output()
	if err != nil {
		return Verification{}, fmt.Errorf("npm ls --global %s: %w", name, err)
	}
	return parseNpmLs(out, name)
}

// parseNpmLs pulls the version of name out of npm ls --json output.
func parseNpmLs(out []byte, name string) (Verification, error) {
	var tree struct {
		Dependencies map[string]struct {
			Version string `json:"version"`
		} `json:"dependencies"`
	}
	if err := json.Unmarshal(out, &tree); err != nil {
		return Verification{}, fmt.Errorf("parsing npm ls output: %w", err)
	}
	dep, ok := tree.Dependencies[name]
	if !ok {
		return Verification{}, fmt.Errorf("package %q not in global npm tree", name)
	}
	return Verification{Package: name, Version: dep.Version}, nil
}
