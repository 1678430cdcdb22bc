package signature

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/z0mbix/whence/internal/platform"
)

// gemSignature recognises RubyGems bin directories.
type gemSignature struct{}

func (gemSignature) ID() string                        { return "gem" }
func (gemSignature) Name() string                      { return "RubyGems" }
func (gemSignature) Supports(p platform.Platform) bool { return true }

func (s gemSignature) Match(path string, ctx Context) *Candidate {
	if !containsAny(path,
		"/.gem/ruby/",
		"/ruby/gems/",
		"/var/lib/gems/",
		`\.gem\ruby\`,
		`\ruby\gems\`,
	) {
		return nil
	}
	// Library paths under the gems tree are not executables; require a bin
	// segment so shared ruby files do not get claimed.
	if !containsAny(path, "/bin/", `\bin\`) && !hasSuffixAny(path, "/bin", `\bin`) {
		return nil
	}
	return &Candidate{
		ManagerID:   s.ID(),
		ManagerName: s.Name(),
		Package:     ctx.Command,
		Path:        path,
		Specificity: SpecificityStrong,
	}
}

// Verify queries gem for an exact-name match, whose output looks like
// "name (1.2.3, 1.1.0)".
func (s gemSignature) Verify(ctx context.Context, cand Candidate) (Verification, error) {
	out, err := exec.CommandContext(ctx, "gem", "list", "--exact", cand.Package).Output()
	if err != nil {
		return Verification{}, fmt.Errorf("gem list --exact %s: %w", cand.Package, err)
	}
	for _, line := range strings.Split(string(out), "\n") {
		name, rest, ok := strings.Cut(strings.TrimSpace(line), " (")
		if !ok || name != cand.Package {
			continue
		}
		version := strings.TrimSuffix(rest, ")")
		if i := strings.IndexAny(version, ", "); i >= 0 {
			version = version[:i]
		}
		return Verification{Package: name, Version: version}, nil
	}
	return Verification{}, fmt.Errorf("gem %q not installed", cand.Package)
}
