package signature

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/z0mbix/whence/internal/platform"
)

// chocolateySignature recognises Chocolatey installs on Windows.
type chocolateySignature struct{}

func (chocolateySignature) ID() string   { return "chocolatey" }
func (chocolateySignature) Name() string { return "Chocolatey" }

func (chocolateySignature) Supports(p platform.Platform) bool {
	return p == platform.Windows
}

func (s chocolateySignature) Match(path string, ctx Context) *Candidate {
	if !containsAny(path, `\ProgramData\chocolatey\`, `\Chocolatey\`) {
		return nil
	}
	cand := &Candidate{
		ManagerID:   s.ID(),
		ManagerName: s.Name(),
		Package:     ctx.Command,
		Path:        path,
		Specificity: SpecificityPrefix,
	}
	if pkg := segmentAfter(path, `chocolatey\lib\`); pkg != "" {
		cand.Package = pkg
		cand.Specificity = SpecificityStrong
	}
	return cand
}

// Verify queries choco's machine-readable list output, "name|version" per
// line.
func (s chocolateySignature) Verify(ctx context.Context, cand Candidate) (Verification, error) {
	out, err := exec.CommandContext(ctx,
		"choco", "list", "--exact", "--limit-output", cand.Package).Output()
	if err != nil {
		return Verification{}, fmt.Errorf("choco list %s: %w", cand.Package, err)
	}
	for _, line := range strings.Split(string(out), "\n") {
		name, version, ok := strings.Cut(strings.TrimSpace(line), "|")
		if ok && strings.EqualFold(name, cand.Package) {
			return Verification{Package: name, Version: version}, nil
		}
	}
	return Verification{}, fmt.Errorf("package %q not installed by chocolatey", cand.Package)
}
