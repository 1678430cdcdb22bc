package signature

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/z0mbix/whence/internal/platform"
)

// pipxSignature recognises pipx-managed venvs.
type pipxSignature struct{}

func (pipxSignature) ID() string                        { return "pipx" }
func (pipxSignature) Name() string                      { return "pipx" }
func (pipxSignature) Supports(p platform.Platform) bool { return true }

func (s pipxSignature) Match(path string, ctx Context) *Candidate {
	if !containsAny(path, "/pipx/venvs/", `\pipx\venvs\`) {
		return nil
	}
	pkg := segmentAfter(path, "pipx/venvs/")
	if pkg == "" {
		pkg = segmentAfter(path, `pipx\venvs\`)
	}
	score := SpecificityStrong
	if pkg == "" {
		pkg = ctx.Command
		score = SpecificityPrefix
	}
	return &Candidate{
		ManagerID:   s.ID(),
		ManagerName: s.Name(),
		Package:     pkg,
		Path:        path,
		Specificity: score,
	}
}

// Verify looks the package up in pipx list --short output, one
// "package version" pair per line.
func (s pipxSignature) Verify(ctx context.Context, cand Candidate) (Verification, error) {
	out, err := exec.CommandContext(ctx, "pipx", "list", "--short").Output()
	if err != nil {
		return Verification{}, fmt.Errorf("pipx list --short: %w", err)
	}
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[0] == cand.Package {
			return Verification{Package: fields[0], Version: fields[1]}, nil
		}
	}
	return Verification{}, fmt.Errorf("package %q not managed by pipx", cand.Package)
}
