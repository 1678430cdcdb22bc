package signature

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/z0mbix/whence/internal/platform"
)

// gobinSignature recognises binaries installed with go install.
type gobinSignature struct{}

func (gobinSignature) ID() string                        { return "go" }
func (gobinSignature) Name() string                      { return "go install" }
func (gobinSignature) Supports(p platform.Platform) bool { return true }

func (s gobinSignature) Match(path string, ctx Context) *Candidate {
	if !containsAny(path, "/go/bin/", `\go\bin\`) &&
		!hasSuffixAny(path, "/go/bin", `\go\bin`) {
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

// Verify reads the module path and version baked into the binary by the Go
// toolchain.
func (s gobinSignature) Verify(ctx context.Context, cand Candidate) (Verification, error) {
	out, err := exec.CommandContext(ctx, "go", "version", "-m", cand.Path).Output()
	if err != nil {
		return Verification{}, fmt.Errorf("go version -m %s: %w", cand.Path, err)
	}
	if v, ok := parseGoVersionM(string(out)); ok {
		return v, nil
	}
	return Verification{}, fmt.Errorf("no module metadata in %s", cand.Path)
}

// parseGoVersionM extracts the main module line ("mod\tpath\tversion\t...")
// from go version -m output.
func parseGoVersionM(out string) (Verification, bool) {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 3 && fields[0] == "mod" {
			return Verification{Package: fields[1], Version: fields[2]}, true
		}
	}
	return Verification{}, false
}
