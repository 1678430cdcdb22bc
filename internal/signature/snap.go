package signature

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/z0mbix/whence/internal/platform"
)

// snapSignature recognises snapd-managed paths on Linux.
type snapSignature struct{}

func (snapSignature) ID() string   { return "snap" }
func (snapSignature) Name() string { return "Snap" }

func (snapSignature) Supports(p platform.Platform) bool {
	return p == platform.Linux
}

func (s snapSignature) Match(path string, ctx Context) *Candidate {
	if !strings.HasPrefix(path, "/snap/") &&
		!containsAny(path, "/snap/bin/", "/snapd/snap/") {
		return nil
	}
	cand := &Candidate{
		ManagerID:   s.ID(),
		ManagerName: s.Name(),
		Package:     ctx.Command,
		Path:        path,
		Specificity: SpecificityPrefix,
	}
	// /snap/<name>/<revision>/... identifies the snap itself.
	if seg := segmentAfter(path, "/snap/"); seg != "" && seg != "bin" {
		cand.Package = seg
		cand.Specificity = SpecificityStrong
	}
	return cand
}

// Verify reads the installed version from snap list, skipping the header
// line.
func (s snapSignature) Verify(ctx context.Context, cand Candidate) (Verification, error) {
	out, err := exec.CommandContext(ctx, "snap", "list", cand.Package).Output()
	if err != nil {
		return Verification{}, fmt.Errorf("snap list %s: %w", cand.Package, err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) < 2 {
		return Verification{}, fmt.Errorf("snap %q not installed", cand.Package)
	}
	fields := strings.Fields(lines[1])
	if len(fields) < 2 {
		return Verification{}, fmt.Errorf("unexpected snap list output for %q", cand.Package)
	}
	return Verification{Package: fields[0], Version: fields[1]}, nil
}
