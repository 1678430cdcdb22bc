package signature

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/z0mbix/whence/internal/platform"
)

// cargoSignature recognises binaries installed with cargo install.
type cargoSignature struct{}

func (cargoSignature) ID() string                        { return "cargo" }
func (cargoSignature) Name() string                      { return "Cargo" }
func (cargoSignature) Supports(p platform.Platform) bool { return true }

func (s cargoSignature) Match(path string, ctx Context) *Candidate {
	if !containsAny(path, "/.cargo/bin/", `\.cargo\bin\`) &&
		!hasSuffixAny(path, "/.cargo/bin", `\.cargo\bin`) {
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

// Verify resolves the owning crate and version via cargo install --list.
func (s cargoSignature) Verify(ctx context.Context, cand Candidate) (Verification, error) {
	out, err := exec.CommandContext(ctx, "cargo", "install", "--list").Output()
	if err != nil {
		return Verification{}, fmt.Errorf("cargo install --list: %w", err)
	}
	bin := commandFromPath(cand.Path)
	if v, ok := parseCargoInstallList(string(out), bin); ok {
		return v, nil
	}
	return Verification{}, fmt.Errorf("no installed crate provides %q", bin)
}

// parseCargoInstallList scans cargo install --list output, which groups an
// indented list of binaries under each "crate v1.2.3:" header, for the
// crate that owns bin.
func parseCargoInstallList(out, bin string) (Verification, bool) {
	var crate, version string
	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		if line[0] != ' ' && line[0] != '\t' {
			fields := strings.Fields(strings.TrimSuffix(line, ":"))
			crate, version = "", ""
			if len(fields) >= 1 {
				crate = fields[0]
			}
			if len(fields) >= 2 {
				version = strings.TrimPrefix(fields[1], "v")
			}
			continue
		}
		name := strings.TrimSpace(line)
		if name == bin || strings.TrimSuffix(name, ".exe") == bin {
			return Verification{Package: crate, Version: version}, crate != ""
		}
	}
	return Verification{}, false
}
