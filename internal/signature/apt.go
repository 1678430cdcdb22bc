package signature

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/z0mbix/whence/internal/platform"
)

// aptSignature attributes binaries in the standard system directories to
// dpkg/apt, but only on systems that actually carry a dpkg database. On
// other Linux distributions those directories fall through to the system
// fallback instead.
type aptSignature struct {
	statusFile string
}

func newAptSignature() *aptSignature {
	return &aptSignature{statusFile: "/var/lib/dpkg/status"}
}

func (*aptSignature) ID() string   { return "apt" }
func (*aptSignature) Name() string { return "apt" }

func (*aptSignature) Supports(p platform.Platform) bool {
	return p == platform.Linux
}

var dpkgManagedPrefixes = []string{"/usr/bin/", "/usr/sbin/", "/bin/", "/sbin/", "/usr/games/"}

func (s *aptSignature) Match(path string, ctx Context) *Candidate {
	managed := false
	for _, prefix := range dpkgManagedPrefixes {
		if strings.HasPrefix(path, prefix) {
			managed = true
			break
		}
	}
	if !managed {
		return nil
	}
	if _, err := os.Stat(s.statusFile); err != nil {
		return nil
	}
	return &Candidate{
		ManagerID:   s.ID(),
		ManagerName: s.Name(),
		Path:        path,
		Specificity: SpecificityPrefix,
	}
}

// Verify asks dpkg which package owns the file, then dpkg-query for its
// version.
func (s *aptSignature) Verify(ctx context.Context, cand Candidate) (Verification, error) {
	out, err := exec.CommandContext(ctx, "dpkg", "-S", cand.Path).Output()
	if err != nil {
		return Verification{}, fmt.Errorf("dpkg -S %s: %w", cand.Path, err)
	}
	pkg, _, ok := strings.Cut(string(out), ":")
	pkg = strings.TrimSpace(pkg)
	if !ok || pkg == "" {
		return Verification{}, fmt.Errorf("no package owns %s", cand.Path)
	}

	ver, err := exec.CommandContext(ctx, "dpkg-query", "-W", "-f=${Version}", pkg).Output()
	if err != nil {
		return Verification{}, fmt.Errorf("dpkg-query -W %s: %w", pkg, err)
	}
	return Verification{Package: pkg, Version: strings.TrimSpace(string(ver))}, nil
}
