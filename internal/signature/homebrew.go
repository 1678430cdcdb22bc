package signature

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/z0mbix/whence/internal/platform"
)

// cellarRe extracts the formula name and version from a Cellar path:
//
//	/opt/homebrew/Cellar/git/2.51.2/bin/git              (ARM macOS)
//	/usr/local/Cellar/node/22.0.0/bin/node               (Intel macOS)
//	/home/linuxbrew/.linuxbrew/Cellar/gcc/14.1.0/bin/gcc (Linux)
var cellarRe = regexp.MustCompile(
	`(?:/opt/homebrew|/usr/local|/home/linuxbrew/\.linuxbrew)/Cellar/([^/]+)/([^/]+)/`)

// homebrewSignature recognises Homebrew installs on macOS and Linux.
type homebrewSignature struct{}

func (homebrewSignature) ID() string   { return "homebrew" }
func (homebrewSignature) Name() string { return "Homebrew" }

func (homebrewSignature) Supports(p platform.Platform) bool {
	return p == platform.Darwin || p == platform.Linux
}

func (s homebrewSignature) Match(path string, ctx Context) *Candidate {
	if m := cellarRe.FindStringSubmatch(path); m != nil {
		return &Candidate{
			ManagerID:   s.ID(),
			ManagerName: s.Name(),
			Package:     m[1],
			Version:     m[2],
			Path:        path,
			Specificity: SpecificityExact,
		}
	}

	// Keg-only formulae and caskroom binaries live under the prefix but
	// outside the Cellar, so the package identity is not recoverable from
	// the path alone.
	if containsAny(path,
		"/opt/homebrew/",
		"/usr/local/Homebrew/",
		"/home/linuxbrew/.linuxbrew/",
	) {
		return &Candidate{
			ManagerID:   s.ID(),
			ManagerName: s.Name(),
			Path:        path,
			Specificity: SpecificityPrefix,
		}
	}
	return nil
}

// Verify asks brew which formula provides the candidate. The formula name
// from the Cellar path is preferred; the command name is the fallback for
// prefix-only matches.
func (s homebrewSignature) Verify(ctx context.Context, cand Candidate) (Verification, error) {
	name := cand.Package
	if name == "" {
		name = commandFromPath(cand.Path)
	}
	out, err := exec.CommandContext(ctx, "brew", "list", "--versions", name).Output()
	if err != nil {
		return Verification{}, fmt.Errorf("brew list --versions %s: %w", name, err)
	}
	return parseBrewVersions(string(out))
}

// parseBrewVersions parses "formula version [version...]" output from
// brew list --versions.
func parseBrewVersions(out string) (Verification, error) {
	fields := strings.Fields(strings.TrimSpace(out))
	if len(fields) == 0 {
		return Verification{}, fmt.Errorf("formula not installed")
	}
	v := Verification{Package: fields[0]}
	if len(fields) > 1 {
		v.Version = fields[1]
	}
	return v, nil
}

// commandFromPath returns the final path segment, the best available guess
// at the command name when a candidate has no package identity.
func commandFromPath(path string) string {
	segs := splitSegments(path)
	if len(segs) == 0 {
		return path
	}
	return segs[len(segs)-1]
}
