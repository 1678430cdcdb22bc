package signature

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/z0mbix/whence/internal/platform"
)

// nixSignature recognises Nix store paths and profile links.
type nixSignature struct{}

func (nixSignature) ID() string   { return "nix" }
func (nixSignature) Name() string { return "Nix" }

func (nixSignature) Supports(p platform.Platform) bool {
	return p == platform.Darwin || p == platform.Linux
}

func (s nixSignature) Match(path string, ctx Context) *Candidate {
	if !containsAny(path,
		"/nix/store/",
		"/.nix-profile/bin/",
		"/nix/var/nix/profiles/",
		"/current-system/sw/bin/",
		"/profiles/per-user/",
	) && !hasSuffixAny(path, "/.nix-profile/bin") {
		return nil
	}
	cand := &Candidate{
		ManagerID:   s.ID(),
		ManagerName: s.Name(),
		Package:     ctx.Command,
		Path:        path,
		Specificity: SpecificityPrefix,
	}
	if name, version, ok := splitStorePath(path); ok {
		cand.Package = name
		cand.Version = version
		cand.Specificity = SpecificityExact
	}
	return cand
}

// splitStorePath decomposes a /nix/store/<hash>-<name>-<version> path into
// its name and version parts. The store hash is always 32 characters.
func splitStorePath(path string) (name, version string, ok bool) {
	seg := segmentAfter(path, "/nix/store/")
	if len(seg) <= 33 || seg[32] != '-' {
		return "", "", false
	}
	rest := seg[33:]

	// The version starts at the last dash followed by a digit.
	for i := len(rest) - 2; i > 0; i-- {
		if rest[i] == '-' && rest[i+1] >= '0' && rest[i+1] <= '9' {
			return rest[:i], rest[i+1:], true
		}
	}
	return rest, "", true
}

// Verify resolves the store path of the candidate through nix itself.
func (s nixSignature) Verify(ctx context.Context, cand Candidate) (Verification, error) {
	out, err := exec.CommandContext(ctx, "nix-store", "--query", "--deriver", cand.Path).Output()
	if err != nil {
		return Verification{}, fmt.Errorf("nix-store --query %s: %w", cand.Path, err)
	}
	drv := strings.TrimSpace(string(out))
	if drv == "" {
		return Verification{}, fmt.Errorf("no deriver for %s", cand.Path)
	}
	if name, version, ok := splitStorePath(drv); ok {
		return Verification{Package: strings.TrimSuffix(name, ".drv"), Version: strings.TrimSuffix(version, ".drv")}, nil
	}
	return Verification{Package: cand.Package, Version: cand.Version}, nil
}
