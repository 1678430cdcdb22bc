package signature

import "github.com/z0mbix/whence/internal/platform"

// pnpmSignature recognises pnpm's global install layout. It is registered
// ahead of the generic npm signature because pnpm's global directory also
// contains a node_modules segment.
type pnpmSignature struct{}

func (pnpmSignature) ID() string                        { return "pnpm" }
func (pnpmSignature) Name() string                      { return "pnpm (global)" }
func (pnpmSignature) Supports(p platform.Platform) bool { return true }

func (s pnpmSignature) Match(path string, ctx Context) *Candidate {
	if !containsAny(path,
		"/.local/share/pnpm/",
		"/pnpm/global/",
		`\AppData\Local\pnpm`,
		`\AppData\Roaming\pnpm`,
	) && !hasSuffixAny(path, "/.local/share/pnpm") {
		return nil
	}
	cand := &Candidate{
		ManagerID:   s.ID(),
		ManagerName: s.Name(),
		Path:        path,
		Specificity: SpecificityStrong,
	}
	if pkg := nodePackage(path); pkg != "" {
		cand.Package = pkg
	}
	return cand
}
