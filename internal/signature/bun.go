package signature

import "github.com/z0mbix/whence/internal/platform"

// bunSignature recognises bun's global install layout.
type bunSignature struct{}

func (bunSignature) ID() string                        { return "bun" }
func (bunSignature) Name() string                      { return "bun (global)" }
func (bunSignature) Supports(p platform.Platform) bool { return true }

func (s bunSignature) Match(path string, ctx Context) *Candidate {
	if !containsAny(path,
		"/.bun/bin/",
		"/.bun/install/global/",
		`\.bun\bin\`,
		`\.bun\install\global\`,
	) {
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
	} else {
		cand.Package = ctx.Command
	}
	return cand
}
