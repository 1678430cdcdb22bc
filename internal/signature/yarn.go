package signature

import "github.com/z0mbix/whence/internal/platform"

// yarnSignature recognises Yarn's global install layout.
type yarnSignature struct{}

func (yarnSignature) ID() string                        { return "yarn" }
func (yarnSignature) Name() string                      { return "Yarn (global)" }
func (yarnSignature) Supports(p platform.Platform) bool { return true }

func (s yarnSignature) Match(path string, ctx Context) *Candidate {
	if !containsAny(path,
		"/.yarn/bin/",
		"/yarn/global/node_modules/",
		`\Yarn\bin\`,
		`\Yarn\Data\global\node_modules\`,
	) && !hasSuffixAny(path, "/.yarn/bin", `\Yarn\bin`) {
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
