package signature

import "github.com/z0mbix/whence/internal/platform"

// miseSignature recognises tools managed by mise. mise fronts everything
// with shims, so the canonical signal often sits on the shim path rather
// than the real binary.
type miseSignature struct{}

func (miseSignature) ID() string                        { return "mise" }
func (miseSignature) Name() string                      { return "mise" }
func (miseSignature) Supports(p platform.Platform) bool { return true }

func (s miseSignature) Match(path string, ctx Context) *Candidate {
	switch {
	case containsAny(path, "/mise/installs/", `\mise\installs\`):
		tool := segmentAfter(path, "mise/installs/")
		if tool == "" {
			tool = segmentAfter(path, `mise\installs\`)
		}
		version := ""
		if tool != "" {
			version = segmentAfter(path, "installs/"+tool+"/")
			if version == "" {
				version = segmentAfter(path, `installs\`+tool+`\`)
			}
		}
		return &Candidate{
			ManagerID:   s.ID(),
			ManagerName: s.Name(),
			Package:     tool,
			Version:     version,
			Path:        path,
			Specificity: SpecificityExact,
		}
	case containsAny(path, "/mise/shims/", `\mise\shims\`),
		hasSuffixAny(path, "/mise/shims", `\mise\shims`):
		return &Candidate{
			ManagerID:   s.ID(),
			ManagerName: s.Name(),
			Package:     ctx.Command,
			Path:        path,
			Specificity: SpecificityStrong,
		}
	}
	return nil
}
