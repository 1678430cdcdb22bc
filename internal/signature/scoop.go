package signature

import "github.com/z0mbix/whence/internal/platform"

// scoopSignature recognises Scoop installs on Windows. Scoop shims live
// under scoop\shims, the real binaries under scoop\apps\<name>\<version>.
type scoopSignature struct{}

func (scoopSignature) ID() string   { return "scoop" }
func (scoopSignature) Name() string { return "Scoop" }

func (scoopSignature) Supports(p platform.Platform) bool {
	return p == platform.Windows
}

func (s scoopSignature) Match(path string, ctx Context) *Candidate {
	switch {
	case containsAny(path, `\scoop\apps\`):
		app := segmentAfter(path, `\scoop\apps\`)
		version := ""
		if app != "" {
			version = segmentAfter(path, `\scoop\apps\`+app+`\`)
			if version == "current" {
				version = ""
			}
		}
		return &Candidate{
			ManagerID:   s.ID(),
			ManagerName: s.Name(),
			Package:     app,
			Version:     version,
			Path:        path,
			Specificity: SpecificityExact,
		}
	case containsAny(path, `\scoop\shims\`):
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
