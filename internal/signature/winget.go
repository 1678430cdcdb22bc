package signature

import "github.com/z0mbix/whence/internal/platform"

// wingetSignature recognises WinGet portable-package installs.
type wingetSignature struct{}

func (wingetSignature) ID() string   { return "winget" }
func (wingetSignature) Name() string { return "WinGet" }

func (wingetSignature) Supports(p platform.Platform) bool {
	return p == platform.Windows
}

func (s wingetSignature) Match(path string, ctx Context) *Candidate {
	if !containsAny(path, `\Microsoft\WinGet\Packages\`, `\WinGet\Packages\`) {
		return nil
	}
	cand := &Candidate{
		ManagerID:   s.ID(),
		ManagerName: s.Name(),
		Package:     ctx.Command,
		Path:        path,
		Specificity: SpecificityPrefix,
	}
	if pkg := segmentAfter(path, `\WinGet\Packages\`); pkg != "" {
		cand.Package = pkg
		cand.Specificity = SpecificityStrong
	}
	return cand
}
