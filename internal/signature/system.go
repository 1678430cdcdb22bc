package signature

import (
	"strings"

	"github.com/z0mbix/whence/internal/platform"
)

// systemSignature is the fallback for binaries shipped with the operating
// system. The orchestrator only consults it after every manager signature
// has declined every path in the chain, so an OS-standard location is an
// informative answer rather than a guess.
type systemSignature struct{}

func (systemSignature) ID() string                        { return "system" }
func (systemSignature) Name() string                      { return "System (OS standard)" }
func (systemSignature) Supports(p platform.Platform) bool { return true }

func (s systemSignature) Match(path string, ctx Context) *Candidate {
	var system bool
	switch ctx.Platform {
	case platform.Darwin:
		system = hasPrefixAny(path, "/bin/", "/sbin/", "/usr/bin/", "/usr/sbin/", "/System/")
	case platform.Windows:
		system = containsAny(path, `\Windows\System32\`, `\Windows\SysWOW64\`)
	default:
		system = hasPrefixAny(path, "/bin/", "/sbin/", "/usr/bin/", "/usr/sbin/", "/usr/libexec/")
	}
	if !system {
		return nil
	}
	return &Candidate{
		ManagerID:   s.ID(),
		ManagerName: s.Name(),
		Path:        path,
		Specificity: SpecificitySystem,
	}
}

func hasPrefixAny(path string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
