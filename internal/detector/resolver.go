package detector

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/z0mbix/whence/internal/platform"
)

// Resolver locates a command's executable on a search path using the
// platform's lookup rules. The zero-value fields default to the current
// environment, and tests inject their own path entries and suffixes.
type Resolver struct {
	Platform platform.Platform

	// Dirs are the search path entries. Defaults to $PATH.
	Dirs []string

	// Suffixes are the candidate filename suffixes tried per directory.
	// Defaults to the platform's rules (PATHEXT on Windows).
	Suffixes []string
}

// NewResolver returns a resolver for the current environment.
func NewResolver(p platform.Platform) *Resolver {
	return &Resolver{
		Platform: p,
		Dirs:     filepath.SplitList(os.Getenv("PATH")),
		Suffixes: p.ExecSuffixes(),
	}
}

// Resolve returns the absolute path of the first executable matching name.
// A name containing a path separator is checked directly instead of being
// searched for.
func (r *Resolver) Resolve(name string) (string, error) {
	if name == "" {
		return "", &NotFoundError{Name: name}
	}

	if strings.ContainsAny(name, pathSeparators(r.Platform)) {
		for _, cand := range r.candidates(name) {
			if r.isExecutable(cand) {
				return filepath.Abs(cand)
			}
		}
		return "", &NotFoundError{Name: name}
	}

	for _, dir := range r.Dirs {
		if dir == "" {
			continue
		}
		for _, cand := range r.candidates(name) {
			cand = filepath.Join(dir, cand)
			if r.isExecutable(cand) {
				return filepath.Abs(cand)
			}
		}
	}
	return "", &NotFoundError{Name: name}
}

// candidates returns the file names tried for name. A name that already
// carries one of the platform's suffixes is tried as-is first, so
// "rg.exe" resolves on Windows instead of probing "rg.exe.exe".
func (r *Resolver) candidates(name string) []string {
	suffixes := r.Suffixes
	if len(suffixes) == 0 {
		return []string{name}
	}
	var cands []string
	lower := strings.ToLower(name)
	for _, suffix := range suffixes {
		if suffix != "" && strings.HasSuffix(lower, suffix) {
			cands = append(cands, name)
			break
		}
	}
	for _, suffix := range suffixes {
		cands = append(cands, name+suffix)
	}
	return cands
}

func (r *Resolver) isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if r.Platform == platform.Windows {
		// The suffix list already constrains what counts as executable.
		return true
	}
	return info.Mode()&0o111 != 0
}

func pathSeparators(p platform.Platform) string {
	if p == platform.Windows {
		return `/\`
	}
	return "/"
}
