package signature

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/z0mbix/whence/internal/platform"
)

// nSignature recognises node toolchains managed by n, the Node version
// manager. n copies the active version into <prefix>/bin, so the only path
// signal for the active copy is the versions tree sitting next to it.
type nSignature struct{}

func (nSignature) ID() string   { return "n" }
func (nSignature) Name() string { return "n (Node version manager)" }

func (nSignature) Supports(p platform.Platform) bool {
	return p == platform.Darwin || p == platform.Linux
}

var nManagedCommands = map[string]bool{
	"node":     true,
	"npm":      true,
	"npx":      true,
	"corepack": true,
}

func (s nSignature) Match(path string, ctx Context) *Candidate {
	// A path inside the versions tree identifies both manager and version.
	if strings.Contains(path, "/n/versions/node/") {
		return &Candidate{
			ManagerID:   s.ID(),
			ManagerName: s.Name(),
			Package:     ctx.Command,
			Version:     segmentAfter(path, "/n/versions/node/"),
			Path:        path,
			Specificity: SpecificityExact,
		}
	}

	if !nManagedCommands[ctx.Command] {
		return nil
	}

	// The active copy lives at <prefix>/bin/<cmd>; claim it only when the
	// prefix actually holds an n versions tree.
	dir := filepath.Dir(path)
	if filepath.Base(dir) != "bin" {
		return nil
	}
	versions := filepath.Join(filepath.Dir(dir), "n", "versions", "node")
	info, err := os.Stat(versions)
	if err != nil || !info.IsDir() {
		return nil
	}
	return &Candidate{
		ManagerID:   s.ID(),
		ManagerName: s.Name(),
		Package:     ctx.Command,
		Version:     firstSubdir(versions),
		Path:        path,
		Specificity: SpecificityStrong,
	}
}

// firstSubdir returns the name of the first directory entry, typically the
// single active node version.
func firstSubdir(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if e.IsDir() {
			return e.Name()
		}
	}
	return ""
}
