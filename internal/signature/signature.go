// Package signature holds the database of path patterns that tie an
// installed executable back to the package manager that put it there.
//
// Each package manager contributes one Signature. A signature is asked
// whether a single path belongs to that manager's install layout; a
// successful match produces a Candidate carrying a specificity score so
// that overlapping signatures can be ranked. Signatures that can confirm
// a match by querying the manager's own CLI also implement Verifier.
package signature

import (
	"context"

	"github.com/z0mbix/whence/internal/platform"
)

// Specificity bands. A layout that encodes the package identity in the path
// (a Homebrew Cellar or Nix store path) is a much stronger signal than a
// bare "this manager owns that bin directory" prefix.
const (
	SpecificityExact  = 100
	SpecificityStrong = 75
	SpecificityPrefix = 50
	SpecificitySystem = 10
)

// Context carries the invocation details a matcher may consult beyond the
// path under test.
type Context struct {
	// Command is the name the user asked about, without any suffix.
	Command string

	// Platform scopes signatures; non-matching signatures are skipped.
	Platform platform.Platform
}

// Candidate is a successful match of one signature against one path.
type Candidate struct {
	ManagerID   string
	ManagerName string
	Package     string
	Version     string
	Path        string
	Specificity int
}

// Signature recognises one package manager's characteristic install layout.
type Signature interface {
	// ID is the stable lowercase manager identifier (e.g. "homebrew").
	ID() string

	// Name is the human-readable manager name.
	Name() string

	// Supports reports whether this signature applies on the platform.
	Supports(p platform.Platform) bool

	// Match tests a single path. It returns nil when the path does not
	// belong to this manager. Match must not touch the network or spawn
	// processes; expensive confirmation belongs in Verifier.
	Match(path string, ctx Context) *Candidate
}

// Verification is the authoritative metadata returned by a manager query.
type Verification struct {
	Package string
	Version string
}

// Verifier is the optional capability of confirming a candidate by asking
// the manager's own tooling. Implementations issue exactly one query
// command and must honour ctx cancellation.
type Verifier interface {
	Verify(ctx context.Context, cand Candidate) (Verification, error)
}
