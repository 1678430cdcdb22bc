package signature

// Registry is the ordered, read-only set of signatures consulted during a
// detection run. It is built once at startup and never mutated; adding a
// package manager means adding an entry to builtins.
type Registry struct {
	managers []Signature
	system   Signature
}

// NewRegistry builds the signature database. Extra signatures (typically a
// user-supplied database file) are registered ahead of the built-ins so
// that they win specificity ties against them.
func NewRegistry(extra ...Signature) *Registry {
	r := &Registry{system: systemSignature{}}
	r.managers = append(r.managers, extra...)
	r.managers = append(r.managers, builtins()...)
	return r
}

// builtins returns the built-in signatures in registration order. Shim-heavy
// managers come first so that their wrapper paths are claimed before the
// more generic bin-directory rules get a look in.
func builtins() []Signature {
	return []Signature{
		homebrewSignature{},
		miseSignature{},
		nSignature{},
		pnpmSignature{},
		yarnSignature{},
		bunSignature{},
		npmSignature{},
		nixSignature{},
		cargoSignature{},
		gobinSignature{},
		pipxSignature{},
		gemSignature{},
		snapSignature{},
		newAptSignature(),
		scoopSignature{},
		chocolateySignature{},
		wingetSignature{},
	}
}

// Signatures returns the manager signatures in registration order.
func (r *Registry) Signatures() []Signature {
	return r.managers
}

// Attempt records one signature tried against one path, kept for the
// verbose diagnostic trail.
type Attempt struct {
	Path      string `json:"path" yaml:"path"`
	Signature string `json:"signature" yaml:"signature"`
	Matched   bool   `json:"matched" yaml:"matched"`
}

// Best runs every applicable manager signature against path and returns the
// winning candidate, or nil when nothing matches. Higher specificity wins;
// ties go to the earlier-registered signature. When trail is non-nil every
// attempt is appended to it.
func (r *Registry) Best(path string, ctx Context, trail *[]Attempt) *Candidate {
	var best *Candidate
	for _, s := range r.managers {
		if !s.Supports(ctx.Platform) {
			continue
		}
		cand := s.Match(path, ctx)
		if trail != nil {
			*trail = append(*trail, Attempt{
				Path:      path,
				Signature: s.ID(),
				Matched:   cand != nil,
			})
		}
		if cand == nil {
			continue
		}
		if best == nil || cand.Specificity > best.Specificity {
			best = cand
		}
	}
	return best
}

// System tests the OS-standard-directory fallback against path. It is kept
// out of Best so that a system-directory hit never outranks a manager match
// elsewhere in the symlink chain.
func (r *Registry) System(path string, ctx Context) *Candidate {
	if !r.system.Supports(ctx.Platform) {
		return nil
	}
	return r.system.Match(path, ctx)
}

// Find returns the signature registered under id, or nil.
func (r *Registry) Find(id string) Signature {
	for _, s := range r.managers {
		if s.ID() == id {
			return s
		}
	}
	if r.system.ID() == id {
		return r.system
	}
	return nil
}

// Verifier returns the verification capability of the manager registered
// under id, when it has one.
func (r *Registry) Verifier(id string) (Verifier, bool) {
	s := r.Find(id)
	if s == nil {
		return nil, false
	}
	v, ok := s.(Verifier)
	return v, ok
}
