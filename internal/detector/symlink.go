package detector

import (
	"os"
	"path/filepath"
)

// maxHops bounds pathological or hostile symlink structures. Linux gives up
// at 40 nested links; matching that keeps behaviour unsurprising.
const maxHops = 40

// Chain is the ordered list of paths visited while following symlinks. The
// first hop is the path resolved from the search path; the last is the
// terminal path, which is not itself a symlink unless the walk stopped
// early.
type Chain struct {
	Hops []string
}

// Terminal returns the last hop of the chain.
func (c Chain) Terminal() string {
	return c.Hops[len(c.Hops)-1]
}

// MatchOrder returns the hops in the order signatures should test them:
// the terminal path first, then each earlier hop starting from the
// original resolved path. Shim-based managers leave their signal on the
// wrapper rather than the real binary, so the early hops still matter.
func (c Chain) MatchOrder() []string {
	if len(c.Hops) == 1 {
		return c.Hops
	}
	order := make([]string, 0, len(c.Hops))
	order = append(order, c.Terminal())
	order = append(order, c.Hops[:len(c.Hops)-1]...)
	return order
}

// FollowSymlinks walks the symlink chain starting at path. The returned
// chain always holds at least one hop. A non-nil error explains why the
// walk stopped early; the chain collected so far remains valid, so callers
// can degrade to matching a partial chain instead of giving up.
func FollowSymlinks(path string) (Chain, error) {
	chain := Chain{Hops: []string{path}}
	seen := map[string]bool{path: true}
	current := path

	for {
		info, err := os.Lstat(current)
		if err != nil {
			if len(chain.Hops) == 1 {
				// The resolved path itself is unreadable or raced away;
				// there is nothing to follow.
				return chain, nil
			}
			return chain, &ResolutionError{Path: current, Chain: chain.Hops, Err: err}
		}
		if info.Mode()&os.ModeSymlink == 0 {
			return chain, nil
		}

		target, err := os.Readlink(current)
		if err != nil {
			return chain, &ResolutionError{Path: current, Chain: chain.Hops, Err: err}
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(current), target)
		}
		target = filepath.Clean(target)

		if seen[target] {
			return chain, &CycleError{Path: target, Chain: chain.Hops}
		}
		if len(chain.Hops) >= maxHops {
			return chain, &ChainTooLongError{Chain: chain.Hops}
		}
		seen[target] = true
		chain.Hops = append(chain.Hops, target)
		current = target
	}
}
