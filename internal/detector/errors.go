package detector

import "fmt"

// NotFoundError reports a command that is absent from the search path. It
// is the only detection error that aborts a run.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("command %q not found in PATH", e.Name)
}

// CycleError reports a symlink chain that loops back on itself. The chain
// collected before the repeat is still usable for matching.
type CycleError struct {
	Path  string
	Chain []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("symlink cycle at %s after %d hops", e.Path, len(e.Chain))
}

// ChainTooLongError reports a symlink chain that exceeded the hop cap.
type ChainTooLongError struct {
	Chain []string
}

func (e *ChainTooLongError) Error() string {
	return fmt.Sprintf("symlink chain exceeds %d hops", maxHops)
}

// ResolutionError reports a filesystem failure partway through a symlink
// walk. Path is the hop that could not be read; Chain holds everything
// collected up to it.
type ResolutionError struct {
	Path  string
	Chain []string
	Err   error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolving %s: %v", e.Path, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}
