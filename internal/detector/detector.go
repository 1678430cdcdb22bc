// Package detector runs the detection pipeline: resolve a command on the
// search path, follow its symlink chain, match every hop against the
// signature database and optionally confirm the winner with the package
// manager's own tooling.
package detector

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/z0mbix/whence/internal/platform"
	"github.com/z0mbix/whence/internal/signature"
)

// Status labels how much confidence backs a result.
type Status string

const (
	// StatusVerified means the manager's own query confirmed the match.
	StatusVerified Status = "verified"

	// StatusPattern means the match rests on the path pattern alone.
	StatusPattern Status = "pattern-matched"

	// StatusUnknown means no signature recognised the command.
	StatusUnknown Status = "unknown"
)

// Result is the outcome of one detection run. It is built once, handed to
// a renderer and discarded.
type Result struct {
	Command      string              `json:"command" yaml:"command"`
	ManagerID    string              `json:"manager_id" yaml:"manager_id"`
	ManagerName  string              `json:"manager_name" yaml:"manager_name"`
	Package      string              `json:"package,omitempty" yaml:"package,omitempty"`
	Version      string              `json:"version,omitempty" yaml:"version,omitempty"`
	CommandPath  string              `json:"command_path" yaml:"command_path"`
	Location     string              `json:"location" yaml:"location"`
	Status       Status              `json:"status" yaml:"status"`
	SymlinkChain []string            `json:"symlink_chain,omitempty" yaml:"symlink_chain,omitempty"`
	Attempts     []signature.Attempt `json:"attempts,omitempty" yaml:"attempts,omitempty"`
	VerifyError  string              `json:"verify_error,omitempty" yaml:"verify_error,omitempty"`
}

// DefaultVerifyTimeout bounds a single package-manager query.
const DefaultVerifyTimeout = 5 * time.Second

// Options configure a Detector.
type Options struct {
	// Verify runs the winning manager's query command to confirm the match.
	Verify bool

	// VerifyTimeout bounds the query subprocess. Zero means
	// DefaultVerifyTimeout.
	VerifyTimeout time.Duration

	// Verbose records the full diagnostic trail on the result.
	Verbose bool

	// Extra signatures are registered ahead of the built-ins.
	Extra []signature.Signature

	// Logger receives step-by-step progress. Nil means silent.
	Logger *log.Logger
}

// Detector is the detection orchestrator. It is safe for concurrent use;
// the registry is read-only once built.
type Detector struct {
	registry *signature.Registry
	resolver *Resolver
	platform platform.Platform
	opts     Options
	logger   *log.Logger
}

// New builds a Detector for the current platform and environment.
func New(opts Options) *Detector {
	p := platform.Current()
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Detector{
		registry: signature.NewRegistry(opts.Extra...),
		resolver: NewResolver(p),
		platform: p,
		opts:     opts,
		logger:   logger,
	}
}

// WithResolver swaps the PATH resolver, primarily for tests.
func (d *Detector) WithResolver(r *Resolver) *Detector {
	d.resolver = r
	d.platform = r.Platform
	return d
}

// Detect runs the full pipeline for one command. Only a failed PATH lookup
// returns an error; every later stage degrades to a lower-confidence
// result instead of failing.
func (d *Detector) Detect(ctx context.Context, command string) (*Result, error) {
	path, err := d.resolver.Resolve(command)
	if err != nil {
		return nil, err
	}
	d.logger.Debug("resolved command", "command", command, "path", path)

	chain, chainErr := FollowSymlinks(path)
	if chainErr != nil {
		// Degraded chain: keep matching with what was collected.
		d.logger.Warn("symlink walk stopped early", "command", command, "err", chainErr)
	}
	if len(chain.Hops) > 1 {
		d.logger.Debug("followed symlinks", "hops", len(chain.Hops), "terminal", chain.Terminal())
	}

	result := &Result{
		Command:     command,
		CommandPath: path,
		Location:    chain.Terminal(),
	}
	if d.opts.Verbose {
		result.SymlinkChain = chain.Hops
	}

	sctx := signature.Context{Command: command, Platform: d.platform}
	var trail *[]signature.Attempt
	if d.opts.Verbose {
		trail = &result.Attempts
	}

	var winner *signature.Candidate
	for _, hop := range chain.MatchOrder() {
		if winner = d.registry.Best(hop, sctx, trail); winner != nil {
			d.logger.Debug("matched", "signature", winner.ManagerID, "path", hop)
			break
		}
	}

	switch {
	case winner != nil:
		result.ManagerID = winner.ManagerID
		result.ManagerName = winner.ManagerName
		result.Package = winner.Package
		result.Version = winner.Version
		result.Status = StatusPattern
	default:
		if sys := d.registry.System(chain.Terminal(), sctx); sys != nil {
			result.ManagerID = sys.ManagerID
			result.ManagerName = sys.ManagerName
			result.Status = StatusPattern
		} else {
			result.ManagerID = "unknown"
			result.ManagerName = "Unknown"
			result.Status = StatusUnknown
			return result, nil
		}
	}

	if d.opts.Verify && winner != nil {
		d.verify(ctx, winner, result)
	}
	return result, nil
}

// verify confirms the winning candidate with the manager's own query. A
// failed or timed-out query never reverts the pattern match; it only keeps
// the confidence label at pattern-matched.
func (d *Detector) verify(ctx context.Context, winner *signature.Candidate, result *Result) {
	v, ok := d.registry.Verifier(winner.ManagerID)
	if !ok {
		d.logger.Debug("no verifier", "manager", winner.ManagerID)
		return
	}

	timeout := d.opts.VerifyTimeout
	if timeout <= 0 {
		timeout = DefaultVerifyTimeout
	}
	vctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	verified, err := v.Verify(vctx, *winner)
	if err != nil {
		d.logger.Warn("verification failed", "manager", winner.ManagerID, "err", err)
		result.VerifyError = err.Error()
		return
	}
	result.Status = StatusVerified
	if verified.Package != "" {
		result.Package = verified.Package
	}
	if verified.Version != "" {
		result.Version = verified.Version
	}
	d.logger.Debug("verified", "manager", winner.ManagerID,
		"package", result.Package, "version", result.Version)
}
