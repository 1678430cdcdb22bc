package cli

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/z0mbix/whence/internal/detector"
	"github.com/z0mbix/whence/internal/render"
	"github.com/z0mbix/whence/internal/sigfile"
)

var (
	formatName   string
	jsonOut      bool
	verbose      bool
	verify       bool
	verifyWait   time.Duration
	databasePath string
	templateSrc  string
	noColor      bool

	// Version information (set by main)
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersionInfo sets the version information from build-time variables
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "whence <command>...",
		Short: "Identify which package manager installed a command",
		Long: `whence resolves a command on your PATH, follows its symlink chain
to the real binary and matches the result against the install layouts of
known package managers (Homebrew, npm, cargo, apt, scoop and friends).

With --verify the matched manager's own tooling is queried for the
authoritative package name and version.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         runDetect,
	}

	rootCmd.Flags().StringVarP(&formatName, "format", "f", "text",
		"Output format: text, json, yaml, short, or template")
	rootCmd.Flags().BoolVar(&jsonOut, "json", false,
		"Output as JSON (shortcut for --format json)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Show detection steps and the diagnostic trail")
	rootCmd.Flags().BoolVar(&verify, "verify", false,
		"Confirm the match by querying the package manager")
	rootCmd.Flags().DurationVar(&verifyWait, "timeout", detector.DefaultVerifyTimeout,
		"Timeout for a package manager verification query")
	rootCmd.Flags().StringVar(&databasePath, "database", "",
		"Path to an HCL file with additional signatures")
	rootCmd.Flags().StringVar(&templateSrc, "template", "",
		"Go template for --format template")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")

	// Add subcommands
	rootCmd.AddCommand(NewVersionCmd())
	rootCmd.AddCommand(NewUpdateCmd())

	return rootCmd
}

func runDetect(cmd *cobra.Command, args []string) error {
	if noColor {
		color.NoColor = true
	}
	if jsonOut {
		formatName = "json"
	}
	format, err := render.ParseFormat(formatName)
	if err != nil {
		return err
	}
	if format == render.FormatTemplate && templateSrc == "" {
		return fmt.Errorf("--format template requires --template")
	}

	opts := detector.Options{
		Verify:        verify,
		VerifyTimeout: verifyWait,
		Verbose:       verbose,
	}
	if verbose {
		logger := log.New(cmd.ErrOrStderr())
		logger.SetLevel(log.DebugLevel)
		opts.Logger = logger
	}
	if databasePath != "" {
		extra, err := sigfile.Load(databasePath)
		if err != nil {
			return err
		}
		opts.Extra = extra
	}
	d := detector.New(opts)

	// Each command's pipeline is independent; run them concurrently and
	// report in argument order.
	results := make([]*detector.Result, len(args))
	errs := make([]error, len(args))
	var wg sync.WaitGroup
	for i, name := range args {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			results[i], errs[i] = d.Detect(cmd.Context(), name)
		}(i, name)
	}
	wg.Wait()

	found := results[:0:0]
	failed := false
	for i, res := range results {
		if errs[i] != nil {
			failed = true
			var notFound *detector.NotFoundError
			if errors.As(errs[i], &notFound) {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", color.RedString("Error"), notFound)
				continue
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s: %v\n", color.RedString("Error"), args[i], errs[i])
			continue
		}
		found = append(found, res)
	}

	if len(found) > 0 {
		if err := render.New(format, templateSrc).Render(cmd.OutOrStdout(), found); err != nil {
			return err
		}
	}
	if failed {
		// Error output was already written per command.
		cmd.SilenceErrors = true
		return fmt.Errorf("detection failed")
	}
	return nil
}

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("whence %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built:  %s\n", date)
		},
	}
}

// Execute runs the CLI
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
