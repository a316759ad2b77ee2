package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/five82/pokedex/internal/app"
)

// Version information (set via ldflags during build)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	prefsPath  string
}

// isTerminal reports whether the TUI can own the terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// NewRootCmd builds the pokedex command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "pokedex",
		Short: "Browse the PokéAPI catalog from the terminal",
		Long: `pokedex - a terminal catalog browser for the PokéAPI
  - paginated card grid with live name search
  - detail view with types, abilities and base stats

Run without arguments for the interactive browser. When stdout is not a
terminal the first page is printed instead.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal() {
				return runList(cmd, opts, listFlags{page: 1})
			}
			return app.Run(cmd.Context(), opts.appOptions(cmd))
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/pokedex/config.toml)")
	flags.StringVar(&opts.prefsPath, "prefs", "", "preferences file (default ~/.config/pokedex/prefs.toml)")
	flags.String("policy", "", "paging policy: server or client")
	flags.Int("limit", 0, "entries per page")
	flags.Int("workers", 0, "concurrent detail fetches (1 = one at a time)")

	root.AddCommand(newListCmd(opts))
	root.AddCommand(newSearchCmd(opts))
	root.AddCommand(newShowCmd(opts))
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func (o *rootOptions) appOptions(cmd *cobra.Command) app.Options {
	return app.Options{
		ConfigPath: o.configPath,
		PrefsPath:  o.prefsPath,
		Flags:      cmd.Flags(),
		Version:    Version,
	}
}

// buildRuntime wires the application for a one-shot subcommand.
func (o *rootOptions) buildRuntime(cmd *cobra.Command) (*app.Runtime, error) {
	return app.Build(o.appOptions(cmd))
}
