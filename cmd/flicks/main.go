package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/flicks/internal/app"
	"github.com/five82/flicks/internal/omdb"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cmd := newRootCmd(version, app.Run)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "flicks: %v\n", err)
		return 1
	}
	return 0
}

// newRootCmd builds the CLI. runApp is injected so tests can inspect the
// resolved options without starting the TUI.
func newRootCmd(ver string, runApp func(context.Context, app.Options) error) *cobra.Command {
	var opts app.Options
	var year string

	cmd := &cobra.Command{
		Use:     "flicks [term...]",
		Short:   "Search movies from the terminal",
		Long:    "flicks: search OMDb by title, browse the matches and read the full plot.",
		Version: ver,
		Example: rootCmdExample,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.InitialQuery = omdb.Query{
				Term: strings.TrimSpace(strings.Join(args, " ")),
				Year: year,
			}
			opts.Stderr = cmd.ErrOrStderr()
			return runApp(cmd.Context(), opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "config file path (default ~/.config/flicks/config.toml)")
	cmd.Flags().StringVar(&opts.PrefsPath, "prefs", "", "preferences file path (default ~/.config/flicks/prefs.toml)")
	cmd.Flags().BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	cmd.Flags().StringVar(&opts.Theme, "theme", "", "theme for this run (Nightfox, Kanagawa, Slate)")
	cmd.Flags().StringVar(&year, "year", "", "year for the initial search")

	return cmd
}

const rootCmdExample = `  # Open the search screen
  flicks

  # Search right away
  flicks the matrix

  # Narrow the initial search to a year
  flicks --year 1994 shawshank

  # Use a different config file and theme
  flicks --config ./flicks.toml --theme Kanagawa`
