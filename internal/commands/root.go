package commands

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Bluebull7/pulsevector-sim/internal/buildinfo"
	"github.com/Bluebull7/pulsevector-sim/internal/config"
)

// ErrUsage marks command-line misuse, bad arguments rather than a
// failing operation. main maps it to exit status 2.
var ErrUsage = errors.New("usage error")

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var verbose bool
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "pulsevector",
		Short:   "GnuCash hierarchy converter and PulseVector profile wizard",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			})))
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultFile, "config file path")

	rootCmd.AddCommand(newConvertCommand(&configPath))
	rootCmd.AddCommand(newCreateCommand(&configPath))

	return rootCmd
}
