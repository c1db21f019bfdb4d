package commands

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/Bluebull7/pulsevector-sim/internal/config"
	"github.com/Bluebull7/pulsevector-sim/internal/profile"
	"github.com/Bluebull7/pulsevector-sim/internal/wizard"
	"github.com/Bluebull7/pulsevector-sim/internal/wizard/gui"
)

func newCreateCommand(configPath *string) *cobra.Command {
	var useGUI bool
	var outPath string
	var seed int64
	var noBrowser bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a PulseVector player profile",
		Long: `Create walks the profile wizard: pick an operator name, archetype,
scenario, and difficulty, allocate bonus stat points, and save the
result as a JSON profile. With --gui the wizard runs as a local
browser form instead of terminal prompts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadOrDefault(*configPath)
			if err != nil {
				return err
			}
			out := outPath
			if out == "" {
				out = cfg.Wizard.Output
			}
			rng := profile.NewRand()
			if cmd.Flags().Changed("seed") {
				rng = rand.New(rand.NewSource(seed))
			}

			if useGUI {
				return runCreateGUI(cmd, cfg, out, rng, noBrowser)
			}
			return runCreateCLI(cmd, cfg, out, rng)
		},
	}

	cmd.Flags().BoolVar(&useGUI, "gui", false, "run the wizard as a local browser form")
	cmd.Flags().StringVar(&outPath, "out", "", "profile output path (default from config)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "fix the random seed for derived values")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "with --gui, print the URL without launching a browser")

	return cmd
}

func runCreateCLI(cmd *cobra.Command, cfg *config.Config, out string, rng *rand.Rand) error {
	theme := wizard.NewTheme(cfg.Wizard.Color, cmd.OutOrStdout())
	cli := wizard.CLI{
		In:          cmd.InOrStdin(),
		Out:         cmd.OutOrStdout(),
		Theme:       theme,
		DefaultName: cfg.Wizard.DefaultName,
		Rand:        rng,
	}

	prof, err := cli.Run()
	if err != nil {
		return err
	}
	if err := profile.Write(out, prof); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), theme.Green("Saved → "+out))
	return nil
}

func runCreateGUI(cmd *cobra.Command, cfg *config.Config, out string, rng *rand.Rand, noBrowser bool) error {
	theme := wizard.NewTheme(cfg.Wizard.Color, cmd.OutOrStdout())

	// Ctrl+C closes the form session without saving.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	_, ok, err := gui.Run(ctx, gui.Options{
		OutPath:     out,
		DefaultName: cfg.Wizard.DefaultName,
		Rand:        rng,
		Stdout:      cmd.OutOrStdout(),
		NoBrowser:   noBrowser,
	})
	if err != nil {
		if errors.Is(err, gui.ErrUnavailable) {
			fmt.Fprintln(cmd.OutOrStdout(), theme.Yellow("GUI not available in this environment."))
			fmt.Fprintln(cmd.OutOrStdout(), theme.Dim(err.Error()))
			return nil
		}
		return err
	}
	if !ok {
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), theme.Green("Saved → "+out))
	return nil
}
