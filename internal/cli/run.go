package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/lockstep/internal/harness"
)

// NewRunCommand creates the "run" command: load scenario files, execute them
// and report the traces.
func NewRunCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run <scenario.yaml>...",
		Short: "Run step scenarios and report their traces",
		Long: `Run loads each scenario file, builds its declared step chain and executes
it. The report contains one line per declared step: once a step fails, the
remaining steps show up as skipped rather than executed.

Exit codes: 0 all scenarios passed, 1 at least one scenario failed,
2 a scenario could not be loaded or run.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:  opts.Format,
				Writer:  cmd.OutOrStdout(),
				Verbose: opts.Verbose,
			}
			h := harness.New(harness.WithLogger(opts.Logger))

			failed := 0
			for _, path := range args {
				scenario, err := harness.LoadScenario(path)
				if err != nil {
					return WrapExitError(ExitCommandError, fmt.Sprintf("failed to load %s", path), err)
				}

				result, err := h.Run(scenario)
				if err != nil {
					return WrapExitError(ExitCommandError, fmt.Sprintf("failed to run %s", path), err)
				}
				if err := formatter.Result(result); err != nil {
					return err
				}
				if !result.Pass {
					failed++
				}
			}

			if failed > 0 {
				return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scenarios failed", failed, len(args)))
			}
			return nil
		},
	}
}
