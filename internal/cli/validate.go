package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/lockstep/internal/harness"
)

// NewValidateCommand creates the "validate" command: check scenario files
// against the schema without running anything.
func NewValidateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scenario.yaml>...",
		Short: "Validate scenario files without running them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:  opts.Format,
				Writer:  cmd.OutOrStdout(),
				Verbose: opts.Verbose,
			}

			invalid := 0
			for _, path := range args {
				if _, err := os.Stat(path); err != nil {
					return WrapExitError(ExitCommandError, fmt.Sprintf("cannot read %s", path), err)
				}

				if _, err := harness.LoadScenario(path); err != nil {
					invalid++
					if err := formatter.Error(fmt.Sprintf("%s: %v", path, err)); err != nil {
						return err
					}
					continue
				}
				if err := formatter.Success(fmt.Sprintf("%s: ok", path)); err != nil {
					return err
				}
			}

			if invalid > 0 {
				return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scenarios invalid", invalid, len(args)))
			}
			return nil
		},
	}
}
