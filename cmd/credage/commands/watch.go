package commands

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/credage/credage/internal/audit"
	"github.com/credage/credage/internal/utils/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] <file>",
	Short: "Follow a credential export and audit records as they are appended",
	Long: `Follow the export file like 'tail -f', pushing every appended record
through the same parse and age checks as a one-shot audit. Survives rotation
of the source file. Stop with Ctrl+C.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(cmd)
		if err != nil {
			return &exitError{code: ExitUsage, err: err}
		}

		auditor, err := audit.NewAuditor(cfg, os.Stdout, logger.Get(cmd.Context()))
		if err != nil {
			return &exitError{code: ExitUsage, err: err}
		}

		if err := auditor.Watch(cmd.Context(), args[0]); err != nil {
			if errors.Is(err, audit.ErrNotFound) {
				return &exitError{code: ExitUsage, err: err}
			}
			return &exitError{code: ExitRuntime, err: err}
		}
		return nil
	},
}
