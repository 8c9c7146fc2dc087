package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/credage/credage/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the credage configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a configuration file with the default settings",
	Long: `Write a configuration file populated with the default settings.
Without a path the standard location is used.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultConfigPath
		if len(args) == 1 {
			path = args[0]
		} else if cfgPath != "" {
			path = cfgPath
		}

		if err := config.Save(path, config.Default()); err != nil {
			return &exitError{code: ExitRuntime, err: err}
		}
		fmt.Printf("Wrote default configuration to %s\n", path)
		return nil
	},
}

var configTestCmd = &cobra.Command{
	Use:           "test [path]",
	Short:         "Validate a configuration file",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultConfigPath
		if len(args) == 1 {
			path = args[0]
		} else if cfgPath != "" {
			path = cfgPath
		}

		cfg, err := config.Load(path)
		if err != nil {
			return &exitError{code: ExitUsage, err: err}
		}
		if err := cfg.Validate(); err != nil {
			return &exitError{code: ExitUsage, err: err}
		}

		fmt.Printf("Configuration %s is valid (max_age_days=%d, date_format=%s)\n",
			path, cfg.MaxAgeDays, cfg.DateFormat)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configTestCmd)
}
