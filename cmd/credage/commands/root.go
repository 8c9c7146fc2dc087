package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/credage/credage/internal/audit"
	"github.com/credage/credage/internal/config"
	"github.com/credage/credage/internal/utils/logger"
)

// Exit codes of the tool. Scripts rely on these.
const (
	ExitOK        = 0 // no violations, no fatal errors
	ExitViolation = 1 // at least one violation found
	ExitUsage     = 2 // bad flags, bad config, missing input file
	ExitRuntime   = 3 // unrecoverable I/O failure mid-read
)

var (
	cfgPath    string
	maxAge     int
	dateFormat string
	logLevel   string
	delimiter  string
	skipHeader bool
	ruleExprs  []string
)

// exitError carries an exit code through cobra's error return. A nil wrapped
// error means nothing is printed (the report already said everything).
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

var RootCmd = &cobra.Command{
	Use:   "credage [flags] <file>",
	Short: "Audit password ages in a credential export",
	Long: `credage scans a plain-text credential export (one record per line:
identifier, secret, last-changed date) and reports every entry whose
password age meets or exceeds the configured maximum.

Exit codes: 0 no violations, 1 violations found, 2 usage or configuration
error, 3 unrecoverable runtime error.`,
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

		sum, err := auditor.Run(cmd.Context(), args[0])
		if err != nil {
			if errors.Is(err, audit.ErrNotFound) {
				return &exitError{code: ExitUsage, err: err}
			}
			// Results reported before the failure stay flushed.
			return &exitError{code: ExitRuntime, err: err}
		}

		if sum.Violations > 0 {
			return &exitError{code: ExitViolation}
		}
		return nil
	},
}

func init() {
	pf := RootCmd.PersistentFlags()
	pf.StringVarP(&cfgPath, "config", "c", "", fmt.Sprintf("Path to configuration file (default: %s)", config.DefaultConfigPath))
	pf.IntVar(&maxAge, "max_age", config.DefaultMaxAgeDays, "Maximum password age in days before an entry is flagged (inclusive)")
	pf.StringVar(&dateFormat, "date_format", config.DefaultDateFormat, "strptime-style date format of the last-changed field")
	pf.StringVar(&logLevel, "log_level", config.DefaultLogLevel, "Log level: DEBUG, INFO, WARNING, ERROR or CRITICAL")
	pf.StringVar(&delimiter, "delimiter", config.DefaultDelimiter, "Field delimiter of the export file")
	pf.BoolVar(&skipHeader, "skip-header", false, "Skip the first non-blank line of the export")
	pf.StringArrayVar(&ruleExprs, "rule", nil, "Extra audit rule expression over {ID, Age, Threshold}; repeatable")

	RootCmd.AddCommand(watchCmd)
	RootCmd.AddCommand(configCmd)
	RootCmd.AddCommand(versionCmd)
}

// buildConfig merges the config file (explicit path, or the default location
// when present) with flag overrides, validates the result and initializes
// logging. Any error here is a usage error: nothing has been processed yet.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
	} else {
		cfg, err = config.LoadOrDefault(config.DefaultConfigPath)
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("max_age") {
		cfg.MaxAgeDays = maxAge
	}
	if flags.Changed("date_format") {
		cfg.DateFormat = dateFormat
	}
	if flags.Changed("log_level") {
		cfg.Logging.Level = logLevel
	}
	if flags.Changed("delimiter") {
		cfg.Delimiter = delimiter
	}
	if flags.Changed("skip-header") {
		cfg.SkipHeader = skipHeader
	}
	for i, src := range ruleExprs {
		cfg.Rules = append(cfg.Rules, config.Rule{
			ID:         fmt.Sprintf("cli-%d", i+1),
			Expression: src,
		})
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Init(cfg.Logging)
	return cfg, nil
}

// Execute runs the command tree and maps the outcome to a process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := RootCmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", ee.err)
		}
		return ee.code
	}

	// Anything cobra itself rejects (unknown flags, wrong arg count) is a
	// usage error.
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return ExitUsage
}
