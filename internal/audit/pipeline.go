package audit

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/credage/credage/internal/config"
)

// Auditor wires the pipeline: reader -> parser -> evaluator -> reporter.
// One instance performs one pass; records are processed strictly in file
// order and a per-record failure never aborts the remaining stream.
type Auditor struct {
	cfg       *config.Config
	parser    *Parser
	evaluator *Evaluator
	rules     *RuleSet
	reporter  *Reporter

	skippedHeader bool
	summary       Summary
}

// NewAuditor builds an Auditor from a validated configuration. Rule
// compilation errors surface here, before any input is read.
func NewAuditor(cfg *config.Config, out io.Writer, log *zap.SugaredLogger) (*Auditor, error) {
	rules, err := CompileRules(cfg.Rules)
	if err != nil {
		return nil, err
	}

	return &Auditor{
		cfg:       cfg,
		parser:    NewParser(cfg.Delimiter),
		evaluator: NewEvaluator(cfg.DateFormat, cfg.MaxAgeDays),
		rules:     rules,
		reporter:  NewReporter(out, log),
	}, nil
}

// SetClock overrides the evaluator's clock. Tests use this to pin "today".
func (a *Auditor) SetClock(now func() time.Time) {
	a.evaluator.Now = now
}

// Run audits the file at path and returns the pass summary. Violations and
// failures already reported stay flushed even when the read aborts mid-file.
// A missing input file produces no summary: nothing was processed.
func (a *Auditor) Run(ctx context.Context, path string) (Summary, error) {
	a.summary = Summary{}
	a.skippedHeader = false

	err := ReadLines(ctx, path, a.process)
	if !errors.Is(err, ErrNotFound) {
		a.reporter.Summary(a.summary)
	}
	return a.summary, err
}

// process handles a single raw line. Every non-blank line yields exactly one
// evaluation or one logged failure.
func (a *Auditor) process(line Line) error {
	// The header row is dropped before parsing so an unparseable header does
	// not count as a failure.
	if a.cfg.SkipHeader && !a.skippedHeader && strings.TrimSpace(line.Text) != "" {
		a.skippedHeader = true
		return nil
	}

	rec, pf := a.parser.Parse(line)
	if pf != nil {
		a.summary.ParseFailures++
		a.reporter.ParseFailure(pf)
		return nil
	}
	if rec == nil {
		// blank line, skipped silently
		return nil
	}

	ev, ef := a.evaluator.Evaluate(rec)
	if ef != nil {
		a.summary.EvalFailures++
		a.reporter.EvalFailure(ef)
		return nil
	}

	a.summary.Checked++

	if ev.Anomalous {
		a.summary.Anomalous++
		a.reporter.Anomalous(ev)
		return nil
	}

	if !ev.Exceeds && a.rules.Len() > 0 {
		ruleID, err := a.rules.Match(ev)
		if err != nil {
			a.reporter.Log.Warnf("%v", err)
		} else if ruleID != "" {
			ev.Exceeds = true
			ev.RuleID = ruleID
		}
	}

	if ev.Exceeds {
		a.summary.Violations++
		a.reporter.Violation(ev)
	} else {
		a.reporter.Ok(ev)
	}
	return nil
}
