package audit

import (
	"fmt"
	"io"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Reporter emits violation lines to Out (stdout in production) and routes
// failures and anomalies to the logger. Secrets never reach either sink: the
// reporter only ever sees identifiers and derived ages.
type Reporter struct {
	Out io.Writer
	Log *zap.SugaredLogger
}

// NewReporter creates a Reporter writing reports to out.
func NewReporter(out io.Writer, log *zap.SugaredLogger) *Reporter {
	return &Reporter{Out: out, Log: log}
}

// Violation reports one record that met or exceeded the threshold.
func (r *Reporter) Violation(ev *Evaluation) {
	if ev.RuleID != "" {
		fmt.Fprintf(r.Out, "VIOLATION %s: age %d days (rule %s, threshold %d days)\n",
			ev.Identifier, ev.AgeDays, ev.RuleID, ev.Threshold)
	} else {
		fmt.Fprintf(r.Out, "VIOLATION %s: age %d days exceeds maximum of %d days\n",
			ev.Identifier, ev.AgeDays, ev.Threshold)
	}
	r.Log.Debugf("flagged %s (age %d >= %d)", ev.Identifier, ev.AgeDays, ev.Threshold)
}

// Ok records a compliant evaluation at debug level.
func (r *Reporter) Ok(ev *Evaluation) {
	r.Log.Debugf("ok %s (age %d < %d)", ev.Identifier, ev.AgeDays, ev.Threshold)
}

// ParseFailure logs a malformed line with its number and raw content.
func (r *Reporter) ParseFailure(pf *ParseFailure) {
	r.Log.Warnf("skipping line %d: %s (%s)", pf.LineNo, pf.Reason, truncate(pf.Raw, 256))
}

// EvalFailure logs a record whose date could not be parsed. Only the
// identifier and the raw date text appear, never the secret.
func (r *Reporter) EvalFailure(ef *EvalFailure) {
	r.Log.Warnf("cannot evaluate %s (line %d): %s", ef.Identifier, ef.LineNo, ef.Reason)
}

// Anomalous logs a record whose last-changed date lies in the future.
func (r *Reporter) Anomalous(ev *Evaluation) {
	r.Log.Warnf("anomalous record %s: last changed %s is in the future, treating age as 0",
		ev.Identifier, ev.When.Format("2006-01-02"))
}

// Summary reports the final counts of one audit pass.
func (r *Reporter) Summary(s Summary) {
	if s.Violations > 0 {
		r.Log.Infof("checked %d records: %d violations, %d parse failures, %d evaluation failures",
			s.Checked, s.Violations, s.ParseFailures, s.EvalFailures)
	} else {
		r.Log.Infof("checked %d records: no passwords exceed the maximum age (%d parse failures, %d evaluation failures)",
			s.Checked, s.ParseFailures, s.EvalFailures)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	// Back off to a rune boundary so the cap cannot produce invalid UTF-8.
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
