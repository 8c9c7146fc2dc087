package audit

import "time"

// Record is one parsed credential line. Secret is opaque credential material
// and must never be echoed in logs or reports.
type Record struct {
	LineNo      int
	Identifier  string
	Secret      string
	LastChanged string // raw date text, parsed by the Evaluator
}

// Evaluation is the outcome of checking one Record against the threshold.
type Evaluation struct {
	Identifier string
	AgeDays    int
	Threshold  int
	Exceeds    bool
	// RuleID is set when an audit rule (rather than the age threshold)
	// marked the record as a violation.
	RuleID string
	// Anomalous marks a last-changed date in the future.
	Anomalous bool
	When      time.Time // the parsed last-changed date
}

// ParseFailure describes a line that could not be split into a record.
type ParseFailure struct {
	LineNo int
	Raw    string
	Reason string
}

// EvalFailure describes a record whose last-changed date could not be parsed.
// It carries the raw date text only, never the secret.
type EvalFailure struct {
	Identifier string
	LineNo     int
	RawDate    string
	Reason     string
}

// Summary aggregates one audit pass. Exit codes are derived from it.
type Summary struct {
	Checked       int
	Violations    int
	ParseFailures int
	EvalFailures  int
	Anomalous     int
}
