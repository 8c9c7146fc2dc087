package audit

import (
	"fmt"
	"time"

	"github.com/ncruces/go-strftime"
)

// Evaluator parses last-changed dates and compares ages to the threshold.
// It is pure given a fixed clock; Now is injectable for tests.
type Evaluator struct {
	DateFormat string // strptime-style layout
	MaxAgeDays int    // inclusive threshold
	Now        func() time.Time
}

// NewEvaluator creates an Evaluator using the wall clock.
func NewEvaluator(dateFormat string, maxAgeDays int) *Evaluator {
	return &Evaluator{
		DateFormat: dateFormat,
		MaxAgeDays: maxAgeDays,
		Now:        time.Now,
	}
}

// Evaluate computes the age of rec and checks it against the threshold.
// A date parse failure is returned as an EvalFailure, never as a crash.
// Dates in the future yield age 0 and are marked Anomalous, not violations.
func (e *Evaluator) Evaluate(rec *Record) (*Evaluation, *EvalFailure) {
	when, err := strftime.Parse(e.DateFormat, rec.LastChanged)
	if err != nil {
		return nil, &EvalFailure{
			Identifier: rec.Identifier,
			LineNo:     rec.LineNo,
			RawDate:    rec.LastChanged,
			Reason:     fmt.Sprintf("cannot parse date with format %q: %v", e.DateFormat, err),
		}
	}

	age := daysBetween(when, e.Now())
	ev := &Evaluation{
		Identifier: rec.Identifier,
		Threshold:  e.MaxAgeDays,
		When:       when,
	}
	if age < 0 {
		ev.AgeDays = 0
		ev.Anomalous = true
		return ev, nil
	}

	ev.AgeDays = age
	ev.Exceeds = age >= e.MaxAgeDays
	return ev, nil
}

// daysBetween returns whole calendar days from a to b, negative when a is
// after b. Both are truncated to dates first so the time of day and DST
// offsets cannot skew the count.
func daysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}
