package audit

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func testReporter(level zapcore.Level) (*Reporter, *bytes.Buffer, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	out := &bytes.Buffer{}
	return NewReporter(out, zap.New(core).Sugar()), out, logs
}

// TestReporter_Violation tests the violation report line
func TestReporter_Violation(t *testing.T) {
	r, out, _ := testReporter(zapcore.InfoLevel)

	r.Violation(&Evaluation{Identifier: "alice", AgeDays: 120, Threshold: 90, Exceeds: true})
	assert.Contains(t, out.String(), "VIOLATION alice")
	assert.Contains(t, out.String(), "120 days")
	assert.Contains(t, out.String(), "90 days")
}

// TestReporter_RuleViolation tests that rule-matched violations name the rule
func TestReporter_RuleViolation(t *testing.T) {
	r, out, _ := testReporter(zapcore.InfoLevel)

	r.Violation(&Evaluation{Identifier: "admin-db", AgeDays: 10, Threshold: 90, Exceeds: true, RuleID: "stale-admin"})
	assert.Contains(t, out.String(), "rule stale-admin")
}

// TestReporter_ParseFailure tests that malformed lines are logged at warning
// with their line number
func TestReporter_ParseFailure(t *testing.T) {
	r, out, logs := testReporter(zapcore.WarnLevel)

	r.ParseFailure(&ParseFailure{LineNo: 3, Raw: "only,two", Reason: "expected 3 fields"})
	assert.Empty(t, out.String(), "failures must not appear on stdout")

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Contains(t, entries[0].Message, "line 3")
}

// TestReporter_EvalFailure tests that the secret never reaches the log
func TestReporter_EvalFailure(t *testing.T) {
	r, _, logs := testReporter(zapcore.WarnLevel)

	r.EvalFailure(&EvalFailure{Identifier: "bob", LineNo: 2, RawDate: "not-a-date", Reason: "cannot parse date"})

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Contains(t, entries[0].Message, "bob")
	assert.Contains(t, entries[0].Message, "cannot parse date")
}

// TestReporter_Anomalous tests the future-date warning
func TestReporter_Anomalous(t *testing.T) {
	r, out, logs := testReporter(zapcore.WarnLevel)

	when := time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)
	r.Anomalous(&Evaluation{Identifier: "carol", When: when})

	assert.Empty(t, out.String())
	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Contains(t, entries[0].Message, "2099-01-01")
}

// TestTruncate tests the raw-content cap for failure logs
func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}
	got := truncate(string(long), 256)
	assert.Len(t, got, 259)
	assert.Contains(t, got, "...")
}

// TestTruncate_RuneBoundary tests that the cap never splits a multi-byte rune
func TestTruncate_RuneBoundary(t *testing.T) {
	// 3-byte runes: 256 is not a multiple of 3, so a byte cut would land
	// mid-rune
	long := strings.Repeat("日", 100)
	got := truncate(long, 256)
	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, 255+3, len(got))
}
