package audit

import (
	"context"
	"fmt"
	"os"

	"github.com/nxadm/tail"
)

// Watch follows the export file and pushes every line through the same
// parse/evaluate/report path as Run, until ctx is cancelled. Appends and log
// rotation of the source file are handled by the tail reopen logic.
func (a *Auditor) Watch(ctx context.Context, path string) error {
	a.summary = Summary{}
	a.skippedHeader = false

	t, err := tail.TailFile(path, tail.Config{
		Follow:    true,
		ReOpen:    true, // survive rotation of the export
		MustExist: true,
		Poll:      true, // fallback if inotify fails
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("failed to tail %s: %w", path, err)
	}
	defer t.Cleanup()

	a.reporter.Log.Infof("watching %s (threshold %d days)", path, a.cfg.MaxAgeDays)

	no := 0
	for {
		select {
		case <-ctx.Done():
			t.Stop()
			a.reporter.Summary(a.summary)
			return nil
		case line, ok := <-t.Lines:
			if !ok {
				a.reporter.Summary(a.summary)
				return nil
			}
			if line.Err != nil {
				a.reporter.Log.Warnf("error reading %s: %v", path, line.Err)
				continue
			}
			no++
			if err := a.process(Line{No: no, Text: line.Text}); err != nil {
				return err
			}
		}
	}
}
