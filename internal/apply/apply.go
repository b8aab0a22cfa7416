// BYZRA ⸻ internal/apply/apply.go
// sequential batch application through one writer process

package apply

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"mirage/internal/metadata"
	"mirage/internal/util"
)

type Status int

const (
	Applied Status = iota
	Failed
)

func (s Status) String() string {
	if s == Applied {
		return "applied"
	}
	return "failed"
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// one file and the record planned for it
type Item struct {
	File   string
	Record metadata.Record
}

// result for one attempted file
type Outcome struct {
	File   string
	Status Status
	Reason string
	Err    error

	// exactly what was handed to the writer
	Record metadata.Record

	// written fields that did not read back, only with Options.Verify
	Unverified []metadata.Field

	BackupPath string
}

type Report struct {
	RunID    string
	Started  time.Time
	Finished time.Time

	// one per attempted file, in input order
	Outcomes []Outcome

	// files never reached because the batch was cancelled
	NotAttempted []string
	Cancelled    bool
}

func (r *Report) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == Applied {
			n++
		}
	}
	return n
}

func (r *Report) FailedCount() int {
	return len(r.Outcomes) - r.Succeeded()
}

// writes one record into one file
type Writer interface {
	Write(file string, rec metadata.Record) error
	Close() error
}

// optional read-back used for verification
type Reader interface {
	Read(file string) (map[string]any, error)
}

// acquires the writer for one batch
type Opener func() (Writer, error)

// called before each file with a zero-based index, and once with
// idx == total when the batch ends
type Progress func(idx, total int, file string)

type Options struct {
	// read every written file back and list fields that did not stick
	Verify bool

	// copy each file to <file>.bak before writing
	Backup bool

	Logger *util.Logger
}

type Coordinator struct {
	open Opener
	opts Options
}

func NewCoordinator(open Opener, opts Options) *Coordinator {
	return &Coordinator{open: open, opts: opts}
}

// ApplyBatch writes every item in order.
//
// A failing file is recorded and the batch moves on. Cancellation is checked
// before each file; files not reached are listed in NotAttempted. When the
// writer cannot be opened every item is reported Failed and the returned
// error wraps metadata.ErrResourceUnavailable. The writer is closed and
// completion is reported on every path.
func (c *Coordinator) ApplyBatch(ctx context.Context, items []Item, progress Progress) (report *Report, err error) {
	total := len(items)
	report = &Report{
		RunID:    uuid.NewString(),
		Started:  time.Now(),
		Outcomes: make([]Outcome, 0, total),
	}
	log := c.opts.Logger

	if progress == nil {
		progress = func(int, int, string) {}
	}
	defer func() {
		report.Finished = time.Now()
		progress(total, total, "")
	}()

	log.Info(fmt.Sprintf("Batch %s started with %d files", report.RunID, total))

	w, err := c.open()
	if err != nil {
		if !errors.Is(err, metadata.ErrResourceUnavailable) {
			err = fmt.Errorf("%w: %v", metadata.ErrResourceUnavailable, err)
		}
		log.Error(fmt.Sprintf("Batch %s: %v", report.RunID, err))
		for _, it := range items {
			report.Outcomes = append(report.Outcomes, failed(it, err))
		}
		return report, err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil {
			log.Warning(fmt.Sprintf("Batch %s: closing writer: %v", report.RunID, cerr))
		}
	}()

	for i, it := range items {
		progress(i, total, it.File)

		if ctx.Err() != nil {
			report.Cancelled = true
			for _, rest := range items[i:] {
				report.NotAttempted = append(report.NotAttempted, rest.File)
			}
			log.Warning(fmt.Sprintf("Batch %s cancelled, %d files not attempted", report.RunID, total-i))
			break
		}

		out := c.applyOne(w, it)
		if out.Status == Failed {
			log.Error(fmt.Sprintf("Failed %s: %s", filepath.Base(it.File), out.Reason))
		} else {
			log.Info(fmt.Sprintf("Applied %d fields to %s", it.Record.Len(), filepath.Base(it.File)))
		}
		report.Outcomes = append(report.Outcomes, out)
	}

	log.Info(fmt.Sprintf("Batch %s done: %d applied, %d failed", report.RunID, report.Succeeded(), report.FailedCount()))
	return report, nil
}

func (c *Coordinator) applyOne(w Writer, it Item) Outcome {
	out := Outcome{File: it.File, Status: Applied, Record: it.Record}

	if it.Record.Len() == 0 {
		return out
	}

	if c.opts.Backup {
		backup, err := util.CreateBackup(it.File)
		if err != nil {
			return failed(it, err)
		}
		out.BackupPath = backup
	}

	if err := safeWrite(w, it); err != nil {
		return failed(it, err)
	}

	if c.opts.Verify {
		if r, ok := w.(Reader); ok {
			missing, err := Verify(r, it.File, it.Record)
			if err != nil {
				c.opts.Logger.Warning(fmt.Sprintf("Verification of %s failed: %v", filepath.Base(it.File), err))
			}
			out.Unverified = missing
		}
	}

	return out
}

// a panicking writer fails its file, not the batch
func safeWrite(w Writer, it Item) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: writer panic: %v", metadata.ErrExternalProcess, r)
		}
	}()
	return w.Write(it.File, it.Record)
}

func failed(it Item, err error) Outcome {
	return Outcome{
		File:   it.File,
		Status: Failed,
		Reason: err.Error(),
		Err:    err,
		Record: it.Record,
	}
}
