// Package export renders a ticket's validation job history as CSV or XLSX.
package export

import (
	"encoding/csv"
	"io"
	"strings"
	"time"

	"fieldcheck/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the header row shared by every format.
var columns = []string{
	"Job ID",
	"Ticket ID",
	"Field ID",
	"Validator",
	"Level",
	"Status",
	"Summary",
	"Links",
	"Warnings",
	"Errors",
	"Ran By",
	"Started At",
	"Finished At",
}

// CSVWriter wraps csv.Writer for exporting validation jobs.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteJobs converts jobs to rows and writes them.
func (w *CSVWriter) WriteJobs(jobs []domain.ValidationJob) error {
	for i := range jobs {
		if err := w.csv.Write(jobToRow(&jobs[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

// WriteCSV writes a BOM, the header and every job.
func WriteCSV(out io.Writer, jobs []domain.ValidationJob) error {
	if _, err := out.Write(BOM); err != nil {
		return err
	}
	w := NewCSVWriter(out)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteJobs(jobs); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func jobToRow(job *domain.ValidationJob) []string {
	row := make([]string, len(columns))
	row[0] = job.ID.String()
	row[1] = job.TicketID
	row[2] = job.FieldID
	row[3] = string(job.ValidatorID)
	row[4] = string(job.Level)
	row[5] = string(job.Status)
	row[6] = job.Summary
	row[7] = strings.Join(job.Links, "\n")
	row[8] = strings.Join(job.Warnings, "\n")
	row[9] = strings.Join(job.Errors, "\n")
	if job.RanBy != nil {
		row[10] = *job.RanBy
	}
	row[11] = formatTime(job.StartedAt)
	row[12] = formatTime(job.FinishedAt)
	return row
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
