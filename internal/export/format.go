package export

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"fieldcheck/internal/domain"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat maps a query value to a Format. Empty means CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", domain.NewInputError("format", "must be one of csv, xlsx")
	}
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Write renders jobs in format f.
func Write(out io.Writer, f Format, jobs []domain.ValidationJob) error {
	if f == FormatXLSX {
		return WriteXLSX(out, jobs)
	}
	return WriteCSV(out, jobs)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a ticket id for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "ticket"
	}
	return s
}

// BuildFilename returns the download name.
// Format: {sanitized_ticket_id}_validation_jobs_{YYYY-MM-DD}.{ext}
func BuildFilename(ticketID string, f Format, now time.Time) string {
	return fmt.Sprintf("%s_validation_jobs_%s.%s", SanitizeFilename(ticketID), now.Format("2006-01-02"), f)
}
