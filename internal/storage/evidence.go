// Package storage keeps copies of raw vendor evidence outside the job store.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"fieldcheck/internal/port"
)

const evidenceContentType = "application/json"

// EvidenceArchive writes job evidence to object storage under
// {prefix}/tickets/{ticketId}/validation-jobs/{jobId}/evidence.json.
type EvidenceArchive struct {
	store  port.ObjectStorage
	bucket string
	prefix string
}

// NewEvidenceArchive returns an archive writing to bucket. Returns nil when
// bucket is empty so callers can skip archiving entirely.
func NewEvidenceArchive(store port.ObjectStorage, bucket, prefix string) *EvidenceArchive {
	if store == nil || strings.TrimSpace(bucket) == "" {
		return nil
	}
	return &EvidenceArchive{
		store:  store,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

// EvidenceKey returns the object key for a job's evidence.
func EvidenceKey(prefix, ticketID, jobID string) string {
	return path.Join(strings.Trim(prefix, "/"), "tickets", ticketID, "validation-jobs", jobID, "evidence.json")
}

// Archive uploads evidence and returns its location. Empty evidence is a no-op.
func (a *EvidenceArchive) Archive(ctx context.Context, ticketID, jobID string, evidence []byte) (string, error) {
	if len(evidence) == 0 {
		return "", nil
	}
	out, err := a.store.Upload(ctx, port.UploadInput{
		Bucket:      a.bucket,
		Key:         EvidenceKey(a.prefix, ticketID, jobID),
		Body:        bytes.NewReader(evidence),
		ContentType: evidenceContentType,
		Size:        int64(len(evidence)),
	})
	if err != nil {
		return "", fmt.Errorf("archiving evidence for job %s: %w", jobID, err)
	}
	return out.Location, nil
}
