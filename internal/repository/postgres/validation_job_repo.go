package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"fieldcheck/internal/domain"
	"fieldcheck/internal/port"
)

type validationJobRepo struct {
	db *sqlx.DB
}

// NewValidationJobRepo creates a new PostgreSQL-backed ValidationJobRepository.
// Rows are only ever inserted.
func NewValidationJobRepo(db *sqlx.DB) port.ValidationJobRepository {
	return &validationJobRepo{db: db}
}

// validationJobRow mirrors the validation_jobs table. List columns are JSONB
// arrays and evidence may be NULL.
type validationJobRow struct {
	ID          uuid.UUID      `db:"id"`
	TicketID    string         `db:"ticket_id"`
	FieldID     string         `db:"field_id"`
	ValidatorID string         `db:"validator_id"`
	Level       string         `db:"level"`
	Status      string         `db:"status"`
	Summary     string         `db:"summary"`
	Evidence    []byte         `db:"evidence"`
	Links       []byte         `db:"links"`
	Warnings    []byte         `db:"warnings"`
	Errors      []byte         `db:"errors"`
	RanBy       sql.NullString `db:"ran_by"`
	StartedAt   time.Time      `db:"started_at"`
	FinishedAt  time.Time      `db:"finished_at"`
}

func (r *validationJobRepo) Add(ctx context.Context, job *domain.ValidationJob) (uuid.UUID, error) {
	id := job.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	links, err := marshalList(job.Links)
	if err != nil {
		return uuid.Nil, fmt.Errorf("validationJobRepo.Add links: %w", err)
	}
	warnings, err := marshalList(job.Warnings)
	if err != nil {
		return uuid.Nil, fmt.Errorf("validationJobRepo.Add warnings: %w", err)
	}
	errs, err := marshalList(job.Errors)
	if err != nil {
		return uuid.Nil, fmt.Errorf("validationJobRepo.Add errors: %w", err)
	}
	var evidence []byte
	if len(job.Evidence) > 0 {
		evidence = job.Evidence
	}
	var ranBy sql.NullString
	if job.RanBy != nil {
		ranBy = sql.NullString{String: *job.RanBy, Valid: true}
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO validation_jobs
		 (id, ticket_id, field_id, validator_id, level, status, summary,
		  evidence, links, warnings, errors, ran_by, started_at, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		id, job.TicketID, job.FieldID, string(job.ValidatorID), string(job.Level), string(job.Status), job.Summary,
		evidence, links, warnings, errs, ranBy, job.StartedAt, job.FinishedAt)
	if err != nil {
		return uuid.Nil, fmt.Errorf("validationJobRepo.Add: %w", err)
	}
	return id, nil
}

func (r *validationJobRepo) ListByTicket(ctx context.Context, ticketID string, limit int) ([]domain.ValidationJob, error) {
	var lim any
	if limit > 0 {
		lim = limit
	}

	var rows []validationJobRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, ticket_id, field_id, validator_id, level, status, summary,
		        evidence, links, warnings, errors, ran_by, started_at, finished_at
		 FROM validation_jobs
		 WHERE ticket_id = $1
		 ORDER BY finished_at DESC, id DESC
		 LIMIT $2`,
		ticketID, lim)
	if err != nil {
		return nil, fmt.Errorf("validationJobRepo.ListByTicket: %w", err)
	}

	jobs := make([]domain.ValidationJob, 0, len(rows))
	for i := range rows {
		job, err := rows[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("validationJobRepo.ListByTicket decode %s: %w", rows[i].ID, err)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func (row *validationJobRow) toDomain() (domain.ValidationJob, error) {
	job := domain.ValidationJob{
		ID:          row.ID,
		TicketID:    row.TicketID,
		FieldID:     row.FieldID,
		ValidatorID: domain.ValidatorID(row.ValidatorID),
		Level:       domain.ValidationLevel(row.Level),
		Status:      domain.ValidationStatus(row.Status),
		Summary:     row.Summary,
		StartedAt:   row.StartedAt.UTC(),
		FinishedAt:  row.FinishedAt.UTC(),
	}
	if len(row.Evidence) > 0 {
		job.Evidence = json.RawMessage(row.Evidence)
	}
	if row.RanBy.Valid {
		v := row.RanBy.String
		job.RanBy = &v
	}
	var err error
	if job.Links, err = unmarshalList(row.Links); err != nil {
		return job, err
	}
	if job.Warnings, err = unmarshalList(row.Warnings); err != nil {
		return job, err
	}
	if job.Errors, err = unmarshalList(row.Errors); err != nil {
		return job, err
	}
	return job, nil
}

func marshalList(items []string) ([]byte, error) {
	if items == nil {
		items = []string{}
	}
	return json.Marshal(items)
}

func unmarshalList(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items, nil
}
