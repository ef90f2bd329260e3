// Package repository provides PostgreSQL persistence for notes.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("note not found")

// Related entity types a note can be attached to.
const (
	RelatedTypeLead     = "lead"
	RelatedTypeCustomer = "customer"
)

// IsValidRelatedType reports whether relatedType names a known entity kind.
func IsValidRelatedType(relatedType string) bool {
	return relatedType == RelatedTypeLead || relatedType == RelatedTypeCustomer
}

// Note is a free-form reminder, optionally attached to a lead or customer.
type Note struct {
	ID          uuid.UUID
	Title       string
	Description string
	DueDate     *time.Time
	RelatedType *string
	RelatedID   *uuid.UUID
	CreatedAt   time.Time
}

type CreateNoteParams struct {
	Title       string
	Description string
	DueDate     *time.Time
	RelatedType *string
	RelatedID   *uuid.UUID
}

type UpdateNoteParams struct {
	Title       string
	Description string
	DueDate     *time.Time
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const noteColumns = `id, title, description, due_date, related_type, related_id, created_at`

func scanNote(row pgx.Row) (Note, error) {
	var note Note
	err := row.Scan(
		&note.ID, &note.Title, &note.Description, &note.DueDate,
		&note.RelatedType, &note.RelatedID, &note.CreatedAt,
	)
	return note, err
}

func (r *Repository) Create(ctx context.Context, params CreateNoteParams) (Note, error) {
	return scanNote(r.pool.QueryRow(ctx, `
		INSERT INTO crm_notes (title, description, due_date, related_type, related_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+noteColumns,
		params.Title, params.Description, params.DueDate, params.RelatedType, params.RelatedID,
	))
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Note, error) {
	note, err := scanNote(r.pool.QueryRow(ctx, `
		SELECT `+noteColumns+` FROM crm_notes WHERE id = $1`, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return Note{}, ErrNotFound
	}
	return note, err
}

// List returns all notes ordered by due date, undated ones last.
func (r *Repository) List(ctx context.Context) ([]Note, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+noteColumns+` FROM crm_notes
		ORDER BY due_date ASC NULLS LAST, created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectNotes(rows)
}

// ListByRelated returns notes attached to one lead or customer, newest first.
func (r *Repository) ListByRelated(ctx context.Context, relatedType string, relatedID uuid.UUID) ([]Note, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+noteColumns+` FROM crm_notes
		WHERE related_type = $1 AND related_id = $2
		ORDER BY created_at DESC`,
		relatedType, relatedID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectNotes(rows)
}

// ListAll returns every note without ordering guarantees, for aggregation.
func (r *Repository) ListAll(ctx context.Context) ([]Note, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+noteColumns+` FROM crm_notes`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectNotes(rows)
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateNoteParams) (Note, error) {
	note, err := scanNote(r.pool.QueryRow(ctx, `
		UPDATE crm_notes
		SET title = $2, description = $3, due_date = $4
		WHERE id = $1
		RETURNING `+noteColumns,
		id, params.Title, params.Description, params.DueDate,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return Note{}, ErrNotFound
	}
	return note, err
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM crm_notes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func collectNotes(rows pgx.Rows) ([]Note, error) {
	notes := make([]Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return notes, nil
}
