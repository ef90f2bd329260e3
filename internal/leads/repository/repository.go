package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("lead not found")

// Status is the lead pipeline status. The stored literals are the historical
// Turkish ones; NormalizeStatus collapses casing variants at the persistence
// boundary so read sites can compare against the canonical constants.
type Status string

const (
	StatusNew         Status = "Yeni"
	StatusCalled      Status = "Arandı"
	StatusOfferSent   Status = "Teklif Gönderildi"
	StatusSold        Status = "Satış Oldu"
	StatusUnreachable Status = "Ulaşılamadı"
)

var knownStatuses = []Status{StatusNew, StatusCalled, StatusOfferSent, StatusSold, StatusUnreachable}

// NormalizeStatus maps a stored status literal to its canonical form,
// tolerating inconsistent casing. Unknown literals pass through unchanged.
func NormalizeStatus(raw string) Status {
	trimmed := strings.TrimSpace(raw)
	for _, s := range knownStatuses {
		if strings.EqualFold(trimmed, string(s)) {
			return s
		}
	}
	return Status(trimmed)
}

// IsValidStatus reports whether raw matches one of the known status literals.
func IsValidStatus(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	for _, s := range knownStatuses {
		if strings.EqualFold(trimmed, string(s)) {
			return true
		}
	}
	return false
}

type Lead struct {
	ID             uuid.UUID
	Firma          string
	Telefon        string
	Sektor         *string
	Sehir          *string
	Kaynak         string
	Durum          Status
	NextActionDate *time.Time
	CreatedAt      time.Time
}

type CreateLeadParams struct {
	Firma          string
	Telefon        string
	Sektor         *string
	Sehir          *string
	Kaynak         string
	Durum          Status
	NextActionDate *time.Time
}

type UpdateLeadParams struct {
	Firma   string
	Telefon string
	Sektor  *string
	Sehir   *string
	Kaynak  string
	Durum   *Status
}

// ListFilters narrows List results. Zero values mean "no filter".
type ListFilters struct {
	Durum  string
	Sehir  string
	Sektor string
	Kaynak string
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const leadColumns = `id, firma, telefon, sektor, sehir, kaynak, durum, next_action_date, created_at`

func scanLead(row pgx.Row) (Lead, error) {
	var lead Lead
	var durum string
	err := row.Scan(
		&lead.ID, &lead.Firma, &lead.Telefon, &lead.Sektor, &lead.Sehir,
		&lead.Kaynak, &durum, &lead.NextActionDate, &lead.CreatedAt,
	)
	if err != nil {
		return Lead{}, err
	}
	lead.Durum = NormalizeStatus(durum)
	return lead, nil
}

func (r *Repository) Create(ctx context.Context, params CreateLeadParams) (Lead, error) {
	durum := params.Durum
	if durum == "" {
		durum = StatusNew
	}
	return scanLead(r.pool.QueryRow(ctx, `
		INSERT INTO crm_leads (firma, telefon, sektor, sehir, kaynak, durum, next_action_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+leadColumns,
		params.Firma, params.Telefon, params.Sektor, params.Sehir,
		params.Kaynak, string(durum), params.NextActionDate,
	))
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	lead, err := scanLead(r.pool.QueryRow(ctx, `
		SELECT `+leadColumns+` FROM crm_leads WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	return lead, err
}

// List returns leads newest first, optionally filtered by status equality,
// source equality and case-insensitive city/sector substring match.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM crm_leads`
	conditions := make([]string, 0, 4)
	args := make([]any, 0, 4)

	if filters.Durum != "" {
		args = append(args, string(NormalizeStatus(filters.Durum)))
		conditions = append(conditions, fmt.Sprintf("durum = $%d", len(args)))
	}
	if filters.Sehir != "" {
		args = append(args, "%"+filters.Sehir+"%")
		conditions = append(conditions, fmt.Sprintf("sehir ILIKE $%d", len(args)))
	}
	if filters.Sektor != "" {
		args = append(args, "%"+filters.Sektor+"%")
		conditions = append(conditions, fmt.Sprintf("sektor ILIKE $%d", len(args)))
	}
	if filters.Kaynak != "" {
		args = append(args, filters.Kaynak)
		conditions = append(conditions, fmt.Sprintf("kaynak = $%d", len(args)))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeads(rows)
}

// ListDueForContact returns leads whose follow-up date is at or before the
// given cutoff and whose status still implies contact is needed, ordered by
// follow-up date.
func (r *Repository) ListDueForContact(ctx context.Context, cutoff time.Time, limit int) ([]Lead, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+leadColumns+` FROM crm_leads
		WHERE durum = ANY($1)
			AND next_action_date IS NOT NULL
			AND next_action_date <= $2
		ORDER BY next_action_date ASC
		LIMIT $3
	`, []string{string(StatusNew), string(StatusCalled)}, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeads(rows)
}

// ListAll returns the full unfiltered lead snapshot for aggregation.
func (r *Repository) ListAll(ctx context.Context) ([]Lead, error) {
	return r.List(ctx, ListFilters{})
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateLeadParams) (Lead, error) {
	var durum *string
	if params.Durum != nil {
		value := string(*params.Durum)
		durum = &value
	}
	lead, err := scanLead(r.pool.QueryRow(ctx, `
		UPDATE crm_leads
		SET firma = $2, telefon = $3, sektor = $4, sehir = $5, kaynak = $6,
			durum = COALESCE($7, durum)
		WHERE id = $1
		RETURNING `+leadColumns,
		id, params.Firma, params.Telefon, params.Sektor, params.Sehir, params.Kaynak, durum,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	return lead, err
}

func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, durum Status) (Lead, error) {
	lead, err := scanLead(r.pool.QueryRow(ctx, `
		UPDATE crm_leads SET durum = $2 WHERE id = $1
		RETURNING `+leadColumns,
		id, string(durum),
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	return lead, err
}

func (r *Repository) UpdateNextActionDate(ctx context.Context, id uuid.UUID, nextActionDate *time.Time) (Lead, error) {
	lead, err := scanLead(r.pool.QueryRow(ctx, `
		UPDATE crm_leads SET next_action_date = $2 WHERE id = $1
		RETURNING `+leadColumns,
		id, nextActionDate,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	return lead, err
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM crm_leads WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func collectLeads(rows pgx.Rows) ([]Lead, error) {
	leads := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return leads, nil
}
