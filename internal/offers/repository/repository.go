package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("offer not found")

// Status is the offer state. The historical data contains both
// "Kabul Edildi" and "Kabul edildi"; normalization collapses them into the
// canonical accepted literal on read.
type Status string

const (
	StatusPending  Status = "Beklemede"
	StatusSent     Status = "Gönderildi"
	StatusAwaiting Status = "Bekliyor"
	StatusAccepted Status = "Kabul Edildi"
	StatusRejected Status = "Reddedildi"
)

var knownStatuses = []Status{StatusPending, StatusSent, StatusAwaiting, StatusAccepted, StatusRejected}

// NormalizeStatus maps a stored literal to its canonical form,
// case-insensitively. Unknown literals pass through unchanged.
func NormalizeStatus(raw string) Status {
	trimmed := strings.TrimSpace(raw)
	for _, s := range knownStatuses {
		if strings.EqualFold(trimmed, string(s)) {
			return s
		}
	}
	return Status(trimmed)
}

// IsValidStatus reports whether raw matches a known status literal.
func IsValidStatus(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	for _, s := range knownStatuses {
		if strings.EqualFold(trimmed, string(s)) {
			return true
		}
	}
	return false
}

type Offer struct {
	ID         uuid.UUID
	MusteriID  uuid.UUID
	Hizmet     string
	Tutar      float64
	ParaBirimi string
	Durum      Status
	Not        *string
	CreatedAt  time.Time
}

// OfferWithCustomer carries the owning customer's display fields from the
// list join. The customer reference is soft, so both can be nil.
type OfferWithCustomer struct {
	Offer
	CustomerFirma   *string
	CustomerTelefon *string
}

type CreateOfferParams struct {
	MusteriID  uuid.UUID
	Hizmet     string
	Tutar      float64
	ParaBirimi string
	Durum      Status
	Not        *string
}

type UpdateOfferParams struct {
	MusteriID  uuid.UUID
	Hizmet     string
	Tutar      float64
	ParaBirimi string
	Durum      Status
	Not        *string
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const offerColumns = `id, musteri_id, hizmet, tutar, para_birimi, durum, "not", created_at`

func scanOffer(row pgx.Row) (Offer, error) {
	var offer Offer
	var durum string
	err := row.Scan(
		&offer.ID, &offer.MusteriID, &offer.Hizmet, &offer.Tutar,
		&offer.ParaBirimi, &durum, &offer.Not, &offer.CreatedAt,
	)
	if err != nil {
		return Offer{}, err
	}
	offer.Durum = NormalizeStatus(durum)
	return offer, nil
}

func (r *Repository) Create(ctx context.Context, params CreateOfferParams) (Offer, error) {
	durum := params.Durum
	if durum == "" {
		durum = StatusPending
	}
	return scanOffer(r.pool.QueryRow(ctx, `
		INSERT INTO crm_offers (musteri_id, hizmet, tutar, para_birimi, durum, "not")
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+offerColumns,
		params.MusteriID, params.Hizmet, params.Tutar, params.ParaBirimi,
		string(durum), params.Not,
	))
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Offer, error) {
	offer, err := scanOffer(r.pool.QueryRow(ctx, `
		SELECT `+offerColumns+` FROM crm_offers WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Offer{}, ErrNotFound
	}
	return offer, err
}

// List returns all offers newest first, joined with the owning customer's
// company name and phone.
func (r *Repository) List(ctx context.Context) ([]OfferWithCustomer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT o.id, o.musteri_id, o.hizmet, o.tutar, o.para_birimi, o.durum, o."not", o.created_at,
			c.firma, c.telefon
		FROM crm_offers o
		LEFT JOIN crm_customers c ON c.id = o.musteri_id
		ORDER BY o.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offers := make([]OfferWithCustomer, 0)
	for rows.Next() {
		var item OfferWithCustomer
		var durum string
		err := rows.Scan(
			&item.ID, &item.MusteriID, &item.Hizmet, &item.Tutar,
			&item.ParaBirimi, &durum, &item.Not, &item.CreatedAt,
			&item.CustomerFirma, &item.CustomerTelefon,
		)
		if err != nil {
			return nil, err
		}
		item.Durum = NormalizeStatus(durum)
		offers = append(offers, item)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return offers, nil
}

// ListAll returns the full unfiltered offer snapshot for aggregation.
func (r *Repository) ListAll(ctx context.Context) ([]Offer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+offerColumns+` FROM crm_offers
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offers := make([]Offer, 0)
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, offer)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return offers, nil
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateOfferParams) (Offer, error) {
	offer, err := scanOffer(r.pool.QueryRow(ctx, `
		UPDATE crm_offers
		SET musteri_id = $2, hizmet = $3, tutar = $4, para_birimi = $5, durum = $6, "not" = $7
		WHERE id = $1
		RETURNING `+offerColumns,
		id, params.MusteriID, params.Hizmet, params.Tutar, params.ParaBirimi,
		string(params.Durum), params.Not,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return Offer{}, ErrNotFound
	}
	return offer, err
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM crm_offers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
