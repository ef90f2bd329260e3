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

var ErrNotFound = errors.New("customer not found")

// PaymentStatus is the customer payment state. Stored literals are the
// historical Turkish ones, normalized case-insensitively on read.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Beklemede"
	PaymentAwaiting PaymentStatus = "Ödeme Bekleniyor"
	PaymentPaid     PaymentStatus = "Ödendi"
)

var knownPaymentStatuses = []PaymentStatus{PaymentPending, PaymentAwaiting, PaymentPaid}

// NormalizePaymentStatus maps a stored literal to its canonical form.
// Unknown literals pass through unchanged.
func NormalizePaymentStatus(raw string) PaymentStatus {
	trimmed := strings.TrimSpace(raw)
	for _, s := range knownPaymentStatuses {
		if strings.EqualFold(trimmed, string(s)) {
			return s
		}
	}
	return PaymentStatus(trimmed)
}

// IsValidPaymentStatus reports whether raw matches a known literal.
func IsValidPaymentStatus(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	for _, s := range knownPaymentStatuses {
		if strings.EqualFold(trimmed, string(s)) {
			return true
		}
	}
	return false
}

type Customer struct {
	ID          uuid.UUID
	Firma       string
	Telefon     string
	Sektor      *string
	Sehir       *string
	Hizmet      string
	OdemeDurumu PaymentStatus
	CreatedAt   time.Time
}

type CreateCustomerParams struct {
	Firma       string
	Telefon     string
	Sektor      *string
	Sehir       *string
	Hizmet      string
	OdemeDurumu PaymentStatus
}

type UpdateCustomerParams struct {
	Firma       string
	Telefon     string
	Sektor      *string
	Sehir       *string
	Hizmet      string
	OdemeDurumu PaymentStatus
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const customerColumns = `id, firma, telefon, sektor, sehir, hizmet, odeme_durumu, created_at`

func scanCustomer(row pgx.Row) (Customer, error) {
	var customer Customer
	var odemeDurumu string
	err := row.Scan(
		&customer.ID, &customer.Firma, &customer.Telefon, &customer.Sektor,
		&customer.Sehir, &customer.Hizmet, &odemeDurumu, &customer.CreatedAt,
	)
	if err != nil {
		return Customer{}, err
	}
	customer.OdemeDurumu = NormalizePaymentStatus(odemeDurumu)
	return customer, nil
}

func (r *Repository) Create(ctx context.Context, params CreateCustomerParams) (Customer, error) {
	odemeDurumu := params.OdemeDurumu
	if odemeDurumu == "" {
		odemeDurumu = PaymentPending
	}
	return scanCustomer(r.pool.QueryRow(ctx, `
		INSERT INTO crm_customers (firma, telefon, sektor, sehir, hizmet, odeme_durumu)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+customerColumns,
		params.Firma, params.Telefon, params.Sektor, params.Sehir,
		params.Hizmet, string(odemeDurumu),
	))
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Customer, error) {
	customer, err := scanCustomer(r.pool.QueryRow(ctx, `
		SELECT `+customerColumns+` FROM crm_customers WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Customer{}, ErrNotFound
	}
	return customer, err
}

// List returns all customers, newest first.
func (r *Repository) List(ctx context.Context) ([]Customer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+customerColumns+` FROM crm_customers ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]Customer, 0)
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return customers, nil
}

// GetNamesByIDs returns an id -> firma map for the given customer ids in a
// single query.
func (r *Repository) GetNamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, firma FROM crm_customers WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var firma string
		if err := rows.Scan(&id, &firma); err != nil {
			return nil, err
		}
		names[id] = firma
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return names, nil
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateCustomerParams) (Customer, error) {
	customer, err := scanCustomer(r.pool.QueryRow(ctx, `
		UPDATE crm_customers
		SET firma = $2, telefon = $3, sektor = $4, sehir = $5, hizmet = $6, odeme_durumu = $7
		WHERE id = $1
		RETURNING `+customerColumns,
		id, params.Firma, params.Telefon, params.Sektor, params.Sehir,
		params.Hizmet, string(params.OdemeDurumu),
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return Customer{}, ErrNotFound
	}
	return customer, err
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM crm_customers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
