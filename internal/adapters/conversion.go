// Package adapters bridges the entity repositories to the narrow ports the
// conversion and dashboard engines depend on, keeping those engines free of
// direct repository imports.
package adapters

import (
	"context"
	"errors"

	conversion "crm_backend/internal/conversion/service"
	customerrepo "crm_backend/internal/customers/repository"
	leadrepo "crm_backend/internal/leads/repository"

	"github.com/google/uuid"
)

// ConversionLeadStore adapts the lead repository to conversion.LeadStore.
type ConversionLeadStore struct {
	repo *leadrepo.Repository
}

func NewConversionLeadStore(repo *leadrepo.Repository) *ConversionLeadStore {
	return &ConversionLeadStore{repo: repo}
}

func (a *ConversionLeadStore) Get(ctx context.Context, id uuid.UUID) (conversion.LeadRecord, error) {
	lead, err := a.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, leadrepo.ErrNotFound) {
			return conversion.LeadRecord{}, conversion.ErrNotFound
		}
		return conversion.LeadRecord{}, err
	}
	return toLeadRecord(lead), nil
}

func (a *ConversionLeadStore) Insert(ctx context.Context, params conversion.NewLeadParams) (conversion.LeadRecord, error) {
	lead, err := a.repo.Create(ctx, leadrepo.CreateLeadParams{
		Firma:   params.Firma,
		Telefon: params.Telefon,
		Sektor:  params.Sektor,
		Sehir:   params.Sehir,
		Kaynak:  params.Kaynak,
		Durum:   leadrepo.StatusNew,
	})
	if err != nil {
		return conversion.LeadRecord{}, err
	}
	return toLeadRecord(lead), nil
}

func (a *ConversionLeadStore) MarkSold(ctx context.Context, id uuid.UUID) error {
	_, err := a.repo.UpdateStatus(ctx, id, leadrepo.StatusSold)
	return err
}

func (a *ConversionLeadStore) Delete(ctx context.Context, id uuid.UUID) error {
	return a.repo.Delete(ctx, id)
}

// ConversionCustomerStore adapts the customer repository to
// conversion.CustomerStore.
type ConversionCustomerStore struct {
	repo *customerrepo.Repository
}

func NewConversionCustomerStore(repo *customerrepo.Repository) *ConversionCustomerStore {
	return &ConversionCustomerStore{repo: repo}
}

func (a *ConversionCustomerStore) Get(ctx context.Context, id uuid.UUID) (conversion.CustomerRecord, error) {
	customer, err := a.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, customerrepo.ErrNotFound) {
			return conversion.CustomerRecord{}, conversion.ErrNotFound
		}
		return conversion.CustomerRecord{}, err
	}
	return toCustomerRecord(customer), nil
}

func (a *ConversionCustomerStore) Insert(ctx context.Context, params conversion.NewCustomerParams) (conversion.CustomerRecord, error) {
	customer, err := a.repo.Create(ctx, customerrepo.CreateCustomerParams{
		Firma:       params.Firma,
		Telefon:     params.Telefon,
		Sektor:      params.Sektor,
		Sehir:       params.Sehir,
		Hizmet:      params.Hizmet,
		OdemeDurumu: customerrepo.PaymentPending,
	})
	if err != nil {
		return conversion.CustomerRecord{}, err
	}
	return toCustomerRecord(customer), nil
}

func (a *ConversionCustomerStore) Delete(ctx context.Context, id uuid.UUID) error {
	return a.repo.Delete(ctx, id)
}

func toLeadRecord(lead leadrepo.Lead) conversion.LeadRecord {
	return conversion.LeadRecord{
		ID:             lead.ID,
		Firma:          lead.Firma,
		Telefon:        lead.Telefon,
		Sektor:         lead.Sektor,
		Sehir:          lead.Sehir,
		Kaynak:         lead.Kaynak,
		Durum:          string(lead.Durum),
		NextActionDate: lead.NextActionDate,
		CreatedAt:      lead.CreatedAt,
	}
}

func toCustomerRecord(customer customerrepo.Customer) conversion.CustomerRecord {
	return conversion.CustomerRecord{
		ID:          customer.ID,
		Firma:       customer.Firma,
		Telefon:     customer.Telefon,
		Sektor:      customer.Sektor,
		Sehir:       customer.Sehir,
		Hizmet:      customer.Hizmet,
		OdemeDurumu: string(customer.OdemeDurumu),
		CreatedAt:   customer.CreatedAt,
	}
}

// Compile-time port checks.
var (
	_ conversion.LeadStore     = (*ConversionLeadStore)(nil)
	_ conversion.CustomerStore = (*ConversionCustomerStore)(nil)
)
