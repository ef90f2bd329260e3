package service

import (
	"context"

	"crm_backend/internal/customers/repository"
	"crm_backend/internal/customers/transport"
	"crm_backend/internal/events"
	"crm_backend/platform/apperr"
	"crm_backend/platform/phone"

	"github.com/google/uuid"
)

// Service provides business logic for customers.
type Service struct {
	repo *repository.Repository
	bus  events.Bus
}

// New creates a new customers service.
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// SetEventBus injects the event bus used for stale-view signaling.
func (s *Service) SetEventBus(bus events.Bus) {
	s.bus = bus
}

func (s *Service) List(ctx context.Context) (transport.CustomerListResponse, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return transport.CustomerListResponse{}, apperr.Wrap(apperr.KindInternal, "failed to list customers", err)
	}

	items := make([]transport.CustomerResponse, len(customers))
	for i, customer := range customers {
		items[i] = ToCustomerResponse(customer)
	}
	return transport.CustomerListResponse{Items: items}, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.CustomerResponse, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return transport.CustomerResponse{}, apperr.NotFound("customer not found")
		}
		return transport.CustomerResponse{}, apperr.Wrap(apperr.KindInternal, "failed to fetch customer", err)
	}
	return ToCustomerResponse(customer), nil
}

func (s *Service) Create(ctx context.Context, req transport.CreateCustomerRequest) (transport.CustomerResponse, error) {
	odemeDurumu := repository.PaymentPending
	if req.OdemeDurumu != "" {
		if !repository.IsValidPaymentStatus(req.OdemeDurumu) {
			return transport.CustomerResponse{}, apperr.Validation("unknown payment status: " + req.OdemeDurumu)
		}
		odemeDurumu = repository.NormalizePaymentStatus(req.OdemeDurumu)
	}

	customer, err := s.repo.Create(ctx, repository.CreateCustomerParams{
		Firma:       req.Firma,
		Telefon:     phone.NormalizeE164(req.Telefon),
		Sektor:      req.Sektor,
		Sehir:       req.Sehir,
		Hizmet:      req.Hizmet,
		OdemeDurumu: odemeDurumu,
	})
	if err != nil {
		return transport.CustomerResponse{}, apperr.Wrap(apperr.KindInternal, "failed to create customer", err)
	}

	s.signalStale(ctx)
	return ToCustomerResponse(customer), nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateCustomerRequest) (transport.CustomerResponse, error) {
	if !repository.IsValidPaymentStatus(req.OdemeDurumu) {
		return transport.CustomerResponse{}, apperr.Validation("unknown payment status: " + req.OdemeDurumu)
	}

	customer, err := s.repo.Update(ctx, id, repository.UpdateCustomerParams{
		Firma:       req.Firma,
		Telefon:     phone.NormalizeE164(req.Telefon),
		Sektor:      req.Sektor,
		Sehir:       req.Sehir,
		Hizmet:      req.Hizmet,
		OdemeDurumu: repository.NormalizePaymentStatus(req.OdemeDurumu),
	})
	if err != nil {
		if err == repository.ErrNotFound {
			return transport.CustomerResponse{}, apperr.NotFound("customer not found")
		}
		return transport.CustomerResponse{}, apperr.Wrap(apperr.KindInternal, "failed to update customer", err)
	}

	s.signalStale(ctx)
	return ToCustomerResponse(customer), nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return apperr.NotFound("customer not found")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to delete customer", err)
	}

	s.signalStale(ctx)
	return nil
}

func (s *Service) signalStale(ctx context.Context) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.ViewsStale{
		BaseEvent: events.NewBaseEvent(),
		Views:     []string{events.ViewCustomers, events.ViewDashboard},
	})
}

// ToCustomerResponse maps a repository row to its transport representation.
func ToCustomerResponse(customer repository.Customer) transport.CustomerResponse {
	return transport.CustomerResponse{
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
