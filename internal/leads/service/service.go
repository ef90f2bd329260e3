package service

import (
	"context"
	"time"

	"crm_backend/internal/events"
	"crm_backend/internal/leads/repository"
	"crm_backend/internal/leads/transport"
	"crm_backend/platform/apperr"
	"crm_backend/platform/phone"

	"github.com/google/uuid"
)

const dueLeadsLimit = 10

// Service provides business logic for leads.
type Service struct {
	repo *repository.Repository
	bus  events.Bus // optional, nil means no refresh signaling
}

// New creates a new leads service.
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// SetEventBus injects the event bus used for stale-view signaling.
func (s *Service) SetEventBus(bus events.Bus) {
	s.bus = bus
}

func (s *Service) List(ctx context.Context, filters repository.ListFilters) (transport.LeadListResponse, error) {
	// "Tümü" is the UI's "all statuses" filter value.
	if filters.Durum == "Tümü" {
		filters.Durum = ""
	}
	leads, err := s.repo.List(ctx, filters)
	if err != nil {
		return transport.LeadListResponse{}, apperr.Wrap(apperr.KindInternal, "failed to list leads", err)
	}
	return toLeadListResponse(leads), nil
}

// ListDueToday returns leads that still need contact and whose follow-up
// date falls today or earlier.
func (s *Service) ListDueToday(ctx context.Context, now time.Time) (transport.LeadListResponse, error) {
	year, month, day := now.Date()
	startOfTomorrow := time.Date(year, month, day, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)

	leads, err := s.repo.ListDueForContact(ctx, startOfTomorrow, dueLeadsLimit)
	if err != nil {
		return transport.LeadListResponse{}, apperr.Wrap(apperr.KindInternal, "failed to list due leads", err)
	}
	return toLeadListResponse(leads), nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.LeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return transport.LeadResponse{}, apperr.NotFound("lead not found")
		}
		return transport.LeadResponse{}, apperr.Wrap(apperr.KindInternal, "failed to fetch lead", err)
	}
	return ToLeadResponse(lead), nil
}

func (s *Service) Create(ctx context.Context, req transport.CreateLeadRequest) (transport.LeadResponse, error) {
	durum := repository.StatusNew
	if req.Durum != "" {
		if !repository.IsValidStatus(req.Durum) {
			return transport.LeadResponse{}, apperr.Validation("unknown lead status: " + req.Durum)
		}
		durum = repository.NormalizeStatus(req.Durum)
	}

	lead, err := s.repo.Create(ctx, repository.CreateLeadParams{
		Firma:          req.Firma,
		Telefon:        phone.NormalizeE164(req.Telefon),
		Sektor:         req.Sektor,
		Sehir:          req.Sehir,
		Kaynak:         req.Kaynak,
		Durum:          durum,
		NextActionDate: req.NextActionDate,
	})
	if err != nil {
		return transport.LeadResponse{}, apperr.Wrap(apperr.KindInternal, "failed to create lead", err)
	}

	s.signalStale(ctx)
	return ToLeadResponse(lead), nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateLeadRequest) (transport.LeadResponse, error) {
	var durum *repository.Status
	if req.Durum != "" {
		if !repository.IsValidStatus(req.Durum) {
			return transport.LeadResponse{}, apperr.Validation("unknown lead status: " + req.Durum)
		}
		normalized := repository.NormalizeStatus(req.Durum)
		durum = &normalized
	}

	lead, err := s.repo.Update(ctx, id, repository.UpdateLeadParams{
		Firma:   req.Firma,
		Telefon: phone.NormalizeE164(req.Telefon),
		Sektor:  req.Sektor,
		Sehir:   req.Sehir,
		Kaynak:  req.Kaynak,
		Durum:   durum,
	})
	if err != nil {
		if err == repository.ErrNotFound {
			return transport.LeadResponse{}, apperr.NotFound("lead not found")
		}
		return transport.LeadResponse{}, apperr.Wrap(apperr.KindInternal, "failed to update lead", err)
	}

	s.signalStale(ctx)
	return ToLeadResponse(lead), nil
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req transport.UpdateLeadStatusRequest) (transport.LeadResponse, error) {
	if !repository.IsValidStatus(req.Durum) {
		return transport.LeadResponse{}, apperr.Validation("unknown lead status: " + req.Durum)
	}

	lead, err := s.repo.UpdateStatus(ctx, id, repository.NormalizeStatus(req.Durum))
	if err != nil {
		if err == repository.ErrNotFound {
			return transport.LeadResponse{}, apperr.NotFound("lead not found")
		}
		return transport.LeadResponse{}, apperr.Wrap(apperr.KindInternal, "failed to update lead status", err)
	}

	s.signalStale(ctx)
	return ToLeadResponse(lead), nil
}

func (s *Service) UpdateNextAction(ctx context.Context, id uuid.UUID, req transport.UpdateNextActionRequest) (transport.LeadResponse, error) {
	lead, err := s.repo.UpdateNextActionDate(ctx, id, req.NextActionDate)
	if err != nil {
		if err == repository.ErrNotFound {
			return transport.LeadResponse{}, apperr.NotFound("lead not found")
		}
		return transport.LeadResponse{}, apperr.Wrap(apperr.KindInternal, "failed to update follow-up date", err)
	}

	s.signalStale(ctx)
	return ToLeadResponse(lead), nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return apperr.NotFound("lead not found")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to delete lead", err)
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
		Views:     []string{events.ViewLeads, events.ViewDashboard},
	})
}

// ToLeadResponse maps a repository row to its transport representation.
func ToLeadResponse(lead repository.Lead) transport.LeadResponse {
	return transport.LeadResponse{
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

func toLeadListResponse(leads []repository.Lead) transport.LeadListResponse {
	items := make([]transport.LeadResponse, len(leads))
	for i, lead := range leads {
		items[i] = ToLeadResponse(lead)
	}
	return transport.LeadListResponse{Items: items}
}
