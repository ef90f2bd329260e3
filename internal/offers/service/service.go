package service

import (
	"context"
	"math"

	"crm_backend/internal/events"
	"crm_backend/internal/offers/repository"
	"crm_backend/internal/offers/transport"
	"crm_backend/platform/apperr"

	"github.com/google/uuid"
)

const defaultCurrency = "TL"

// Service provides business logic for offers.
type Service struct {
	repo *repository.Repository
	bus  events.Bus
}

// New creates a new offers service.
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// SetEventBus injects the event bus used for stale-view signaling.
func (s *Service) SetEventBus(bus events.Bus) {
	s.bus = bus
}

func (s *Service) List(ctx context.Context) (transport.OfferListResponse, error) {
	offers, err := s.repo.List(ctx)
	if err != nil {
		return transport.OfferListResponse{}, apperr.Wrap(apperr.KindInternal, "failed to list offers", err)
	}

	items := make([]transport.OfferListItem, len(offers))
	for i, offer := range offers {
		items[i] = transport.OfferListItem{
			OfferResponse:   toOfferResponse(offer.Offer),
			CustomerFirma:   offer.CustomerFirma,
			CustomerTelefon: offer.CustomerTelefon,
		}
	}
	return transport.OfferListResponse{Items: items}, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.OfferResponse, error) {
	offer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return transport.OfferResponse{}, apperr.NotFound("offer not found")
		}
		return transport.OfferResponse{}, apperr.Wrap(apperr.KindInternal, "failed to fetch offer", err)
	}
	return toOfferResponse(offer), nil
}

func (s *Service) Create(ctx context.Context, req transport.CreateOfferRequest) (transport.OfferResponse, error) {
	musteriID, err := uuid.Parse(req.MusteriID)
	if err != nil {
		return transport.OfferResponse{}, apperr.Validation("invalid customer id")
	}
	if err := validAmount(req.Tutar); err != nil {
		return transport.OfferResponse{}, err
	}

	paraBirimi := req.ParaBirimi
	if paraBirimi == "" {
		paraBirimi = defaultCurrency
	}

	offer, err := s.repo.Create(ctx, repository.CreateOfferParams{
		MusteriID:  musteriID,
		Hizmet:     req.Hizmet,
		Tutar:      req.Tutar,
		ParaBirimi: paraBirimi,
		Durum:      repository.StatusPending,
		Not:        req.Not,
	})
	if err != nil {
		return transport.OfferResponse{}, apperr.Wrap(apperr.KindInternal, "failed to create offer", err)
	}

	s.signalStale(ctx)
	return toOfferResponse(offer), nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateOfferRequest) (transport.OfferResponse, error) {
	musteriID, err := uuid.Parse(req.MusteriID)
	if err != nil {
		return transport.OfferResponse{}, apperr.Validation("invalid customer id")
	}
	if err := validAmount(req.Tutar); err != nil {
		return transport.OfferResponse{}, err
	}
	if !repository.IsValidStatus(req.Durum) {
		return transport.OfferResponse{}, apperr.Validation("unknown offer status: " + req.Durum)
	}

	offer, err := s.repo.Update(ctx, id, repository.UpdateOfferParams{
		MusteriID:  musteriID,
		Hizmet:     req.Hizmet,
		Tutar:      req.Tutar,
		ParaBirimi: req.ParaBirimi,
		Durum:      repository.NormalizeStatus(req.Durum),
		Not:        req.Not,
	})
	if err != nil {
		if err == repository.ErrNotFound {
			return transport.OfferResponse{}, apperr.NotFound("offer not found")
		}
		return transport.OfferResponse{}, apperr.Wrap(apperr.KindInternal, "failed to update offer", err)
	}

	s.signalStale(ctx)
	return toOfferResponse(offer), nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return apperr.NotFound("offer not found")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to delete offer", err)
	}

	s.signalStale(ctx)
	return nil
}

func validAmount(tutar float64) error {
	if math.IsNaN(tutar) || math.IsInf(tutar, 0) || tutar <= 0 {
		return apperr.Validation("amount must be a positive number")
	}
	return nil
}

func (s *Service) signalStale(ctx context.Context) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.ViewsStale{
		BaseEvent: events.NewBaseEvent(),
		Views:     []string{events.ViewOffers, events.ViewCustomers, events.ViewDashboard},
	})
}

func toOfferResponse(offer repository.Offer) transport.OfferResponse {
	return transport.OfferResponse{
		ID:         offer.ID,
		MusteriID:  offer.MusteriID,
		Hizmet:     offer.Hizmet,
		Tutar:      offer.Tutar,
		ParaBirimi: offer.ParaBirimi,
		Durum:      string(offer.Durum),
		Not:        offer.Not,
		CreatedAt:  offer.CreatedAt,
	}
}
