// Package service implements the conversion workflow: moving a prospect
// between the lead and customer collections in either direction, one at a
// time or in bulk.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"crm_backend/internal/conversion/transport"
	"crm_backend/internal/events"
	"crm_backend/platform/apperr"
	"crm_backend/platform/logger"

	"github.com/google/uuid"
)

// ConvertedKaynak marks leads that came back from the customer collection.
const ConvertedKaynak = "Müşteriden Dönüştürüldü"

// ErrNotFound is returned by stores when the record does not exist.
var ErrNotFound = errors.New("record not found")

// LeadRecord is the conversion view of a lead.
type LeadRecord struct {
	ID             uuid.UUID
	Firma          string
	Telefon        string
	Sektor         *string
	Sehir          *string
	Kaynak         string
	Durum          string
	NextActionDate *time.Time
	CreatedAt      time.Time
}

// CustomerRecord is the conversion view of a customer.
type CustomerRecord struct {
	ID          uuid.UUID
	Firma       string
	Telefon     string
	Sektor      *string
	Sehir       *string
	Hizmet      string
	OdemeDurumu string
	CreatedAt   time.Time
}

type NewLeadParams struct {
	Firma   string
	Telefon string
	Sektor  *string
	Sehir   *string
	Kaynak  string
}

type NewCustomerParams struct {
	Firma   string
	Telefon string
	Sektor  *string
	Sehir   *string
	Hizmet  string
}

// LeadStore is the narrow lead persistence port the workflow needs.
type LeadStore interface {
	Get(ctx context.Context, id uuid.UUID) (LeadRecord, error)
	Insert(ctx context.Context, params NewLeadParams) (LeadRecord, error)
	MarkSold(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CustomerStore is the narrow customer persistence port the workflow needs.
type CustomerStore interface {
	Get(ctx context.Context, id uuid.UUID) (CustomerRecord, error)
	Insert(ctx context.Context, params NewCustomerParams) (CustomerRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service orchestrates conversions between leads and customers.
type Service struct {
	leads     LeadStore
	customers CustomerStore
	log       *logger.Logger
	bus       events.Bus
}

// New creates a new conversion service.
func New(leads LeadStore, customers CustomerStore, log *logger.Logger) *Service {
	return &Service{leads: leads, customers: customers, log: log}
}

// SetEventBus injects the event bus used for domain and stale-view events.
func (s *Service) SetEventBus(bus events.Bus) {
	s.bus = bus
}

// ConvertLeadToCustomer copies a lead into the customer collection and
// retires the source lead. Source cleanup is best-effort: a customer that
// was created stays created even if the lead cannot be removed.
func (s *Service) ConvertLeadToCustomer(ctx context.Context, leadID uuid.UUID) (CustomerRecord, error) {
	lead, err := s.leads.Get(ctx, leadID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return CustomerRecord{}, apperr.NotFound("lead not found")
		}
		return CustomerRecord{}, apperr.Wrap(apperr.KindInternal, "failed to fetch lead", err)
	}

	customer, err := s.promoteLead(ctx, lead)
	if err != nil {
		return CustomerRecord{}, err
	}

	s.signalStale(ctx)
	return customer, nil
}

// ConvertCustomerToLead copies a customer back into the lead collection and
// retires the source customer, mirroring ConvertLeadToCustomer.
func (s *Service) ConvertCustomerToLead(ctx context.Context, customerID uuid.UUID) (LeadRecord, error) {
	customer, err := s.customers.Get(ctx, customerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return LeadRecord{}, apperr.NotFound("customer not found")
		}
		return LeadRecord{}, apperr.Wrap(apperr.KindInternal, "failed to fetch customer", err)
	}

	lead, err := s.demoteCustomer(ctx, customer)
	if err != nil {
		return LeadRecord{}, err
	}

	s.signalStale(ctx)
	return lead, nil
}

// ConvertBulk converts each id sequentially, isolating per-item failures.
// The batch only becomes a hard error when every single item failed.
func (s *Service) ConvertBulk(ctx context.Context, ids []uuid.UUID, direction string) (transport.BulkResult, error) {
	if len(ids) == 0 {
		return transport.BulkResult{}, apperr.Validation("no records selected")
	}
	if direction != transport.DirectionLeadToCustomer && direction != transport.DirectionCustomerToLead {
		return transport.BulkResult{}, apperr.Validation("unknown conversion direction: " + direction)
	}

	var result transport.BulkResult
	for _, id := range ids {
		if err := s.convertOne(ctx, id, direction); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		result.Success++
	}

	if result.Success == 0 && result.Failed > 0 {
		return transport.BulkResult{}, apperr.New(apperr.KindInternal,
			"all conversions failed: "+strings.Join(result.Errors, "; "))
	}
	if result.Success > 0 {
		s.signalStale(ctx)
	}
	return result, nil
}

func (s *Service) convertOne(ctx context.Context, id uuid.UUID, direction string) error {
	switch direction {
	case transport.DirectionLeadToCustomer:
		lead, err := s.leads.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("%s: %s", id, fetchReason(err, "lead not found"))
		}
		if _, err := s.promoteLead(ctx, lead); err != nil {
			return fmt.Errorf("%s: %s", lead.Firma, errorReason(err))
		}
	case transport.DirectionCustomerToLead:
		customer, err := s.customers.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("%s: %s", id, fetchReason(err, "customer not found"))
		}
		if _, err := s.demoteCustomer(ctx, customer); err != nil {
			return fmt.Errorf("%s: %s", customer.Firma, errorReason(err))
		}
	}
	return nil
}

// promoteLead creates the customer, then best-effort retires the lead.
func (s *Service) promoteLead(ctx context.Context, lead LeadRecord) (CustomerRecord, error) {
	customer, err := s.customers.Insert(ctx, NewCustomerParams{
		Firma:   lead.Firma,
		Telefon: lead.Telefon,
		Sektor:  lead.Sektor,
		Sehir:   lead.Sehir,
		Hizmet:  "",
	})
	if err != nil {
		return CustomerRecord{}, apperr.Wrap(apperr.KindInternal, "failed to create customer", err)
	}

	if err := s.leads.MarkSold(ctx, lead.ID); err != nil {
		s.log.Warn("could not mark converted lead as sold",
			"lead_id", lead.ID, "error", err)
	}
	if err := s.leads.Delete(ctx, lead.ID); err != nil {
		s.log.Warn("converted lead left behind, needs manual cleanup",
			"lead_id", lead.ID, "customer_id", customer.ID, "error", err)
		s.publish(ctx, events.ConversionCleanupFailed{
			BaseEvent:     events.NewBaseEvent(),
			Direction:     transport.DirectionLeadToCustomer,
			SourceID:      lead.ID,
			DestinationID: customer.ID,
			Company:       lead.Firma,
			Reason:        err.Error(),
		})
	}

	s.publish(ctx, events.LeadConverted{
		BaseEvent:  events.NewBaseEvent(),
		LeadID:     lead.ID,
		CustomerID: customer.ID,
		Company:    lead.Firma,
	})
	return customer, nil
}

// demoteCustomer creates the lead, then best-effort retires the customer.
func (s *Service) demoteCustomer(ctx context.Context, customer CustomerRecord) (LeadRecord, error) {
	lead, err := s.leads.Insert(ctx, NewLeadParams{
		Firma:   customer.Firma,
		Telefon: customer.Telefon,
		Sektor:  customer.Sektor,
		Sehir:   customer.Sehir,
		Kaynak:  ConvertedKaynak,
	})
	if err != nil {
		return LeadRecord{}, apperr.Wrap(apperr.KindInternal, "failed to create lead", err)
	}

	if err := s.customers.Delete(ctx, customer.ID); err != nil {
		s.log.Warn("reverted customer left behind, needs manual cleanup",
			"customer_id", customer.ID, "lead_id", lead.ID, "error", err)
		s.publish(ctx, events.ConversionCleanupFailed{
			BaseEvent:     events.NewBaseEvent(),
			Direction:     transport.DirectionCustomerToLead,
			SourceID:      customer.ID,
			DestinationID: lead.ID,
			Company:       customer.Firma,
			Reason:        err.Error(),
		})
	}

	s.publish(ctx, events.CustomerReverted{
		BaseEvent:  events.NewBaseEvent(),
		CustomerID: customer.ID,
		LeadID:     lead.ID,
		Company:    customer.Firma,
	})
	return lead, nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, event)
}

func (s *Service) signalStale(ctx context.Context) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.ViewsStale{
		BaseEvent: events.NewBaseEvent(),
		Views:     []string{events.ViewLeads, events.ViewCustomers, events.ViewDashboard},
	})
}

func fetchReason(err error, notFoundMsg string) string {
	if errors.Is(err, ErrNotFound) {
		return notFoundMsg
	}
	return err.Error()
}

func errorReason(err error) string {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
