// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"crm_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var (
	NewBaseEvent   = events.NewBaseEvent
	NewInMemoryBus = events.NewInMemoryBus
)

// Logical view identifiers used by ViewsStale events.
const (
	ViewLeads     = "leads"
	ViewCustomers = "customers"
	ViewOffers    = "offers"
	ViewNotes     = "notes"
	ViewDashboard = "dashboard"
)

// ViewsStale is published after any write so the presentation layer knows
// which cached views need a re-fetch.
type ViewsStale struct {
	BaseEvent
	Views []string `json:"views"`
}

func (e ViewsStale) EventName() string { return "crm.views.stale" }

// LeadConverted is published when a lead has been converted into a customer.
type LeadConverted struct {
	BaseEvent
	LeadID     uuid.UUID `json:"leadId"`
	CustomerID uuid.UUID `json:"customerId"`
	Company    string    `json:"company"`
}

func (e LeadConverted) EventName() string { return "crm.lead.converted" }

// CustomerReverted is published when a customer has been converted back
// into a lead.
type CustomerReverted struct {
	BaseEvent
	CustomerID uuid.UUID `json:"customerId"`
	LeadID     uuid.UUID `json:"leadId"`
	Company    string    `json:"company"`
}

func (e CustomerReverted) EventName() string { return "crm.customer.reverted" }

// ConversionCleanupFailed is published when the destination record of a
// conversion was created but the source record could not be removed.
// The prospect is temporarily represented in both collections until someone
// reconciles by hand.
type ConversionCleanupFailed struct {
	BaseEvent
	Direction     string    `json:"direction"`
	SourceID      uuid.UUID `json:"sourceId"`
	DestinationID uuid.UUID `json:"destinationId"`
	Company       string    `json:"company"`
	Reason        string    `json:"reason"`
}

func (e ConversionCleanupFailed) EventName() string { return "crm.conversion.cleanup_failed" }
