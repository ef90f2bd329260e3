// Package transport defines request/response DTOs for the conversion API.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// Conversion directions accepted by the bulk endpoint.
const (
	DirectionLeadToCustomer = "lead_to_customer"
	DirectionCustomerToLead = "customer_to_lead"
)

type BulkConvertRequest struct {
	IDs       []string `json:"ids" validate:"required,min=1,dive,uuid"`
	Direction string   `json:"direction" validate:"required,oneof=lead_to_customer customer_to_lead"`
}

// BulkResult reports a batch outcome. Partial failures are not an error;
// the caller surfaces the per-item messages.
type BulkResult struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

// ConvertedCustomerResponse is the customer created by a lead conversion.
type ConvertedCustomerResponse struct {
	ID          uuid.UUID `json:"id"`
	Firma       string    `json:"firma"`
	Telefon     string    `json:"telefon"`
	Sektor      *string   `json:"sektor"`
	Sehir       *string   `json:"sehir"`
	Hizmet      string    `json:"hizmet"`
	OdemeDurumu string    `json:"odeme_durumu"`
	CreatedAt   time.Time `json:"created_at"`
}

// ConvertedLeadResponse is the lead created by a customer conversion.
type ConvertedLeadResponse struct {
	ID             uuid.UUID  `json:"id"`
	Firma          string     `json:"firma"`
	Telefon        string     `json:"telefon"`
	Sektor         *string    `json:"sektor"`
	Sehir          *string    `json:"sehir"`
	Kaynak         string     `json:"kaynak"`
	Durum          string     `json:"durum"`
	NextActionDate *time.Time `json:"next_action_date"`
	CreatedAt      time.Time  `json:"created_at"`
}
