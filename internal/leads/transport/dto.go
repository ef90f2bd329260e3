package transport

import (
	"time"

	"github.com/google/uuid"
)

// Field names mirror the legacy table columns so the existing dashboard UI
// can consume responses unchanged.

type CreateLeadRequest struct {
	Firma          string     `json:"firma" validate:"required,min=1,max=200"`
	Telefon        string     `json:"telefon" validate:"required,min=3,max=30"`
	Sektor         *string    `json:"sektor" validate:"omitempty,max=100"`
	Sehir          *string    `json:"sehir" validate:"omitempty,max=100"`
	Kaynak         string     `json:"kaynak" validate:"omitempty,max=100"`
	Durum          string     `json:"durum" validate:"omitempty,max=50"`
	NextActionDate *time.Time `json:"next_action_date"`
}

type UpdateLeadRequest struct {
	Firma   string  `json:"firma" validate:"required,min=1,max=200"`
	Telefon string  `json:"telefon" validate:"required,min=3,max=30"`
	Sektor  *string `json:"sektor" validate:"omitempty,max=100"`
	Sehir   *string `json:"sehir" validate:"omitempty,max=100"`
	Kaynak  string  `json:"kaynak" validate:"omitempty,max=100"`
	Durum   string  `json:"durum" validate:"omitempty,max=50"`
}

type UpdateLeadStatusRequest struct {
	Durum string `json:"durum" validate:"required,max=50"`
}

type UpdateNextActionRequest struct {
	// Null clears the follow-up date.
	NextActionDate *time.Time `json:"next_action_date"`
}

type ScanLeadsRequest struct {
	City   string `json:"city" validate:"required,min=1,max=100"`
	Sector string `json:"sector" validate:"required,min=1,max=100"`
}

type LeadResponse struct {
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

type LeadListResponse struct {
	Items []LeadResponse `json:"items"`
}
