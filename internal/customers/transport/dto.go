package transport

import (
	"time"

	"github.com/google/uuid"
)

type CreateCustomerRequest struct {
	Firma       string  `json:"firma" validate:"required,min=1,max=200"`
	Telefon     string  `json:"telefon" validate:"required,min=3,max=30"`
	Sektor      *string `json:"sektor" validate:"omitempty,max=100"`
	Sehir       *string `json:"sehir" validate:"omitempty,max=100"`
	Hizmet      string  `json:"hizmet" validate:"omitempty,max=500"`
	OdemeDurumu string  `json:"odeme_durumu" validate:"omitempty,max=50"`
}

type UpdateCustomerRequest struct {
	Firma       string  `json:"firma" validate:"required,min=1,max=200"`
	Telefon     string  `json:"telefon" validate:"required,min=3,max=30"`
	Sektor      *string `json:"sektor" validate:"omitempty,max=100"`
	Sehir       *string `json:"sehir" validate:"omitempty,max=100"`
	Hizmet      string  `json:"hizmet" validate:"omitempty,max=500"`
	OdemeDurumu string  `json:"odeme_durumu" validate:"required,max=50"`
}

type CustomerResponse struct {
	ID          uuid.UUID `json:"id"`
	Firma       string    `json:"firma"`
	Telefon     string    `json:"telefon"`
	Sektor      *string   `json:"sektor"`
	Sehir       *string   `json:"sehir"`
	Hizmet      string    `json:"hizmet"`
	OdemeDurumu string    `json:"odeme_durumu"`
	CreatedAt   time.Time `json:"created_at"`
}

type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
}
