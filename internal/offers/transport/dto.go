package transport

import (
	"time"

	"github.com/google/uuid"
)

type CreateOfferRequest struct {
	MusteriID  string  `json:"musteri_id" validate:"required,uuid"`
	Hizmet     string  `json:"hizmet" validate:"required,min=1,max=500"`
	Tutar      float64 `json:"tutar" validate:"required,gt=0"`
	ParaBirimi string  `json:"para_birimi" validate:"omitempty,max=10"`
	Not        *string `json:"not" validate:"omitempty,max=1000"`
}

type UpdateOfferRequest struct {
	MusteriID  string  `json:"musteri_id" validate:"required,uuid"`
	Hizmet     string  `json:"hizmet" validate:"required,min=1,max=500"`
	Tutar      float64 `json:"tutar" validate:"required,gt=0"`
	ParaBirimi string  `json:"para_birimi" validate:"required,max=10"`
	Durum      string  `json:"durum" validate:"required,max=50"`
	Not        *string `json:"not" validate:"omitempty,max=1000"`
}

type OfferResponse struct {
	ID         uuid.UUID `json:"id"`
	MusteriID  uuid.UUID `json:"musteri_id"`
	Hizmet     string    `json:"hizmet"`
	Tutar      float64   `json:"tutar"`
	ParaBirimi string    `json:"para_birimi"`
	Durum      string    `json:"durum"`
	Not        *string   `json:"not"`
	CreatedAt  time.Time `json:"created_at"`
}

// OfferListItem includes the owning customer's display fields.
type OfferListItem struct {
	OfferResponse
	CustomerFirma   *string `json:"customer_firma"`
	CustomerTelefon *string `json:"customer_telefon"`
}

type OfferListResponse struct {
	Items []OfferListItem `json:"items"`
}
