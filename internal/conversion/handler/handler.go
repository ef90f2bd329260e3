package handler

import (
	"net/http"

	"crm_backend/internal/conversion/service"
	"crm_backend/internal/conversion/transport"
	"crm_backend/platform/httpkit"
	"crm_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for conversions.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new conversion handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the conversion routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/leads/:id", h.ConvertLead)
	rg.POST("/customers/:id", h.ConvertCustomer)
	rg.POST("/bulk", h.ConvertBulk)
}

func (h *Handler) ConvertLead(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	customer, err := h.svc.ConvertLeadToCustomer(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Data(c, toCustomerResponse(customer))
}

func (h *Handler) ConvertCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	lead, err := h.svc.ConvertCustomerToLead(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Data(c, toLeadResponse(lead))
}

func (h *Handler) ConvertBulk(c *gin.Context) {
	var req transport.BulkConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
			return
		}
		ids = append(ids, id)
	}

	result, err := h.svc.ConvertBulk(c.Request.Context(), ids, req.Direction)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Data(c, result)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return uuid.Nil, false
	}
	return id, true
}

func toCustomerResponse(customer service.CustomerRecord) transport.ConvertedCustomerResponse {
	return transport.ConvertedCustomerResponse{
		ID:          customer.ID,
		Firma:       customer.Firma,
		Telefon:     customer.Telefon,
		Sektor:      customer.Sektor,
		Sehir:       customer.Sehir,
		Hizmet:      customer.Hizmet,
		OdemeDurumu: customer.OdemeDurumu,
		CreatedAt:   customer.CreatedAt,
	}
}

func toLeadResponse(lead service.LeadRecord) transport.ConvertedLeadResponse {
	return transport.ConvertedLeadResponse{
		ID:             lead.ID,
		Firma:          lead.Firma,
		Telefon:        lead.Telefon,
		Sektor:         lead.Sektor,
		Sehir:          lead.Sehir,
		Kaynak:         lead.Kaynak,
		Durum:          lead.Durum,
		NextActionDate: lead.NextActionDate,
		CreatedAt:      lead.CreatedAt,
	}
}
