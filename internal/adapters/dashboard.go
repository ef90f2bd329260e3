package adapters

import (
	"context"

	customerrepo "crm_backend/internal/customers/repository"
	dashboard "crm_backend/internal/dashboard/service"
	leadrepo "crm_backend/internal/leads/repository"
	noterepo "crm_backend/internal/notes/repository"
	offerrepo "crm_backend/internal/offers/repository"

	"github.com/google/uuid"
)

// DashboardLeadSource adapts the lead repository to dashboard.LeadSource.
type DashboardLeadSource struct {
	repo *leadrepo.Repository
}

func NewDashboardLeadSource(repo *leadrepo.Repository) *DashboardLeadSource {
	return &DashboardLeadSource{repo: repo}
}

func (a *DashboardLeadSource) ListAll(ctx context.Context) ([]dashboard.LeadSnapshot, error) {
	leads, err := a.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	snapshots := make([]dashboard.LeadSnapshot, len(leads))
	for i, lead := range leads {
		snapshots[i] = dashboard.LeadSnapshot{
			ID:             lead.ID,
			Firma:          lead.Firma,
			Telefon:        lead.Telefon,
			Sektor:         lead.Sektor,
			Sehir:          lead.Sehir,
			Durum:          string(lead.Durum),
			NextActionDate: lead.NextActionDate,
			CreatedAt:      lead.CreatedAt,
		}
	}
	return snapshots, nil
}

// DashboardCustomerSource adapts the customer repository to
// dashboard.CustomerSource and dashboard.CustomerNameLookup.
type DashboardCustomerSource struct {
	repo *customerrepo.Repository
}

func NewDashboardCustomerSource(repo *customerrepo.Repository) *DashboardCustomerSource {
	return &DashboardCustomerSource{repo: repo}
}

func (a *DashboardCustomerSource) ListAll(ctx context.Context) ([]dashboard.CustomerSnapshot, error) {
	customers, err := a.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	snapshots := make([]dashboard.CustomerSnapshot, len(customers))
	for i, customer := range customers {
		snapshots[i] = dashboard.CustomerSnapshot{ID: customer.ID}
	}
	return snapshots, nil
}

func (a *DashboardCustomerSource) NamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	return a.repo.GetNamesByIDs(ctx, ids)
}

// DashboardOfferSource adapts the offer repository to dashboard.OfferSource.
type DashboardOfferSource struct {
	repo *offerrepo.Repository
}

func NewDashboardOfferSource(repo *offerrepo.Repository) *DashboardOfferSource {
	return &DashboardOfferSource{repo: repo}
}

func (a *DashboardOfferSource) ListAll(ctx context.Context) ([]dashboard.OfferSnapshot, error) {
	offers, err := a.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	snapshots := make([]dashboard.OfferSnapshot, len(offers))
	for i, offer := range offers {
		snapshots[i] = dashboard.OfferSnapshot{
			ID:         offer.ID,
			MusteriID:  offer.MusteriID,
			Hizmet:     offer.Hizmet,
			Tutar:      offer.Tutar,
			ParaBirimi: offer.ParaBirimi,
			Durum:      string(offer.Durum),
			CreatedAt:  offer.CreatedAt,
		}
	}
	return snapshots, nil
}

// DashboardNoteSource adapts the note repository to dashboard.NoteSource.
type DashboardNoteSource struct {
	repo *noterepo.Repository
}

func NewDashboardNoteSource(repo *noterepo.Repository) *DashboardNoteSource {
	return &DashboardNoteSource{repo: repo}
}

func (a *DashboardNoteSource) ListAll(ctx context.Context) ([]dashboard.NoteSnapshot, error) {
	notes, err := a.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	snapshots := make([]dashboard.NoteSnapshot, len(notes))
	for i, note := range notes {
		snapshots[i] = dashboard.NoteSnapshot{
			ID:        note.ID,
			DueDate:   note.DueDate,
			CreatedAt: note.CreatedAt,
		}
	}
	return snapshots, nil
}

// Compile-time port checks.
var (
	_ dashboard.LeadSource         = (*DashboardLeadSource)(nil)
	_ dashboard.CustomerSource     = (*DashboardCustomerSource)(nil)
	_ dashboard.CustomerNameLookup = (*DashboardCustomerSource)(nil)
	_ dashboard.OfferSource        = (*DashboardOfferSource)(nil)
	_ dashboard.NoteSource         = (*DashboardNoteSource)(nil)
)
