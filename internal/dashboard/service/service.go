// Package service implements the dashboard aggregation engine: four entity
// snapshots are fetched concurrently and reduced in memory to a statistics
// bundle. The engine never fails; broken sources degrade to empty data.
package service

import (
	"context"
	"math"
	"strings"
	"time"

	"crm_backend/internal/dashboard/transport"
	"crm_backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// unknownCustomerName is attached to pending offers whose customer is gone.
const unknownCustomerName = "Bilinmeyen"

const (
	dailySeriesDays  = 30
	weeklySeriesDays = 7
)

// turkishWeekdays maps Go weekdays to the short labels the dashboard shows.
var turkishWeekdays = map[time.Weekday]string{
	time.Monday:    "Pzt",
	time.Tuesday:   "Sal",
	time.Wednesday: "Çar",
	time.Thursday:  "Per",
	time.Friday:    "Cum",
	time.Saturday:  "Cmt",
	time.Sunday:    "Paz",
}

// LeadSnapshot is the aggregation view of a lead.
type LeadSnapshot struct {
	ID             uuid.UUID
	Firma          string
	Telefon        string
	Sektor         *string
	Sehir          *string
	Durum          string
	NextActionDate *time.Time
	CreatedAt      time.Time
}

// CustomerSnapshot is the aggregation view of a customer.
type CustomerSnapshot struct {
	ID uuid.UUID
}

// OfferSnapshot is the aggregation view of an offer.
type OfferSnapshot struct {
	ID         uuid.UUID
	MusteriID  uuid.UUID
	Hizmet     string
	Tutar      float64
	ParaBirimi string
	Durum      string
	CreatedAt  time.Time
}

// NoteSnapshot is the aggregation view of a note.
type NoteSnapshot struct {
	ID        uuid.UUID
	DueDate   *time.Time
	CreatedAt time.Time
}

type LeadSource interface {
	ListAll(ctx context.Context) ([]LeadSnapshot, error)
}

type CustomerSource interface {
	ListAll(ctx context.Context) ([]CustomerSnapshot, error)
}

type OfferSource interface {
	ListAll(ctx context.Context) ([]OfferSnapshot, error)
}

type NoteSource interface {
	ListAll(ctx context.Context) ([]NoteSnapshot, error)
}

// CustomerNameLookup resolves customer ids to company names in one batch.
type CustomerNameLookup interface {
	NamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

// nameLookupFunc keeps compute free of I/O concerns; the service wraps the
// port into a closure that already handles errors.
type nameLookupFunc func(ids []uuid.UUID) map[uuid.UUID]string

// Service computes dashboard statistics.
type Service struct {
	leads     LeadSource
	customers CustomerSource
	offers    OfferSource
	notes     NoteSource
	names     CustomerNameLookup
	log       *logger.Logger
	loc       *time.Location
}

// New creates a new dashboard service. Day boundaries use the local timezone.
func New(leads LeadSource, customers CustomerSource, offers OfferSource, notes NoteSource, names CustomerNameLookup, log *logger.Logger) *Service {
	return &Service{
		leads:     leads,
		customers: customers,
		offers:    offers,
		notes:     notes,
		names:     names,
		log:       log,
		loc:       time.Local,
	}
}

// SetLocation overrides the timezone used for day boundaries.
func (s *Service) SetLocation(loc *time.Location) {
	s.loc = loc
}

// Stats fetches the four snapshots concurrently and reduces them to a
// bundle. It never returns an error: broken fetches degrade to empty
// collections and an unexpected panic yields the canonical zero bundle.
func (s *Service) Stats(ctx context.Context) transport.StatsBundle {
	var (
		leads     []LeadSnapshot
		customers []CustomerSnapshot
		offers    []OfferSnapshot
		notes     []NoteSnapshot
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.leads.ListAll(gctx)
		if err != nil {
			s.log.Error("dashboard lead snapshot failed", "error", err)
			return nil
		}
		leads = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.customers.ListAll(gctx)
		if err != nil {
			s.log.Error("dashboard customer snapshot failed", "error", err)
			return nil
		}
		customers = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.offers.ListAll(gctx)
		if err != nil {
			s.log.Error("dashboard offer snapshot failed", "error", err)
			return nil
		}
		offers = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.notes.ListAll(gctx)
		if err != nil {
			s.log.Error("dashboard note snapshot failed", "error", err)
			return nil
		}
		notes = rows
		return nil
	})
	// The goroutines swallow their own errors, Wait cannot fail.
	_ = g.Wait()

	lookup := func(ids []uuid.UUID) map[uuid.UUID]string {
		names, err := s.names.NamesByIDs(ctx, ids)
		if err != nil {
			s.log.Error("dashboard customer name lookup failed", "error", err)
			return map[uuid.UUID]string{}
		}
		return names
	}

	return s.computeSafe(time.Now(), leads, customers, offers, notes, lookup)
}

func (s *Service) computeSafe(now time.Time, leads []LeadSnapshot, customers []CustomerSnapshot, offers []OfferSnapshot, notes []NoteSnapshot, lookup nameLookupFunc) (bundle transport.StatsBundle) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("dashboard computation panicked", "panic", r)
			bundle = zeroBundle(now, s.loc)
		}
	}()
	return compute(now, s.loc, leads, customers, offers, notes, lookup)
}

// compute derives every dashboard metric from the snapshots. All time
// windows are anchored on the same reference instant so they stay mutually
// consistent.
func compute(now time.Time, loc *time.Location, leads []LeadSnapshot, customers []CustomerSnapshot, offers []OfferSnapshot, notes []NoteSnapshot, lookup nameLookupFunc) transport.StatsBundle {
	now = now.In(loc)
	year, month, day := now.Date()
	startOfToday := time.Date(year, month, day, 0, 0, 0, 0, loc)
	startOfTomorrow := startOfToday.AddDate(0, 0, 1)
	startOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	sevenDaysAgo := now.AddDate(0, 0, -7)

	bundle := transport.StatsBundle{
		TodayLeadsList: make([]transport.TodayLead, 0),
		PendingOffers:  make([]transport.PendingOffer, 0),
		TotalLeads:     len(leads),
		TotalCustomers: len(customers),
		TotalOffers:    len(offers),
	}

	dailyByDay := make(map[string]int)
	for _, lead := range leads {
		created := lead.CreatedAt.In(loc)
		dailyByDay[created.Format("2006-01-02")]++

		if !created.Before(sevenDaysAgo) {
			bundle.NewLeadsLast7Days++
		}

		switch {
		case statusIs(lead.Durum, "Yeni"):
			bundle.StatusCounts.Yeni++
		case statusIs(lead.Durum, "Arandı"):
			bundle.StatusCounts.Arandi++
		case statusIs(lead.Durum, "Teklif"), statusIs(lead.Durum, "Teklif Gönderildi"):
			bundle.StatusCounts.Teklif++
		case statusIs(lead.Durum, "Kazanıldı"), statusIs(lead.Durum, "Satış Oldu"):
			bundle.StatusCounts.Kazanildi++
		}

		if needsContact(lead.Durum) && lead.NextActionDate != nil && !lead.NextActionDate.After(startOfTomorrow) {
			bundle.TodayLeadsToCall++
			bundle.TodayLeadsList = append(bundle.TodayLeadsList, transport.TodayLead{
				ID:             lead.ID,
				Firma:          lead.Firma,
				Telefon:        lead.Telefon,
				Sektor:         lead.Sektor,
				Sehir:          lead.Sehir,
				Durum:          lead.Durum,
				NextActionDate: lead.NextActionDate,
			})
		}
	}

	bundle.DailyLeads = buildSeries(startOfToday, dailySeriesDays, dailyByDay, isoLabel)
	bundle.WeeklyLeads = buildSeries(startOfToday, weeklySeriesDays, dailyByDay, weekdayLabel)

	var pending []OfferSnapshot
	for _, offer := range offers {
		created := offer.CreatedAt.In(loc)
		inMonth := !created.Before(startOfMonth)
		if inMonth {
			bundle.OffersThisMonth++
		}
		if statusIs(offer.Durum, "Kabul Edildi") {
			bundle.WonDeals++
			if inMonth {
				bundle.WonDealsThisMonth++
			}
		}
		if statusIs(offer.Durum, "Gönderildi") {
			bundle.SentOffers++
		}
		if statusIs(offer.Durum, "Gönderildi") || statusIs(offer.Durum, "Bekliyor") || statusIs(offer.Durum, "Beklemede") {
			pending = append(pending, offer)
		}
	}
	bundle.PendingOffers = enrichPendingOffers(pending, lookup)

	for _, note := range notes {
		when := note.CreatedAt
		if note.DueDate != nil {
			when = *note.DueDate
		}
		local := when.In(loc)
		if !local.Before(startOfToday) && local.Before(startOfTomorrow) {
			bundle.TodayCalls++
		}
	}

	if len(leads) > 0 {
		rate := float64(len(customers)) / float64(len(leads)) * 100
		bundle.ConversionRate = math.Round(rate*10) / 10
	}

	return bundle
}

// needsContact reports whether the lead status implies the prospect still
// awaits a call.
func needsContact(durum string) bool {
	return statusIs(durum, "Yeni") || statusIs(durum, "Arandı") || statusIs(durum, "Teklif Gönderildi")
}

func statusIs(durum, literal string) bool {
	return strings.EqualFold(strings.TrimSpace(durum), literal)
}

// enrichPendingOffers attaches customer company names via one batch lookup.
func enrichPendingOffers(pending []OfferSnapshot, lookup nameLookupFunc) []transport.PendingOffer {
	enriched := make([]transport.PendingOffer, 0, len(pending))
	if len(pending) == 0 {
		return enriched
	}

	seen := make(map[uuid.UUID]struct{}, len(pending))
	ids := make([]uuid.UUID, 0, len(pending))
	for _, offer := range pending {
		if _, ok := seen[offer.MusteriID]; ok {
			continue
		}
		seen[offer.MusteriID] = struct{}{}
		ids = append(ids, offer.MusteriID)
	}
	names := lookup(ids)

	for _, offer := range pending {
		name, ok := names[offer.MusteriID]
		if !ok || name == "" {
			name = unknownCustomerName
		}
		enriched = append(enriched, transport.PendingOffer{
			ID:           offer.ID,
			MusteriID:    offer.MusteriID,
			Hizmet:       offer.Hizmet,
			Tutar:        offer.Tutar,
			ParaBirimi:   offer.ParaBirimi,
			Durum:        offer.Durum,
			CustomerName: name,
			CreatedAt:    offer.CreatedAt,
		})
	}
	return enriched
}

func buildSeries(startOfToday time.Time, days int, countsByDay map[string]int, label func(time.Time) string) []transport.SeriesPoint {
	series := make([]transport.SeriesPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		bucket := startOfToday.AddDate(0, 0, -i)
		series = append(series, transport.SeriesPoint{
			Date:  label(bucket),
			Count: countsByDay[bucket.Format("2006-01-02")],
		})
	}
	return series
}

func isoLabel(day time.Time) string { return day.Format("2006-01-02") }

func weekdayLabel(day time.Time) string { return turkishWeekdays[day.Weekday()] }

// zeroBundle is the canonical empty payload: zero counters and fully
// populated zero-count series so the charts still render.
func zeroBundle(now time.Time, loc *time.Location) transport.StatsBundle {
	now = now.In(loc)
	year, month, day := now.Date()
	startOfToday := time.Date(year, month, day, 0, 0, 0, 0, loc)
	empty := map[string]int{}

	return transport.StatsBundle{
		TodayLeadsList: make([]transport.TodayLead, 0),
		PendingOffers:  make([]transport.PendingOffer, 0),
		DailyLeads:     buildSeries(startOfToday, dailySeriesDays, empty, isoLabel),
		WeeklyLeads:    buildSeries(startOfToday, weeklySeriesDays, empty, weekdayLabel),
	}
}
