package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"crm_backend/platform/logger"

	"github.com/google/uuid"
)

// A fixed Wednesday at noon keeps all day-boundary math deterministic.
var testNow = time.Date(2025, time.March, 12, 12, 0, 0, 0, time.UTC)

func noLookup(ids []uuid.UUID) map[uuid.UUID]string {
	return map[uuid.UUID]string{}
}

func TestComputeEmptyCollections(t *testing.T) {
	bundle := compute(testNow, time.UTC, nil, nil, nil, nil, noLookup)

	if bundle.TotalLeads != 0 || bundle.TotalCustomers != 0 || bundle.TotalOffers != 0 {
		t.Fatalf("expected zero totals: %+v", bundle)
	}
	if bundle.ConversionRate != 0 {
		t.Fatalf("conversion rate must be 0 without leads, got %v", bundle.ConversionRate)
	}
	if len(bundle.DailyLeads) != 30 {
		t.Fatalf("expected 30 daily buckets, got %d", len(bundle.DailyLeads))
	}
	if len(bundle.WeeklyLeads) != 7 {
		t.Fatalf("expected 7 weekly buckets, got %d", len(bundle.WeeklyLeads))
	}
	for _, p := range bundle.DailyLeads {
		if p.Count != 0 {
			t.Fatalf("expected zero-count buckets: %+v", p)
		}
	}
	if bundle.TodayLeadsList == nil || bundle.PendingOffers == nil {
		t.Fatal("list fields must be empty slices, not nil")
	}
}

func TestComputeConversionRate(t *testing.T) {
	leads := make([]LeadSnapshot, 10)
	for i := range leads {
		leads[i] = LeadSnapshot{ID: uuid.New(), CreatedAt: testNow.AddDate(0, -2, 0)}
	}
	customers := make([]CustomerSnapshot, 3)
	for i := range customers {
		customers[i] = CustomerSnapshot{ID: uuid.New()}
	}

	bundle := compute(testNow, time.UTC, leads, customers, nil, nil, noLookup)
	if bundle.ConversionRate != 30.0 {
		t.Fatalf("expected 30.0, got %v", bundle.ConversionRate)
	}
}

func TestComputeConversionRateRounding(t *testing.T) {
	leads := make([]LeadSnapshot, 3)
	for i := range leads {
		leads[i] = LeadSnapshot{ID: uuid.New(), CreatedAt: testNow}
	}
	customers := []CustomerSnapshot{{ID: uuid.New()}}

	// 1/3 * 100 = 33.333... rounds to 33.3
	bundle := compute(testNow, time.UTC, leads, customers, nil, nil, noLookup)
	if bundle.ConversionRate != 33.3 {
		t.Fatalf("expected 33.3, got %v", bundle.ConversionRate)
	}
}

func TestComputeNewLeadsLast7Days(t *testing.T) {
	leads := []LeadSnapshot{
		{ID: uuid.New(), CreatedAt: testNow.AddDate(0, 0, -6)},
		{ID: uuid.New(), CreatedAt: testNow.AddDate(0, 0, -8)},
	}

	bundle := compute(testNow, time.UTC, leads, nil, nil, nil, noLookup)
	if bundle.NewLeadsLast7Days != 1 {
		t.Fatalf("expected 1 recent lead, got %d", bundle.NewLeadsLast7Days)
	}
}

func TestComputeStatusCountsMergesSynonyms(t *testing.T) {
	leads := []LeadSnapshot{
		{ID: uuid.New(), Durum: "Yeni", CreatedAt: testNow},
		{ID: uuid.New(), Durum: "Arandı", CreatedAt: testNow},
		{ID: uuid.New(), Durum: "Teklif", CreatedAt: testNow},
		{ID: uuid.New(), Durum: "Teklif Gönderildi", CreatedAt: testNow},
		{ID: uuid.New(), Durum: "Kazanıldı", CreatedAt: testNow},
		{ID: uuid.New(), Durum: "Satış Oldu", CreatedAt: testNow},
	}

	bundle := compute(testNow, time.UTC, leads, nil, nil, nil, noLookup)
	sc := bundle.StatusCounts
	if sc.Yeni != 1 || sc.Arandi != 1 || sc.Teklif != 2 || sc.Kazanildi != 2 {
		t.Fatalf("unexpected histogram: %+v", sc)
	}
}

func TestComputeTodayLeadsToCall(t *testing.T) {
	due := testNow.Add(-2 * time.Hour)
	future := testNow.AddDate(0, 0, 2)
	leads := []LeadSnapshot{
		{ID: uuid.New(), Firma: "Due", Durum: "Yeni", NextActionDate: &due, CreatedAt: testNow},
		{ID: uuid.New(), Firma: "Overdue", Durum: "Teklif Gönderildi", NextActionDate: &due, CreatedAt: testNow},
		{ID: uuid.New(), Firma: "Sold", Durum: "Satış Oldu", NextActionDate: &due, CreatedAt: testNow},
		{ID: uuid.New(), Firma: "Later", Durum: "Yeni", NextActionDate: &future, CreatedAt: testNow},
		{ID: uuid.New(), Firma: "NoDate", Durum: "Yeni", CreatedAt: testNow},
	}

	bundle := compute(testNow, time.UTC, leads, nil, nil, nil, noLookup)
	if bundle.TodayLeadsToCall != 2 {
		t.Fatalf("expected 2 due leads, got %d", bundle.TodayLeadsToCall)
	}
	if len(bundle.TodayLeadsList) != 2 {
		t.Fatalf("list must match the count: %+v", bundle.TodayLeadsList)
	}
}

func TestComputeTodayLeadsToCallIncludesTomorrowBoundary(t *testing.T) {
	// Date-only follow-ups land on midnight; a lead due exactly at the start
	// of tomorrow still belongs in today's call list.
	boundary := time.Date(2025, time.March, 13, 0, 0, 0, 0, time.UTC)
	past := boundary.Add(time.Minute)
	leads := []LeadSnapshot{
		{ID: uuid.New(), Firma: "AtBoundary", Durum: "Yeni", NextActionDate: &boundary, CreatedAt: testNow},
		{ID: uuid.New(), Firma: "PastBoundary", Durum: "Yeni", NextActionDate: &past, CreatedAt: testNow},
	}

	bundle := compute(testNow, time.UTC, leads, nil, nil, nil, noLookup)
	if bundle.TodayLeadsToCall != 1 {
		t.Fatalf("expected 1 due lead, got %d", bundle.TodayLeadsToCall)
	}
	if len(bundle.TodayLeadsList) != 1 || bundle.TodayLeadsList[0].Firma != "AtBoundary" {
		t.Fatalf("expected only the boundary lead: %+v", bundle.TodayLeadsList)
	}
}

func TestComputeOffersAcceptHistoricalCasing(t *testing.T) {
	offers := []OfferSnapshot{
		{ID: uuid.New(), MusteriID: uuid.New(), Durum: "Kabul Edildi", CreatedAt: testNow},
		{ID: uuid.New(), MusteriID: uuid.New(), Durum: "Kabul edildi", CreatedAt: testNow},
		{ID: uuid.New(), MusteriID: uuid.New(), Durum: "Gönderildi", CreatedAt: testNow.AddDate(0, -1, 0)},
	}

	bundle := compute(testNow, time.UTC, nil, nil, offers, nil, noLookup)
	if bundle.WonDeals != 2 {
		t.Fatalf("expected 2 won deals, got %d", bundle.WonDeals)
	}
	if bundle.WonDealsThisMonth != 2 {
		t.Fatalf("expected 2 won deals this month, got %d", bundle.WonDealsThisMonth)
	}
	if bundle.SentOffers != 1 {
		t.Fatalf("expected 1 sent offer, got %d", bundle.SentOffers)
	}
	if bundle.OffersThisMonth != 2 {
		t.Fatalf("expected 2 offers this month, got %d", bundle.OffersThisMonth)
	}
}

func TestComputePendingOffersEnrichment(t *testing.T) {
	known := uuid.New()
	missing := uuid.New()
	offers := []OfferSnapshot{
		{ID: uuid.New(), MusteriID: known, Durum: "Gönderildi", CreatedAt: testNow},
		{ID: uuid.New(), MusteriID: known, Durum: "Bekliyor", CreatedAt: testNow},
		{ID: uuid.New(), MusteriID: missing, Durum: "Beklemede", CreatedAt: testNow},
		{ID: uuid.New(), MusteriID: known, Durum: "Kabul Edildi", CreatedAt: testNow},
	}

	var lookupCalls int
	lookup := func(ids []uuid.UUID) map[uuid.UUID]string {
		lookupCalls++
		if len(ids) != 2 {
			t.Fatalf("expected 2 distinct ids, got %v", ids)
		}
		return map[uuid.UUID]string{known: "Acme Ltd"}
	}

	bundle := compute(testNow, time.UTC, nil, nil, offers, nil, lookup)
	if lookupCalls != 1 {
		t.Fatalf("name lookup must run exactly once, ran %d times", lookupCalls)
	}
	if len(bundle.PendingOffers) != 3 {
		t.Fatalf("expected 3 pending offers, got %d", len(bundle.PendingOffers))
	}
	for _, offer := range bundle.PendingOffers {
		switch offer.MusteriID {
		case known:
			if offer.CustomerName != "Acme Ltd" {
				t.Fatalf("expected enriched name, got %q", offer.CustomerName)
			}
		case missing:
			if offer.CustomerName != "Bilinmeyen" {
				t.Fatalf("expected fallback name, got %q", offer.CustomerName)
			}
		}
	}
}

func TestComputeDailySeries(t *testing.T) {
	leads := []LeadSnapshot{
		{ID: uuid.New(), CreatedAt: testNow},
		{ID: uuid.New(), CreatedAt: testNow.Add(-time.Hour)},
		{ID: uuid.New(), CreatedAt: testNow.AddDate(0, 0, -29)},
		{ID: uuid.New(), CreatedAt: testNow.AddDate(0, 0, -31)}, // outside window
	}

	bundle := compute(testNow, time.UTC, leads, nil, nil, nil, noLookup)
	series := bundle.DailyLeads
	if len(series) != 30 {
		t.Fatalf("expected 30 buckets, got %d", len(series))
	}
	if series[0].Date != "2025-02-11" || series[0].Count != 1 {
		t.Fatalf("oldest bucket wrong: %+v", series[0])
	}
	if series[29].Date != "2025-03-12" || series[29].Count != 2 {
		t.Fatalf("today bucket wrong: %+v", series[29])
	}
}

func TestComputeWeeklySeriesLabels(t *testing.T) {
	bundle := compute(testNow, time.UTC, nil, nil, nil, nil, noLookup)

	// testNow is a Wednesday, so the 7-day window runs Thursday..Wednesday.
	want := []string{"Per", "Cum", "Cmt", "Paz", "Pzt", "Sal", "Çar"}
	if len(bundle.WeeklyLeads) != len(want) {
		t.Fatalf("expected %d buckets, got %d", len(want), len(bundle.WeeklyLeads))
	}
	for i, p := range bundle.WeeklyLeads {
		if p.Date != want[i] {
			t.Fatalf("bucket %d: expected %q, got %q", i, want[i], p.Date)
		}
	}
}

func TestComputeTodayCalls(t *testing.T) {
	today := testNow.Add(3 * time.Hour)
	tomorrow := testNow.AddDate(0, 0, 1)
	notes := []NoteSnapshot{
		{ID: uuid.New(), DueDate: &today, CreatedAt: testNow.AddDate(0, 0, -5)},
		{ID: uuid.New(), DueDate: &tomorrow, CreatedAt: testNow},
		{ID: uuid.New(), CreatedAt: testNow}, // no due date, created today
		{ID: uuid.New(), CreatedAt: testNow.AddDate(0, 0, -1)},
	}

	bundle := compute(testNow, time.UTC, nil, nil, nil, notes, noLookup)
	if bundle.TodayCalls != 2 {
		t.Fatalf("expected 2 calls today, got %d", bundle.TodayCalls)
	}
}

func TestComputeSafeRecoversPanics(t *testing.T) {
	svc := New(nil, nil, nil, nil, nil, logger.New("development"))
	svc.SetLocation(time.UTC)

	panicking := func(ids []uuid.UUID) map[uuid.UUID]string {
		panic("boom")
	}
	offers := []OfferSnapshot{{ID: uuid.New(), MusteriID: uuid.New(), Durum: "Bekliyor", CreatedAt: testNow}}

	bundle := svc.computeSafe(testNow, nil, nil, offers, nil, panicking)
	if len(bundle.DailyLeads) != 30 || len(bundle.WeeklyLeads) != 7 {
		t.Fatalf("zero bundle must carry full series: %+v", bundle)
	}
	if bundle.TotalOffers != 0 || len(bundle.PendingOffers) != 0 {
		t.Fatalf("zero bundle must be empty: %+v", bundle)
	}
}

type stubLeadSource struct {
	rows []LeadSnapshot
	err  error
}

func (s stubLeadSource) ListAll(context.Context) ([]LeadSnapshot, error) { return s.rows, s.err }

type stubCustomerSource struct {
	rows []CustomerSnapshot
	err  error
}

func (s stubCustomerSource) ListAll(context.Context) ([]CustomerSnapshot, error) {
	return s.rows, s.err
}

type stubOfferSource struct {
	rows []OfferSnapshot
	err  error
}

func (s stubOfferSource) ListAll(context.Context) ([]OfferSnapshot, error) { return s.rows, s.err }

type stubNoteSource struct {
	rows []NoteSnapshot
	err  error
}

func (s stubNoteSource) ListAll(context.Context) ([]NoteSnapshot, error) { return s.rows, s.err }

type stubNameLookup struct{}

func (stubNameLookup) NamesByIDs(context.Context, []uuid.UUID) (map[uuid.UUID]string, error) {
	return map[uuid.UUID]string{}, nil
}

func TestStatsDegradesBrokenSources(t *testing.T) {
	leads := stubLeadSource{rows: []LeadSnapshot{
		{ID: uuid.New(), Durum: "Yeni", CreatedAt: time.Now()},
	}}
	customers := stubCustomerSource{err: errors.New("connection refused")}

	svc := New(leads, customers, stubOfferSource{}, stubNoteSource{}, stubNameLookup{}, logger.New("development"))
	svc.SetLocation(time.UTC)

	bundle := svc.Stats(context.Background())
	if bundle.TotalLeads != 1 {
		t.Fatalf("healthy source must still be counted: %+v", bundle)
	}
	if bundle.TotalCustomers != 0 {
		t.Fatalf("broken source must degrade to empty: %+v", bundle)
	}
	if bundle.ConversionRate != 0 {
		t.Fatalf("expected 0 rate with no customers, got %v", bundle.ConversionRate)
	}
}
