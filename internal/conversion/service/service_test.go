package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"crm_backend/internal/conversion/transport"
	"crm_backend/internal/events"
	"crm_backend/platform/apperr"
	"crm_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeLeadStore struct {
	leads     map[uuid.UUID]LeadRecord
	insertErr error
	deleteErr error
	markErr   error
	marked    []uuid.UUID
	deleted   []uuid.UUID
	inserted  []NewLeadParams
	getCalls  int
}

func newFakeLeadStore(leads ...LeadRecord) *fakeLeadStore {
	s := &fakeLeadStore{leads: make(map[uuid.UUID]LeadRecord)}
	for _, l := range leads {
		s.leads[l.ID] = l
	}
	return s
}

func (s *fakeLeadStore) Get(_ context.Context, id uuid.UUID) (LeadRecord, error) {
	s.getCalls++
	lead, ok := s.leads[id]
	if !ok {
		return LeadRecord{}, ErrNotFound
	}
	return lead, nil
}

func (s *fakeLeadStore) Insert(_ context.Context, params NewLeadParams) (LeadRecord, error) {
	if s.insertErr != nil {
		return LeadRecord{}, s.insertErr
	}
	s.inserted = append(s.inserted, params)
	lead := LeadRecord{
		ID:      uuid.New(),
		Firma:   params.Firma,
		Telefon: params.Telefon,
		Sektor:  params.Sektor,
		Sehir:   params.Sehir,
		Kaynak:  params.Kaynak,
		Durum:   "Yeni",
	}
	s.leads[lead.ID] = lead
	return lead, nil
}

func (s *fakeLeadStore) MarkSold(_ context.Context, id uuid.UUID) error {
	if s.markErr != nil {
		return s.markErr
	}
	s.marked = append(s.marked, id)
	return nil
}

func (s *fakeLeadStore) Delete(_ context.Context, id uuid.UUID) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	delete(s.leads, id)
	return nil
}

type fakeCustomerStore struct {
	customers map[uuid.UUID]CustomerRecord
	insertErr error
	deleteErr error
	deleted   []uuid.UUID
	inserted  []NewCustomerParams
}

func newFakeCustomerStore(customers ...CustomerRecord) *fakeCustomerStore {
	s := &fakeCustomerStore{customers: make(map[uuid.UUID]CustomerRecord)}
	for _, c := range customers {
		s.customers[c.ID] = c
	}
	return s
}

func (s *fakeCustomerStore) Get(_ context.Context, id uuid.UUID) (CustomerRecord, error) {
	customer, ok := s.customers[id]
	if !ok {
		return CustomerRecord{}, ErrNotFound
	}
	return customer, nil
}

func (s *fakeCustomerStore) Insert(_ context.Context, params NewCustomerParams) (CustomerRecord, error) {
	if s.insertErr != nil {
		return CustomerRecord{}, s.insertErr
	}
	s.inserted = append(s.inserted, params)
	customer := CustomerRecord{
		ID:          uuid.New(),
		Firma:       params.Firma,
		Telefon:     params.Telefon,
		Sektor:      params.Sektor,
		Sehir:       params.Sehir,
		Hizmet:      params.Hizmet,
		OdemeDurumu: "Beklemede",
	}
	s.customers[customer.ID] = customer
	return customer, nil
}

func (s *fakeCustomerStore) Delete(_ context.Context, id uuid.UUID) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	delete(s.customers, id)
	return nil
}

type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(_ context.Context, event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) PublishSync(ctx context.Context, event events.Event) error {
	b.Publish(ctx, event)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func (b *recordingBus) countByName(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, e := range b.events {
		if e.EventName() == name {
			n++
		}
	}
	return n
}

func newTestService(leads *fakeLeadStore, customers *fakeCustomerStore) (*Service, *recordingBus) {
	svc := New(leads, customers, logger.New("development"))
	bus := &recordingBus{}
	svc.SetEventBus(bus)
	return svc, bus
}

func strPtr(s string) *string { return &s }

func TestConvertLeadToCustomer(t *testing.T) {
	lead := LeadRecord{
		ID:      uuid.New(),
		Firma:   "Acme Ltd",
		Telefon: "+905551112233",
		Sektor:  strPtr("İnşaat"),
		Sehir:   strPtr("Ankara"),
	}
	leads := newFakeLeadStore(lead)
	customers := newFakeCustomerStore()
	svc, bus := newTestService(leads, customers)

	customer, err := svc.ConvertLeadToCustomer(context.Background(), lead.ID)
	if err != nil {
		t.Fatalf("ConvertLeadToCustomer: %v", err)
	}
	if customer.Firma != "Acme Ltd" || customer.Telefon != "+905551112233" {
		t.Fatalf("customer fields not carried over: %+v", customer)
	}
	if customer.Hizmet != "" {
		t.Fatalf("expected empty hizmet, got %q", customer.Hizmet)
	}
	if len(leads.marked) != 1 || leads.marked[0] != lead.ID {
		t.Fatalf("lead was not marked sold: %v", leads.marked)
	}
	if len(leads.deleted) != 1 || leads.deleted[0] != lead.ID {
		t.Fatalf("lead was not deleted: %v", leads.deleted)
	}
	if got := bus.countByName("crm.lead.converted"); got != 1 {
		t.Fatalf("expected 1 LeadConverted event, got %d", got)
	}
	if got := bus.countByName("crm.views.stale"); got != 1 {
		t.Fatalf("expected 1 stale-views event, got %d", got)
	}
}

func TestConvertLeadToCustomerNotFound(t *testing.T) {
	svc, _ := newTestService(newFakeLeadStore(), newFakeCustomerStore())

	_, err := svc.ConvertLeadToCustomer(context.Background(), uuid.New())
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestConvertLeadToCustomerTwiceYieldsNotFound(t *testing.T) {
	lead := LeadRecord{ID: uuid.New(), Firma: "Acme Ltd", Telefon: "+905551112233"}
	leads := newFakeLeadStore(lead)
	customers := newFakeCustomerStore()
	svc, _ := newTestService(leads, customers)

	if _, err := svc.ConvertLeadToCustomer(context.Background(), lead.ID); err != nil {
		t.Fatalf("first conversion: %v", err)
	}

	// The source row is gone after the first conversion; repeating the call
	// must fail instead of minting a duplicate customer.
	_, err := svc.ConvertLeadToCustomer(context.Background(), lead.ID)
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected NotFound on repeat conversion, got %v", err)
	}
	if len(customers.inserted) != 1 {
		t.Fatalf("expected exactly 1 customer insert, got %d", len(customers.inserted))
	}
}

func TestConvertLeadToCustomerInsertFailureAborts(t *testing.T) {
	lead := LeadRecord{ID: uuid.New(), Firma: "Acme"}
	leads := newFakeLeadStore(lead)
	customers := newFakeCustomerStore()
	customers.insertErr = errors.New("insert failed")
	svc, bus := newTestService(leads, customers)

	_, err := svc.ConvertLeadToCustomer(context.Background(), lead.ID)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(leads.deleted) != 0 {
		t.Fatalf("source lead must not be deleted when the insert fails")
	}
	if got := bus.countByName("crm.views.stale"); got != 0 {
		t.Fatalf("no stale-views event expected on failure, got %d", got)
	}
}

func TestConvertLeadToCustomerCleanupFailureStillSucceeds(t *testing.T) {
	lead := LeadRecord{ID: uuid.New(), Firma: "Acme"}
	leads := newFakeLeadStore(lead)
	leads.deleteErr = errors.New("delete failed")
	svc, bus := newTestService(leads, newFakeCustomerStore())

	customer, err := svc.ConvertLeadToCustomer(context.Background(), lead.ID)
	if err != nil {
		t.Fatalf("conversion must succeed despite cleanup failure: %v", err)
	}
	if customer.Firma != "Acme" {
		t.Fatalf("unexpected customer: %+v", customer)
	}
	if got := bus.countByName("crm.conversion.cleanup_failed"); got != 1 {
		t.Fatalf("expected 1 cleanup-failed event, got %d", got)
	}
}

func TestConvertCustomerToLeadSetsKaynak(t *testing.T) {
	customer := CustomerRecord{
		ID:      uuid.New(),
		Firma:   "Beta AŞ",
		Telefon: "+905550001122",
		Sehir:   strPtr("İzmir"),
	}
	leads := newFakeLeadStore()
	customers := newFakeCustomerStore(customer)
	svc, bus := newTestService(leads, customers)

	lead, err := svc.ConvertCustomerToLead(context.Background(), customer.ID)
	if err != nil {
		t.Fatalf("ConvertCustomerToLead: %v", err)
	}
	if lead.Kaynak != ConvertedKaynak {
		t.Fatalf("expected kaynak %q, got %q", ConvertedKaynak, lead.Kaynak)
	}
	if lead.Firma != "Beta AŞ" {
		t.Fatalf("firma not carried over: %+v", lead)
	}
	if len(customers.deleted) != 1 || customers.deleted[0] != customer.ID {
		t.Fatalf("source customer was not deleted: %v", customers.deleted)
	}
	if got := bus.countByName("crm.customer.reverted"); got != 1 {
		t.Fatalf("expected 1 CustomerReverted event, got %d", got)
	}
}

func TestConvertBulkRejectsEmptyList(t *testing.T) {
	leads := newFakeLeadStore()
	svc, _ := newTestService(leads, newFakeCustomerStore())

	_, err := svc.ConvertBulk(context.Background(), nil, transport.DirectionLeadToCustomer)
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected Validation, got %v", err)
	}
	if leads.getCalls != 0 {
		t.Fatalf("empty batch must be rejected before any fetch")
	}
}

func TestConvertBulkRejectsUnknownDirection(t *testing.T) {
	svc, _ := newTestService(newFakeLeadStore(), newFakeCustomerStore())

	_, err := svc.ConvertBulk(context.Background(), []uuid.UUID{uuid.New()}, "sideways")
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected Validation, got %v", err)
	}
}

func TestConvertBulkAllSucceed(t *testing.T) {
	a := LeadRecord{ID: uuid.New(), Firma: "A"}
	b := LeadRecord{ID: uuid.New(), Firma: "B"}
	leads := newFakeLeadStore(a, b)
	svc, bus := newTestService(leads, newFakeCustomerStore())

	result, err := svc.ConvertBulk(context.Background(), []uuid.UUID{a.ID, b.ID}, transport.DirectionLeadToCustomer)
	if err != nil {
		t.Fatalf("ConvertBulk: %v", err)
	}
	if result.Success != 2 || result.Failed != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Errors != nil {
		t.Fatalf("errors must be omitted when empty: %v", result.Errors)
	}
	if got := bus.countByName("crm.views.stale"); got != 1 {
		t.Fatalf("expected a single stale-views event for the whole batch, got %d", got)
	}
}

func TestConvertBulkPartialFailure(t *testing.T) {
	a := LeadRecord{ID: uuid.New(), Firma: "A"}
	leads := newFakeLeadStore(a)
	svc, _ := newTestService(leads, newFakeCustomerStore())

	missing := uuid.New()
	result, err := svc.ConvertBulk(context.Background(), []uuid.UUID{a.ID, missing}, transport.DirectionLeadToCustomer)
	if err != nil {
		t.Fatalf("partial failure must not be a hard error: %v", err)
	}
	if result.Success != 1 || result.Failed != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], missing.String()) {
		t.Fatalf("per-item error must name the missing id: %v", result.Errors)
	}
}

func TestConvertBulkAllFailedIsHardError(t *testing.T) {
	svc, bus := newTestService(newFakeLeadStore(), newFakeCustomerStore())

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	_, err := svc.ConvertBulk(context.Background(), ids, transport.DirectionLeadToCustomer)
	if err == nil {
		t.Fatal("expected hard error when every item fails")
	}
	msg := err.Error()
	for _, id := range ids {
		if !strings.Contains(msg, id.String()) {
			t.Fatalf("joined message must mention %s: %s", id, msg)
		}
	}
	if got := bus.countByName("crm.views.stale"); got != 0 {
		t.Fatalf("no stale-views event expected for a fully failed batch, got %d", got)
	}
}

func TestConvertBulkCustomerDirection(t *testing.T) {
	c := CustomerRecord{ID: uuid.New(), Firma: "Gamma"}
	customers := newFakeCustomerStore(c)
	leads := newFakeLeadStore()
	svc, _ := newTestService(leads, customers)

	result, err := svc.ConvertBulk(context.Background(), []uuid.UUID{c.ID}, transport.DirectionCustomerToLead)
	if err != nil {
		t.Fatalf("ConvertBulk: %v", err)
	}
	if result.Success != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(leads.inserted) != 1 || leads.inserted[0].Kaynak != ConvertedKaynak {
		t.Fatalf("reverted lead kaynak wrong: %+v", leads.inserted)
	}
}
