package notification

import (
	"context"
	"strings"
	"testing"

	"crm_backend/internal/events"
	"crm_backend/platform/logger"

	"github.com/google/uuid"
)

type recordingSender struct {
	subjects []string
	bodies   []string
}

func (s *recordingSender) Send(_ context.Context, subject, body string) error {
	s.subjects = append(s.subjects, subject)
	s.bodies = append(s.bodies, body)
	return nil
}

func TestCleanupFailedAlert(t *testing.T) {
	sender := &recordingSender{}
	m := &Module{sender: sender, log: logger.New("development")}

	failed := events.ConversionCleanupFailed{
		BaseEvent:     events.NewBaseEvent(),
		Direction:     "lead_to_customer",
		SourceID:      uuid.New(),
		DestinationID: uuid.New(),
		Company:       "Acme Ltd",
		Reason:        "row locked",
	}

	if err := m.handleCleanupFailed(context.Background(), failed); err != nil {
		t.Fatalf("handleCleanupFailed: %v", err)
	}
	if len(sender.subjects) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(sender.subjects))
	}
	if !strings.Contains(sender.subjects[0], "Acme Ltd") {
		t.Fatalf("subject must name the company: %q", sender.subjects[0])
	}
	if !strings.Contains(sender.bodies[0], failed.SourceID.String()) {
		t.Fatalf("body must include the source id: %q", sender.bodies[0])
	}
}

func TestCleanupFailedSubscription(t *testing.T) {
	bus := events.NewInMemoryBus(logger.New("development"))
	sender := &recordingSender{}

	m := &Module{sender: sender, log: logger.New("development")}
	bus.Subscribe(events.ConversionCleanupFailed{}.EventName(), events.HandlerFunc(
		func(ctx context.Context, event events.Event) error {
			return m.handleCleanupFailed(ctx, event.(events.ConversionCleanupFailed))
		}))

	err := bus.PublishSync(context.Background(), events.ConversionCleanupFailed{
		BaseEvent: events.NewBaseEvent(),
		Company:   "Beta AŞ",
	})
	if err != nil {
		t.Fatalf("PublishSync: %v", err)
	}
	if len(sender.subjects) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(sender.subjects))
	}
}
