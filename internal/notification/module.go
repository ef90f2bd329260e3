package notification

import (
	"context"
	"fmt"

	"crm_backend/internal/events"
	"crm_backend/platform/config"
	"crm_backend/platform/logger"
)

// Module listens for conversion cleanup failures and alerts operations.
// It registers no HTTP routes.
type Module struct {
	sender Sender
	log    *logger.Logger
}

// NewModule creates the notification module and subscribes it to the bus.
func NewModule(eventBus events.Bus, cfg config.EmailConfig, log *logger.Logger) *Module {
	var sender Sender = NoopSender{}
	if cfg.GetEmailEnabled() {
		sender = NewSMTPSender(cfg)
	}

	m := &Module{sender: sender, log: log.WithModule("notification")}

	eventBus.Subscribe(events.ConversionCleanupFailed{}.EventName(), events.HandlerFunc(
		func(ctx context.Context, event events.Event) error {
			failed, ok := event.(events.ConversionCleanupFailed)
			if !ok {
				return nil
			}
			return m.handleCleanupFailed(ctx, failed)
		}))

	return m
}

func (m *Module) handleCleanupFailed(ctx context.Context, failed events.ConversionCleanupFailed) error {
	m.log.Error("conversion left a duplicate record",
		"direction", failed.Direction,
		"source_id", failed.SourceID,
		"destination_id", failed.DestinationID,
		"company", failed.Company,
		"reason", failed.Reason,
	)

	subject := fmt.Sprintf("CRM reconciliation needed: %s", failed.Company)
	body := fmt.Sprintf(
		"%q was converted (%s) but the source record could not be removed.\n\n"+
			"Source id:      %s\nDestination id: %s\nReason:         %s\n\n"+
			"The prospect now exists in both collections; please clean up by hand.",
		failed.Company, failed.Direction, failed.SourceID, failed.DestinationID, failed.Reason,
	)

	if err := m.sender.Send(ctx, subject, body); err != nil {
		m.log.Error("failed to send reconciliation alert", "error", err)
		return err
	}
	return nil
}
