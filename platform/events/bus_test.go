package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"crm_backend/platform/logger"
)

type testEvent struct {
	BaseEvent
	payload string
}

func (e testEvent) EventName() string { return "test.event" }

func TestPublishSyncDeliversInOrder(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))

	var got []string
	bus.Subscribe("test.event", HandlerFunc(func(_ context.Context, e Event) error {
		got = append(got, e.(testEvent).payload+"-a")
		return nil
	}))
	bus.Subscribe("test.event", HandlerFunc(func(_ context.Context, e Event) error {
		got = append(got, e.(testEvent).payload+"-b")
		return nil
	}))

	err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent(), payload: "x"})
	if err != nil {
		t.Fatalf("PublishSync: %v", err)
	}
	if len(got) != 2 || got[0] != "x-a" || got[1] != "x-b" {
		t.Fatalf("unexpected delivery order: %v", got)
	}
}

func TestPublishSyncReturnsFirstError(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))
	boom := errors.New("boom")

	bus.Subscribe("test.event", HandlerFunc(func(context.Context, Event) error { return boom }))

	second := false
	bus.Subscribe("test.event", HandlerFunc(func(context.Context, Event) error {
		second = true
		return nil
	}))

	err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent()})
	if !errors.Is(err, boom) {
		t.Fatalf("expected first handler error, got %v", err)
	}
	if second {
		t.Fatal("second handler must not run after a failure")
	}
}

func TestPublishIsAsynchronous(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))

	var wg sync.WaitGroup
	wg.Add(1)
	bus.Subscribe("test.event", HandlerFunc(func(context.Context, Event) error {
		wg.Done()
		return nil
	}))

	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent()})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("async handler was never invoked")
	}
}

func TestPublishWithoutSubscribersIsSafe(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))
	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent()})
	if err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent()}); err != nil {
		t.Fatalf("PublishSync with no subscribers: %v", err)
	}
}
