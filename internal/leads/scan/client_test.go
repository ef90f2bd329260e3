package scan

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"crm_backend/platform/apperr"
	"crm_backend/platform/logger"
)

func testLogger() *logger.Logger {
	return logger.New("development")
}

func TestTriggerPostsCityAndSector(t *testing.T) {
	var got webhookPayload
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := New(srv.URL, testLogger())
	if err := client.Trigger(context.Background(), "  Ankara ", "Yazılım"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one webhook call, got %d", calls)
	}
	if got.City != "Ankara" || got.Sector != "Yazılım" {
		t.Fatalf("payload fields not trimmed: %+v", got)
	}
	if got.Query != "Ankara Yazılım" {
		t.Fatalf("unexpected query %q", got.Query)
	}
}

func TestTriggerRejectsBlankFields(t *testing.T) {
	client := New("http://localhost:1", testLogger())

	err := client.Trigger(context.Background(), "   ", "Yazılım")
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	err = client.Trigger(context.Background(), "Ankara", "")
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTriggerFailsWhenUnconfigured(t *testing.T) {
	client := New("", testLogger())

	err := client.Trigger(context.Background(), "Ankara", "Yazılım")
	if apperr.GetKind(err) != apperr.KindInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestTriggerFailsOnWebhookError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "workflow disabled", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := New(srv.URL, testLogger())
	err := client.Trigger(context.Background(), "Ankara", "Yazılım")
	if apperr.GetKind(err) != apperr.KindInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
}
