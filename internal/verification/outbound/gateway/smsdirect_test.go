package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/staffgate/staffgate/internal/verification/entity"
)

func TestSMSDirect(t *testing.T) {
	t.Run("SendsRenderedTemplate", func(t *testing.T) {
		var body map[string]string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer key-1" {
				t.Fatalf("expected bearer auth")
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			w.WriteHeader(http.StatusAccepted)
		}))
		t.Cleanup(srv.Close)

		sd := NewSMSDirect(SMSDirectConfig{
			BaseURL:  srv.URL,
			APIKey:   "key-1",
			SenderID: "STAFFGATE",
			Template: "Code: %s",
		}, srv.Client())

		token, err := sd.Send(context.Background(), "9876543210", "482913")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "" {
			t.Fatalf("local code driver must not return a dispatch token")
		}
		if body["to"] != "9876543210" || body["message"] != "Code: 482913" {
			t.Fatalf("unexpected payload %v", body)
		}
	})

	t.Run("ProviderError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		t.Cleanup(srv.Close)

		sd := NewSMSDirect(SMSDirectConfig{BaseURL: srv.URL}, srv.Client())
		if _, err := sd.Send(context.Background(), "9876543210", "482913"); err == nil {
			t.Fatalf("expected error for provider failure")
		}
	})

	t.Run("VerifyUnsupported", func(t *testing.T) {
		sd := NewSMSDirect(SMSDirectConfig{}, http.DefaultClient)
		if _, err := sd.Verify(context.Background(), "", "482913"); err != ErrVerifyUnsupported {
			t.Fatalf("expected ErrVerifyUnsupported, got %v", err)
		}
		if sd.Kind() != entity.ChallengeKindLocalCode {
			t.Fatalf("expected local code kind")
		}
	})
}

func TestFactory(t *testing.T) {
	t.Run("KnownDrivers", func(t *testing.T) {
		cases := []struct {
			driver string
			kind   entity.ChallengeKind
		}{
			{driver: DriverMessageCentral, kind: entity.ChallengeKindGateway},
			{driver: DriverSMSDirect, kind: entity.ChallengeKindLocalCode},
			{driver: DriverLog, kind: entity.ChallengeKindLocalCode},
		}

		for _, tc := range cases {
			gw, err := NewFromDriver(tc.driver, FactoryOptions{})
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tc.driver, err)
			}
			if gw.Kind() != tc.kind {
				t.Fatalf("driver %q has kind %v, want %v", tc.driver, gw.Kind(), tc.kind)
			}
		}
	})

	t.Run("UnknownDriver", func(t *testing.T) {
		if _, err := NewFromDriver("carrier-pigeon", FactoryOptions{}); err == nil {
			t.Fatalf("expected error for unknown driver")
		}
	})
}
