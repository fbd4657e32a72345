package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/staffgate/staffgate/internal/verification/entity"
)

func newMessageCentralServer(t *testing.T, handler http.HandlerFunc) (*MessageCentral, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	mc := NewMessageCentral(MessageCentralConfig{
		BaseURL:     srv.URL,
		AuthToken:   "token-123",
		CustomerID:  "cust-1",
		CountryCode: "91",
	}, srv.Client())

	return mc, srv
}

func TestMessageCentralSend(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mc, _ := newMessageCentralServer(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/verification/v3/send" {
				t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			if r.Header.Get("authToken") != "token-123" {
				t.Fatalf("expected auth token header")
			}

			q := r.URL.Query()
			if q.Get("countryCode") != "91" || q.Get("mobileNumber") != "9876543210" || q.Get("flowType") != "SMS" {
				t.Fatalf("unexpected query %v", q)
			}

			json.NewEncoder(w).Encode(map[string]any{
				"responseCode": 200,
				"data":         map[string]any{"verificationId": "verif-55"},
			})
		})

		token, err := mc.Send(context.Background(), "9876543210", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "verif-55" {
			t.Fatalf("expected dispatch token verif-55, got %q", token)
		}
	})

	t.Run("Rejected", func(t *testing.T) {
		mc, _ := newMessageCentralServer(t, func(w http.ResponseWriter, _ *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"responseCode": 506})
		})

		if _, err := mc.Send(context.Background(), "9876543210", ""); err == nil {
			t.Fatalf("expected error for rejected dispatch")
		}
	})

	t.Run("ProviderOutage", func(t *testing.T) {
		mc, _ := newMessageCentralServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]any{"responseCode": 503})
		})

		if _, err := mc.Send(context.Background(), "9876543210", ""); err == nil {
			t.Fatalf("expected error for provider outage")
		}
	})
}

func TestMessageCentralVerify(t *testing.T) {
	t.Run("Verified", func(t *testing.T) {
		mc, _ := newMessageCentralServer(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/verification/v3/validateOtp" {
				t.Fatalf("unexpected path %s", r.URL.Path)
			}

			q := r.URL.Query()
			if q.Get("verificationId") != "verif-55" || q.Get("code") != "482913" {
				t.Fatalf("unexpected query %v", q)
			}

			json.NewEncoder(w).Encode(map[string]any{
				"responseCode": 200,
				"data":         map[string]any{"verificationStatus": "VERIFICATION_COMPLETED"},
			})
		})

		ok, err := mc.Verify(context.Background(), "verif-55", "482913")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Fatalf("expected verification to pass")
		}
	})

	t.Run("WrongCode", func(t *testing.T) {
		mc, _ := newMessageCentralServer(t, func(w http.ResponseWriter, _ *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"responseCode": 200,
				"data":         map[string]any{"verificationStatus": "VERIFICATION_FAILED"},
			})
		})

		ok, err := mc.Verify(context.Background(), "verif-55", "000000")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Fatalf("expected verification to fail")
		}
	})

	// A provider outage must surface as an error, never as a code mismatch.
	t.Run("ProviderOutage", func(t *testing.T) {
		mc, _ := newMessageCentralServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]any{"responseCode": 503})
		})

		if _, err := mc.Verify(context.Background(), "verif-55", "482913"); err == nil {
			t.Fatalf("expected error for provider outage")
		}
	})
}

func TestMessageCentralKind(t *testing.T) {
	mc := NewMessageCentral(MessageCentralConfig{}, http.DefaultClient)
	if mc.Kind() != entity.ChallengeKindGateway {
		t.Fatalf("expected gateway kind, got %v", mc.Kind())
	}
}
