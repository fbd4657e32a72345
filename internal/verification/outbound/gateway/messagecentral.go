package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/staffgate/staffgate/internal/verification/entity"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// MessageCentralConfig holds the credentials and endpoint for the
// Message Central verification API.
type MessageCentralConfig struct {
	BaseURL     string
	AuthToken   string
	CustomerID  string
	CountryCode string
}

// MessageCentral dispatches codes through the Message Central OTP API.
// The provider generates and checks the code itself, so challenges issued
// through this driver are of kind Gateway.
type MessageCentral struct {
	cfg    MessageCentralConfig
	client *http.Client
	tracer trace.Tracer
}

// NewMessageCentral constructs a MessageCentral driver.
func NewMessageCentral(cfg MessageCentralConfig, client *http.Client) *MessageCentral {
	return &MessageCentral{
		cfg:    cfg,
		client: client,
		tracer: otel.Tracer("verification.outbound.gateway"),
	}
}

// Kind implements Gateway.
func (m *MessageCentral) Kind() entity.ChallengeKind {
	return entity.ChallengeKindGateway
}

type messageCentralSendResponse struct {
	ResponseCode int `json:"responseCode"`
	Data         struct {
		VerificationID string `json:"verificationId"`
	} `json:"data"`
}

// Send asks the provider to generate and deliver a code. The code argument
// is ignored. Returns the provider's verification ID as the dispatch token.
func (m *MessageCentral) Send(ctx context.Context, phone, _ string) (string, error) {
	ctx, span := m.tracer.Start(ctx, "gateway.MessageCentral.Send")
	defer span.End()

	q := url.Values{}
	q.Set("countryCode", m.cfg.CountryCode)
	q.Set("customerId", m.cfg.CustomerID)
	q.Set("flowType", "SMS")
	q.Set("mobileNumber", phone)

	var out messageCentralSendResponse
	if err := m.do(ctx, http.MethodPost, "/verification/v3/send", q, &out); err != nil {
		return "", err
	}

	if out.ResponseCode != http.StatusOK || out.Data.VerificationID == "" {
		return "", fmt.Errorf("gateway: send rejected with response code %d", out.ResponseCode)
	}

	return out.Data.VerificationID, nil
}

type messageCentralValidateResponse struct {
	ResponseCode int `json:"responseCode"`
	Data         struct {
		VerificationStatus string `json:"verificationStatus"`
	} `json:"data"`
}

// Verify checks a candidate code against a previous dispatch.
func (m *MessageCentral) Verify(ctx context.Context, token, code string) (bool, error) {
	ctx, span := m.tracer.Start(ctx, "gateway.MessageCentral.Verify")
	defer span.End()

	q := url.Values{}
	q.Set("countryCode", m.cfg.CountryCode)
	q.Set("customerId", m.cfg.CustomerID)
	q.Set("verificationId", token)
	q.Set("code", code)

	var out messageCentralValidateResponse
	if err := m.do(ctx, http.MethodGet, "/verification/v3/validateOtp", q, &out); err != nil {
		return false, err
	}

	verified := out.ResponseCode == http.StatusOK &&
		out.Data.VerificationStatus == "VERIFICATION_COMPLETED"

	return verified, nil
}

func (m *MessageCentral) do(ctx context.Context, method, path string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, m.cfg.BaseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("gateway: build request: %w", err)
	}
	req.Header.Set("authToken", m.cfg.AuthToken)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("gateway: call provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("gateway: provider responded with status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("gateway: decode provider response: %w", err)
	}

	return nil
}
