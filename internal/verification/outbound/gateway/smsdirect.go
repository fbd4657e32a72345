package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/staffgate/staffgate/internal/verification/entity"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// SMSDirectConfig holds the endpoint and credentials for a plain SMS
// transmission API.
type SMSDirectConfig struct {
	BaseURL  string
	APIKey   string
	SenderID string
	// Template is the message body. The %s verb is replaced with the code.
	Template string
}

// SMSDirect transmits a locally generated code as a plain text message.
// Challenges issued through this driver are of kind LocalCode.
type SMSDirect struct {
	cfg    SMSDirectConfig
	client *http.Client
	tracer trace.Tracer
}

// NewSMSDirect constructs an SMSDirect driver.
func NewSMSDirect(cfg SMSDirectConfig, client *http.Client) *SMSDirect {
	if cfg.Template == "" || !strings.Contains(cfg.Template, "%s") {
		cfg.Template = "Your verification code is %s"
	}

	return &SMSDirect{
		cfg:    cfg,
		client: client,
		tracer: otel.Tracer("verification.outbound.gateway"),
	}
}

// Kind implements Gateway.
func (s *SMSDirect) Kind() entity.ChallengeKind {
	return entity.ChallengeKindLocalCode
}

// Send transmits the code. The returned token is empty because verification
// happens locally against the stored code hash.
func (s *SMSDirect) Send(ctx context.Context, phone, code string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "gateway.SMSDirect.Send")
	defer span.End()

	payload, err := json.Marshal(map[string]string{
		"to":      phone,
		"from":    s.cfg.SenderID,
		"message": fmt.Sprintf(s.cfg.Template, code),
	})
	if err != nil {
		return "", fmt.Errorf("gateway: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.cfg.BaseURL+"/messages", strings.NewReader(string(payload)))
	if err != nil {
		return "", fmt.Errorf("gateway: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gateway: call provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("gateway: provider responded with status %d", resp.StatusCode)
	}

	return "", nil
}

// Verify implements Gateway. SMSDirect cannot verify remotely.
func (s *SMSDirect) Verify(_ context.Context, _, _ string) (bool, error) {
	return false, ErrVerifyUnsupported
}
