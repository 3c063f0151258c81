package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// WebhookNotifier delivers OTP notifications by POSTing to a
// configured delivery endpoint (an email/SMS relay). It implements
// usecase.Notifier.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

// NewWebhookNotifier creates a notifier for the given endpoint.
func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url: url,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type otpPayload struct {
	Email   string `json:"email"`
	OTP     string `json:"otp"`
	Subject string `json:"subject"`
}

// SendOTP posts the reset code to the delivery endpoint.
func (n *WebhookNotifier) SendOTP(ctx context.Context, email, otp string) error {
	body, err := json.Marshal(otpPayload{
		Email:   email,
		OTP:     otp,
		Subject: "Your password reset code",
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notifier endpoint returned status %d", resp.StatusCode)
	}

	return nil
}

// LogNotifier writes OTPs to the log. Used when no delivery endpoint
// is configured, for local development only.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a new LogNotifier.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// SendOTP logs the reset code.
func (n *LogNotifier) SendOTP(_ context.Context, email, otp string) error {
	n.logger.Info().
		Str("email", email).
		Str("otp", otp).
		Msg("OTP generated")

	return nil
}
