package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

const brevoEndpoint = "https://api.brevo.com/v3/smtp/email"

type BrevoMailer struct {
	APIKey      string
	SenderEmail string
	SenderName  string
	Endpoint    string

	client *http.Client
}

type brevoPayload struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
}

func NewBrevoMailer(apiKey, senderEmail, senderName string) *BrevoMailer {
	return &BrevoMailer{
		APIKey:      apiKey,
		SenderEmail: senderEmail,
		SenderName:  senderName,
		Endpoint:    brevoEndpoint,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *BrevoMailer) Send(ctx context.Context, msg Message) error {
	wrapMsg := "failed to send email via Brevo"

	toEmail, toName, err := recipient(msg)
	if err != nil {
		return err
	}

	body, err := json.Marshal(brevoPayload{
		Sender:      map[string]string{"name": s.SenderName, "email": s.SenderEmail},
		To:          []map[string]string{{"email": toEmail, "name": toName}},
		Subject:     msg.Subject,
		HTMLContent: msg.HTML,
	})
	if err != nil {
		return errors.Wrap(err, wrapMsg)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, wrapMsg)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", s.APIKey)
	req.Header.Set("content-type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrap(err, wrapMsg)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errors.Errorf("%s: status %d: %s", wrapMsg, resp.StatusCode, respBody)
	}
	return nil
}
