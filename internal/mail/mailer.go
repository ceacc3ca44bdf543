package mail

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Mailer delivers notification emails through a SendGrid-compatible
// mail API. It implements services.EmailSender.
type Mailer struct {
	apiKey    string
	baseURL   string
	fromEmail string
	fromName  string
	client    *http.Client
}

// NewMailer creates a mailer. Returns nil if the API key or sender
// address is empty, which disables email delivery entirely.
func NewMailer(apiKey, baseURL, fromEmail, fromName string) *Mailer {
	if apiKey == "" || fromEmail == "" {
		return nil
	}
	if baseURL == "" {
		baseURL = "https://api.sendgrid.com"
	}
	return &Mailer{
		apiKey:    apiKey,
		baseURL:   strings.TrimRight(baseURL, "/"),
		fromEmail: fromEmail,
		fromName:  fromName,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

type mailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type mailPersonalization struct {
	To []mailAddress `json:"to"`
}

type mailContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendRequest struct {
	Personalizations []mailPersonalization `json:"personalizations"`
	From             mailAddress           `json:"from"`
	Subject          string                `json:"subject"`
	Content          []mailContent         `json:"content"`
}

// Send delivers one HTML email to a single recipient.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	payload := sendRequest{
		Personalizations: []mailPersonalization{
			{To: []mailAddress{{Email: to}}},
		},
		From:    mailAddress{Email: m.fromEmail, Name: m.fromName},
		Subject: subject,
		Content: []mailContent{
			{Type: "text/html", Value: htmlBody},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode mail payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, m.baseURL+"/v3/mail/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build mail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("mail request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("mail API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}
