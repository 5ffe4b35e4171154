package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/petmanager/petmanager-be/internal/shared/utils"
)

// Mailer defines the interface for outbound email providers
type Mailer interface {
	SendEmail(to, subject, body string) error
	GetProviderName() string
}

// ResendMailer implements email sending via the Resend API
type ResendMailer struct {
	apiKey     string
	fromEmail  string
	fromName   string
	httpClient *http.Client
}

// NewResendMailer creates a new Resend email provider
func NewResendMailer(apiKey, fromEmail, fromName string) *ResendMailer {
	return &ResendMailer{
		apiKey:     apiKey,
		fromEmail:  fromEmail,
		fromName:   fromName,
		httpClient: &http.Client{},
	}
}

type resendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
}

// SendEmail sends an email via the Resend API
func (m *ResendMailer) SendEmail(to, subject, body string) error {
	fromAddress := m.fromEmail
	if m.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", m.fromName, m.fromEmail)
	}

	reqBody := resendEmailRequest{
		From:    fromAddress,
		To:      []string{to},
		Subject: subject,
		HTML:    body,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", "https://api.resend.com/emails", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(body))
	}

	return nil
}

// GetProviderName returns the provider name
func (m *ResendMailer) GetProviderName() string {
	return "resend"
}

// LogMailer is a no-op provider used when no email API key is configured.
// Messages are written to the application log instead of being delivered.
type LogMailer struct{}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) SendEmail(to, subject, body string) error {
	utils.LogInfo("📧 Email logged instead of delivered", map[string]interface{}{
		"to":      to,
		"subject": subject,
	})
	return nil
}

func (m *LogMailer) GetProviderName() string {
	return "log"
}
