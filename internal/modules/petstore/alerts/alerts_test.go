package alerts

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petmanager/petmanager-be/internal/core/jobs"
	"github.com/petmanager/petmanager-be/internal/core/notification"
)

type capturedEmail struct {
	to      string
	subject string
	body    string
}

type captureMailer struct {
	sent []capturedEmail
}

func (m *captureMailer) SendEmail(to, subject, body string) error {
	m.sent = append(m.sent, capturedEmail{to: to, subject: subject, body: body})
	return nil
}

func (m *captureMailer) GetProviderName() string { return "capture" }

func TestHandlerDeliversQueuedAlert(t *testing.T) {
	mailer := &captureMailer{}
	handler := NewHandler(notification.NewService(mailer, "manager@petmanager.local"))

	payload, err := json.Marshal(HighValuePayload{
		TransactionID:   "2b6f6a11-aaaa-bbbb-cccc-ddddeeee0001",
		TransactionType: "purchase",
		Product:         "Aquarium kit",
		ClientName:      "Acme Pets",
		Quantity:        2,
		UnitPrice:       "1750000.00",
		Total:           "3500000.00",
		CreatedAt:       time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	job := &jobs.Job{Type: JobTypeHighValue, Payload: payload}
	require.NoError(t, handler.Handle(context.Background(), job))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "manager@petmanager.local", mailer.sent[0].to)
	assert.Contains(t, mailer.sent[0].subject, "Aquarium kit")
	assert.Contains(t, mailer.sent[0].body, "Acme Pets")
}

func TestHandlerRejectsMalformedPayload(t *testing.T) {
	handler := NewHandler(notification.NewService(&captureMailer{}, "manager@petmanager.local"))

	job := &jobs.Job{Type: JobTypeHighValue, Payload: []byte("not json")}
	assert.Error(t, handler.Handle(context.Background(), job))
}

func TestHandlerType(t *testing.T) {
	handler := NewHandler(nil)
	assert.Equal(t, JobTypeHighValue, handler.GetType())
}
