package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentEmail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	sent []sentEmail
	err  error
}

func (m *fakeMailer) SendEmail(to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentEmail{to: to, subject: subject, body: body})
	return nil
}

func (m *fakeMailer) GetProviderName() string { return "fake" }

func sampleAlert() HighValueAlert {
	return HighValueAlert{
		TransactionID: "a7e4b9b2-1111-2222-3333-444455556666",
		Type:          "sale",
		ProductName:   "Parrot",
		Counterparty:  "Ana Pérez",
		Quantity:      1,
		UnitPrice:     "3500000.00",
		Total:         "3500000.00",
		CreatedAt:     time.Date(2026, time.March, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestNotifyHighValueTransaction(t *testing.T) {
	mailer := &fakeMailer{}
	service := NewService(mailer, "manager@petmanager.local")

	require.NoError(t, service.NotifyHighValueTransaction(sampleAlert()))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "manager@petmanager.local", mailer.sent[0].to)
	assert.Contains(t, mailer.sent[0].subject, "Parrot")
	assert.Contains(t, mailer.sent[0].body, "3500000.00")
	assert.Contains(t, mailer.sent[0].body, "Ana Pérez")
}

func TestNotifyHighValueSkipsWithoutManagerEmail(t *testing.T) {
	mailer := &fakeMailer{}
	service := NewService(mailer, "")

	require.NoError(t, service.NotifyHighValueTransaction(sampleAlert()))
	assert.Empty(t, mailer.sent)
}

func TestNotifyHighValueWrapsMailerError(t *testing.T) {
	mailer := &fakeMailer{err: assert.AnError}
	service := NewService(mailer, "manager@petmanager.local")

	err := service.NotifyHighValueTransaction(sampleAlert())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestNotifyPendingDigest(t *testing.T) {
	mailer := &fakeMailer{}
	service := NewService(mailer, "manager@petmanager.local")

	require.NoError(t, service.NotifyPendingDigest(4))

	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].subject, "4")
}

func TestNotifyPendingDigestSkipsZeroCount(t *testing.T) {
	mailer := &fakeMailer{}
	service := NewService(mailer, "manager@petmanager.local")

	require.NoError(t, service.NotifyPendingDigest(0))
	assert.Empty(t, mailer.sent)
}
