package notification

import (
	"fmt"
	"strings"
	"time"

	"github.com/petmanager/petmanager-be/internal/shared/utils"
)

// HighValueAlert carries the transaction details rendered into the
// high-value notification email.
type HighValueAlert struct {
	TransactionID string
	Type          string
	ProductName   string
	Counterparty  string
	Quantity      int
	UnitPrice     string
	Total         string
	CreatedAt     time.Time
}

// Service sends operational notifications to the store manager
type Service struct {
	mailer       Mailer
	managerEmail string
}

// NewService creates a notification service backed by the given mailer
func NewService(mailer Mailer, managerEmail string) *Service {
	return &Service{
		mailer:       mailer,
		managerEmail: managerEmail,
	}
}

// NotifyHighValueTransaction emails the manager about a transaction whose
// total exceeds the configured threshold.
func (s *Service) NotifyHighValueTransaction(alert HighValueAlert) error {
	if s.managerEmail == "" {
		utils.LogWarn("⚠️ No manager email configured, skipping high-value notification", nil)
		return nil
	}

	subject := fmt.Sprintf("High-value %s: %s", alert.Type, alert.ProductName)
	body := buildHighValueBody(alert)

	if err := s.mailer.SendEmail(s.managerEmail, subject, body); err != nil {
		return fmt.Errorf("failed to send high-value notification: %w", err)
	}

	utils.LogInfo("✅ High-value notification sent", map[string]interface{}{
		"transaction": alert.TransactionID,
		"provider":    s.mailer.GetProviderName(),
	})
	return nil
}

// NotifyPendingDigest emails the manager the number of transactions still
// awaiting review. Sent on a schedule; a zero count skips the email.
func (s *Service) NotifyPendingDigest(pendingCount int64) error {
	if s.managerEmail == "" || pendingCount == 0 {
		return nil
	}

	subject := fmt.Sprintf("%d transactions awaiting review", pendingCount)
	body := buildDigestBody(pendingCount)

	if err := s.mailer.SendEmail(s.managerEmail, subject, body); err != nil {
		return fmt.Errorf("failed to send pending digest: %w", err)
	}

	utils.LogInfo("✅ Pending digest sent", map[string]interface{}{"pending": pendingCount})
	return nil
}

func buildHighValueBody(alert HighValueAlert) string {
	var b strings.Builder
	b.WriteString("<h2>High-value transaction recorded</h2>")
	b.WriteString("<table>")
	writeRow(&b, "Transaction", alert.TransactionID)
	writeRow(&b, "Type", alert.Type)
	writeRow(&b, "Product", alert.ProductName)
	if alert.Counterparty != "" {
		writeRow(&b, "Counterparty", alert.Counterparty)
	}
	writeRow(&b, "Quantity", fmt.Sprintf("%d", alert.Quantity))
	writeRow(&b, "Unit price", alert.UnitPrice)
	writeRow(&b, "Total", alert.Total)
	writeRow(&b, "Recorded at", alert.CreatedAt.Format(time.RFC1123))
	b.WriteString("</table>")
	b.WriteString("<p>This transaction is pending approval.</p>")
	return b.String()
}

func buildDigestBody(pendingCount int64) string {
	return fmt.Sprintf(
		"<h2>Daily approvals digest</h2><p>There are <strong>%d</strong> transactions pending review.</p>",
		pendingCount)
}

func writeRow(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "<tr><td><strong>%s</strong></td><td>%s</td></tr>", label, value)
}
