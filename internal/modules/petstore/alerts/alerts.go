package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/petmanager/petmanager-be/internal/core/jobs"
	"github.com/petmanager/petmanager-be/internal/core/notification"
	"github.com/petmanager/petmanager-be/internal/modules/petstore/models"
	"github.com/petmanager/petmanager-be/internal/shared/utils"
)

// JobTypeHighValue is the queue job type for high-value transaction alerts
const JobTypeHighValue = "transaction.high_value"

// HighValuePayload is the job payload for a high-value transaction alert
type HighValuePayload struct {
	TransactionID   string    `json:"transaction_id"`
	TransactionType string    `json:"transaction_type"`
	Product         string    `json:"product"`
	ClientName      string    `json:"client_name"`
	Quantity        int       `json:"quantity"`
	UnitPrice       string    `json:"unit_price"`
	Total           string    `json:"total"`
	CreatedAt       time.Time `json:"created_at"`
}

// Dispatcher enqueues alert jobs for high-value transactions. Enqueue failures
// are logged and swallowed: a broken queue must never fail the write that
// triggered the alert.
type Dispatcher struct {
	queue     *jobs.Queue
	queueName string
}

func NewDispatcher(queue *jobs.Queue, queueName string) *Dispatcher {
	return &Dispatcher{queue: queue, queueName: queueName}
}

// HighValueCreated enqueues a notification job for the given transaction
func (d *Dispatcher) HighValueCreated(ctx context.Context, transaction *models.Transaction) {
	payload := HighValuePayload{
		TransactionID:   transaction.ID.String(),
		TransactionType: string(transaction.TransactionType),
		Product:         transaction.Product,
		ClientName:      transaction.ClientName,
		Quantity:        transaction.Quantity,
		UnitPrice:       transaction.UnitPrice.StringFixed(2),
		Total:           transaction.Total.StringFixed(2),
		CreatedAt:       transaction.CreatedAt,
	}

	job, err := d.queue.Enqueue(ctx, JobTypeHighValue, payload, jobs.EnqueueOptions{
		Queue: d.queueName,
	})
	if err != nil {
		utils.LogError("❌ Failed to enqueue high-value alert", err, map[string]interface{}{
			"transaction": transaction.ID,
		})
		return
	}

	utils.LogInfo("✅ High-value alert queued", map[string]interface{}{
		"transaction": transaction.ID,
		"job_id":      job.ID,
	})
}

// Handler delivers queued high-value alerts through the notification service
type Handler struct {
	notifier *notification.Service
}

func NewHandler(notifier *notification.Service) *Handler {
	return &Handler{notifier: notifier}
}

func (h *Handler) GetType() string {
	return JobTypeHighValue
}

func (h *Handler) Handle(ctx context.Context, job *jobs.Job) error {
	var payload HighValuePayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("invalid high-value alert payload: %w", err)
	}

	return h.notifier.NotifyHighValueTransaction(notification.HighValueAlert{
		TransactionID: payload.TransactionID,
		Type:          payload.TransactionType,
		ProductName:   payload.Product,
		Counterparty:  payload.ClientName,
		Quantity:      payload.Quantity,
		UnitPrice:     payload.UnitPrice,
		Total:         payload.Total,
		CreatedAt:     payload.CreatedAt,
	})
}
