package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/petmanager/petmanager-be/internal/modules/petstore/models"
	"github.com/petmanager/petmanager-be/internal/modules/petstore/repositories"
)

// HighValueAlerter is the injected notification capability invoked after a
// successful creation of a high-value transaction. Implementations must not
// block; failures stay on their side of the boundary.
type HighValueAlerter interface {
	HighValueCreated(ctx context.Context, transaction *models.Transaction)
}

// TransactionService owns the transaction approval workflow.
type TransactionService struct {
	repo      repositories.TransactionRepo
	alerter   HighValueAlerter
	threshold decimal.Decimal
}

func NewTransactionService(repo repositories.TransactionRepo, alerter HighValueAlerter, highValueThreshold decimal.Decimal) *TransactionService {
	return &TransactionService{
		repo:      repo,
		alerter:   alerter,
		threshold: highValueThreshold,
	}
}

// Create validates the input, derives the total, and persists a new pending
// transaction owned by userID. High-value transactions additionally trigger
// the alert hook after the write has succeeded.
func (s *TransactionService) Create(ctx context.Context, userID uuid.UUID, req *models.CreateTransactionRequest) (*models.Transaction, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:          userID,
		TransactionType: req.TransactionType,
		ClientName:      req.ClientName,
		Product:         req.Product,
		Quantity:        req.Quantity,
		UnitPrice:       req.UnitPrice,
		Total:           models.Total(req.Quantity, req.UnitPrice),
		PaymentMethod:   req.PaymentMethod,
		Status:          models.StatusPending,
		Notes:           req.Notes,
	}

	if err := s.repo.Insert(ctx, transaction); err != nil {
		return nil, &TransportError{Op: "insert", Err: err}
	}

	log.Info().
		Str("id", transaction.ID.String()).
		Str("type", string(transaction.TransactionType)).
		Str("total", transaction.Total.String()).
		Msg("transaction created")

	if transaction.IsHighValue(s.threshold) && s.alerter != nil {
		// Fire-and-forget: the create already succeeded.
		s.alerter.HighValueCreated(ctx, transaction)
	}

	return transaction, nil
}

// Update applies a partial patch to a pending transaction, recomputing the
// total whenever quantity or unit price changes. Last write wins; there is no
// version check.
func (s *TransactionService) Update(ctx context.Context, id string, patch *models.UpdateTransactionRequest) (*models.Transaction, error) {
	transaction, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if transaction.Status != models.StatusPending {
		return nil, &PermissionError{Action: "update transaction", Reason: "only pending transactions can be edited"}
	}

	if patch.ClientName != nil {
		if *patch.ClientName == "" {
			return nil, &ValidationError{Field: "client_name", Reason: "must not be empty"}
		}
		transaction.ClientName = *patch.ClientName
	}
	if patch.Product != nil {
		if *patch.Product == "" {
			return nil, &ValidationError{Field: "product", Reason: "must not be empty"}
		}
		transaction.Product = *patch.Product
	}
	if patch.Quantity != nil {
		if *patch.Quantity < 1 {
			return nil, &ValidationError{Field: "quantity", Reason: "must be at least 1"}
		}
		transaction.Quantity = *patch.Quantity
	}
	if patch.UnitPrice != nil {
		if patch.UnitPrice.IsNegative() {
			return nil, &ValidationError{Field: "unit_price", Reason: "must not be negative"}
		}
		transaction.UnitPrice = *patch.UnitPrice
	}
	if patch.PaymentMethod != nil {
		if *patch.PaymentMethod == "" {
			return nil, &ValidationError{Field: "payment_method", Reason: "must not be empty"}
		}
		transaction.PaymentMethod = *patch.PaymentMethod
	}
	if patch.Notes != nil {
		transaction.Notes = *patch.Notes
	}

	// The total is never patched directly.
	transaction.Total = models.Total(transaction.Quantity, transaction.UnitPrice)

	if err := s.repo.Update(ctx, transaction); err != nil {
		return nil, &TransportError{Op: "update", Err: err}
	}

	log.Info().Str("id", transaction.ID.String()).Str("total", transaction.Total.String()).Msg("transaction updated")
	return transaction, nil
}

// SetStatus moves a pending transaction into a terminal state. Only admins may
// invoke it; a transition attempted on an already-terminal record is a
// conflict and leaves the status unchanged.
func (s *TransactionService) SetStatus(ctx context.Context, id string, newStatus models.TransactionStatus, actorRole string) (*models.Transaction, error) {
	if newStatus != models.StatusApproved && newStatus != models.StatusRejected {
		return nil, &ValidationError{Field: "status", Reason: "must be approved or rejected"}
	}
	if actorRole != models.RoleAdmin {
		return nil, &PermissionError{Action: "change transaction status", Reason: "admin role required"}
	}

	transaction, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if transaction.Status.Terminal() {
		return nil, &ConflictError{Reason: "transaction is already " + string(transaction.Status)}
	}

	transaction.Status = newStatus
	if err := s.repo.Update(ctx, transaction); err != nil {
		return nil, &TransportError{Op: "update", Err: err}
	}

	log.Info().Str("id", transaction.ID.String()).Str("status", string(newStatus)).Msg("transaction status changed")
	return transaction, nil
}

// List returns transactions most recent first, optionally narrowed by status.
func (s *TransactionService) List(ctx context.Context, status models.TransactionStatus) ([]models.Transaction, error) {
	if status != "" && status != models.StatusPending && !status.Terminal() {
		return nil, &ValidationError{Field: "status", Reason: "unknown status filter"}
	}
	transactions, err := s.repo.List(ctx, models.TransactionFilter{Status: status})
	if err != nil {
		return nil, &TransportError{Op: "select", Err: err}
	}
	return transactions, nil
}

// Get returns a single transaction by id.
func (s *TransactionService) Get(ctx context.Context, id string) (*models.Transaction, error) {
	return s.get(ctx, id)
}

// Delete removes a transaction by id. Hard delete, no soft-delete column.
func (s *TransactionService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "transaction", ID: id}
		}
		return &TransportError{Op: "delete", Err: err}
	}
	log.Info().Str("id", id).Msg("transaction deleted")
	return nil
}

// StatusCounts returns per-status totals for the listing header badges.
func (s *TransactionService) StatusCounts(ctx context.Context) (*models.StatusCounts, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, &TransportError{Op: "count", Err: err}
	}
	return counts, nil
}

// IsHighValue classifies a total against the configured threshold.
func (s *TransactionService) IsHighValue(total decimal.Decimal) bool {
	return total.GreaterThan(s.threshold)
}

func (s *TransactionService) get(ctx context.Context, id string) (*models.Transaction, error) {
	transaction, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "transaction", ID: id}
		}
		return nil, &TransportError{Op: "select", Err: err}
	}
	return transaction, nil
}

func validateCreate(req *models.CreateTransactionRequest) error {
	if !req.TransactionType.Valid() {
		return &ValidationError{Field: "transaction_type", Reason: "must be sale or purchase"}
	}
	if req.ClientName == "" {
		return &ValidationError{Field: "client_name", Reason: "required"}
	}
	if req.Product == "" {
		return &ValidationError{Field: "product", Reason: "required"}
	}
	if req.Quantity < 1 {
		return &ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	if req.UnitPrice.IsNegative() {
		return &ValidationError{Field: "unit_price", Reason: "must not be negative"}
	}
	if req.PaymentMethod == "" {
		return &ValidationError{Field: "payment_method", Reason: "required"}
	}
	return nil
}
