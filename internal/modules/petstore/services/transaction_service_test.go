package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/petmanager/petmanager-be/internal/modules/petstore/models"
)

// fakeTransactionRepo is an in-memory TransactionRepo for service tests.
type fakeTransactionRepo struct {
	records map[string]models.Transaction
	order   []string
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{records: make(map[string]models.Transaction)}
}

func (r *fakeTransactionRepo) Insert(_ context.Context, transaction *models.Transaction) error {
	if transaction.ID == uuid.Nil {
		transaction.ID = uuid.New()
	}
	r.records[transaction.ID.String()] = *transaction
	r.order = append(r.order, transaction.ID.String())
	return nil
}

func (r *fakeTransactionRepo) GetByID(_ context.Context, id string) (*models.Transaction, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &record, nil
}

func (r *fakeTransactionRepo) List(_ context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	// Most recent first, like the store ordering.
	var out []models.Transaction
	for i := len(r.order) - 1; i >= 0; i-- {
		record := r.records[r.order[i]]
		if filter.Status != "" && record.Status != filter.Status {
			continue
		}
		if filter.Type != "" && record.TransactionType != filter.Type {
			continue
		}
		out = append(out, record)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) Update(_ context.Context, transaction *models.Transaction) error {
	if _, ok := r.records[transaction.ID.String()]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.records[transaction.ID.String()] = *transaction
	return nil
}

func (r *fakeTransactionRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.records[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.records, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeTransactionRepo) CountByStatus(_ context.Context) (*models.StatusCounts, error) {
	counts := &models.StatusCounts{}
	for _, record := range r.records {
		switch record.Status {
		case models.StatusPending:
			counts.Pending++
		case models.StatusApproved:
			counts.Approved++
		case models.StatusRejected:
			counts.Rejected++
		}
	}
	return counts, nil
}

// fakeAlerter records high-value hook invocations.
type fakeAlerter struct {
	alerted []models.Transaction
}

func (a *fakeAlerter) HighValueCreated(_ context.Context, transaction *models.Transaction) {
	a.alerted = append(a.alerted, *transaction)
}

func newTestService() (*TransactionService, *fakeTransactionRepo, *fakeAlerter) {
	repo := newFakeTransactionRepo()
	alerter := &fakeAlerter{}
	service := NewTransactionService(repo, alerter, decimal.NewFromInt(3000000))
	return service, repo, alerter
}

func validCreateRequest() *models.CreateTransactionRequest {
	return &models.CreateTransactionRequest{
		TransactionType: models.TypeSale,
		ClientName:      "Ana Pérez",
		Product:         "Golden Retriever puppy",
		Quantity:        3,
		UnitPrice:       decimal.NewFromInt(10000),
		PaymentMethod:   "cash",
	}
}

func TestCreateDerivesTotalAndStartsPending(t *testing.T) {
	service, repo, _ := newTestService()

	transaction, err := service.Create(context.Background(), uuid.New(), validCreateRequest())
	require.NoError(t, err)

	assert.True(t, transaction.Total.Equal(decimal.NewFromInt(30000)), "total = quantity * unit price")
	assert.Equal(t, models.StatusPending, transaction.Status)
	assert.Len(t, repo.records, 1)
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.CreateTransactionRequest)
		field  string
	}{
		{"unknown type", func(r *models.CreateTransactionRequest) { r.TransactionType = "trade" }, "transaction_type"},
		{"missing client", func(r *models.CreateTransactionRequest) { r.ClientName = "" }, "client_name"},
		{"missing product", func(r *models.CreateTransactionRequest) { r.Product = "" }, "product"},
		{"zero quantity", func(r *models.CreateTransactionRequest) { r.Quantity = 0 }, "quantity"},
		{"negative price", func(r *models.CreateTransactionRequest) { r.UnitPrice = decimal.NewFromInt(-1) }, "unit_price"},
		{"missing payment method", func(r *models.CreateTransactionRequest) { r.PaymentMethod = "" }, "payment_method"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, _ := newTestService()
			req := validCreateRequest()
			tt.mutate(req)

			_, err := service.Create(context.Background(), uuid.New(), req)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
			assert.Empty(t, repo.records, "nothing persists on validation failure")
		})
	}
}

func TestCreateHighValueAlert(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		unitPrice int64
		alerted   bool
	}{
		{"above threshold", 1, 3500000, true},
		{"below threshold", 1, 150000, false},
		{"exactly at threshold", 3, 1000000, false}, // strictly greater than
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, alerter := newTestService()
			req := validCreateRequest()
			req.Quantity = tt.quantity
			req.UnitPrice = decimal.NewFromInt(tt.unitPrice)

			transaction, err := service.Create(context.Background(), uuid.New(), req)
			require.NoError(t, err)

			if tt.alerted {
				require.Len(t, alerter.alerted, 1)
				assert.Equal(t, transaction.ID, alerter.alerted[0].ID)
			} else {
				assert.Empty(t, alerter.alerted)
			}
		})
	}
}

func TestUpdateRecomputesTotal(t *testing.T) {
	service, _, _ := newTestService()
	req := validCreateRequest()
	req.Quantity = 2
	req.UnitPrice = decimal.NewFromInt(1000)

	transaction, err := service.Create(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	require.True(t, transaction.Total.Equal(decimal.NewFromInt(2000)))

	newQuantity := 5
	updated, err := service.Update(context.Background(), transaction.ID.String(), &models.UpdateTransactionRequest{
		Quantity: &newQuantity,
	})
	require.NoError(t, err)

	assert.True(t, updated.Total.Equal(decimal.NewFromInt(5000)), "total recomputed from patched quantity")
}

func TestUpdateRejectsNonPending(t *testing.T) {
	service, repo, _ := newTestService()

	transaction, err := service.Create(context.Background(), uuid.New(), validCreateRequest())
	require.NoError(t, err)

	approved := repo.records[transaction.ID.String()]
	approved.Status = models.StatusApproved
	repo.records[transaction.ID.String()] = approved

	name := "Someone Else"
	_, err = service.Update(context.Background(), transaction.ID.String(), &models.UpdateTransactionRequest{
		ClientName: &name,
	})

	var permissionErr *PermissionError
	require.ErrorAs(t, err, &permissionErr)
}

func TestSetStatusApprovesExactlyOnce(t *testing.T) {
	service, _, _ := newTestService()

	transaction, err := service.Create(context.Background(), uuid.New(), validCreateRequest())
	require.NoError(t, err)

	approved, err := service.SetStatus(context.Background(), transaction.ID.String(), models.StatusApproved, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)

	// A second transition from the terminal state conflicts and changes nothing.
	_, err = service.SetStatus(context.Background(), transaction.ID.String(), models.StatusRejected, models.RoleAdmin)
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)

	current, err := service.Get(context.Background(), transaction.ID.String())
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, current.Status)
}

func TestSetStatusRequiresAdmin(t *testing.T) {
	service, _, _ := newTestService()

	transaction, err := service.Create(context.Background(), uuid.New(), validCreateRequest())
	require.NoError(t, err)

	_, err = service.SetStatus(context.Background(), transaction.ID.String(), models.StatusApproved, models.RoleSeller)

	var permissionErr *PermissionError
	require.ErrorAs(t, err, &permissionErr)

	current, err := service.Get(context.Background(), transaction.ID.String())
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, current.Status)
}

func TestSetStatusRejectsUnknownTarget(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.SetStatus(context.Background(), uuid.NewString(), models.StatusPending, models.RoleAdmin)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestGetUnknownID(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Get(context.Background(), uuid.NewString())

	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

func TestDeleteUnknownID(t *testing.T) {
	service, _, _ := newTestService()

	err := service.Delete(context.Background(), uuid.NewString())

	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

func TestListValidatesStatusFilter(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.List(context.Background(), "archived")

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestStatusCounts(t *testing.T) {
	service, repo, _ := newTestService()

	for i := 0; i < 3; i++ {
		_, err := service.Create(context.Background(), uuid.New(), validCreateRequest())
		require.NoError(t, err)
	}
	approvedID := repo.order[0]
	approved := repo.records[approvedID]
	approved.Status = models.StatusApproved
	repo.records[approvedID] = approved

	counts, err := service.StatusCounts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), counts.Pending)
	assert.Equal(t, int64(1), counts.Approved)
	assert.Equal(t, int64(0), counts.Rejected)
}
