package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType distinguishes a sale to a customer from a purchase from a supplier.
type TransactionType string

const (
	TypeSale     TransactionType = "sale"
	TypePurchase TransactionType = "purchase"
)

func (t TransactionType) Valid() bool {
	return t == TypeSale || t == TypePurchase
}

// TransactionStatus is the approval lifecycle state of a transaction.
type TransactionStatus string

const (
	StatusPending  TransactionStatus = "pending"
	StatusApproved TransactionStatus = "approved"
	StatusRejected TransactionStatus = "rejected"
)

// Terminal reports whether no further status transition is allowed.
func (s TransactionStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Transaction represents a sale or purchase awaiting approval.
type Transaction struct {
	ID              uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID          uuid.UUID         `gorm:"type:uuid;not null;index:idx_transactions_user" json:"user_id"`
	TransactionType TransactionType   `gorm:"type:varchar(10);not null" json:"transaction_type"`
	ClientName      string            `gorm:"type:varchar(255);not null" json:"client_name"`
	Product         string            `gorm:"type:varchar(255);not null" json:"product"`
	Quantity        int               `gorm:"not null" json:"quantity"`
	UnitPrice       decimal.Decimal   `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	Total           decimal.Decimal   `gorm:"type:decimal(15,2);not null" json:"total"`
	PaymentMethod   string            `gorm:"type:varchar(100);not null" json:"payment_method"`
	Status          TransactionStatus `gorm:"type:varchar(10);not null;default:'pending';index" json:"status"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (Transaction) TableName() string {
	return "transactions"
}

// BeforeCreate sets UUID before creating
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Total computes the derived total for a quantity at a unit price. Every write
// path (create, update, revalidation) must go through this one function so the
// persisted total never drifts from the displayed one.
func Total(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// IsHighValue reports whether the transaction total strictly exceeds the
// configured threshold.
func (t *Transaction) IsHighValue(threshold decimal.Decimal) bool {
	return t.Total.GreaterThan(threshold)
}

// StatusCounts holds per-status totals for the transactions listing header.
type StatusCounts struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}
