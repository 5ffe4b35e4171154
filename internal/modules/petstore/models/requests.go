package models

import "github.com/shopspring/decimal"

// CreateTransactionRequest is the create-form payload. Total is never accepted
// from the client; it is derived server-side.
type CreateTransactionRequest struct {
	TransactionType TransactionType `json:"transaction_type"`
	ClientName      string          `json:"client_name"`
	Product         string          `json:"product"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	PaymentMethod   string          `json:"payment_method"`
	Notes           string          `json:"notes,omitempty"`
}

// UpdateTransactionRequest is an explicit partial patch; nil fields are left
// untouched.
type UpdateTransactionRequest struct {
	ClientName    *string          `json:"client_name,omitempty"`
	Product       *string          `json:"product,omitempty"`
	Quantity      *int             `json:"quantity,omitempty"`
	UnitPrice     *decimal.Decimal `json:"unit_price,omitempty"`
	PaymentMethod *string          `json:"payment_method,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
}

// SetStatusRequest carries the requested lifecycle transition.
type SetStatusRequest struct {
	Status TransactionStatus `json:"status"`
}

// UpdateAccessRequest replaces a user's role and permission set.
type UpdateAccessRequest struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// TransactionFilter narrows List results. Zero values mean "no filter".
type TransactionFilter struct {
	Status TransactionStatus
	Type   TransactionType
	Limit  int
}
