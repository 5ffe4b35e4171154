package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/petmanager/petmanager-be/internal/modules/petstore/models"
	"github.com/petmanager/petmanager-be/internal/modules/petstore/repositories"
)

// ReportFilter narrows a purchases/sales listing. Zero values mean the
// criterion is not applied; clearing every field returns the full set.
type ReportFilter struct {
	Counterparty string
	StartDate    *time.Time
	EndDate      *time.Time
}

// ReportSummary holds the aggregates shown above the listing. They are
// recomputed from the filtered subset on every call, never cached.
type ReportSummary struct {
	Count         int             `json:"count"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	TotalQuantity int             `json:"total_quantity"`
}

// ReportService serves the consult-purchases and consult-sales listings: the
// full record set is fetched once, then filtered and summarized in memory.
type ReportService struct {
	repo repositories.TransactionRepo
}

func NewReportService(repo repositories.TransactionRepo) *ReportService {
	return &ReportService{repo: repo}
}

// Purchases returns the filtered purchase records and their summary.
func (s *ReportService) Purchases(ctx context.Context, filter ReportFilter) ([]models.Transaction, ReportSummary, error) {
	return s.report(ctx, models.TypePurchase, filter)
}

// Sales returns the filtered sale records and their summary.
func (s *ReportService) Sales(ctx context.Context, filter ReportFilter) ([]models.Transaction, ReportSummary, error) {
	return s.report(ctx, models.TypeSale, filter)
}

func (s *ReportService) report(ctx context.Context, transactionType models.TransactionType, filter ReportFilter) ([]models.Transaction, ReportSummary, error) {
	records, err := s.repo.List(ctx, models.TransactionFilter{Type: transactionType})
	if err != nil {
		return nil, ReportSummary{}, &TransportError{Op: "select", Err: err}
	}

	filtered := FilterRecords(records, filter)
	return filtered, Summarize(filtered), nil
}

// FilterRecords applies the report criteria in memory: counterparty equality
// (exact, no fuzzy matching) AND an inclusive date range over the record's
// creation time. An empty filter returns the input unchanged in order.
func FilterRecords(records []models.Transaction, filter ReportFilter) []models.Transaction {
	filtered := make([]models.Transaction, 0, len(records))
	for _, record := range records {
		if filter.Counterparty != "" && record.ClientName != filter.Counterparty {
			continue
		}
		if filter.StartDate != nil && record.CreatedAt.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && record.CreatedAt.After(*filter.EndDate) {
			continue
		}
		filtered = append(filtered, record)
	}
	return filtered
}

// Summarize computes the listing aggregates from the given (already filtered)
// subset.
func Summarize(records []models.Transaction) ReportSummary {
	summary := ReportSummary{TotalAmount: decimal.Zero}
	for _, record := range records {
		summary.Count++
		summary.TotalAmount = summary.TotalAmount.Add(record.Total)
		summary.TotalQuantity += record.Quantity
	}
	return summary
}
