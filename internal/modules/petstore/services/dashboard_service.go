package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/petmanager/petmanager-be/internal/core/analytics"
	"github.com/petmanager/petmanager-be/internal/modules/petstore/models"
	"github.com/petmanager/petmanager-be/internal/modules/petstore/repositories"
)

const recentTransactionsLimit = 5

// DashboardSummary is the aggregate view rendered on the landing screen. All
// numbers come from the store on every call; nothing is cached.
type DashboardSummary struct {
	Counts          models.StatusCounts  `json:"counts"`
	MonthSalesTotal decimal.Decimal      `json:"month_sales_total"`
	MonthUnitsSold  int64                `json:"month_units_sold"`
	HighValueCount  int64                `json:"high_value_count"`
	Recent          []models.Transaction `json:"recent_transactions"`
}

// DashboardService assembles the dashboard aggregates from the transactions
// table.
type DashboardService struct {
	repo       repositories.TransactionRepo
	aggregator *analytics.Aggregator
	threshold  decimal.Decimal
	now        func() time.Time
}

func NewDashboardService(repo repositories.TransactionRepo, aggregator *analytics.Aggregator, highValueThreshold decimal.Decimal) *DashboardService {
	return &DashboardService{
		repo:       repo,
		aggregator: aggregator,
		threshold:  highValueThreshold,
		now:        time.Now,
	}
}

// Summary computes status counts, the approved-sales total and units sold for
// the current month, the number of high-value transactions on record, and the
// most recent transactions.
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, &TransportError{Op: "count", Err: err}
	}

	month := analytics.CurrentMonth(s.now(), "created_at")
	approvedSales := map[string]interface{}{
		"transaction_type": string(models.TypeSale),
		"status":           string(models.StatusApproved),
	}

	salesTotal, err := s.aggregator.Sum("transactions", "total", approvedSales, month)
	if err != nil {
		return nil, &TransportError{Op: "aggregate", Err: err}
	}
	unitsSold, err := s.aggregator.Sum("transactions", "quantity", approvedSales, month)
	if err != nil {
		return nil, &TransportError{Op: "aggregate", Err: err}
	}

	highValue, err := s.aggregator.Count("transactions", map[string]interface{}{
		"total > ?": s.threshold,
	})
	if err != nil {
		return nil, &TransportError{Op: "count", Err: err}
	}

	recent, err := s.repo.List(ctx, models.TransactionFilter{Limit: recentTransactionsLimit})
	if err != nil {
		return nil, &TransportError{Op: "select", Err: err}
	}

	return &DashboardSummary{
		Counts:          *counts,
		MonthSalesTotal: decimal.NewFromFloat(salesTotal),
		MonthUnitsSold:  int64(unitsSold),
		HighValueCount:  highValue,
		Recent:          recent,
	}, nil
}
