package stats

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/salestrack/salestrack-backend/internal/performance"
	"github.com/salestrack/salestrack-backend/pkg/enums"
	pkgerrors "github.com/salestrack/salestrack-backend/pkg/errors"
)

// Service computes aggregates over validated performance records.
type Service interface {
	Summary(ctx context.Context, userID uuid.UUID, filters SummaryFilters) (*Summary, error)
}

type service struct {
	db *gorm.DB
}

// NewService builds a stats service over the provided GORM DB.
func NewService(db *gorm.DB) (Service, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle is required")
	}
	return &service{db: db}, nil
}

// aggregateRow is the scan target for the summary query. COALESCE keeps
// every column non-null when no rows match.
type aggregateRow struct {
	RecordCount                int
	TotalRevenue               int64
	TotalRevenueTarget         int64
	TotalNewClients            int
	TotalAppointmentsCompleted int
	TotalSalesCompleted        int
	TotalEvents                int
	AverageSatisfaction        float64
}

const summaryQuery = `
SELECT
  COUNT(*)                              AS record_count,
  COALESCE(SUM(revenue), 0)             AS total_revenue,
  COALESCE(SUM(revenue_target), 0)      AS total_revenue_target,
  COALESCE(SUM(new_clients), 0)         AS total_new_clients,
  COALESCE(SUM(appointments_completed), 0) AS total_appointments_completed,
  COALESCE(SUM(sales_completed), 0)     AS total_sales_completed,
  COALESCE(SUM(event_count), 0)         AS total_events,
  COALESCE(AVG(satisfaction), 0)        AS average_satisfaction
FROM performance_records
WHERE user_id = ? AND year = ? AND status = ?`

// Summary aggregates the user's validated records for one year, optionally
// narrowed to one month. An empty selection yields an all-zero summary,
// never an error.
func (s *service) Summary(ctx context.Context, userID uuid.UUID, filters SummaryFilters) (*Summary, error) {
	query := summaryQuery
	args := []any{userID, filters.Year, enums.RecordStatusValidated}
	if filters.Month != nil {
		query += " AND month = ?"
		args = append(args, *filters.Month)
	}

	var row aggregateRow
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&row).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "aggregate records")
	}

	return &Summary{
		Year:                       filters.Year,
		Month:                      filters.Month,
		RecordCount:                row.RecordCount,
		TotalRevenue:               row.TotalRevenue,
		TotalRevenueTarget:         row.TotalRevenueTarget,
		TotalNewClients:            row.TotalNewClients,
		TotalAppointmentsCompleted: row.TotalAppointmentsCompleted,
		TotalSalesCompleted:        row.TotalSalesCompleted,
		TotalEvents:                row.TotalEvents,
		AverageSatisfaction:        math.Round(row.AverageSatisfaction*100) / 100,
		ConversionRate:             performance.RatePercent(int64(row.TotalSalesCompleted), int64(row.TotalAppointmentsCompleted)),
		TargetAttainmentRate:       performance.RatePercent(row.TotalRevenue, row.TotalRevenueTarget),
	}, nil
}
