package stats

// SummaryFilters selects which validated records feed the aggregation.
// Month is optional; nil means the whole year.
type SummaryFilters struct {
	Year  int
	Month *int
}

// Summary is the aggregate view over a user's validated records.
type Summary struct {
	Year  int  `json:"year"`
	Month *int `json:"month,omitempty"`

	RecordCount int `json:"record_count"`

	TotalRevenue       int64 `json:"total_revenue"`
	TotalRevenueTarget int64 `json:"total_revenue_target"`

	TotalNewClients            int `json:"total_new_clients"`
	TotalAppointmentsCompleted int `json:"total_appointments_completed"`
	TotalSalesCompleted        int `json:"total_sales_completed"`
	TotalEvents                int `json:"total_events"`

	AverageSatisfaction float64 `json:"average_satisfaction"`

	ConversionRate       int `json:"conversion_rate"`
	TargetAttainmentRate int `json:"target_attainment_rate"`
}
