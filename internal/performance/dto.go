package performance

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/salestrack/salestrack-backend/pkg/db/models"
	"github.com/salestrack/salestrack-backend/pkg/enums"
	"github.com/salestrack/salestrack-backend/pkg/pagination"
)

// UpsertRequest is the write payload for one user/period. Submitting the
// same period twice updates the existing record in place.
type UpsertRequest struct {
	Year  int `json:"year" validate:"required,min=2020,max=2030"`
	Month int `json:"month" validate:"required,min=1,max=12"`

	Revenue       int64 `json:"revenue" validate:"min=0"`
	RevenueTarget int64 `json:"revenue_target" validate:"min=0"`
	NewClients    int   `json:"new_clients" validate:"min=0"`

	AppointmentsCompleted int `json:"appointments_completed" validate:"min=0"`
	AppointmentsPlanned   int `json:"appointments_planned" validate:"min=0"`
	SalesCompleted        int `json:"sales_completed" validate:"min=0"`

	FilesUpdated int `json:"files_updated" validate:"min=0"`
	TotalFiles   int `json:"total_files" validate:"min=0"`
	EventCount   int `json:"event_count" validate:"min=0"`

	Satisfaction *int    `json:"satisfaction,omitempty" validate:"omitempty,min=1,max=5"`
	Comment      *string `json:"comment,omitempty" validate:"omitempty,max=500"`
	Status       *string `json:"status,omitempty"`
}

// ListFilters narrows a listing; nil fields are ignored.
type ListFilters struct {
	Year   *int
	Month  *int
	Status *enums.RecordStatus
}

// RecordDTO is the transport shape including the derived rates, which are
// computed on read and never stored.
type RecordDTO struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
	Year   int       `json:"year"`
	Month  int       `json:"month"`

	Revenue       int64 `json:"revenue"`
	RevenueTarget int64 `json:"revenue_target"`
	NewClients    int   `json:"new_clients"`

	AppointmentsCompleted int `json:"appointments_completed"`
	AppointmentsPlanned   int `json:"appointments_planned"`
	SalesCompleted        int `json:"sales_completed"`

	FilesUpdated int `json:"files_updated"`
	TotalFiles   int `json:"total_files"`
	EventCount   int `json:"event_count"`

	Satisfaction int     `json:"satisfaction"`
	Comment      *string `json:"comment,omitempty"`

	Status      enums.RecordStatus `json:"status"`
	ValidatedAt *time.Time         `json:"validated_at,omitempty"`

	ConversionRate       int `json:"conversion_rate"`
	CompletionRate       int `json:"completion_rate"`
	TargetAttainmentRate int `json:"target_attainment_rate"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListResult is one page of records plus the total count.
type ListResult struct {
	Items []RecordDTO     `json:"items"`
	Meta  pagination.Meta `json:"meta"`
}

func FromModel(m *models.PerformanceRecord) *RecordDTO {
	if m == nil {
		return nil
	}
	return &RecordDTO{
		ID:                    m.ID,
		UserID:                m.UserID,
		Year:                  m.Year,
		Month:                 m.Month,
		Revenue:               m.Revenue,
		RevenueTarget:         m.RevenueTarget,
		NewClients:            m.NewClients,
		AppointmentsCompleted: m.AppointmentsCompleted,
		AppointmentsPlanned:   m.AppointmentsPlanned,
		SalesCompleted:        m.SalesCompleted,
		FilesUpdated:          m.FilesUpdated,
		TotalFiles:            m.TotalFiles,
		EventCount:            m.EventCount,
		Satisfaction:          m.Satisfaction,
		Comment:               m.Comment,
		Status:                m.Status,
		ValidatedAt:           m.ValidatedAt,
		ConversionRate:        RatePercent(int64(m.SalesCompleted), int64(m.AppointmentsCompleted)),
		CompletionRate:        RatePercent(int64(m.FilesUpdated), int64(m.TotalFiles)),
		TargetAttainmentRate:  RatePercent(m.Revenue, m.RevenueTarget),
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

// RatePercent returns round(100*numerator/denominator), or 0 when the
// denominator is zero.
func RatePercent(numerator, denominator int64) int {
	if denominator == 0 {
		return 0
	}
	return int(math.Round(100 * float64(numerator) / float64(denominator)))
}
