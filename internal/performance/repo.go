package performance

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/salestrack/salestrack-backend/pkg/db/models"
	"github.com/salestrack/salestrack-backend/pkg/pagination"
)

// Repository exposes persistence helpers for performance records.
type Repository struct {
	db *gorm.DB
}

// NewRepository returns a performance repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByPeriod loads the record for one user and month, if any.
func (r *Repository) FindByPeriod(ctx context.Context, userID uuid.UUID, year, month int) (*models.PerformanceRecord, error) {
	var record models.PerformanceRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByID loads a record by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.PerformanceRecord, error) {
	var record models.PerformanceRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// Create inserts a new record. The composite unique index on
// (user_id, year, month) rejects a concurrent duplicate insert.
func (r *Repository) Create(ctx context.Context, record *models.PerformanceRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// Save persists every field of an existing record by primary key.
func (r *Repository) Save(ctx context.Context, record *models.PerformanceRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// ListForUser returns one page of the user's records plus the total count,
// ordered by year then month, most recent first.
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID, filters ListFilters, params pagination.Params) ([]models.PerformanceRecord, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.PerformanceRecord{}).
		Where("user_id = ?", userID)
	query = applyFilters(query, filters)
	return r.page(query, params)
}

// ListAll returns one page across all users, same ordering.
func (r *Repository) ListAll(ctx context.Context, params pagination.Params) ([]models.PerformanceRecord, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PerformanceRecord{})
	return r.page(query, params)
}

// Delete removes a record by primary key and reports whether a row matched.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.PerformanceRecord{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func applyFilters(query *gorm.DB, filters ListFilters) *gorm.DB {
	if filters.Year != nil {
		query = query.Where("year = ?", *filters.Year)
	}
	if filters.Month != nil {
		query = query.Where("month = ?", *filters.Month)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	return query
}

func (r *Repository) page(query *gorm.DB, params pagination.Params) ([]models.PerformanceRecord, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	normalized := params.Normalize()
	var records []models.PerformanceRecord
	err := query.
		Order("year DESC, month DESC").
		Offset(params.Offset()).
		Limit(normalized.Limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
