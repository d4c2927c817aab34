package performance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/salestrack/salestrack-backend/pkg/db"
	"github.com/salestrack/salestrack-backend/pkg/db/models"
	"github.com/salestrack/salestrack-backend/pkg/enums"
	pkgerrors "github.com/salestrack/salestrack-backend/pkg/errors"
	"github.com/salestrack/salestrack-backend/pkg/pagination"
)

// Service defines the record lifecycle behavior needed by the controllers.
type Service interface {
	Upsert(ctx context.Context, userID uuid.UUID, req UpsertRequest) (*RecordDTO, bool, error)
	ListForUser(ctx context.Context, userID uuid.UUID, filters ListFilters, params pagination.Params) (*ListResult, error)
	ListAll(ctx context.Context, params pagination.Params) (*ListResult, error)
	Get(ctx context.Context, callerID, recordID uuid.UUID) (*RecordDTO, error)
	Delete(ctx context.Context, callerID, recordID uuid.UUID) error
}

type recordRepository interface {
	FindByPeriod(ctx context.Context, userID uuid.UUID, year, month int) (*models.PerformanceRecord, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.PerformanceRecord, error)
	Create(ctx context.Context, record *models.PerformanceRecord) error
	Save(ctx context.Context, record *models.PerformanceRecord) error
	ListForUser(ctx context.Context, userID uuid.UUID, filters ListFilters, params pagination.Params) ([]models.PerformanceRecord, int64, error)
	ListAll(ctx context.Context, params pagination.Params) ([]models.PerformanceRecord, int64, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	records recordRepository
}

// NewService constructs the performance service.
func NewService(records recordRepository) (Service, error) {
	if records == nil {
		return nil, fmt.Errorf("record repository is required")
	}
	return &service{records: records}, nil
}

// Upsert creates or replaces the caller's record for the submitted period.
// The boolean reports whether a new record was created.
func (s *service) Upsert(ctx context.Context, userID uuid.UUID, req UpsertRequest) (*RecordDTO, bool, error) {
	status, err := resolveStatus(req.Status)
	if err != nil {
		return nil, false, err
	}
	if err := validateCrossFields(req); err != nil {
		return nil, false, err
	}

	existing, err := s.records.FindByPeriod(ctx, userID, req.Year, req.Month)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup period")
	}

	if existing != nil {
		applyRequest(existing, req, status)
		if err := s.records.Save(ctx, existing); err != nil {
			return nil, false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update record")
		}
		return FromModel(existing), false, nil
	}

	record := &models.PerformanceRecord{
		ID:     uuid.New(),
		UserID: userID,
		Year:   req.Year,
		Month:  req.Month,
	}
	applyRequest(record, req, status)
	if err := s.records.Create(ctx, record); err != nil {
		if db.IsUniqueViolation(err, models.PerformanceRecordPeriodConstraint) {
			return nil, false, pkgerrors.New(pkgerrors.CodeDuplicatePeriod, "a record already exists for this period").
				WithDetails(map[string]any{"year": req.Year, "month": req.Month})
		}
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create record")
	}
	return FromModel(record), true, nil
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID, filters ListFilters, params pagination.Params) (*ListResult, error) {
	records, total, err := s.records.ListForUser(ctx, userID, filters, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list records")
	}
	return buildListResult(records, params, total), nil
}

func (s *service) ListAll(ctx context.Context, params pagination.Params) (*ListResult, error) {
	records, total, err := s.records.ListAll(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list records")
	}
	return buildListResult(records, params, total), nil
}

// Get returns one record; only the owner may read it. Existence is not
// leaked differently: a non-owner with a valid id receives the same
// forbidden error regardless of the record's contents.
func (s *service) Get(ctx context.Context, callerID, recordID uuid.UUID) (*RecordDTO, error) {
	record, err := s.loadOwned(ctx, callerID, recordID)
	if err != nil {
		return nil, err
	}
	return FromModel(record), nil
}

// Delete removes one record; only the owner may delete it.
func (s *service) Delete(ctx context.Context, callerID, recordID uuid.UUID) error {
	record, err := s.loadOwned(ctx, callerID, recordID)
	if err != nil {
		return err
	}
	deleted, err := s.records.Delete(ctx, record.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete record")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "record not found")
	}
	return nil
}

func (s *service) loadOwned(ctx context.Context, callerID, recordID uuid.UUID) (*models.PerformanceRecord, error) {
	record, err := s.records.FindByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "record not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup record")
	}
	if record.UserID != callerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "record belongs to another user")
	}
	return record, nil
}

func resolveStatus(raw *string) (enums.RecordStatus, error) {
	if raw == nil {
		return enums.RecordStatusDraft, nil
	}
	status, err := enums.ParseRecordStatus(*raw)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"status": "must be draft or validated"})
	}
	return status, nil
}

// validateCrossFields enforces the relations a field-level validator cannot
// express. Runs on every write, create and update alike.
func validateCrossFields(req UpsertRequest) error {
	details := map[string]string{}
	if req.SalesCompleted > req.AppointmentsCompleted {
		details["sales_completed"] = "cannot exceed appointments_completed"
	}
	if req.FilesUpdated > req.TotalFiles {
		details["files_updated"] = "cannot exceed total_files"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}

func applyRequest(record *models.PerformanceRecord, req UpsertRequest, status enums.RecordStatus) {
	record.Revenue = req.Revenue
	record.RevenueTarget = req.RevenueTarget
	record.NewClients = req.NewClients
	record.AppointmentsCompleted = req.AppointmentsCompleted
	record.AppointmentsPlanned = req.AppointmentsPlanned
	record.SalesCompleted = req.SalesCompleted
	record.FilesUpdated = req.FilesUpdated
	record.TotalFiles = req.TotalFiles
	record.EventCount = req.EventCount
	record.Comment = req.Comment

	if req.Satisfaction != nil {
		record.Satisfaction = *req.Satisfaction
	} else if record.Satisfaction == 0 {
		record.Satisfaction = 4
	}

	switch status {
	case enums.RecordStatusValidated:
		if record.Status != enums.RecordStatusValidated {
			now := time.Now().UTC()
			record.ValidatedAt = &now
		}
	default:
		record.ValidatedAt = nil
	}
	record.Status = status
}

func buildListResult(records []models.PerformanceRecord, params pagination.Params, total int64) *ListResult {
	items := make([]RecordDTO, 0, len(records))
	for i := range records {
		items = append(items, *FromModel(&records[i]))
	}
	return &ListResult{
		Items: items,
		Meta:  pagination.NewMeta(params, total),
	}
}
