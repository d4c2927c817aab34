package performance

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/salestrack/salestrack-backend/pkg/db/models"
	"github.com/salestrack/salestrack-backend/pkg/enums"
	pkgerrors "github.com/salestrack/salestrack-backend/pkg/errors"
	"github.com/salestrack/salestrack-backend/pkg/pagination"
)

type stubRecordRepo struct {
	records   map[uuid.UUID]*models.PerformanceRecord
	createErr error
}

func newStubRecordRepo() *stubRecordRepo {
	return &stubRecordRepo{records: map[uuid.UUID]*models.PerformanceRecord{}}
}

func (s *stubRecordRepo) FindByPeriod(ctx context.Context, userID uuid.UUID, year, month int) (*models.PerformanceRecord, error) {
	for _, record := range s.records {
		if record.UserID == userID && record.Year == year && record.Month == month {
			copied := *record
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRecordRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.PerformanceRecord, error) {
	if record, ok := s.records[id]; ok {
		copied := *record
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRecordRepo) Create(ctx context.Context, record *models.PerformanceRecord) error {
	if s.createErr != nil {
		return s.createErr
	}
	copied := *record
	s.records[record.ID] = &copied
	return nil
}

func (s *stubRecordRepo) Save(ctx context.Context, record *models.PerformanceRecord) error {
	copied := *record
	s.records[record.ID] = &copied
	return nil
}

func (s *stubRecordRepo) ListForUser(ctx context.Context, userID uuid.UUID, filters ListFilters, params pagination.Params) ([]models.PerformanceRecord, int64, error) {
	var out []models.PerformanceRecord
	for _, record := range s.records {
		if record.UserID == userID {
			out = append(out, *record)
		}
	}
	return out, int64(len(out)), nil
}

func (s *stubRecordRepo) ListAll(ctx context.Context, params pagination.Params) ([]models.PerformanceRecord, int64, error) {
	var out []models.PerformanceRecord
	for _, record := range s.records {
		out = append(out, *record)
	}
	return out, int64(len(out)), nil
}

func (s *stubRecordRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if _, ok := s.records[id]; !ok {
		return false, nil
	}
	delete(s.records, id)
	return true, nil
}

func newTestService(t *testing.T) (Service, *stubRecordRepo) {
	t.Helper()
	repo := newStubRecordRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo
}

func sampleUpsert(year, month int) UpsertRequest {
	return UpsertRequest{
		Year:                  year,
		Month:                 month,
		Revenue:               90000,
		RevenueTarget:         100000,
		NewClients:            3,
		AppointmentsCompleted: 40,
		AppointmentsPlanned:   45,
		SalesCompleted:        20,
		FilesUpdated:          8,
		TotalFiles:            10,
		EventCount:            2,
	}
}

func TestUpsertCreatesRecordWithDefaults(t *testing.T) {
	svc, repo := newTestService(t)
	userID := uuid.New()

	record, created, err := svc.Upsert(context.Background(), userID, sampleUpsert(2026, 3))
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if !created {
		t.Fatal("expected created=true for a new period")
	}
	if record.Status != enums.RecordStatusDraft {
		t.Fatalf("expected default draft status, got %s", record.Status)
	}
	if record.Satisfaction != 4 {
		t.Fatalf("expected default satisfaction 4, got %d", record.Satisfaction)
	}
	if len(repo.records) != 1 {
		t.Fatalf("expected one stored record, got %d", len(repo.records))
	}
}

func TestUpsertSamePeriodUpdatesInPlace(t *testing.T) {
	svc, repo := newTestService(t)
	userID := uuid.New()

	first, created, err := svc.Upsert(context.Background(), userID, sampleUpsert(2026, 3))
	if err != nil || !created {
		t.Fatalf("first upsert: created=%v err=%v", created, err)
	}

	req := sampleUpsert(2026, 3)
	req.Revenue = 120000
	second, created, err := svc.Upsert(context.Background(), userID, req)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if created {
		t.Fatal("expected created=false for an existing period")
	}
	if second.ID != first.ID {
		t.Fatal("update must keep the record identity")
	}
	if second.Revenue != 120000 {
		t.Fatalf("expected revenue replaced, got %d", second.Revenue)
	}
	if len(repo.records) != 1 {
		t.Fatalf("expected a single record, got %d", len(repo.records))
	}
}

func TestUpsertCrossFieldValidation(t *testing.T) {
	svc, _ := newTestService(t)

	req := sampleUpsert(2026, 3)
	req.SalesCompleted = req.AppointmentsCompleted + 1
	req.FilesUpdated = req.TotalFiles + 5

	_, _, err := svc.Upsert(context.Background(), uuid.New(), req)
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	details, ok := pkgerrors.As(err).Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", pkgerrors.As(err).Details())
	}
	if _, ok := details["sales_completed"]; !ok {
		t.Fatal("expected sales_completed detail")
	}
	if _, ok := details["files_updated"]; !ok {
		t.Fatal("expected files_updated detail")
	}
}

func TestUpsertInvalidStatus(t *testing.T) {
	svc, _ := newTestService(t)

	req := sampleUpsert(2026, 3)
	status := "approved"
	req.Status = &status

	_, _, err := svc.Upsert(context.Background(), uuid.New(), req)
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestUpsertValidatedStampsTimestamp(t *testing.T) {
	svc, _ := newTestService(t)
	userID := uuid.New()

	req := sampleUpsert(2026, 3)
	status := "validated"
	req.Status = &status

	record, _, err := svc.Upsert(context.Background(), userID, req)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if record.Status != enums.RecordStatusValidated {
		t.Fatalf("expected validated, got %s", record.Status)
	}
	if record.ValidatedAt == nil {
		t.Fatal("expected validated_at to be stamped")
	}

	// Reverting to draft clears the stamp.
	draft := sampleUpsert(2026, 3)
	record, _, err = svc.Upsert(context.Background(), userID, draft)
	if err != nil {
		t.Fatalf("revert upsert: %v", err)
	}
	if record.Status != enums.RecordStatusDraft || record.ValidatedAt != nil {
		t.Fatalf("expected draft with nil validated_at, got %s %v", record.Status, record.ValidatedAt)
	}
}

func TestUpsertMapsUniqueViolationToDuplicatePeriod(t *testing.T) {
	svc, repo := newTestService(t)
	repo.createErr = fmt.Errorf("ERROR: duplicate key value violates unique constraint %q", models.PerformanceRecordPeriodConstraint)

	_, _, err := svc.Upsert(context.Background(), uuid.New(), sampleUpsert(2026, 3))
	if !pkgerrors.HasCode(err, pkgerrors.CodeDuplicatePeriod) {
		t.Fatalf("expected DUPLICATE_PERIOD, got %v", err)
	}
}

func TestUpsertOtherCreateErrorIsInternal(t *testing.T) {
	svc, repo := newTestService(t)
	repo.createErr = errors.New("connection reset")

	_, _, err := svc.Upsert(context.Background(), uuid.New(), sampleUpsert(2026, 3))
	if !pkgerrors.HasCode(err, pkgerrors.CodeInternal) {
		t.Fatalf("expected INTERNAL_ERROR, got %v", err)
	}
}

func TestGetRejectsNonOwner(t *testing.T) {
	svc, _ := newTestService(t)
	owner := uuid.New()

	record, _, err := svc.Upsert(context.Background(), owner, sampleUpsert(2026, 3))
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if _, err := svc.Get(context.Background(), owner, record.ID); err != nil {
		t.Fatalf("owner read: %v", err)
	}

	_, err = svc.Get(context.Background(), uuid.New(), record.ID)
	if !pkgerrors.HasCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected FORBIDDEN for non-owner, got %v", err)
	}
}

func TestGetUnknownRecord(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), uuid.New(), uuid.New())
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestDeleteOwnerOnly(t *testing.T) {
	svc, repo := newTestService(t)
	owner := uuid.New()

	record, _, err := svc.Upsert(context.Background(), owner, sampleUpsert(2026, 3))
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	err = svc.Delete(context.Background(), uuid.New(), record.ID)
	if !pkgerrors.HasCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected FORBIDDEN for non-owner, got %v", err)
	}
	if len(repo.records) != 1 {
		t.Fatal("record must survive a forbidden delete")
	}

	if err := svc.Delete(context.Background(), owner, record.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if len(repo.records) != 0 {
		t.Fatal("expected record removed")
	}
}

func TestRatePercent(t *testing.T) {
	cases := []struct {
		num, den int64
		want     int
	}{
		{0, 0, 0},
		{5, 0, 0},
		{20, 40, 50},
		{90000, 100000, 90},
		{1, 3, 33},
		{2, 3, 67},
	}
	for _, tc := range cases {
		if got := RatePercent(tc.num, tc.den); got != tc.want {
			t.Fatalf("RatePercent(%d, %d) = %d, want %d", tc.num, tc.den, got, tc.want)
		}
	}
}
