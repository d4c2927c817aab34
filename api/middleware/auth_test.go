package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/salestrack/salestrack-backend/pkg/auth"
	"github.com/salestrack/salestrack-backend/pkg/config"
	"github.com/salestrack/salestrack-backend/pkg/db/models"
	"github.com/salestrack/salestrack-backend/pkg/enums"
	"github.com/salestrack/salestrack-backend/pkg/types"
)

type stubUserLoader struct {
	user *models.User
}

func (s *stubUserLoader) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s.user
	return &copied, nil
}

func testAuthConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:         "secret",
		Issuer:         "salestrack",
		ExpirationDays: 30,
	}
}

func mintTestToken(t *testing.T, cfg config.JWTConfig, userID uuid.UUID, issued time.Time) string {
	t.Helper()
	token, err := pkgAuth.MintToken(cfg, issued, userID)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) types.Envelope {
	t.Helper()
	var envelope types.Envelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return envelope
}

func errorCode(t *testing.T, envelope types.Envelope) string {
	t.Helper()
	errs, ok := envelope.Errors.(map[string]any)
	if !ok {
		t.Fatalf("expected error object, got %T", envelope.Errors)
	}
	code, _ := errs["code"].(string)
	return code
}

func runAuth(t *testing.T, cfg config.JWTConfig, loader userLoader, authHeader string) (*httptest.ResponseRecorder, *Identity) {
	t.Helper()

	var seen *Identity
	handler := Auth(cfg, loader, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identity, ok := IdentityFromContext(r.Context()); ok {
			seen = &identity
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, seen
}

func TestAuthMissingToken(t *testing.T) {
	rec, seen := runAuth(t, testAuthConfig(), &stubUserLoader{}, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if seen != nil {
		t.Fatal("handler must not run without credentials")
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.Success {
		t.Fatal("expected success=false")
	}
	if code := errorCode(t, envelope); code != "UNAUTHORIZED" {
		t.Fatalf("expected UNAUTHORIZED, got %s", code)
	}
}

func TestAuthValidTokenSeedsIdentity(t *testing.T) {
	cfg := testAuthConfig()
	user := &models.User{
		ID:        uuid.New(),
		FirstName: "Dana",
		LastName:  "Reyes",
		Email:     "dana@example.com",
		Status:    enums.UserStatusActive,
		Role:      enums.UserRoleManager,
	}
	token := mintTestToken(t, cfg, user.ID, time.Now().UTC())

	rec, seen := runAuth(t, cfg, &stubUserLoader{user: user}, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if seen == nil {
		t.Fatal("expected identity in context")
	}
	if seen.ID != user.ID || seen.Role != enums.UserRoleManager {
		t.Fatalf("unexpected identity %+v", seen)
	}
	if seen.Email != "dana@example.com" || seen.FirstName != "Dana" || seen.LastName != "Reyes" {
		t.Fatalf("identity must carry the loaded user's email and name, got %+v", seen)
	}
}

func TestAuthExpiredToken(t *testing.T) {
	cfg := testAuthConfig()
	user := &models.User{ID: uuid.New(), Status: enums.UserStatusActive}
	token := mintTestToken(t, cfg, user.ID, time.Now().UTC().Add(-31*24*time.Hour))

	rec, _ := runAuth(t, cfg, &stubUserLoader{user: user}, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if code := errorCode(t, decodeEnvelope(t, rec)); code != "TOKEN_EXPIRED" {
		t.Fatalf("expected TOKEN_EXPIRED, got %s", code)
	}
}

func TestAuthInactiveUserRejected(t *testing.T) {
	cfg := testAuthConfig()
	user := &models.User{ID: uuid.New(), Status: enums.UserStatusInactive}
	token := mintTestToken(t, cfg, user.ID, time.Now().UTC())

	rec, _ := runAuth(t, cfg, &stubUserLoader{user: user}, "Bearer "+token)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if code := errorCode(t, decodeEnvelope(t, rec)); code != "ACCOUNT_INACTIVE" {
		t.Fatalf("expected ACCOUNT_INACTIVE, got %s", code)
	}
}

func TestAuthBlockedUserRejected(t *testing.T) {
	cfg := testAuthConfig()
	user := &models.User{ID: uuid.New(), Status: enums.UserStatusActive, IsBlocked: true}
	token := mintTestToken(t, cfg, user.ID, time.Now().UTC())

	rec, _ := runAuth(t, cfg, &stubUserLoader{user: user}, "Bearer "+token)
	if rec.Code != http.StatusLocked {
		t.Fatalf("expected 423, got %d", rec.Code)
	}
	if code := errorCode(t, decodeEnvelope(t, rec)); code != "ACCOUNT_BLOCKED" {
		t.Fatalf("expected ACCOUNT_BLOCKED, got %s", code)
	}
}

func TestAuthUnknownUser(t *testing.T) {
	cfg := testAuthConfig()
	token := mintTestToken(t, cfg, uuid.New(), time.Now().UTC())

	rec, _ := runAuth(t, cfg, &stubUserLoader{}, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(nil, enums.UserRoleAdmin, enums.UserRoleManager)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	cases := []struct {
		role enums.UserRole
		want int
	}{
		{enums.UserRoleAdmin, http.StatusOK},
		{enums.UserRoleManager, http.StatusOK},
		{enums.UserRoleUser, http.StatusForbidden},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/gated", nil)
		req = req.WithContext(WithIdentity(req.Context(), Identity{ID: uuid.New(), Role: tc.role}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Fatalf("role %s: expected %d, got %d", tc.role, tc.want, rec.Code)
		}
	}

	// No identity at all.
	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", rec.Code)
	}
}
