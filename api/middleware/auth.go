package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/salestrack/salestrack-backend/api/responses"
	pkgAuth "github.com/salestrack/salestrack-backend/pkg/auth"
	"github.com/salestrack/salestrack-backend/pkg/config"
	"github.com/salestrack/salestrack-backend/pkg/db/models"
	"github.com/salestrack/salestrack-backend/pkg/enums"
	pkgerrors "github.com/salestrack/salestrack-backend/pkg/errors"
	"github.com/salestrack/salestrack-backend/pkg/logger"
)

type userLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Auth validates a bearer token and seeds the request context with the
// caller's identity. The user row is re-read on every request: the token
// carries only the user id, so role changes, deactivation, and blocks
// apply without waiting for the token to expire.
func Auth(cfg config.JWTConfig, users userLoader, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			user, err := users.FindByID(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown account"))
					return
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup account"))
				return
			}

			if user.Status == enums.UserStatusInactive {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeAccountInactive, "account inactive"))
				return
			}
			if user.IsBlocked {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeAccountBlocked, "account blocked"))
				return
			}

			ctx := WithIdentity(r.Context(), Identity{
				ID:        user.ID,
				Email:     user.Email,
				FirstName: user.FirstName,
				LastName:  user.LastName,
				Role:      user.Role,
			})

			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"user_id":    user.ID.String(),
					"actor_role": string(user.Role),
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
