package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/salestrack/salestrack-backend/api/controllers"
	"github.com/salestrack/salestrack-backend/api/middleware"
	"github.com/salestrack/salestrack-backend/internal/auth"
	"github.com/salestrack/salestrack-backend/internal/performance"
	"github.com/salestrack/salestrack-backend/internal/stats"
	"github.com/salestrack/salestrack-backend/internal/users"
	"github.com/salestrack/salestrack-backend/pkg/config"
	"github.com/salestrack/salestrack-backend/pkg/db"
	"github.com/salestrack/salestrack-backend/pkg/enums"
	"github.com/salestrack/salestrack-backend/pkg/logger"
	"github.com/salestrack/salestrack-backend/pkg/metrics"
	"github.com/salestrack/salestrack-backend/pkg/redis"
)

// RouterParams bundles everything the HTTP surface depends on. RedisClient
// and HTTPMetrics may be nil; the affected middleware then no-ops.
type RouterParams struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          *db.Client
	RedisClient *redis.Client
	HTTPMetrics *metrics.HTTPMetrics

	UserRepo           *users.Repository
	AuthService        auth.Service
	RegisterService    auth.RegisterService
	PerformanceService performance.Service
	StatsService       stats.Service
}

func NewRouter(params RouterParams) http.Handler {
	cfg := params.Config
	logg := params.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(params.HTTPMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	// A typed nil would defeat the middleware's nil check, so only hand the
	// store over when a client actually exists.
	var limiterStore middleware.RateLimiterStore
	if params.RedisClient != nil {
		limiterStore = params.RedisClient
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(params.DB, logg))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, limiterStore, logg)).
			Post("/login", controllers.AuthLogin(params.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, limiterStore, logg)).
			Post("/register", controllers.AuthRegister(params.RegisterService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, params.UserRepo, logg))

			r.Get("/me", controllers.AuthMe(params.AuthService, logg))
			r.Put("/profile", controllers.AuthUpdateProfile(params.AuthService, logg))
			r.Put("/change-password", controllers.AuthChangePassword(params.AuthService, logg))
			r.Post("/logout", controllers.AuthLogout(logg))

			r.With(middleware.RequireRole(logg, enums.UserRoleAdmin)).
				Post("/users/{userId}/unlock", controllers.AuthUnlock(params.AuthService, logg))
		})
	})

	r.Route("/api/v1/performance", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, params.UserRepo, logg))

		r.Post("/", controllers.PerformanceUpsert(params.PerformanceService, logg))
		r.Get("/", controllers.PerformanceList(params.PerformanceService, logg))

		r.With(middleware.RequireRole(logg, enums.UserRoleAdmin, enums.UserRoleManager)).
			Get("/all", controllers.PerformanceListAll(params.PerformanceService, logg))

		r.Get("/stats/summary", controllers.StatsSummary(params.StatsService, logg))

		r.Get("/{recordId}", controllers.PerformanceGet(params.PerformanceService, logg))
		r.Delete("/{recordId}", controllers.PerformanceDelete(params.PerformanceService, logg))
	})

	return r
}
