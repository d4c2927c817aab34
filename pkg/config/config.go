package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SALESTRACK_APP_ENV" required:"true"`
	Port         string `envconfig:"SALESTRACK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SALESTRACK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SALESTRACK_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"SALESTRACK_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SALESTRACK_DB_DSN"`
	Driver string `envconfig:"SALESTRACK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SALESTRACK_DB_HOST"`
	LegacyPort     int    `envconfig:"SALESTRACK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SALESTRACK_DB_USER"`
	LegacyPassword string `envconfig:"SALESTRACK_DB_PASSWORD"`
	LegacyName     string `envconfig:"SALESTRACK_DB_NAME"`
	LegacySSLMode  string `envconfig:"SALESTRACK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SALESTRACK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SALESTRACK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SALESTRACK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SALESTRACK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SALESTRACK_REDIS_URL"`
	Address      string        `envconfig:"SALESTRACK_REDIS_ADDR"`
	Password     string        `envconfig:"SALESTRACK_REDIS_PASSWORD"`
	DB           int           `envconfig:"SALESTRACK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SALESTRACK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SALESTRACK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SALESTRACK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SALESTRACK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SALESTRACK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured at all. Rate
// limiting is skipped when it is absent.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret         string `envconfig:"SALESTRACK_JWT_SECRET" required:"true"`
	Issuer         string `envconfig:"SALESTRACK_JWT_ISSUER" required:"true"`
	ExpirationDays int    `envconfig:"SALESTRACK_JWT_EXPIRATION_DAYS" default:"30"`
}

// TokenTTL returns the configured token lifetime.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationDays <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationDays) * 24 * time.Hour
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SALESTRACK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SALESTRACK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SALESTRACK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SALESTRACK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SALESTRACK_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"SALESTRACK_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"SALESTRACK_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"SALESTRACK_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"SALESTRACK_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"SALESTRACK_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"SALESTRACK_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SALESTRACK_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
