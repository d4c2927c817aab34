package config

// EnvPrefix is left empty because every variable already carries the
// SALESTRACK_ prefix in its envconfig tag.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "SALESTRACK_DB_DSN"
	EnvDBHost = "SALESTRACK_DB_HOST"
	EnvDBUser = "SALESTRACK_DB_USER"
	EnvDBName = "SALESTRACK_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
