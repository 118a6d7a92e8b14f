package config

// EnvPrefix is passed to envconfig when processing the configuration.
const EnvPrefix = "SHOPLITE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "SHOPLITE_DB_DSN"
	EnvDBHost = "SHOPLITE_DB_HOST"
	EnvDBUser = "SHOPLITE_DB_USER"
	EnvDBName = "SHOPLITE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
