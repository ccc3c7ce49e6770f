package config

const (
	EnvPrefix = "freshstock"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "FRESHSTOCK_DB_DSN"
	EnvDBHost = "FRESHSTOCK_DB_HOST"
	EnvDBUser = "FRESHSTOCK_DB_USER"
	EnvDBName = "FRESHSTOCK_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
