package config

// EnvPrefix is passed to envconfig; individual fields carry explicit
// THREADLINE_* names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv = "THREADLINE_APP_ENV"
	EnvDBDSN  = "THREADLINE_DB_DSN"
	EnvDBHost = "THREADLINE_DB_HOST"
	EnvDBUser = "THREADLINE_DB_USER"
	EnvDBName = "THREADLINE_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
