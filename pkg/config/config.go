package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Audit        AuditConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if !cfg.FeatureFlags.UseSQLite {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FRESHSTOCK_APP_ENV" default:"dev"`
	Port         string `envconfig:"FRESHSTOCK_APP_PORT" default:"5000"`
	LogLevel     string `envconfig:"FRESHSTOCK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FRESHSTOCK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FRESHSTOCK_DB_DSN"`
	Driver string `envconfig:"FRESHSTOCK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FRESHSTOCK_DB_HOST"`
	LegacyPort     int    `envconfig:"FRESHSTOCK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FRESHSTOCK_DB_USER"`
	LegacyPassword string `envconfig:"FRESHSTOCK_DB_PASSWORD"`
	LegacyName     string `envconfig:"FRESHSTOCK_DB_NAME"`
	LegacySSLMode  string `envconfig:"FRESHSTOCK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FRESHSTOCK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FRESHSTOCK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FRESHSTOCK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FRESHSTOCK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FRESHSTOCK_REDIS_URL"`
	Address      string        `envconfig:"FRESHSTOCK_REDIS_ADDR"`
	Password     string        `envconfig:"FRESHSTOCK_REDIS_PASSWORD"`
	DB           int           `envconfig:"FRESHSTOCK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FRESHSTOCK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FRESHSTOCK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FRESHSTOCK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FRESHSTOCK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FRESHSTOCK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured at all. The API
// degrades to pass-through idempotency handling when it is absent.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type AuditConfig struct {
	// Actor is the label recorded as performedBy while no auth subsystem exists.
	Actor string `envconfig:"FRESHSTOCK_AUDIT_ACTOR" default:"system"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"FRESHSTOCK_CORS_ALLOWED_ORIGINS"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool   `envconfig:"FRESHSTOCK_USE_SQLITE" default:"false"`
	SQLitePath  string `envconfig:"FRESHSTOCK_SQLITE_PATH" default:"freshstock.db"`
	AutoMigrate bool   `envconfig:"FRESHSTOCK_AUTO_MIGRATE" default:"false"`
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
