package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "esca"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "ESCA_DB_DSN"
	EnvDBHost = "ESCA_DB_HOST"
	EnvDBUser = "ESCA_DB_USER"
	EnvDBName = "ESCA_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Identity     IdentityConfig
	Password     PasswordConfig
	Attachments  AttachmentsConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"ESCA_APP_ENV" required:"true"`
	Port         string `envconfig:"ESCA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ESCA_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"ESCA_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"ESCA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ESCA_DB_DSN"`
	Driver string `envconfig:"ESCA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ESCA_DB_HOST"`
	LegacyPort     int    `envconfig:"ESCA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ESCA_DB_USER"`
	LegacyPassword string `envconfig:"ESCA_DB_PASSWORD"`
	LegacyName     string `envconfig:"ESCA_DB_NAME"`
	LegacySSLMode  string `envconfig:"ESCA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ESCA_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"ESCA_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"ESCA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ESCA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IdentityConfig controls how the boundary resolves the acting user.
// Services never read these; they receive the resolved actor explicitly.
type IdentityConfig struct {
	Header      string `envconfig:"ESCA_IDENTITY_HEADER" default:"X-User"`
	DevFallback string `envconfig:"ESCA_IDENTITY_DEV_FALLBACK" default:""`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ESCA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"ESCA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"ESCA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"ESCA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ESCA_ARGON_KEY_LEN" default:"32"`
}

type AttachmentsConfig struct {
	Dir         string `envconfig:"ESCA_ATTACHMENTS_DIR" default:"uploads"`
	MaxUploadMB int    `envconfig:"ESCA_MAX_UPLOAD_MB" default:"10"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ESCA_AUTO_MIGRATE" default:"false"`
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
