package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Uploads       UploadsConfig
	SMTP          SMTPConfig
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
	Env          string `envconfig:"CANDYLAND_APP_ENV" default:"dev"`
	Port         string `envconfig:"CANDYLAND_APP_PORT" default:"3001"`
	BaseURL      string `envconfig:"CANDYLAND_BASE_URL" default:"http://localhost:3001"`
	CORSOrigins  string `envconfig:"CANDYLAND_CORS_ORIGINS" default:"http://localhost:3000"`
	LogLevel     string `envconfig:"CANDYLAND_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CANDYLAND_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// Origins splits the configured comma-separated CORS origin list.
func (a AppConfig) Origins() []string {
	parts := strings.Split(a.CORSOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

type DBConfig struct {
	DSN string `envconfig:"CANDYLAND_DB_DSN"`

	Host     string `envconfig:"CANDYLAND_DB_HOST"`
	Port     int    `envconfig:"CANDYLAND_DB_PORT" default:"5432"`
	User     string `envconfig:"CANDYLAND_DB_USER"`
	Password string `envconfig:"CANDYLAND_DB_PASSWORD"`
	Name     string `envconfig:"CANDYLAND_DB_NAME"`
	SSLMode  string `envconfig:"CANDYLAND_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CANDYLAND_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CANDYLAND_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CANDYLAND_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CANDYLAND_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CANDYLAND_REDIS_URL"`
	Address      string        `envconfig:"CANDYLAND_REDIS_ADDR"`
	Password     string        `envconfig:"CANDYLAND_REDIS_PASSWORD"`
	DB           int           `envconfig:"CANDYLAND_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CANDYLAND_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CANDYLAND_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CANDYLAND_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CANDYLAND_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CANDYLAND_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret    string `envconfig:"CANDYLAND_JWT_SECRET" default:"candyland-dev-secret"`
	Issuer    string `envconfig:"CANDYLAND_JWT_ISSUER" default:"candyland"`
	ExpiresIn string `envconfig:"CANDYLAND_JWT_EXPIRES_IN" default:"1h"`
}

const defaultTokenExpirySeconds = 3600

// ExpirySeconds converts the configured expiry string into seconds.
// Supported forms: "2h", "30m", "1d", or a bare number of seconds; anything
// unparsable falls back to one hour.
func (j JWTConfig) ExpirySeconds() int {
	value := strings.TrimSpace(j.ExpiresIn)
	if value == "" {
		return defaultTokenExpirySeconds
	}

	multiplier := 1
	switch {
	case strings.HasSuffix(value, "h"):
		multiplier = 3600
		value = strings.TrimSuffix(value, "h")
	case strings.HasSuffix(value, "m"):
		multiplier = 60
		value = strings.TrimSuffix(value, "m")
	case strings.HasSuffix(value, "d"):
		multiplier = 86400
		value = strings.TrimSuffix(value, "d")
	}

	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultTokenExpirySeconds
	}
	return n * multiplier
}

// Expiry returns the token lifetime as a duration.
func (j JWTConfig) Expiry() time.Duration {
	return time.Duration(j.ExpirySeconds()) * time.Second
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CANDYLAND_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CANDYLAND_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CANDYLAND_ARGON_PARALLELISM" default:"2"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"CANDYLAND_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"CANDYLAND_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"CANDYLAND_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"CANDYLAND_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"CANDYLAND_AUTO_MIGRATE" default:"false"`
}

type UploadsConfig struct {
	Dir         string `envconfig:"CANDYLAND_UPLOADS_DIR" default:"uploads"`
	MaxSizeMB   int    `envconfig:"CANDYLAND_UPLOADS_MAX_SIZE_MB" default:"5"`
	MaxPerBatch int    `envconfig:"CANDYLAND_UPLOADS_MAX_PER_BATCH" default:"10"`
}

type SMTPConfig struct {
	Host         string `envconfig:"CANDYLAND_SMTP_HOST" default:"sandbox.smtp.mailtrap.io"`
	Port         int    `envconfig:"CANDYLAND_SMTP_PORT" default:"2525"`
	User         string `envconfig:"CANDYLAND_SMTP_USER"`
	Password     string `envconfig:"CANDYLAND_SMTP_PASSWORD"`
	From         string `envconfig:"CANDYLAND_MAIL_FROM" default:"Candyland <noreply@candyland.test>"`
	ContactEmail string `envconfig:"CANDYLAND_CONTACT_EMAIL"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	for name, value := range map[string]string{
		"CANDYLAND_DB_HOST": db.Host,
		"CANDYLAND_DB_USER": db.User,
		"CANDYLAND_DB_NAME": db.Name,
	} {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either CANDYLAND_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}
	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
