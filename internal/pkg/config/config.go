package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

const (
	StoreBackendPostgres = "postgres"
	StoreBackendMemory   = "memory"
)

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Store   StoreConfig
	CORS    CORSConfig
	Log     LogConfig
	Auth    AuthConfig
	Redis   RedisConfig
	Paging  PagingConfig
	Booking BookingConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"shareit"`
	Password string `envconfig:"DB_PASSWORD" default:"shareit"`
	DBName   string `envconfig:"DB_NAME" default:"shareit"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
	MinConns int32  `envconfig:"DB_MIN_CONNS" default:"2"`
}

type StoreConfig struct {
	Backend     string `envconfig:"STORE_BACKEND" default:"postgres"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-Sharer-User-Id,X-Request-ID"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,X-Request-ID"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

// AuthConfig enables bearer tokens as an alternative to the X-Sharer-User-Id
// header. Empty secret means header identity only.
type AuthConfig struct {
	JWTSecret   string        `envconfig:"AUTH_JWT_SECRET"`
	JWTDuration time.Duration `envconfig:"AUTH_JWT_DURATION" default:"24h"`
}

// RedisConfig enables the Directory user cache. Empty address disables it.
type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	UserTTL  time.Duration `envconfig:"REDIS_USER_TTL" default:"10m"`
}

type PagingConfig struct {
	DefaultSize int `envconfig:"PAGE_DEFAULT_SIZE" default:"10"`
	MaxSize     int `envconfig:"PAGE_MAX_SIZE" default:"100"`
}

type BookingConfig struct {
	RejectOverlappingApprovals bool `envconfig:"BOOKING_REJECT_OVERLAPPING_APPROVALS" default:"false"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c *StoreConfig) Validate() error {
	switch c.Backend {
	case StoreBackendPostgres, StoreBackendMemory:
		return nil
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Backend)
	}
}

// LoadConfig reads an optional .env file, then the process environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Store.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
			MinConns: 1,
		},
		Store: StoreConfig{
			Backend:     StoreBackendMemory,
			AutoMigrate: true,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		Auth: AuthConfig{
			JWTDuration: time.Hour,
		},
		Redis: RedisConfig{
			UserTTL: time.Minute,
		},
		Paging: PagingConfig{
			DefaultSize: 10,
			MaxSize:     100,
		},
	}
}
