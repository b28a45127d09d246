package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection,
//   upstream credentials), security settings
// - default: Values common across all environments (timeouts, retry budgets,
//   booking horizons), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server     ServerConfig
	DB         DBConfig
	CORS       CORSConfig
	Log        LogConfig
	Aggregator AggregatorConfig
	Upstream   UpstreamConfig
	Dream      DreamConfig
	Groove     GrooveConfig
	Naver      NaverConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Seoul"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,X-Device-Id"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Seoul"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"32400"` // 9*60*60
}

// AggregatorConfig bounds the whole fan-out, not individual adapters.
type AggregatorConfig struct {
	Deadline time.Duration `envconfig:"AGGREGATOR_DEADLINE" default:"10s"`
}

// UpstreamConfig is the single place retry policy is defined; every
// network-bound adapter goes through the same resilient client.
type UpstreamConfig struct {
	Timeout    time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"5s"`
	MaxRetries int           `envconfig:"UPSTREAM_MAX_RETRIES" default:"2"`
	Backoff    time.Duration `envconfig:"UPSTREAM_BACKOFF" default:"200ms"`
}

type DreamConfig struct {
	BaseURL     string `envconfig:"DREAM_BASE_URL" required:"true"`
	HorizonDays int    `envconfig:"DREAM_HORIZON_DAYS" default:"121"`
}

type GrooveConfig struct {
	BaseURL     string `envconfig:"GROOVE_BASE_URL" required:"true"`
	LoginID     string `envconfig:"GROOVE_LOGIN_ID" required:"true"`
	LoginPW     string `envconfig:"GROOVE_LOGIN_PW" required:"true"`
	BranchGubun string `envconfig:"GROOVE_BRANCH_GUBUN" default:"sadang"`
	HorizonDays int    `envconfig:"GROOVE_HORIZON_DAYS" default:"84"`
}

type NaverConfig struct {
	GraphQLURL     string `envconfig:"NAVER_GRAPHQL_URL" default:"https://booking.naver.com/graphql?opName=schedule"`
	BusinessTypeID int    `envconfig:"NAVER_BUSINESS_TYPE_ID" default:"10"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
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
			Port:     "15433",
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Seoul",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Seoul",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 32400,
		},
		Aggregator: AggregatorConfig{
			Deadline: 2 * time.Second,
		},
		Upstream: UpstreamConfig{
			Timeout:    time.Second,
			MaxRetries: 2,
			Backoff:    10 * time.Millisecond,
		},
		Dream:  DreamConfig{BaseURL: "http://localhost:18081", HorizonDays: 121},
		Groove: GrooveConfig{BaseURL: "http://localhost:18082", LoginID: "test", LoginPW: "test", BranchGubun: "sadang", HorizonDays: 84},
		Naver:  NaverConfig{GraphQLURL: "http://localhost:18083/graphql", BusinessTypeID: 10},
	}
}
