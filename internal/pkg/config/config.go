package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timeouts, cache windows, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server ServerConfig
	Mongo  MongoConfig
	Cache  CacheConfig
	CORS   CORSConfig
	Log    LogConfig
	JWT    JWTConfig
	Cookie CookieConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

// MongoConfig targets the single database this process talks to. A missing
// MONGODB_URI is a fatal startup condition: every data path depends on it.
type MongoConfig struct {
	URI                    string        `envconfig:"MONGODB_URI" required:"true"`
	Database               string        `envconfig:"MONGODB_DATABASE" default:"storefront"`
	MaxPoolSize            uint64        `envconfig:"MONGODB_MAX_POOL_SIZE" default:"100"`
	ConnectTimeout         time.Duration `envconfig:"MONGODB_CONNECT_TIMEOUT" default:"10s"`
	ServerSelectionTimeout time.Duration `envconfig:"MONGODB_SERVER_SELECTION_TIMEOUT" default:"5s"`
	SocketTimeout          time.Duration `envconfig:"MONGODB_SOCKET_TIMEOUT" default:"45s"`
	MaxConnectAttempts     int           `envconfig:"MONGODB_MAX_CONNECT_ATTEMPTS" default:"5"`
	ConnectRetryDelay      time.Duration `envconfig:"MONGODB_CONNECT_RETRY_DELAY" default:"2s"`
}

type CacheConfig struct {
	CategoryTTL time.Duration `envconfig:"CATEGORY_CACHE_TTL" default:"5m"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"false"`
	SameSite string `envconfig:"COOKIE_SAME_SITE" default:"Lax"`
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
		Mongo: MongoConfig{
			URI:                    "mongodb://localhost:27017",
			Database:               "storefront_test",
			MaxPoolSize:            10,
			ConnectTimeout:         5 * time.Second,
			ServerSelectionTimeout: 2 * time.Second,
			SocketTimeout:          10 * time.Second,
			MaxConnectAttempts:     2,
			ConnectRetryDelay:      100 * time.Millisecond,
		},
		Cache: CacheConfig{
			CategoryTTL: 5 * time.Minute,
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"http://localhost:3000"},
			AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
	}
}
