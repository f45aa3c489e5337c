package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	"github.com/davidbz/ember/internal/cache/redis"
	"github.com/davidbz/ember/internal/filter"
	"github.com/davidbz/ember/internal/observability"
	"github.com/davidbz/ember/internal/upstream"
	"github.com/davidbz/ember/internal/workerpool"
)

// Config represents the gateway configuration.
type Config struct {
	Server    ServerConfig
	CORS      CORSConfig
	Log       observability.LogConfig
	Providers ProvidersConfig
	Upstream  upstream.Config
	Worker    workerpool.Config
	Filter    filter.Config
	Cache     redis.Config
	Metrics   MetricsConfig
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int `env:"SERVER_PORT"             envDefault:"8080"`
	ReadTimeout     int `env:"SERVER_READ_TIMEOUT"     envDefault:"30"`
	WriteTimeout    int `env:"SERVER_WRITE_TIMEOUT"    envDefault:"0"`
	ShutdownTimeout int `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"15"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type,Authorization,Traceparent,X-Request-Id"`
	ExposedHeaders   []string `env:"CORS_EXPOSED_HEADERS"   envSeparator:"," envDefault:"X-Trace-Id,X-Request-Id"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// ProvidersConfig selects where the provider table comes from.
type ProvidersConfig struct {
	File               string `env:"PROVIDERS_FILE"`
	Default            string `env:"DEFAULT_PROVIDER"     envDefault:"pollinations"`
	PollinationsURL    string `env:"POLLINATIONS_URL"     envDefault:"https://text.pollinations.ai/openai"`
	PollinationsAPIKey string `env:"POLLINATIONS_API_KEY"`
	PuterURL           string `env:"PUTER_URL"            envDefault:"https://api.puter.com/drivers/call"`
	PuterAPIKey        string `env:"PUTER_API_KEY"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `env:"METRICS_ENABLED" envDefault:"true"`
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out

	Server    *ServerConfig
	CORS      *CORSConfig
	Log       *observability.LogConfig
	Providers *ProvidersConfig
	Upstream  *upstream.Config
	Worker    *workerpool.Config
	Filter    *filter.Config
	Cache     *redis.Config
	Metrics   *MetricsConfig
}

// Load loads environment files and parses configuration.
func Load() *Config {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		Out:       dig.Out{},
		Server:    &cfg.Server,
		CORS:      &cfg.CORS,
		Log:       &cfg.Log,
		Providers: &cfg.Providers,
		Upstream:  &cfg.Upstream,
		Worker:    &cfg.Worker,
		Filter:    &cfg.Filter,
		Cache:     &cfg.Cache,
		Metrics:   &cfg.Metrics,
	}
}
