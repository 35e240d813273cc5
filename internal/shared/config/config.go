package config

import (
	"log"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration.
type Config struct {
	Port            string        `koanf:"port"`
	Env             string        `koanf:"env"`
	LogLevel        string        `koanf:"log_level"`
	CORSAllowOrigin []string      `koanf:"cors_allow_origins"`
	DatabaseURL     string        `koanf:"database_url"`
	RedisAddr       string        `koanf:"redis_addr"`
	RedisPassword   string        `koanf:"redis_password"`
	RedisDB         int           `koanf:"redis_db"`
	RecsCacheTTL    time.Duration `koanf:"recs_cache_ttl"`
	JWTSecret       string        `koanf:"jwt_secret"`
	AWSRegion       string        `koanf:"aws_region"`
	SQSQueueURL     string        `koanf:"petmatch_sqs_queue_url"`
	EngineConfig    string        `koanf:"engine_config"`
}

func defaults() Config {
	return Config{
		Port:            "8080",
		Env:             "dev",
		LogLevel:        "info",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		RecsCacheTTL:    10 * time.Minute,
	}
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	cfg, err := load()
	if err != nil {
		log.Printf("config load failed, using defaults: %v", err)
		cfg = defaults()
	}
	if cfg.Env == "production" && cfg.DatabaseURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}
	return cfg
}

func load() (Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return Config{}, err
	}
	// Only known keys are taken from the environment; ENGINE_* overrides are read by LoadEngine.
	known := knownKeys(k)
	err := k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		name := strings.ToLower(key)
		if _, ok := known[name]; !ok || strings.TrimSpace(value) == "" {
			return "", nil
		}
		return name, value
	}), nil)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, err
	}
	if raw, ok := k.Get("cors_allow_origins").(string); ok {
		cfg.CORSAllowOrigin = splitAndTrim(raw)
	}
	cfg.Env = normalizeEnv(cfg.Env)
	return cfg, nil
}

func knownKeys(k *koanf.Koanf) map[string]struct{} {
	out := make(map[string]struct{})
	for _, key := range k.Keys() {
		out[key] = struct{}{}
	}
	return out
}

// IsProduction reports whether the service runs with production safeguards.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
