package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	DBDSN   string
	LogFile string

	GeminiAPIKey string
	GeminiModel  string
	AITimeout    time.Duration
	AIRatePerMin int

	RedisAddr   string
	CacheTTL    time.Duration
	CachePrefix string

	CORSOrigins     string
	ShutdownTimeout time.Duration
}

func Load() Config {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg := Config{
		Port:            getEnv("PORT", "3001"),
		DBDSN:           getEnv("DB_DSN", "shopassist.db"),
		LogFile:         os.Getenv("LOG_FILE"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		AITimeout:       getEnvDuration("AI_TIMEOUT", 15*time.Second),
		AIRatePerMin:    getEnvInt("AI_RATE_PER_MIN", 60),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		CacheTTL:        getEnvDuration("CACHE_TTL", 5*time.Minute),
		CachePrefix:     getEnv("CACHE_PREFIX", "shopassist:"),
		CORSOrigins:     getEnv("CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
	}

	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s GEMINI_MODEL=%s GEMINI_API_KEY=%s AI_TIMEOUT=%s AI_RATE_PER_MIN=%d REDIS_ADDR=%s CACHE_TTL=%s",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.GeminiModel, mask(cfg.GeminiAPIKey), cfg.AITimeout, cfg.AIRatePerMin, cfg.RedisAddr, cfg.CacheTTL)
	if cfg.GeminiAPIKey == "" {
		log.Printf("[config] GEMINI_API_KEY not set - recommendations will use keyword fallback")
	}
	return cfg
}

// Origins splits CORSOrigins into a trimmed list.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt accepts zero, which turns off limits such as AI_RATE_PER_MIN.
func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
		log.Printf("[config] invalid int for %s=%q, using %d", key, v, def)
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
		log.Printf("[config] invalid duration for %s=%q, using %s", key, v, def)
	}
	return def
}

func mask(secret string) string {
	if secret == "" {
		return "<unset>"
	}
	return "****"
}
