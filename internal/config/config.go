package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends
const (
	StoreNone   = "none"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	GQLEndpoint        string        // GraphQL endpoint of the content platform
	PublicationHost    string        // host the publication is looked up by (ex: blog.domain.ext)
	FetchTimeout       time.Duration // timeout for one publication request (default: 10s)
	RevalidateInterval time.Duration // minimum interval between two regenerations (default: 1s)
	RefreshInterval    time.Duration // background regeneration interval (default: 1h, 0 = disabled, otherwise at least RevalidateInterval)
	AssetsDir          string        // directory served under /assets

	// Snapshot persistence
	StoreBackend string // "none" | "redis" | "sqlite"
	SQLitePath   string // path of the sqlite database file

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)

	AllowedHosts []string // optional, restrict /reload to specific Host headers
	AllowedCIDRS []string // optional, restrict infra endpoints to specific IP (e.g. "1.2.3.4, 10.0.0.0/8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)

	RateBurst    int // per-IP burst on page routes
	RatePerIPMin int // per-IP refill per minute on page routes
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("ABOUTME_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("ABOUTME_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("ABOUTME_LOG_LEVEL", "info"),
		PrettyLog: mustBool("ABOUTME_PRETTY_LOG", true),

		// Publication source, validated when the page is generated
		GQLEndpoint:        getenv("HASHNODE_GQL_ENDPOINT", ""),
		PublicationHost:    getenv("HASHNODE_PUBLICATION_HOST", ""),
		FetchTimeout:       mustDuration("ABOUTME_FETCH_TIMEOUT", 10*time.Second),
		RevalidateInterval: mustDuration("ABOUTME_REVALIDATE_INTERVAL", time.Second),
		RefreshInterval:    mustDuration("ABOUTME_REFRESH_INTERVAL", time.Hour),
		AssetsDir:          getenv("ABOUTME_ASSETS_DIR", "./public/assets"),

		// Persistence
		StoreBackend: strings.ToLower(getenv("ABOUTME_STORE", StoreNone)),
		SQLitePath:   getenv("ABOUTME_SQLITE_PATH", "./data/aboutme.db"),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("ABOUTME_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("ABOUTME_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("ABOUTME_TRUST_PROXY", true),

		RateBurst:    getenvInt("ABOUTME_RATE_BURST", 30),
		RatePerIPMin: getenvInt("ABOUTME_RATE_PER_MIN", 120),
	}

	switch cfg.StoreBackend {
	case StoreNone, StoreSQLite:
	case StoreRedis:
		loadRedis(cfg)
	default:
		panic(fmt.Sprintf("❌ FATAL: Invalid ABOUTME_STORE value %q (want none, redis or sqlite)", cfg.StoreBackend))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// loadRedis reads the Redis settings, only required when Redis is the store.
func loadRedis(cfg *Config) {
	cfg.RedisAddr = requireEnv("ABOUTME_REDIS_ADDR")
	cfg.RedisUser = getenv("ABOUTME_REDIS_USERNAME", "default")
	cfg.RedisPasswordRequired = mustBool("ABOUTME_REDIS_PASSWORD_REQUIRED", true)
	cfg.RedisPassword = getenv("ABOUTME_REDIS_PASSWORD", "")
	cfg.RedisDB = requireEnvInt("ABOUTME_REDIS_DB")
	cfg.RedisDT = mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second)
	cfg.RedisRT = mustDuration("REDIS_READ_TIMEOUT", 3*time.Second)
	cfg.RedisWT = mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second)
	cfg.RedisMaxWait = mustDuration("REDIS_MAX_WAIT", 10*time.Second)
	cfg.RedisPingTimeout = mustDuration("REDIS_PING_TIMEOUT", 5*time.Second)
	cfg.RedisPoolSize = getenvInt("REDIS_POOL_SIZE", 10)
	cfg.RedisConnectTimeout = mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second)
	cfg.RedisRetryInterval = mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second)

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: ABOUTME_REDIS_PASSWORD is required when ABOUTME_REDIS_PASSWORD_REQUIRED=true")
	}
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func requireEnvInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid integer value for %s: %s", key, v))
	}
	return i
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
