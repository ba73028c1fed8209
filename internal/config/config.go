package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/polkiloo/orderservice/internal/domain/model"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	AppEnv   string
	LogLevel string

	RunAddress      string
	DatabaseURI     string
	ShutdownTimeout time.Duration

	CartServiceAddress    string
	ProductServiceAddress string
	GatewayTimeout        time.Duration

	RedisAddress    string
	RedisPassword   string
	RedisDB         int
	ProductCacheTTL time.Duration

	JWTSecret string
	TokenTTL  time.Duration
	Users     []model.Credential

	CacheRefreshInterval time.Duration
	CacheRefreshBatch    int
	WorkerPoolSize       int

	KafkaBrokers      []string
	KafkaProductTopic string
	KafkaGroupID      string
}

const (
	defaultAppEnv               = "dev"
	defaultLogLevel             = "info"
	defaultRunAddress           = ":8080"
	defaultJWTSecret            = "change-me-in-production"
	defaultShutdownTimeout      = 10 * time.Second
	defaultTokenTTL             = 24 * time.Hour
	defaultGatewayTimeout       = 5 * time.Second
	defaultCacheRefreshInterval = time.Minute
	defaultCacheRefreshBatch    = 50
	defaultWorkerPoolSize       = 4
	defaultKafkaProductTopic    = "catalog.products"
	defaultKafkaGroupID         = "order-service"
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		AppEnv:                getString(lookup, "APP_ENV", defaultAppEnv),
		LogLevel:              getString(lookup, "LOG_LEVEL", defaultLogLevel),
		RunAddress:            getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:           getString(lookup, "DATABASE_URI", ""),
		ShutdownTimeout:       getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		CartServiceAddress:    getString(lookup, "CART_SERVICE_ADDRESS", ""),
		ProductServiceAddress: getString(lookup, "PRODUCT_SERVICE_ADDRESS", ""),
		GatewayTimeout:        getDuration(lookup, "GATEWAY_TIMEOUT", defaultGatewayTimeout),
		RedisAddress:          getString(lookup, "REDIS_ADDRESS", ""),
		RedisPassword:         getString(lookup, "REDIS_PASSWORD", ""),
		RedisDB:               getInt(lookup, "REDIS_DB", 0),
		ProductCacheTTL:       getDuration(lookup, "PRODUCT_CACHE_TTL", 0),
		JWTSecret:             getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TokenTTL:              getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		CacheRefreshInterval:  getDuration(lookup, "CACHE_REFRESH_INTERVAL", defaultCacheRefreshInterval),
		CacheRefreshBatch:     getInt(lookup, "CACHE_REFRESH_BATCH", defaultCacheRefreshBatch),
		WorkerPoolSize:        getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		KafkaBrokers:          splitList(getString(lookup, "KAFKA_BROKERS", "")),
		KafkaProductTopic:     getString(lookup, "KAFKA_PRODUCT_TOPIC", defaultKafkaProductTopic),
		KafkaGroupID:          getString(lookup, "KAFKA_GROUP_ID", defaultKafkaGroupID),
	}

	fs := flag.NewFlagSet("orderservice", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		gatewayTimeoutStr  = cfg.GatewayTimeout.String()
		cacheTTLStr        = cfg.ProductCacheTTL.String()
		refreshStr         = cfg.CacheRefreshInterval.String()
		brokersStr         = strings.Join(cfg.KafkaBrokers, ",")
		usersStr           = getString(lookup, "AUTH_USERS", "")
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.CartServiceAddress, "c", cfg.CartServiceAddress, "Cart service base URL")
	fs.StringVar(&cfg.ProductServiceAddress, "p", cfg.ProductServiceAddress, "Product service base URL")
	fs.StringVar(&cfg.RedisAddress, "redis", cfg.RedisAddress, "Redis address for product fallback cache")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent cache refresh workers")
	fs.IntVar(&cfg.CacheRefreshBatch, "refresh-batch", cfg.CacheRefreshBatch, "Maximum products per refresh round")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&gatewayTimeoutStr, "gateway-timeout", gatewayTimeoutStr, "Timeout for catalog calls")
	fs.StringVar(&cacheTTLStr, "cache-ttl", cacheTTLStr, "Product cache entry TTL, 0 keeps entries forever")
	fs.StringVar(&refreshStr, "refresh-interval", refreshStr, "Interval between product cache refresh rounds")
	fs.StringVar(&brokersStr, "kafka-brokers", brokersStr, "Comma separated Kafka brokers")
	fs.StringVar(&usersStr, "users", usersStr, "Comma separated login:bcrypt-hash:role[:user-id] entries")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.GatewayTimeout, err = time.ParseDuration(gatewayTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid gateway timeout: %w", err)
	}

	if cfg.ProductCacheTTL, err = time.ParseDuration(cacheTTLStr); err != nil {
		return nil, fmt.Errorf("invalid cache ttl: %w", err)
	}

	if cfg.CacheRefreshInterval, err = time.ParseDuration(refreshStr); err != nil {
		return nil, fmt.Errorf("invalid refresh interval: %w", err)
	}

	cfg.KafkaBrokers = splitList(brokersStr)

	if cfg.Users, err = parseUsers(usersStr); err != nil {
		return nil, err
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.CacheRefreshBatch <= 0 {
		cfg.CacheRefreshBatch = defaultCacheRefreshBatch
	}

	if cfg.CacheRefreshInterval <= 0 {
		cfg.CacheRefreshInterval = defaultCacheRefreshInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.GatewayTimeout <= 0 {
		cfg.GatewayTimeout = defaultGatewayTimeout
	}

	if cfg.ProductCacheTTL < 0 {
		cfg.ProductCacheTTL = 0
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.CartServiceAddress == "" {
		return nil, fmt.Errorf("cart service address must be provided")
	}

	if cfg.ProductServiceAddress == "" {
		return nil, fmt.Errorf("product service address must be provided")
	}

	if cfg.RedisAddress == "" {
		return nil, fmt.Errorf("redis address must be provided")
	}

	return cfg, nil
}

// parseUsers reads "login:hash:role[:userID]" entries. Bcrypt hashes contain '$' but never ':'.
func parseUsers(raw string) ([]model.Credential, error) {
	var users []model.Credential
	for _, entry := range splitList(raw) {
		parts := strings.Split(entry, ":")
		if len(parts) < 3 || len(parts) > 4 {
			return nil, fmt.Errorf("invalid user entry %q", entry)
		}
		role := model.Role(strings.ToUpper(parts[2]))
		if role != model.RoleUser && role != model.RoleAdmin {
			return nil, fmt.Errorf("invalid role %q for user %q", parts[2], parts[0])
		}
		cred := model.Credential{Login: parts[0], PasswordHash: parts[1], Role: role, UserID: parts[0]}
		if len(parts) == 4 && parts[3] != "" {
			cred.UserID = parts[3]
		}
		users = append(users, cred)
	}
	return users, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
