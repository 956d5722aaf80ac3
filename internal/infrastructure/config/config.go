package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	EnvProduction = "production"

	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"

	defaultAccessSecret  = "default-secret-key"
	defaultRefreshSecret = "default-refresh-secret-key"
)

type Config struct {
	Port      string `env:"PORT,       default=3000"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	StaticDir string `env:"STATIC_DIR, default=dist"`

	CORSOrigins []string `env:"CORS_ORIGINS"`

	Auth  AuthConfig
	Store StoreConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	JWTSecret         string `env:"JWT_SECRET,               default=default-secret-key"`
	RefreshSecret     string `env:"REFRESH_TOKEN_SECRET,     default=default-refresh-secret-key"`
	AccessTTLSeconds  int64  `env:"ACCESS_TOKEN_EXPIRES_IN,  default=900"`
	RefreshTTLSeconds int64  `env:"REFRESH_TOKEN_EXPIRES_IN, default=7776000"`
	AdminUsername     string `env:"ADMIN_USERNAME,           default=admin"`
	AdminPassword     string `env:"ADMIN_PASSWORD,           default=admin"`
	BcryptCost        int    `env:"BCRYPT_COST,              default=10"`
	RefreshCookieName string `env:"REFRESH_COOKIE_NAME,      default=refresh_token"`
}

type StoreConfig struct {
	Backend string `env:"STORE_BACKEND, default=file"`
	DataDir string `env:"DATA_DIR,      default=api/data"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=navdash"`
}

type RedisConfig struct {
	Addr      string `env:"REDIS_ADDR,       default=localhost:6379"`
	Password  string `env:"REDIS_PASSWORD"`
	DB        int    `env:"REDIS_DB,         default=0"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX, default=navdash:doc:"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Validate enforces the invariants the auth flow depends on.
func (c *Config) Validate() error {
	var errs []error

	if c.Auth.JWTSecret == "" || c.Auth.RefreshSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET and REFRESH_TOKEN_SECRET must be set"))
	} else if c.Auth.JWTSecret == c.Auth.RefreshSecret {
		errs = append(errs, errors.New("JWT_SECRET and REFRESH_TOKEN_SECRET must differ"))
	}
	if c.Auth.AccessTTLSeconds <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_EXPIRES_IN must be positive"))
	}
	if c.Auth.RefreshTTLSeconds <= 0 {
		errs = append(errs, errors.New("REFRESH_TOKEN_EXPIRES_IN must be positive"))
	}
	if c.Auth.AdminUsername == "" || c.Auth.AdminPassword == "" {
		errs = append(errs, errors.New("ADMIN_USERNAME and ADMIN_PASSWORD must be set"))
	}
	if c.IsProduction() &&
		(c.Auth.JWTSecret == defaultAccessSecret || c.Auth.RefreshSecret == defaultRefreshSecret) {
		errs = append(errs, errors.New("default token secrets are not allowed in production"))
	}

	switch strings.ToLower(c.Store.Backend) {
	case BackendFile, BackendRedis, BackendMongo:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend))
	}

	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}

func (c *Config) AccessTTL() time.Duration {
	return time.Duration(c.Auth.AccessTTLSeconds) * time.Second
}

func (c *Config) RefreshTTL() time.Duration {
	return time.Duration(c.Auth.RefreshTTLSeconds) * time.Second
}
