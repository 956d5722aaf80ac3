package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "3000" || cfg.Env != "development" || cfg.StaticDir != "dist" {
		t.Fatalf("unexpected server defaults: %+v", cfg)
	}
	if cfg.Store.Backend != BackendFile || cfg.Store.DataDir != "api/data" {
		t.Fatalf("unexpected store defaults: %+v", cfg.Store)
	}
	if cfg.AccessTTL() != 15*time.Minute || cfg.RefreshTTL() != 90*24*time.Hour {
		t.Fatalf("unexpected ttls: %v %v", cfg.AccessTTL(), cfg.RefreshTTL())
	}
	if cfg.Auth.AdminUsername != "admin" || cfg.Auth.BcryptCost != 10 || cfg.Auth.RefreshCookieName != "refresh_token" {
		t.Fatalf("unexpected auth defaults: %+v", cfg.Auth)
	}
	if cfg.IsProduction() {
		t.Fatalf("default env must not be production")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":                    "8080",
		"ENV":                     "Production",
		"JWT_SECRET":              "a",
		"REFRESH_TOKEN_SECRET":    "b",
		"ACCESS_TOKEN_EXPIRES_IN": "60",
		"STORE_BACKEND":           "redis",
		"REDIS_ADDR":              "cache:6379",
		"CORS_ORIGINS":            "https://a.example,https://b.example",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || !cfg.IsProduction() || cfg.AccessTTL() != time.Minute {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Redis.Addr != "cache:6379" || cfg.Store.Backend != BackendRedis {
		t.Fatalf("unexpected redis config: %+v %+v", cfg.Redis, cfg.Store)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", cfg.CORSOrigins)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "equal secrets",
			env:  map[string]string{"JWT_SECRET": "same", "REFRESH_TOKEN_SECRET": "same"},
			want: "must differ",
		},
		{
			name: "non-positive ttl",
			env:  map[string]string{"REFRESH_TOKEN_EXPIRES_IN": "0"},
			want: "REFRESH_TOKEN_EXPIRES_IN must be positive",
		},
		{
			name: "default secrets in production",
			env:  map[string]string{"ENV": "production"},
			want: "default token secrets",
		},
		{
			name: "unknown backend",
			env:  map[string]string{"STORE_BACKEND": "sqlite"},
			want: "unknown STORE_BACKEND",
		},
		{
			name: "not a number",
			env:  map[string]string{"BCRYPT_COST": "high"},
			want: "high",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(context.Background(), envconfig.MapLookuper(tt.env))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
