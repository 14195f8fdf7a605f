package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"SESSION_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" || cfg.Env != "development" || !cfg.IsDevelopment() {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Session.TTL != 24*time.Hour || cfg.Pages.LoadTimeout != 300*time.Millisecond {
		t.Fatalf("unexpected durations: %+v %+v", cfg.Session, cfg.Pages)
	}
	if cfg.Mongo.Database != "backoffice" || cfg.Redis.Addr != "localhost:6379" || cfg.Audit.Workers != 4 {
		t.Fatalf("unexpected infra defaults: %+v %+v %+v", cfg.Mongo, cfg.Redis, cfg.Audit)
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"SESSION_SECRET":    "s3cret",
		"SESSION_TTL":       "2h",
		"ENV":               "production",
		"PAGE_LOAD_TIMEOUT": "1s",
		"REDIS_DB":          "3",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Session.TTL != 2*time.Hour || cfg.IsDevelopment() || cfg.Pages.LoadTimeout != time.Second || cfg.Redis.DB != 3 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadFrom_RequiresSecret(t *testing.T) {
	if _, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatalf("expected missing SESSION_SECRET to fail")
	}
}
