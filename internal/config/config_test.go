package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StoreBackend != "file" {
		t.Fatalf("StoreBackend=%q, want file", cfg.StoreBackend)
	}
	if cfg.DataDir == "" || cfg.DataDir[0] == '~' {
		t.Fatalf("DataDir=%q, want expanded path", cfg.DataDir)
	}
}

func TestValidateBackend(t *testing.T) {
	t.Setenv("FC_STORE", "postgres")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown backend")
	}

	t.Setenv("FC_STORE", "sqlite")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load sqlite: %v", err)
	}
	if cfg.StoreBackend != "sqlite" {
		t.Fatalf("StoreBackend=%q, want sqlite", cfg.StoreBackend)
	}
}
