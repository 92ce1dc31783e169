package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP:    HTTPConfig{Port: 8080},
		Catalog: CatalogConfig{ProductsPath: "data/products.csv", UsersPath: "data/users.parquet"},
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 70000

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_UnsupportedCatalogFormat(t *testing.T) {
	cfg := validConfig()
	cfg.Catalog.ProductsPath = "data/products.xlsx"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}

	expected := `catalog.products_path must be a .csv or .parquet file, got "data/products.xlsx"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_NegativeMaxResults(t *testing.T) {
	cfg := validConfig()
	cfg.Search.MaxResults = -1

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative max_results")
	}
}

func TestApplyDefaults_DropsBlankAdminKeys(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.AdminKeys = []string{"", " k1 ", "  "}
	cfg.ApplyDefaults()

	if len(cfg.Auth.AdminKeys) != 1 || cfg.Auth.AdminKeys[0] != "k1" {
		t.Errorf("expected [k1], got %q", cfg.Auth.AdminKeys)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 8080 {
		t.Errorf("expected Port=8080, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Catalog.ProductsPath != "data/products.csv" {
		t.Errorf("expected default products path, got %q", cfg.Catalog.ProductsPath)
	}
	if cfg.Catalog.UsersPath != "data/users.csv" {
		t.Errorf("expected default users path, got %q", cfg.Catalog.UsersPath)
	}
	if cfg.Session.TTLMinutes != 60 {
		t.Errorf("expected TTLMinutes=60, got %d", cfg.Session.TTLMinutes)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:    HTTPConfig{Port: 9090, ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Catalog: CatalogConfig{ProductsPath: "p.parquet", UsersPath: "u.csv"},
		Session: SessionConfig{TTLMinutes: 5},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 9090 {
		t.Errorf("expected Port=9090, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Catalog.ProductsPath != "p.parquet" {
		t.Errorf("expected ProductsPath='p.parquet', got %q", cfg.Catalog.ProductsPath)
	}
	if cfg.Session.TTLMinutes != 5 {
		t.Errorf("expected TTLMinutes=5, got %d", cfg.Session.TTLMinutes)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("PAWFECT_TEST_PORT", "9999")

	got := string(expandEnvVars([]byte("a: ${PAWFECT_TEST_PORT}\nb: ${PAWFECT_TEST_UNSET:-fallback}\nc: ${PAWFECT_TEST_UNSET}")))
	want := "a: 9999\nb: fallback\nc: "
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("PAWFECT_TEST_KEY", "secret-key")

	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	yaml := `
http:
  port: 8181
catalog:
  products_path: ${PAWFECT_TEST_PRODUCTS:-data/pets.parquet}
search:
  stemming: true
  max_results: 25
auth:
  admin_keys: ["${PAWFECT_TEST_KEY}"]
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.HTTP.Port != 8181 {
		t.Errorf("Port: got %d", cfg.HTTP.Port)
	}
	if cfg.Catalog.ProductsPath != "data/pets.parquet" {
		t.Errorf("ProductsPath: got %q", cfg.Catalog.ProductsPath)
	}
	if cfg.Catalog.UsersPath != "data/users.csv" {
		t.Errorf("UsersPath default not applied: %q", cfg.Catalog.UsersPath)
	}
	if !cfg.Search.Stemming || cfg.Search.MaxResults != 25 {
		t.Errorf("Search: got %+v", cfg.Search)
	}
	if len(cfg.Auth.AdminKeys) != 1 || cfg.Auth.AdminKeys[0] != "secret-key" {
		t.Errorf("AdminKeys: got %v", cfg.Auth.AdminKeys)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_RepoConfigs(t *testing.T) {
	for _, env := range []string{"local", "prod"} {
		t.Run(env, func(t *testing.T) {
			if _, err := Load(env); err != nil {
				t.Fatalf("Load(%q): %v", env, err)
			}
		})
	}
}
