package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "uniex.yaml", `
app:
  name: uniex
  version: "1.0"
logging:
  level: debug
  output: stderr
exchanges:
  bitmax:
    api_key: key-1
    secret: secret-1
    options:
      account: cash
  xena:
    api_key: key-2
    secret: secret-2
    options:
      accountId: "8273231"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.App.Name != "uniex" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	// unspecified logging fields keep their defaults
	if cfg.Logging.Format != "json" {
		t.Fatalf("format=%s, want default json", cfg.Logging.Format)
	}

	bitmax, ok := cfg.Exchange("bitmax")
	if !ok || bitmax.APIKey != "key-1" || bitmax.Options["account"] != "cash" {
		t.Fatalf("unexpected bitmax config: %+v", bitmax)
	}
	if _, ok := cfg.Exchange("kkex"); ok {
		t.Fatalf("kkex should be absent")
	}
}

func TestLoadConfigExpandsEnv(t *testing.T) {
	t.Setenv("XENA_API_KEY", "env-key")
	t.Setenv("XENA_SECRET", "env-secret")
	path := writeFile(t, "uniex.yaml", `
exchanges:
  xena:
    api_key: ${XENA_API_KEY}
    secret: ${XENA_SECRET}
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	xena, _ := cfg.Exchange("xena")
	if xena.APIKey != "env-key" || xena.Secret != "env-secret" {
		t.Fatalf("env expansion failed: %+v", xena)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	path := writeFile(t, "uniex.yaml", `
exchanges:
  latoken:
    api_key: key-only
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("api_key without secret should fail validation")
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("missing file should fail")
	}
}

func TestLoadEnv(t *testing.T) {
	path := writeFile(t, ".env", "UNIEX_TEST_VALUE=from-dotenv\n")
	t.Setenv("UNIEX_TEST_VALUE", "placeholder")
	os.Unsetenv("UNIEX_TEST_VALUE")

	if err := LoadEnv(path, filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if got := os.Getenv("UNIEX_TEST_VALUE"); got != "from-dotenv" {
		t.Fatalf("UNIEX_TEST_VALUE=%s, want from-dotenv", got)
	}
}
