package config

import (
	"os"
	"testing"
)

func TestConfigLoad_Defaults(t *testing.T) {
	unsetBuildEnv()
	_ = os.Unsetenv("NOTES_BACKEND_LOGIN_URL")
	_ = os.Unsetenv("NOTES_BACKEND_API_KEYS")

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.LoginURL != "/Users/Login" {
		t.Fatalf("unexpected default login url: %s", cfg.LoginURL)
	}
	if cfg.HTTPPort != 8080 || cfg.GetHTTPAddr() != ":8080" {
		t.Fatalf("unexpected default http config: %d", cfg.HTTPPort)
	}
	if !cfg.IsDevMode() {
		t.Fatal("no API keys should mean dev mode")
	}
}

func TestConfigLoad_APIKeys(t *testing.T) {
	unsetBuildEnv()
	_ = os.Setenv("NOTES_BACKEND_API_KEYS", "sk_abc:alice,sk_def:bob")
	defer func() { _ = os.Unsetenv("NOTES_BACKEND_API_KEYS") }()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.APIKeys["sk_abc"] != "alice" || cfg.APIKeys["sk_def"] != "bob" {
		t.Fatalf("api keys not parsed: %+v", cfg.APIKeys)
	}
	if cfg.IsDevMode() {
		t.Fatal("configured keys should disable dev mode")
	}
}
