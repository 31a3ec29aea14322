package config

import (
	"path/filepath"
	"testing"
	"time"
)

// clearGreenerEnv blanks every variable Load reads so host settings don't leak in.
func clearGreenerEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GREENER_ENV", "GREENER_API_URL", "GREENER_CONFIG_DIR", "GREENER_STORAGE",
		"GREENER_REQUEST_TIMEOUT", "GREENER_DEVICE_TOKEN", "GREENER_PLATFORM",
		"DEV_SERVER_PORT", "DEV_OTP_TTL", "DEV_REDIS_ADDR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearGreenerEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Environment != EnvDevelopment {
		t.Errorf("Expected development environment, got %s", cfg.Environment)
	}
	if cfg.APIURL != DevelopmentAPIURL {
		t.Errorf("Expected default API URL %s, got %s", DevelopmentAPIURL, cfg.APIURL)
	}
	if cfg.Storage != StorageFile {
		t.Errorf("Expected file storage, got %s", cfg.Storage)
	}
	if cfg.RequestTimeout != 60*time.Second {
		t.Errorf("Expected 60s request timeout, got %s", cfg.RequestTimeout)
	}
	if cfg.DevOTPTTL != 5*time.Minute {
		t.Errorf("Expected 5m OTP TTL, got %s", cfg.DevOTPTTL)
	}
	if cfg.DevServerPort != "5000" {
		t.Errorf("Expected dev server port 5000, got %s", cfg.DevServerPort)
	}
}

func TestLoadConfig_ProductionSelectsProductionURL(t *testing.T) {
	clearGreenerEnv(t)
	t.Setenv("GREENER_ENV", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.APIURL != ProductionAPIURL {
		t.Errorf("Expected %s, got %s", ProductionAPIURL, cfg.APIURL)
	}
}

func TestLoadConfig_APIURLOverride(t *testing.T) {
	clearGreenerEnv(t)
	t.Setenv("GREENER_API_URL", "http://10.0.2.2:5000/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.APIURL != "http://10.0.2.2:5000" {
		t.Errorf("Expected trailing slash trimmed, got %s", cfg.APIURL)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown environment", "GREENER_ENV", "staging"},
		{"unknown storage", "GREENER_STORAGE", "redis"},
		{"zero timeout", "GREENER_REQUEST_TIMEOUT", "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearGreenerEnv(t)
			t.Setenv(tc.key, tc.value)

			if _, err := Load(); err == nil {
				t.Errorf("Expected error for %s=%s", tc.key, tc.value)
			}
		})
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	if got := DefaultConfigDir(); got != filepath.Join("/tmp/xdg", "greener") {
		t.Errorf("Expected XDG config dir, got %s", got)
	}
}
