package internal

import (
	"strings"
	"testing"
	"time"

	"github.com/starford/startpage/internal/models"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := NewDefaultConfig().Validate(); err != nil {
		t.Fatalf("default config: %v", err)
	}
}

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenMode(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}

	cfg.Token = ""
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("empty token err = %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestStorageConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  StorageConfig
		ok   bool
	}{
		{"file", StorageConfig{Driver: DriverFile, Path: "./data"}, true},
		{"empty driver is file", StorageConfig{Path: "./data"}, true},
		{"sqlite", StorageConfig{Driver: DriverSQLite, Path: "start.db"}, true},
		{"memory without path", StorageConfig{Driver: DriverMemory}, true},
		{"file without path", StorageConfig{Driver: DriverFile}, false},
		{"unknown driver", StorageConfig{Driver: "redis", Path: "x"}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.cfg.Validate()
			if (err == nil) != c.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, c.ok)
			}
		})
	}
}

func TestCalendarConfig(t *testing.T) {
	cfg := CalendarConfig{Timezone: "Asia/Tehran", UpdateThrottle: time.Second}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid zone: %v", err)
	}
	loc, _ := cfg.Location()
	if loc.String() != "Asia/Tehran" {
		t.Errorf("location = %s", loc)
	}

	if err := (&CalendarConfig{Timezone: "Mars/Olympus"}).Validate(); err == nil {
		t.Error("unknown zone should fail")
	}
	if err := (&CalendarConfig{UpdateThrottle: -time.Second}).Validate(); err == nil {
		t.Error("negative throttle should fail")
	}
	if loc, err := (&CalendarConfig{}).Location(); err != nil || loc != time.Local {
		t.Errorf("empty zone = %v, %v", loc, err)
	}
}

func TestLinksConfig(t *testing.T) {
	ok := LinksConfig{Defaults: []models.QuickLink{{Title: "Go", URL: "go.dev"}}}
	if err := ok.Validate(); err != nil {
		t.Errorf("valid links: %v", err)
	}
	bad := LinksConfig{Defaults: []models.QuickLink{{Title: "Go", URL: "go.dev"}, {Title: " "}}}
	if err := bad.Validate(); err == nil || !strings.Contains(err.Error(), "defaults[1]") {
		t.Errorf("invalid links err = %v", err)
	}
}

func TestFullConfig_ValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "token"
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch auth error")
	}

	cfg = NewDefaultConfig()
	cfg.Search.URL = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch search error")
	}
}
