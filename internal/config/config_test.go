package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		AppPort:   "8080",
		MySQLHost: "localhost",
		MySQLPort: "3306",
		MySQLDB:   "simlok",
		MySQLUser: "simlok",
		MySQLPass: "secret",
		QRSecret:  "qr-sign-key",
	}
}

func TestLoad_Defaults(t *testing.T) {
	// No env set in the test process for these keys.
	c := Load()
	if c.AppPort == "" || c.MySQLPort == "" {
		t.Fatalf("defaults not applied: %+v", c)
	}
	if c.SessionTTL != 24*time.Hour {
		t.Fatalf("default session TTL: got %v", c.SessionTTL)
	}
	if c.IdempTTLSecs != 300 {
		t.Fatalf("default idempotency TTL: got %d", c.IdempTTLSecs)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SESSION_TTL_HOURS", "8")
	t.Setenv("IDEMPOTENCY_TTL_SECONDS", "60")
	t.Setenv("REDIS_DB", "3")

	c := Load()
	if c.SessionTTL != 8*time.Hour {
		t.Fatalf("SESSION_TTL_HOURS: got %v", c.SessionTTL)
	}
	if c.IdempTTLSecs != 60 {
		t.Fatalf("IDEMPOTENCY_TTL_SECONDS: got %d", c.IdempTTLSecs)
	}
	if c.RedisDB != 3 {
		t.Fatalf("REDIS_DB: got %d", c.RedisDB)
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	c := validConfig()
	c.MySQLHost = ""
	if err := c.Validate(); err == nil {
		t.Fatal("missing MySQL host accepted")
	}

	c = validConfig()
	c.MySQLPort = "not-a-port"
	if err := c.Validate(); err == nil {
		t.Fatal("bad MySQL port accepted")
	}

	c = validConfig()
	c.QRSecret = ""
	if err := c.Validate(); err == nil {
		t.Fatal("missing QR secret accepted")
	}
}

func TestMySQLDSN(t *testing.T) {
	dsn := validConfig().MySQLDSN()
	if !strings.HasPrefix(dsn, "simlok:secret@tcp(localhost:3306)/simlok?") {
		t.Fatalf("unexpected DSN: %s", dsn)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Fatalf("DSN missing parseTime: %s", dsn)
	}
}
