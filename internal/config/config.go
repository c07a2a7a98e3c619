package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	// Signing secret for the permit QR tokens. Must be stable across
	// restarts or printed permits stop scanning.
	QRSecret string

	SessionTTL   time.Duration
	IdempTTLSecs int

	UploadDir string
	// Application log file, tailed for the live SSE stream.
	LogFile string

	// Kafka is optional: empty broker disables event publishing.
	KafkaBroker string
	KafkaTopic  string

	// Seed super admin, created on first boot when no account exists.
	AdminEmail string
	AdminPass  string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func Load() *Config {
	c := &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "simlok"),
		MySQLUser: getenv("MYSQL_USER", "simlok"),
		MySQLPass: getenv("MYSQL_PASS", "simlok"),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),

		QRSecret: os.Getenv("QR_SECRET"),

		SessionTTL:   24 * time.Hour,
		IdempTTLSecs: 300,

		UploadDir: getenv("UPLOAD_DIR", "./uploads"),
		LogFile:   getenv("LOG_FILE", "./logs/app.log"),

		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		KafkaTopic:  getenv("KAFKA_TOPIC", "simlok.events"),

		AdminEmail: getenv("ADMIN_EMAIL", "admin@simlok.local"),
		AdminPass:  os.Getenv("ADMIN_PASS"),
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if v := os.Getenv("SESSION_TTL_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.SessionTTL = time.Duration(n) * time.Hour
		}
	}
	if v := os.Getenv("IDEMPOTENCY_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.IdempTTLSecs = n
		}
	}
	return c
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.QRSecret == "" {
		return errors.New("missing QR_SECRET")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
