package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Config collects the env-driven settings. Load never fails; missing
// values fall back to development defaults and SMTP stays disabled until
// all three SMTP variables are present.
type Config struct {
	Port             string
	DatabaseDSN      string
	GinMode          string
	ReminderInterval time.Duration

	SMTPHost string
	SMTPPort string
	SMTPFrom string
}

func Load() *Config {
	return &Config{
		Port:             getEnv("PORT", "8080"),
		DatabaseDSN:      getEnv("DATABASE_DSN", "root:root@tcp(127.0.0.1:3306)/reservas?charset=utf8mb4&parseTime=True&loc=Local"),
		GinMode:          getEnv("GIN_MODE", "debug"),
		ReminderInterval: getMinutes("REMINDER_INTERVAL_MINUTES", 5),
		SMTPHost:         os.Getenv("SMTP_HOST"),
		SMTPPort:         getEnv("SMTP_PORT", "587"),
		SMTPFrom:         os.Getenv("SMTP_FROM"),
	}
}

// MailEnabled reports whether outgoing mail is configured.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

// InitDB opens the MySQL connection used in production. Tests open their
// own in-memory sqlite handle instead.
func (c *Config) InitDB() (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(c.DatabaseDSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getMinutes(key string, defMinutes int) time.Duration {
	minutes := defMinutes
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			minutes = n
		}
	}
	return time.Duration(minutes) * time.Minute
}
