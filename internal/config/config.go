package config

import (
	"os"
	"strconv"
	"strings"
)

// Config is built once in main and handed to everything that needs it.
// No package-level state.
type Config struct {
	Port          string
	DatabaseURL   string
	SessionSecret string

	SMTPHost  string
	SMTPPort  string
	SMTPUser  string
	SMTPPass  string
	SMTPFrom  string
	ContactTo string

	// AdminIDs is the fixed set of user ids allowed to author posts.
	AdminIDs []uint
}

// Load reads configuration from the environment. Call godotenv.Load first
// if a .env file should be honored.
func Load() *Config {
	cfg := &Config{
		Port:          getenv("PORT", "8080"),
		DatabaseURL:   NormalizeDatabaseURL(os.Getenv("DATABASE_URL")),
		SessionSecret: getenv("SESSION_SECRET", "secret_key_change_me"),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      os.Getenv("SMTP_PORT"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPass:      os.Getenv("SMTP_PASS"),
		SMTPFrom:      os.Getenv("SMTP_FROM"),
		ContactTo:     os.Getenv("CONTACT_TO"),
		AdminIDs:      ParseAdminIDs(getenv("ADMIN_IDS", "1,2")),
	}
	return cfg
}

// NormalizeDatabaseURL rewrites the postgres:// scheme to postgresql://.
// Some hosting providers hand out connection strings with the short scheme,
// which not every client accepts.
func NormalizeDatabaseURL(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") {
		return "postgresql://" + strings.TrimPrefix(dsn, "postgres://")
	}
	return dsn
}

// ParseAdminIDs parses a comma-separated id list. Malformed entries are
// skipped rather than granting anyone access by accident.
func ParseAdminIDs(s string) []uint {
	var ids []uint
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}

// IsAdmin reports whether id is in the allow-list.
func (c *Config) IsAdmin(id uint) bool {
	for _, a := range c.AdminIDs {
		if a == id {
			return true
		}
	}
	return false
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
