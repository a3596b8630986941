package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	GroupChatID int64  // Required: the single chat whose join requests are gated
	InviteLink  string // Required: surfaced to users after a passed challenge

	VerifyTTL   time.Duration // How long a verification grants auto-approval (default: 5m)
	Cooldown    time.Duration // Lockout after too many wrong answers (default: 10m)
	MaxAttempts int           // Wrong answers allowed per window (default: 3, must be > 0)

	StrictModeDefault bool // Static default; settings-table override wins
	LockdownDefault   bool // Static default; settings-table override wins

	AdminIDs []int64 // User ids allowed to run admin commands

	DatabaseFile        string        // Path to SQLite database file (default: ./gatekeeper.db)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		GroupChatID:         getEnvInt64OrDefault("GATE_GROUP_CHAT_ID", 0),
		InviteLink:          os.Getenv("GATE_INVITE_LINK"),
		VerifyTTL:           getEnvDurationOrDefault("GATE_VERIFY_TTL", 5*time.Minute),
		Cooldown:            getEnvDurationOrDefault("GATE_COOLDOWN", 10*time.Minute),
		MaxAttempts:         getEnvIntOrDefault("GATE_MAX_ATTEMPTS", 3),
		StrictModeDefault:   getEnvBoolOrDefault("GATE_STRICT_MODE", false),
		LockdownDefault:     getEnvBoolOrDefault("GATE_LOCKDOWN", false),
		AdminIDs:            getEnvInt64List("GATE_ADMIN_IDS"),
		DatabaseFile:        getEnvOrDefault("GATE_DATABASE_FILE", "gatekeeper.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// Validate fails fast on configuration the core cannot run with. Called
// before any component is constructed.
func (c Config) Validate() error {
	var errs []error

	if c.GroupChatID == 0 {
		errs = append(errs, errors.New("GATE_GROUP_CHAT_ID is required"))
	}
	if c.InviteLink == "" {
		errs = append(errs, errors.New("GATE_INVITE_LINK is required"))
	}
	if c.MaxAttempts <= 0 {
		errs = append(errs, fmt.Errorf("GATE_MAX_ATTEMPTS must be positive, got %d", c.MaxAttempts))
	}
	if c.VerifyTTL <= 0 {
		errs = append(errs, fmt.Errorf("GATE_VERIFY_TTL must be positive, got %s", c.VerifyTTL))
	}
	if c.Cooldown <= 0 {
		errs = append(errs, fmt.Errorf("GATE_COOLDOWN must be positive, got %s", c.Cooldown))
	}

	return errors.Join(errs...)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := strings.ToLower(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "10m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are read as seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}

func getEnvInt64List(key string) []int64 {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return nil
	}

	var out []int64
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if id, err := strconv.ParseInt(part, 10, 64); err == nil {
			out = append(out, id)
		}
	}
	return out
}
