package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all client configuration.
type Config struct {
	APIBaseURL string
	LogLevel   string
	LogFormat  string

	// HTTPTimeout bounds every API call except certificate downloads.
	HTTPTimeout time.Duration

	// AutosaveInterval is how often in-progress answers are flushed to the
	// backend during a session.
	AutosaveInterval time.Duration

	// AutoAdvanceDelay is how long a multiple-choice selection stays on
	// screen before the view moves to the next question.
	AutoAdvanceDelay time.Duration

	ChatPollInterval  time.Duration
	NotifPollInterval time.Duration

	// EnablePush switches the notification feed from interval polling to a
	// WebSocket subscription when the backend supports it.
	EnablePush bool

	// TokenPath is where the bearer token is persisted between runs.
	TokenPath string

	// DownloadDir is where certificate PDFs are saved.
	DownloadDir string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // .env is optional

	return &Config{
		APIBaseURL:        getEnv("MENTORA_API_URL", "https://api.mentora.app/api/v1"),
		LogLevel:          getEnv("LOG_LEVEL", "warn"),
		LogFormat:         getEnv("LOG_FORMAT", "pretty"),
		HTTPTimeout:       getEnvDuration("HTTP_TIMEOUT", 15*time.Second),
		AutosaveInterval:  getEnvDuration("AUTOSAVE_INTERVAL", 30*time.Second),
		AutoAdvanceDelay:  getEnvDuration("AUTO_ADVANCE_DELAY", 900*time.Millisecond),
		ChatPollInterval:  getEnvDuration("CHAT_POLL_INTERVAL", 5*time.Second),
		NotifPollInterval: getEnvDuration("NOTIF_POLL_INTERVAL", 30*time.Second),
		EnablePush:        getEnvBool("ENABLE_PUSH", false),
		TokenPath:         getEnv("TOKEN_PATH", defaultTokenPath()),
		DownloadDir:       getEnv("DOWNLOAD_DIR", "."),
	}
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mentora-token"
	}
	return filepath.Join(home, ".mentora", "token")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// getEnvDuration parses values like "30s" or "900ms". Plain integers are
// treated as seconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return fallback
}
