package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DeployMode selects how inboxes and moderation credentials are provisioned.
type DeployMode string

const (
	// DeploySingle runs with one fixed admin credential pair from the
	// environment; messages all land in the configured admin inbox.
	DeploySingle DeployMode = "single"
	// DeployMulti lets anyone create a creator page with its own slug and
	// passcode.
	DeployMulti DeployMode = "multi"
)

// AuthMode selects the sender registration protocol.
type AuthMode string

const (
	// AuthDirect registers with collegeUid+mobile and no possession proof.
	AuthDirect AuthMode = "direct"
	// AuthOTP registers and logs in through an emailed one-time code.
	AuthOTP AuthMode = "otp"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	MySQLDSN   string
	RedisAddr  string
	RedisDB    int
	RedisPass  string

	SessionSecret string
	DeployMode    DeployMode
	AuthMode      AuthMode

	AdminSlug     string
	AdminPasscode string

	InstagramAppID     string
	InstagramAppSecret string

	ProbeTimeout time.Duration
	SwaggerHost  string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		// clientFoundRows makes the driver count matched rows instead of
		// changed rows, so same-value updates are not mistaken for misses.
		MySQLDSN:           getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/premam?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:            getEnvInt("REDIS_DB", 0),
		RedisPass:          os.Getenv("REDIS_PASSWORD"),
		SessionSecret:      getEnv("SESSION_SECRET", "change-me"),
		DeployMode:         DeployMode(getEnv("DEPLOY_MODE", string(DeployMulti))),
		AuthMode:           AuthMode(getEnv("AUTH_MODE", string(AuthOTP))),
		// Slugs are matched case-insensitively at login, so normalize the
		// configured one up front and store it in that form.
		AdminSlug:          strings.ToLower(strings.TrimSpace(getEnv("ADMIN_SLUG", "admin"))),
		AdminPasscode:      os.Getenv("ADMIN_PASSCODE"),
		InstagramAppID:     os.Getenv("INSTAGRAM_APP_ID"),
		InstagramAppSecret: os.Getenv("INSTAGRAM_APP_SECRET"),
		ProbeTimeout:       getEnvDuration("PROBE_TIMEOUT", 5*time.Second),
		SwaggerHost:        os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
