package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// app config, read once at startup from the environment (and .env when present)
type Config struct {
	Port       string
	JWTSecret  string
	Provider   string
	MongoURI   string
	MongoDB    string
	RedisAddr  string
	RedisPass  string
	RedisDB    int
	CORSOrigin []string

	Judge0URL    string
	Judge0APIKey string
	Judge0Host   string

	OTPTTL        time.Duration
	InvitationTTL time.Duration
	RoundTTL      time.Duration

	ExportEnabled  bool
	ExportSchedule string
	ExportDir      string

	// Location interprets interview dates and start times.
	Location     *time.Location
	ContactEmail string
}

// loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// a missing .env is fine, the real environment wins anyway
	_ = godotenv.Load()

	config := &Config{
		Port:       getEnvOrDefault("PORT", "8080"),
		JWTSecret:  getEnvOrDefault("JWT_SECRET", "dev"),
		Provider:   getEnvOrDefault("AI_PROVIDER", "gemini"),
		MongoURI:   os.Getenv("MONGO_URI"),
		MongoDB:    getEnvOrDefault("MONGO_DB_NAME", "voxhire"),
		RedisAddr:  getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPass:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:    getEnvInt("REDIS_DB", 0),
		CORSOrigin: splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),

		Judge0URL:    getEnvOrDefault("JUDGE0_URL", "https://judge029.p.rapidapi.com"),
		Judge0APIKey: os.Getenv("JUDGE0_API_KEY"),
		Judge0Host:   os.Getenv("JUDGE0_HOST"),

		OTPTTL:        getEnvDuration("OTP_TTL", 10*time.Minute),
		InvitationTTL: getEnvDuration("INVITATION_TTL", 7*24*time.Hour),
		RoundTTL:      getEnvDuration("ROUND_TTL", 24*time.Hour),

		ExportEnabled:  getEnvOrDefault("EVALUATION_EXPORT_ENABLED", "false") == "true",
		ExportSchedule: getEnvOrDefault("EVALUATION_EXPORT_SCHEDULE", "0 2 * * *"),
		ExportDir:      getEnvOrDefault("EVALUATION_EXPORT_DIR", "./exports"),

		ContactEmail: os.Getenv("CONTACT_EMAIL"),
	}
	loc, err := time.LoadLocation(getEnvOrDefault("INTERVIEW_TIMEZONE", "UTC"))
	if err != nil {
		return nil, errors.New("invalid INTERVIEW_TIMEZONE: " + err.Error())
	}
	config.Location = loc
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Provider != "gemini" {
		return errors.New("unsupported AI provider: " + config.Provider + ". Currently supported: gemini")
	}
	if config.MongoURI == "" {
		return errors.New("MONGO_URI environment variable is required")
	}
	if config.OTPTTL <= 0 || config.InvitationTTL <= 0 || config.RoundTTL <= 0 {
		return errors.New("OTP_TTL, INVITATION_TTL and ROUND_TTL must be positive durations")
	}
	// Gemini validation is handled by gemini.NewConfig()
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
