package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	// Server
	ServerPort string
	ServerEnv  string
	ClientURL  string

	// Database
	DatabaseURL string

	// Gemini
	GeminiAPIKey      string
	GeminiTextModel   string
	GeminiVisionModel string

	// Geocoding
	NominatimBaseURL string

	// Verification
	CacheReadEnabled   bool
	VerifyStatusStrict bool

	// Principal stand-in until real auth lands
	DefaultUserID string

	// SigNoz
	SigNozEndpoint string
}

func Load() *Config {
	return &Config{
		// Server
		ServerPort: getEnv("SERVER_PORT", "3000"),
		ServerEnv:  getEnv("SERVER_ENV", "development"),
		ClientURL:  getEnv("CLIENT_URL", "http://localhost:5173"),

		// Database - DATABASE_URL wins, otherwise built from individual env vars
		DatabaseURL: getDatabaseURL(),

		// Gemini
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiTextModel:   getEnv("GEMINI_TEXT_MODEL", "gemini-pro"),
		GeminiVisionModel: getEnv("GEMINI_VISION_MODEL", "gemini-2.0-flash"),

		// Geocoding
		NominatimBaseURL: getEnv("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),

		// Verification
		CacheReadEnabled:   getEnvAsBool("CACHE_READ_ENABLED", false),
		VerifyStatusStrict: getEnvAsBool("VERIFY_STATUS_STRICT", false),

		// Principal
		DefaultUserID: getEnv("DEFAULT_USER_ID", "netrunnerX"),

		// SigNoz
		SigNozEndpoint: getEnv("SIGNOZ_ENDPOINT", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getDatabaseURL returns DATABASE_URL or builds it from individual env vars
func getDatabaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("POSTGRES_HOST", "localhost")
	port := getEnv("POSTGRES_PORT", "5432")
	user := getEnv("POSTGRES_USER", "postgres")
	password := getEnv("POSTGRES_PASSWORD", "")
	dbname := getEnv("POSTGRES_DB", "disaster_response")
	sslmode := getEnv("POSTGRES_SSLMODE", "disable")

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		user, password, host, port, dbname, sslmode)
}
