package config

import (
	"crypto/rand"
	"encoding/base64"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

type Config struct {
	DBURL         string
	Port          string
	SessionSecret string
	AdminPassword string
	SeedDemo      bool
	Environment   string
	CorsConfig    cors.Options
}

var Envs = initConfig()

func initConfig() Config {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("No", envFile, "file found")
	}

	return Config{
		DBURL:         getEnv("DB_URL", "nebulavault.db"),
		Port:          getEnv("PORT", "8080"),
		SessionSecret: sessionSecret(),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		SeedDemo:      getEnv("SEED_DEMO", "false") == "true",
		Environment:   getEnv("ENV", "development"),
		CorsConfig:    CorsConfig(),
	}
}

// sessionSecret returns the externally supplied SESSION_SECRET, or a
// fresh random one for the lifetime of this process. A generated secret
// invalidates all sessions on restart, which is fine for a single
// instance; multi-instance deployments must set SESSION_SECRET.
func sessionSecret() string {
	if s := os.Getenv("SESSION_SECRET"); s != "" {
		return s
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatal("Failed to generate session secret:", err)
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

// PostgresDSN reports whether the configured DB_URL points at Postgres
// rather than a SQLite file path.
func (c Config) PostgresDSN() bool {
	return strings.HasPrefix(c.DBURL, "postgres://") ||
		strings.HasPrefix(c.DBURL, "postgresql://") ||
		strings.Contains(c.DBURL, "host=")
}

// Gets the env by key or fallbacks
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func CorsConfig() cors.Options {
	return cors.Options{
		AllowedOrigins:   []string{getEnv("CORS_ORIGIN", "http://localhost:5173")},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
}
