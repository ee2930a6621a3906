package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	Portal PortalConfig
	Upload UploadConfig
}

type AppConfig struct {
	Environment string
	LogFilePath string
}

type PortalConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	AccountEmail   string
	TokenPath      string
}

type UploadConfig struct {
	Timeout time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Environment: getEnv("GO_ENV", "development"),
			LogFilePath: getEnv("LOG_FILE_PATH", "portal-client.log"),
		},
		Portal: PortalConfig{
			BaseURL:        getEnv("PORTAL_BASE_URL", "http://localhost:8000"),
			RequestTimeout: getEnvAsSeconds("PORTAL_REQUEST_TIMEOUT_SECONDS", 15),
			AccountEmail:   getEnv("PORTAL_ACCOUNT_EMAIL", "client@test.com"),
			TokenPath:      getEnv("PORTAL_TOKEN_PATH", defaultTokenPath()),
		},
		Upload: UploadConfig{
			// Uploads wait on server-side processing and can run much longer
			// than the other requests.
			Timeout: getEnvAsSeconds("PORTAL_UPLOAD_TIMEOUT_SECONDS", 120),
		},
	}
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".advocate-portal", "token")
	}
	return filepath.Join(home, ".advocate-portal", "token")
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsSeconds(key string, fallback int) time.Duration {
	return time.Duration(getEnvAsInt(key, fallback)) * time.Second
}
