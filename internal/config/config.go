package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// insecureEncryptionKey mirrors the fallback the web client shipped with.
// It exists so development environments work out of the box; production
// deployments must set ENCRYPTION_KEY.
const insecureEncryptionKey = "secretkey"

type Config struct {
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	JWTSecret     string
	EncryptionKey string
	AdminEmails   []string
	ServerPort    string
	UploadDir     string
	B2AccountID   string
	B2AppKey      string
	B2Bucket      string
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	encKey := getEnv("ENCRYPTION_KEY", "")
	if encKey == "" {
		log.Println("WARNING: ENCRYPTION_KEY not set, using insecure development default")
		encKey = insecureEncryptionKey
	}

	return &Config{
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "notelibrary"),
		JWTSecret:     getEnv("JWT_SECRET", "super-secret-key-change-me"),
		EncryptionKey: encKey,
		AdminEmails:   splitList(getEnv("ADMIN_EMAILS", "note-libraryadmin@gmail.com")),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		UploadDir:     getEnv("UPLOAD_DIR", "/uploads"),
		B2AccountID:   getEnv("B2_ACCOUNT_ID", ""),
		B2AppKey:      getEnv("B2_APP_KEY", ""),
		B2Bucket:      getEnv("B2_BUCKET", ""),
	}
}

// IsAdminEmail reports whether the email is configured as an admin account.
// Role is fixed at registration time from this check.
func (c *Config) IsAdminEmail(email string) bool {
	for _, admin := range c.AdminEmails {
		if strings.EqualFold(admin, email) {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
