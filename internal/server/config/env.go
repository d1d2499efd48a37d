package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. A .env file in
// the working directory is loaded first without overriding variables already
// set in the process environment.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	setString := func(dst *string, name string) {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}

	setString(&config.Addr, "ADDRESS")
	setString(&config.DatabaseDSN, "DATABASE_DSN")
	setString(&config.SecretKey, "SECRET_KEY")
	setString(&config.BlobBackend, "BLOB_BACKEND")
	setString(&config.UploadPrefix, "UPLOAD_PREFIX")

	setString(&config.GitHubToken, "GITHUB_TOKEN")
	setString(&config.GitHubRepo, "GITHUB_REPO")
	setString(&config.GitHubBranch, "GITHUB_BRANCH")
	setString(&config.GitHubAPIBaseURL, "GITHUB_API_BASE_URL")

	setString(&config.S3User, "S3_USER")
	setString(&config.S3Password, "S3_PASSWORD")
	setString(&config.S3Bucket, "S3_BUCKET")
	setString(&config.S3Region, "S3_REGION")
	setString(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")

	if v, ok := os.LookupEnv("SESSION_TTL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.SessionTTL = d
		}
	}
	if v, ok := os.LookupEnv("LEGACY_WRITE_ORDER"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			config.LegacyWriteOrder = b
		}
	}
}
