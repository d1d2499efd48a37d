package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dberzins/docshelf/internal/flagx"
	"github.com/dberzins/docshelf/internal/timex"
)

// JsonConfig mirrors Config for JSON unmarshalling. Duration fields use
// timex.Duration so both "30m" and integer nanoseconds parse.
type JsonConfig struct {
	Addr             string         `json:"address"`
	DatabaseDSN      string         `json:"database_dsn"`
	SecretKey        string         `json:"secret_key"`
	SessionTTL       timex.Duration `json:"session_ttl"`
	BlobBackend      string         `json:"blob_backend"`
	UploadPrefix     string         `json:"upload_prefix"`
	LegacyWriteOrder *bool          `json:"legacy_write_order"`

	GitHubToken      string `json:"github_token"`
	GitHubRepo       string `json:"github_repo"`
	GitHubBranch     string `json:"github_branch"`
	GitHubAPIBaseURL string `json:"github_api_base_url"`

	S3User         string `json:"s3_user"`
	S3Password     string `json:"s3_password"`
	S3Bucket       string `json:"s3_bucket"`
	S3Region       string `json:"s3_region"`
	S3BaseEndpoint string `json:"s3_base_endpoint"`
}

// parseJson overlays values from the JSON file named by -c/-config, when
// given. Unset JSON fields leave the current Config values alone. A missing
// or malformed file panics: a config file that was asked for but cannot be
// used should stop startup.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	overlay := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	overlay(&config.Addr, c.Addr)
	overlay(&config.DatabaseDSN, c.DatabaseDSN)
	overlay(&config.SecretKey, c.SecretKey)
	overlay(&config.BlobBackend, c.BlobBackend)
	overlay(&config.UploadPrefix, c.UploadPrefix)
	overlay(&config.GitHubToken, c.GitHubToken)
	overlay(&config.GitHubRepo, c.GitHubRepo)
	overlay(&config.GitHubBranch, c.GitHubBranch)
	overlay(&config.GitHubAPIBaseURL, c.GitHubAPIBaseURL)
	overlay(&config.S3User, c.S3User)
	overlay(&config.S3Password, c.S3Password)
	overlay(&config.S3Bucket, c.S3Bucket)
	overlay(&config.S3Region, c.S3Region)
	overlay(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.SessionTTL.Duration != 0 {
		config.SessionTTL = time.Duration(c.SessionTTL.Duration)
	}
	if c.LegacyWriteOrder != nil {
		config.LegacyWriteOrder = *c.LegacyWriteOrder
	}
}
