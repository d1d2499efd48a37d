package config

import (
	"flag"
	"os"
	"time"

	"github.com/dberzins/docshelf/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   session signing secret
//	-l int      session lifetime, minutes
//	-b string   blob backend ("github" or "s3")
//	-t string   hosted-content API token
//	-r string   hosted-content repository ("owner/name")
//
// os.Args is first filtered to the flags handled here, so the JSON config
// flags (-c/-config) parsed elsewhere do not collide.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-l", "-b", "-t", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Addr, "a", config.Addr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "session signing secret")

	sessionTTL := fs.Int("l", int(config.SessionTTL.Minutes()), "session lifetime (in minutes)")

	fs.StringVar(&config.BlobBackend, "b", config.BlobBackend, "blob backend (github or s3)")
	fs.StringVar(&config.GitHubToken, "t", config.GitHubToken, "hosted-content API token")
	fs.StringVar(&config.GitHubRepo, "r", config.GitHubRepo, "hosted-content repository")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionTTL = time.Duration(*sessionTTL) * time.Minute
}
