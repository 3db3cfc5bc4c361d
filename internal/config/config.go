package config

import (
	"time"

	"github.com/dmitrijs2005/antara/internal/backup"
)

// Config holds runtime settings for the antara CLI.
type Config struct {
	DatabasePath string
	LogLevel     string
	LogFormat    string
	LogFile      string

	CapsuleRefreshInterval time.Duration

	LockResetDelay  time.Duration
	LockMaxAttempts int
	LockBaseDelay   time.Duration
	LockMaxDelay    time.Duration

	BackupDir string
	S3        backup.S3Config
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "antara.db"
	c.LogLevel = "warn"
	c.LogFormat = "text"
	c.LogFile = ""
	c.CapsuleRefreshInterval = time.Minute
	c.LockResetDelay = 500 * time.Millisecond
	c.LockMaxAttempts = 5
	c.LockBaseDelay = 30 * time.Second
	c.LockMaxDelay = 15 * time.Minute
	c.BackupDir = "backups"
	c.S3 = backup.S3Config{Region: "us-east-1", Prefix: "antara"}
}

// S3Enabled reports whether an S3 backup bucket is configured.
func (c *Config) S3Enabled() bool {
	return c.S3.Bucket != ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from a config file (if given with -c/-config) and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
