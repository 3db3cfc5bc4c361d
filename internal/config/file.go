package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/antara/internal/flagx"
	"github.com/dmitrijs2005/antara/internal/timex"
)

// FileConfig is a DTO used exclusively for decoding config files. Zero
// values leave the corresponding Config field untouched.
type FileConfig struct {
	DatabasePath string `json:"database_path" yaml:"database_path"`
	LogLevel     string `json:"log_level" yaml:"log_level"`
	LogFormat    string `json:"log_format" yaml:"log_format"`
	LogFile      string `json:"log_file" yaml:"log_file"`

	CapsuleRefreshInterval timex.Duration `json:"capsule_refresh_interval" yaml:"capsule_refresh_interval"`

	Lock struct {
		ResetDelay  timex.Duration `json:"reset_delay" yaml:"reset_delay"`
		MaxAttempts int            `json:"max_attempts" yaml:"max_attempts"`
		BaseDelay   timex.Duration `json:"base_delay" yaml:"base_delay"`
		MaxDelay    timex.Duration `json:"max_delay" yaml:"max_delay"`
	} `json:"lock" yaml:"lock"`

	Backup struct {
		Dir string `json:"dir" yaml:"dir"`
		S3  struct {
			Bucket          string `json:"bucket" yaml:"bucket"`
			Prefix          string `json:"prefix" yaml:"prefix"`
			Region          string `json:"region" yaml:"region"`
			Endpoint        string `json:"endpoint" yaml:"endpoint"`
			AccessKeyID     string `json:"access_key_id" yaml:"access_key_id"`
			SecretAccessKey string `json:"secret_access_key" yaml:"secret_access_key"`
		} `json:"s3" yaml:"s3"`
	} `json:"backup" yaml:"backup"`
}

// parseFile overlays cfg with the file named by -c/-config, if any.
// Files ending in .yaml or .yml are read as YAML, everything else as JSON.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.DatabasePath, fc.DatabasePath)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFormat, fc.LogFormat)
	setString(&cfg.LogFile, fc.LogFile)

	if fc.CapsuleRefreshInterval.Duration > 0 {
		cfg.CapsuleRefreshInterval = fc.CapsuleRefreshInterval.Duration
	}
	if fc.Lock.ResetDelay.Duration > 0 {
		cfg.LockResetDelay = fc.Lock.ResetDelay.Duration
	}
	if fc.Lock.MaxAttempts > 0 {
		cfg.LockMaxAttempts = fc.Lock.MaxAttempts
	}
	if fc.Lock.BaseDelay.Duration > 0 {
		cfg.LockBaseDelay = fc.Lock.BaseDelay.Duration
	}
	if fc.Lock.MaxDelay.Duration > 0 {
		cfg.LockMaxDelay = fc.Lock.MaxDelay.Duration
	}

	setString(&cfg.BackupDir, fc.Backup.Dir)
	s3 := fc.Backup.S3
	setString(&cfg.S3.Bucket, s3.Bucket)
	setString(&cfg.S3.Prefix, s3.Prefix)
	setString(&cfg.S3.Region, s3.Region)
	setString(&cfg.S3.Endpoint, s3.Endpoint)
	setString(&cfg.S3.AccessKeyID, s3.AccessKeyID)
	setString(&cfg.S3.SecretAccessKey, s3.SecretAccessKey)
}
