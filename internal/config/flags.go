package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/antara/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-d string   database file path (":memory:" for a throwaway session)
//	-l string   log level: debug, info, warn, error
//	-b string   local backup directory
//
// Only these flags are taken from args; -c/-config is handled by parseFile.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-d", "-l", "-b"})

	fs := flag.NewFlagSet("antara", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "database file path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.BackupDir, "b", cfg.BackupDir, "backup directory")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
