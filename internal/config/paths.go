package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
)

const (
	appDirName     = "SoCongNo"
	databaseFile   = "socongno.db"
	backupsDirName = "backups"
	logFile        = "socongno.log"
)

// DefaultDataDir is the per-user application data directory of the ledger.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return dataDirFor(runtime.GOOS, home, os.Getenv("APPDATA"))
}

func dataDirFor(goos, home, appData string) string {
	switch goos {
	case "windows":
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appData, appDirName)
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", appDirName)
	default:
		return filepath.Join(home, ".local", "share", appDirName)
	}
}

func (c *Config) DatabasePath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return filepath.Join(c.DataDir, databaseFile)
}

func (c *Config) BackupPath() string {
	if c.BackupDir != "" {
		return c.BackupDir
	}
	return filepath.Join(c.DataDir, backupsDirName)
}

func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, logFile)
}

// EnsureDataDir creates the data directory when the SQLite file lives in it.
func (c *Config) EnsureDataDir() error {
	if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create data directory %s", c.DataDir)
	}
	return nil
}
