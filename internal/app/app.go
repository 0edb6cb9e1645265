package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/nimasrn/debt-ledger/internal/backup"
	"github.com/nimasrn/debt-ledger/internal/config"
	"github.com/nimasrn/debt-ledger/internal/controller"
	"github.com/nimasrn/debt-ledger/internal/repository"
	"github.com/nimasrn/debt-ledger/internal/services"
	"github.com/nimasrn/debt-ledger/pkg/logger"
	"github.com/nimasrn/debt-ledger/pkg/store"
)

// App is the wired ledger core shared by the binaries.
type App struct {
	Config     *config.Config
	DB         *store.DB
	Controller *controller.LedgerController
	Backups    *backup.Service
}

// SetupLogging points the global logger at stdout and the configured log file.
func SetupLogging(cfg *config.Config) error {
	if cfg.LogFile == "" || (cfg.DBDriver == store.DriverSQLite && cfg.DBPath == "") {
		if err := cfg.EnsureDataDir(); err != nil {
			return err
		}
	}
	return logger.Setup(logger.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogPath(),
		Production: cfg.IsProduction(),
	})
}

// NewBackupService returns nil for drivers without a database file.
func NewBackupService(cfg *config.Config) (*backup.Service, error) {
	if cfg.DBDriver != store.DriverSQLite {
		return nil, nil
	}
	return backup.NewService(backup.Config{
		DatabasePath: cfg.DatabasePath(),
		Dir:          cfg.BackupPath(),
		MaxBackups:   cfg.BackupMax,
	})
}

// New opens and migrates the database and wires repositories, services and
// the controller.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	backups, err := NewBackupService(cfg)
	if err != nil {
		return nil, err
	}
	if backups != nil && cfg.BackupOnStart {
		if _, err := backups.AutoBackupIfNeeded(ctx); err != nil && !errors.Is(err, backup.ErrNoDatabase) {
			logger.Warn("automatic backup failed", "error", err)
		}
	}

	db, err := store.Open(cfg.StoreConfig())
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	customerRepo := repository.NewCustomerRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	customerService := services.NewCustomerService(customerRepo)
	debtService := services.NewDebtService(customerRepo, transactionRepo)

	return &App{
		Config:     cfg,
		DB:         db,
		Controller: controller.NewLedgerController(customerService, debtService, cfg.AppLocale),
		Backups:    backups,
	}, nil
}

func (a *App) Close() error {
	return a.DB.Close()
}
