package store

import (
	"context"
	"embed"
	"fmt"
	"sync"
	"time"

	"github.com/nimasrn/debt-ledger/pkg/logger"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*/*.sql
var migrations embed.FS

// goose keeps its dialect and filesystem in package state.
var migrateLock sync.Mutex

type SchemaVersion struct {
	Version     int64     `gorm:"column:version;primaryKey"`
	AppliedAt   time.Time `gorm:"column:applied_at"`
	Description string    `gorm:"column:description"`
}

func (SchemaVersion) TableName() string {
	return "schema_version"
}

func dialect(driver string) string {
	if driver == DriverPostgres {
		return "postgres"
	}
	return "sqlite3"
}

// Migrate brings the schema up to the latest version. Already applied
// migrations are skipped, so calling it on every start is safe.
func Migrate(ctx context.Context, db *DB) error {
	migrateLock.Lock()
	defer migrateLock.Unlock()

	sqlDB, err := db.write.DB()
	if err != nil {
		return err
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(logger.GetLogger())
	if err := goose.SetDialect(dialect(db.driver)); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "migrations/"+db.driver); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, err := CurrentVersion(ctx, db)
	if err != nil {
		return err
	}
	logger.Info("database schema is up to date", "driver", db.driver, "version", version)
	return nil
}

// CurrentVersion returns the highest recorded schema version, or 0 when the
// schema has never been migrated.
func CurrentVersion(ctx context.Context, db *DB) (int64, error) {
	if !db.Read(ctx).Migrator().HasTable(&SchemaVersion{}) {
		return 0, nil
	}
	var version int64
	row := db.Read(ctx).Raw("SELECT COALESCE(MAX(version), 0) FROM schema_version").Row()
	if err := row.Scan(&version); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

func AppliedVersions(ctx context.Context, db *DB) ([]SchemaVersion, error) {
	var versions []SchemaVersion
	if err := db.Read(ctx).Order("version").Find(&versions).Error; err != nil {
		return nil, fmt.Errorf("list schema versions: %w", err)
	}
	return versions, nil
}
