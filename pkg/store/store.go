package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nimasrn/debt-ledger/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var ErrUnsupportedDriver = errors.New("unsupported database driver")

type DB struct {
	read   *gorm.DB
	write  *gorm.DB
	driver string
}

// Open connects to the configured database. A SQLite database is served by a
// single connection, so reads and writes share one handle.
func Open(config Config) (*DB, error) {
	var dialector gorm.Dialector
	driver := config.driver()
	switch driver {
	case DriverSQLite:
		dialector = sqlite.Open(sqliteDSN(config.Path))
	case DriverPostgres:
		dialector = postgres.Open(postgresDSN(config))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, config.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		Logger: gormlogger.New(logger.GetLogger(), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	if driver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if config.Debug {
		db = db.Debug()
	}
	return &DB{read: db, write: db, driver: driver}, nil
}

func (r *DB) Driver() string {
	return r.driver
}

func (r *DB) Write(ctx context.Context) *gorm.DB {
	return r.write.WithContext(ctx)
}

func (r *DB) Read(ctx context.Context) *gorm.DB {
	return r.read.WithContext(ctx)
}

func (r *DB) Close() error {
	sqlDB, err := r.write.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (r *DB) Ping(ctx context.Context) error {
	sqlDB, err := r.read.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
