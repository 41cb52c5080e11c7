package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/iudanet/passkeeper/internal/server/storage"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Supported drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Storage represents SQL storage implementation on top of bun.
// The same queries serve SQLite, PostgreSQL and MySQL.
type Storage struct {
	db     *bun.DB
	driver string
}

var _ storage.CredentialStorage = (*Storage)(nil)

// New creates a new SQL storage instance and applies migrations.
// For SQLite dsn is the path to the database file,
// use ":memory:" for in-memory database (useful for testing)
func New(ctx context.Context, driver, dsn string) (*Storage, error) {
	sqlDB, err := open(driver, dsn)
	if err != nil {
		return nil, err
	}

	// Проверяем соединение
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if driver == DriverSQLite {
		// SQLite с WAL mode может поддерживать несколько читателей, но только одного писателя.
		// Для ":memory:" одно соединение обязательно, иначе каждое соединение видит свою БД
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)

		pragmas := []string{
			"PRAGMA journal_mode = WAL;",
			"PRAGMA synchronous = NORMAL;",
			"PRAGMA busy_timeout = 5000;",
		}
		for _, pragma := range pragmas {
			if _, err := sqlDB.ExecContext(ctx, pragma); err != nil {
				_ = sqlDB.Close()
				return nil, fmt.Errorf("failed to set pragma: %w", err)
			}
		}
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := runMigrations(ctx, sqlDB, driver); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Storage{db: newBunDB(sqlDB, driver), driver: driver}, nil
}

// open открывает *sql.DB для выбранного драйвера
func open(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case DriverSQLite:
		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		return db, nil

	case DriverPostgres:
		cfg, err := pgx.ParseConfig(dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
		}
		return stdlib.OpenDB(*cfg), nil

	case DriverMySQL:
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to parse mysql dsn: %w", err)
		}
		// RowsAffected должен считать найденные строки, а не измененные,
		// иначе повторное обновление теми же значениями выглядит как "не найдено"
		cfg.ClientFoundRows = true
		cfg.ParseTime = true
		cfg.Loc = time.UTC

		connector, err := mysql.NewConnector(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create mysql connector: %w", err)
		}
		return sql.OpenDB(connector), nil

	default:
		return nil, fmt.Errorf("%w: %q", storage.ErrUnknownDriver, driver)
	}
}

func newBunDB(sqlDB *sql.DB, driver string) *bun.DB {
	switch driver {
	case DriverPostgres:
		return bun.NewDB(sqlDB, pgdialect.New())
	case DriverMySQL:
		return bun.NewDB(sqlDB, mysqldialect.New())
	default:
		return bun.NewDB(sqlDB, sqlitedialect.New())
	}
}

// runMigrations выполняет миграции из embedded FS
func runMigrations(ctx context.Context, db *sql.DB, driver string) error {
	dialect := driver
	if driver == DriverSQLite {
		dialect = "sqlite3"
	}

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}

	return nil
}

// Ping checks the database connection
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// DB returns the underlying bun database for testing purposes
func (s *Storage) DB() *bun.DB {
	return s.db
}

// Driver returns the configured driver name
func (s *Storage) Driver() string {
	return s.driver
}
