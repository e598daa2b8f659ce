// Package db opens the gorm connection used by every adapter.
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	// DriverSQLite stores everything in a local file. Default.
	DriverSQLite = "sqlite"
	// DriverPostgres connects to a postgres server.
	DriverPostgres = "postgres"

	defaultSQLitePath = "stock_portfolio.db"
	connectTimeout    = 30 * time.Second
)

// retryInterval is the pause between connection attempts.
var retryInterval = 500 * time.Millisecond

// Config holds connection settings for either driver.
type Config struct {
	Driver string

	// Path is the sqlite database file. ":memory:" opens a private in-memory db.
	Path string

	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// LoadConfigFromEnv reads DB_* variables.
func LoadConfigFromEnv() Config {
	driver := strings.ToLower(os.Getenv("DB_DRIVER"))
	if driver == "" {
		driver = DriverSQLite
	}
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = defaultSQLitePath
	}
	sslMode := os.Getenv("DB_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}
	return Config{
		Driver:   driver,
		Path:     path,
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
		SSLMode:  sslMode,
	}
}

// BuildDSN returns the driver-specific connection string.
// SQLite DSNs always enable foreign key enforcement so cascades fire.
func BuildDSN(cfg Config) string {
	if cfg.Driver == DriverPostgres {
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
	}
	path := cfg.Path
	if path == "" {
		path = defaultSQLitePath
	}
	if path == ":memory:" {
		return "file::memory:?_foreign_keys=on&_busy_timeout=5000"
	}
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
}

// ConnectWithRetry calls opener until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, opener func(string) (*gorm.DB, error)) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("db connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Open connects using cfg and tunes the pool for the chosen driver.
func Open(cfg Config) (*gorm.DB, error) {
	switch cfg.Driver {
	case DriverSQLite, "":
		return OpenSQLite(cfg.Path)
	case DriverPostgres:
		return ConnectWithRetry(BuildDSN(cfg), connectTimeout, func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), gormConfig())
		})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

// OpenSQLite opens a sqlite database at path (":memory:" for tests).
// The pool is pinned to one connection: sqlite allows a single writer and an
// in-memory database lives only as long as its connection.
func OpenSQLite(path string) (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(BuildDSN(Config{Driver: DriverSQLite, Path: path})), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	return gdb, nil
}

// Close releases the underlying pool.
func Close(gdb *gorm.DB) error {
	if gdb == nil {
		return errors.New("nil db")
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// IsPostgres reports whether gdb talks to postgres.
func IsPostgres(gdb *gorm.DB) bool {
	return gdb != nil && gdb.Dialector != nil && gdb.Dialector.Name() == DriverPostgres
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	}
}

// Pinger checks the connection behind a gorm handle.
type Pinger struct {
	db *gorm.DB
}

// NewPinger creates a Pinger for gdb.
func NewPinger(gdb *gorm.DB) *Pinger {
	return &Pinger{db: gdb}
}

// Ping round-trips to the database.
func (p *Pinger) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
