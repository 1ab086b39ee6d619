// Package db opens the relational store used by every feature.
package db

import (
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"news_backend/internal/config"
	commententity "news_backend/internal/feature/comments/domain/entity"
	newsentity "news_backend/internal/feature/news/domain/entity"
	userentity "news_backend/internal/feature/users/domain/entity"
)

// retryInterval is the pause between connection attempts.
const retryInterval = 3 * time.Second

// Opener opens a gorm connection for a DSN.
type Opener func(dsn string) (*gorm.DB, error)

// BuildDSN returns the driver-specific DSN for cfg.
func BuildDSN(cfg config.DatabaseConfig) string {
	if cfg.Driver == "sqlite" {
		return cfg.Path
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   cfg.Host + ":" + cfg.Port,
		Path:   "/" + cfg.Name,
	}
	q := url.Values{}
	q.Set("sslmode", cfg.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// OpenerFor returns the Opener of the configured driver.
func OpenerFor(driver string, gcfg *gorm.Config) (Opener, error) {
	switch driver {
	case "sqlite":
		return func(dsn string) (*gorm.DB, error) { return gorm.Open(sqlite.Open(dsn), gcfg) }, nil
	case "postgres":
		return func(dsn string) (*gorm.DB, error) { return gorm.Open(postgres.Open(dsn), gcfg) }, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// ConnectWithRetry calls opener until it succeeds or timeout elapses,
// waiting interval between attempts.
func ConnectWithRetry(dsn string, timeout, interval time.Duration, opener Opener, log *zap.Logger) (*gorm.DB, error) {
	if log == nil {
		log = zap.NewNop()
	}
	deadline := time.Now().Add(timeout)
	for attempt := 1; ; attempt++ {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(interval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %d attempts: %w", attempt, err)
		}
		log.Warn("db connect failed, retrying", zap.Int("attempt", attempt), zap.Error(err))
		time.Sleep(interval)
	}
}

// Open connects to the configured database and migrates the schema when
// cfg.AutoMigrate is set.
func Open(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	opener, err := OpenerFor(cfg.Driver, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	db, err := ConnectWithRetry(BuildDSN(cfg), cfg.ConnectTimeout, retryInterval, opener, log)
	if err != nil {
		return nil, err
	}

	if cfg.Driver == "sqlite" {
		// SQLite allows a single writer.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if cfg.AutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Migrate creates or updates the users, news and news_comments tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userentity.User{},
		&newsentity.News{},
		&commententity.Comment{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
