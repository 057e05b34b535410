// Package db stores the companies served by the development API.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	dbmodels "github.com/gartstein/directory/internal/companiesapi/db/models"
	e "github.com/gartstein/directory/internal/directory/errors"
	"github.com/gartstein/directory/internal/directory/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	insertBatchSize = 100
)

type Repository struct {
	db     *gorm.DB
	logger *zap.Logger
}

type Config struct {
	// Driver is "sqlite" (default) or "postgres".
	Driver string
	// DSN defaults to an in-memory sqlite database.
	DSN string
	// ConnectRetries is how often a failed connection is retried.
	ConnectRetries uint64
}

func NewRepository(ctx context.Context, cfg *Config, logger *zap.Logger) (*Repository, error) {
	logger = logger.Named("repository")

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "", DriverSQLite:
		dsn := cfg.DSN
		if dsn == "" {
			dsn = ":memory:"
		}
		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("%w: unknown database driver %q", e.ErrInvalidInput, cfg.Driver)
	}

	var db *gorm.DB
	connect := func() error {
		var err error
		db, err = gorm.Open(dialector, &gorm.Config{
			TranslateError: true,
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		})
		return err
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), cfg.ConnectRetries), ctx)
	notify := func(err error, wait time.Duration) {
		logger.Warn("Database not reachable, retrying", zap.Error(err), zap.Duration("wait", wait))
	}
	if err := backoff.RetryNotify(connect, policy, notify); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if dialector.Name() == DriverSQLite {
		// every connection to :memory: opens a fresh database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access database pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&dbmodels.Company{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Connected to database", zap.String("driver", dialector.Name()))
	return &Repository{db: db, logger: logger}, nil
}

// CreateCompanies appends companies after the ones already stored, in order.
func (r *Repository) CreateCompanies(ctx context.Context, companies []models.Company) error {
	seen := make(map[models.CompanyID]struct{}, len(companies))
	for _, c := range companies {
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("%w: company id %q", e.ErrDuplicateEntry, c.ID)
		}
		seen[c.ID] = struct{}{}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var offset int64
		if err := tx.Model(&dbmodels.Company{}).Count(&offset).Error; err != nil {
			return err
		}

		rows := make([]dbmodels.Company, len(companies))
		for i, c := range companies {
			rows[i] = dbmodels.FromDomain(c, int(offset)+i)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, insertBatchSize).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return e.ErrDuplicateEntry
			}
			return err
		}
		return nil
	})
}

// ListCompanies returns every company in insertion order.
func (r *Repository) ListCompanies(ctx context.Context) ([]models.Company, error) {
	var rows []dbmodels.Company
	if err := r.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.Company, len(rows))
	for i, row := range rows {
		out[i] = row.ToDomain()
	}
	return out, nil
}

func (r *Repository) GetCompany(ctx context.Context, id models.CompanyID) (*models.Company, error) {
	var row dbmodels.Company
	result := r.db.WithContext(ctx).First(&row, "id = ?", string(id))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	c := row.ToDomain()
	return &c, nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmodels.Company{}).Count(&count).Error
	return count, err
}

// Ping checks that the database still answers.
func (r *Repository) Ping(ctx context.Context) error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

func (r *Repository) Close() error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
