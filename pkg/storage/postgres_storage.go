package storage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// pgUndefinedTable is the PostgreSQL error code for a missing relation.
const pgUndefinedTable = "42P01"

// PostgresStorage implements the Storage interface on a single key/value table.
type PostgresStorage struct {
	Config Config
	db     *gorm.DB
}

type valueModel struct {
	Key       string `gorm:"column:key;primaryKey"`
	Body      []byte `gorm:"column:body;not null"`
	UpdatedAt time.Time
}

// NewPostgresStorage opens the database named by the config DSN and creates the value table if
// it does not exist.
func NewPostgresStorage(config Config) (*PostgresStorage, error) {
	if len(config.DSN) == 0 {
		return nil, errors.New("postgres dsn is required")
	}

	db, err := gorm.Open(postgres.Open(config.DSN), &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "open gorm postgres")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "resolve postgres sql db handle")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}

	return NewPostgresStorageWithDB(config, db)
}

// NewPostgresStorageWithDB uses an existing gorm handle.
func NewPostgresStorageWithDB(config Config, db *gorm.DB) (*PostgresStorage, error) {
	if len(config.Table) == 0 {
		config.Table = DefaultTable
	}

	result := &PostgresStorage{
		Config: config,
		db:     db,
	}

	if err := result.table(context.Background()).AutoMigrate(&valueModel{}); err != nil {
		return nil, errors.Wrap(err, "migrate value table")
	}

	return result, nil
}

// Write upserts the value for key.
func (p *PostgresStorage) Write(ctx context.Context, key string, body []byte,
	options *Options) error {

	row := valueModel{
		Key:       key,
		Body:      body,
		UpdatedAt: time.Now(),
	}

	err := p.table(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return errors.Wrapf(p.mapError(err), "write %s", key)
	}

	return nil
}

// Read returns the value for key.
func (p *PostgresStorage) Read(ctx context.Context, key string) ([]byte, error) {
	var row valueModel
	err := p.table(ctx).Where("key = ?", key).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(p.mapError(err), "read %s", key)
	}

	return row.Body, nil
}

// Remove deletes the value for key.
func (p *PostgresStorage) Remove(ctx context.Context, key string) error {
	result := p.table(ctx).Where("key = ?", key).Delete(&valueModel{})
	if result.Error != nil {
		return errors.Wrapf(p.mapError(result.Error), "remove %s", key)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Close releases the connection pool.
func (p *PostgresStorage) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (p *PostgresStorage) table(ctx context.Context) *gorm.DB {
	return p.db.WithContext(ctx).Table(p.Config.Table)
}

func (p *PostgresStorage) mapError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUndefinedTable {
		return errors.Wrap(err, "value table missing")
	}
	return err
}
