package postgres

import (
	"context"
	"fmt"
	"time"

	"fixrates/deploy/config"
	"fixrates/internal/entities"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// Storage is the conversion audit log. Write-only: nothing here feeds
// back into the conversion path.
type Storage struct {
	db *pgxpool.Pool
}

func NewStorage(pool *pgxpool.Pool) *Storage {
	return &Storage{
		db: pool,
	}
}

func InitStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	const op = "storage.postgres.InitStorage"

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		cfg.Storage.Host,
		cfg.Storage.Port,
		cfg.Storage.User,
		cfg.Storage.Password,
		cfg.Storage.DBName,
		cfg.Storage.SSLMode,
		cfg.Storage.Schema,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = 10 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute

	ctx, cancel := context.WithTimeout(ctx, cfg.Storage.Timeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, op)
	}

	storage := NewStorage(pool)

	if err = storage.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, op)
	}

	return storage, nil
}

func (s *Storage) ensureSchema(ctx context.Context) error {
	const op = "storage.postgres.ensureSchema"

	_, err := s.db.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS conversion_audit (
            id               UUID PRIMARY KEY,
            amount           NUMERIC NOT NULL,
            source_currency  CHAR(3) NOT NULL,
            target_currency  CHAR(3) NOT NULL,
            converted_amount NUMERIC NOT NULL,
            rate_used        NUMERIC NOT NULL,
            created_at       TIMESTAMPTZ NOT NULL
        )
    `)
	if err != nil {
		return errors.Wrap(err, op)
	}

	return nil
}

func (s *Storage) SaveConversion(ctx context.Context, record entities.ConversionRecord) error {
	const op = "storage.postgres.SaveConversion"

	_, err := s.db.Exec(ctx, `
        INSERT INTO conversion_audit (id, amount, source_currency, target_currency, converted_amount, rate_used, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `,
		record.ID,
		record.Amount.String(),
		record.SourceCurrency,
		record.TargetCurrency,
		record.ConvertedAmount.String(),
		record.RateUsed.String(),
		record.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, op)
	}

	return nil
}

func (s *Storage) Close() {
	s.db.Close()
}
