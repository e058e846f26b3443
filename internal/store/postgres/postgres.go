// Package postgres persists imported devices in the inventory database.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/importer/model"
	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/store"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = 16
	cfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 6*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() { s.pool.Close() }

func (s *Store) ExistingIMEIs(ctx context.Context, imeis []string) (map[string]bool, error) {
	existing := make(map[string]bool, len(imeis))
	if len(imeis) == 0 {
		return existing, nil
	}
	rows, err := s.pool.Query(ctx, `
		SELECT imei FROM inventory_items WHERE imei = ANY($1)
	`, imeis)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var imei string
		if err := rows.Scan(&imei); err != nil {
			return nil, err
		}
		existing[imei] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *Store) InsertBatch(ctx context.Context, items []model.ParsedItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(`
			INSERT INTO inventory_items
				(imei, brand, model, storage_gb, color, condition, battery_pct,
				 cost, serial, title_original, parse_confidence, import_batch_id,
				 status, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,now())
		`, it.IMEI, it.Brand, it.Model, it.StorageGB, it.Color, string(it.Condition),
			it.BatteryPct, it.Cost, it.Serial, it.TitleOriginal, it.ParseConfidence,
			it.ImportBatchID, string(it.Status))
	}

	res := tx.SendBatch(ctx, batch)
	for range items {
		if _, err := res.Exec(); err != nil {
			_ = res.Close()
			if isUniqueViolation(err) {
				return 0, store.ErrDuplicateIMEI
			}
			return 0, err
		}
	}
	if err := res.Close(); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(items), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
