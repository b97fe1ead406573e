/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"context"
	"database/sql"
	"fmt"

	"prime-deposit-addresses-go/internal/models"
	"prime-deposit-addresses-go/internal/store"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Compile-time check: *Service must satisfy store.AddressStore.
var _ store.AddressStore = (*Service)(nil)

type Service struct {
	db *sql.DB
}

func NewService(ctx context.Context, cfg models.DatabaseConfig) (*Service, error) {
	// Validate configuration
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	if cfg.MaxOpenConns <= 0 {
		return nil, fmt.Errorf("max open connections must be positive, got %d", cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns < 0 {
		return nil, fmt.Errorf("max idle connections cannot be negative, got %d", cfg.MaxIdleConns)
	}
	if cfg.PingTimeout <= 0 {
		return nil, fmt.Errorf("ping timeout must be positive, got %v", cfg.PingTimeout)
	}

	zap.L().Info("Opening SQLite database", zap.String("file", cfg.Path))
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=1000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			zap.L().Warn("Failed to close database after ping failure", zap.Error(closeErr))
		}
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	service, err := newServiceWithDB(ctx, db)
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			zap.L().Warn("Failed to close database after schema failure", zap.Error(closeErr))
		}
		return nil, err
	}

	zap.L().Info("Database service initialized successfully")
	return service, nil
}

func newServiceWithDB(ctx context.Context, db *sql.DB) (*Service, error) {
	service := &Service{db: db}
	if err := service.initSchema(ctx); err != nil {
		return nil, fmt.Errorf("unable to initialize schema: %w", err)
	}
	return service, nil
}

func (s *Service) Close() {
	if err := s.db.Close(); err != nil {
		zap.L().Warn("Failed to close database connection", zap.Error(err))
	}
}

func (s *Service) initSchema(ctx context.Context) error {
	schema := `
	-- One row per execution of the address generator
	CREATE TABLE IF NOT EXISTS generation_runs (
		id TEXT PRIMARY KEY,
		mode TEXT NOT NULL,
		started_at TIMESTAMP NOT NULL,
		completed_at TIMESTAMP,
		total INTEGER NOT NULL DEFAULT 0,
		found INTEGER NOT NULL DEFAULT 0,
		missing INTEGER NOT NULL DEFAULT 0,
		errors INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_generation_runs_started_at ON generation_runs(started_at);

	-- Resolved deposit addresses per run
	CREATE TABLE IF NOT EXISTS deposit_addresses (
		id TEXT PRIMARY KEY,
		run_id TEXT NOT NULL REFERENCES generation_runs(id) ON DELETE CASCADE,
		symbol TEXT NOT NULL,
		network TEXT NOT NULL,
		status TEXT NOT NULL,
		wallet_id TEXT NOT NULL DEFAULT '',
		wallet_name TEXT NOT NULL DEFAULT '',
		wallet_tier TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		memo TEXT,
		note TEXT NOT NULL DEFAULT '',
		error TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_deposit_addresses_run ON deposit_addresses(run_id, symbol);
	CREATE INDEX IF NOT EXISTS idx_deposit_addresses_address ON deposit_addresses(address);
	`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return err
	}
	return s.addMissingColumns(ctx)
}

// addMissingColumns upgrades databases created before wallet_tier and note were recorded
func (s *Service) addMissingColumns(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, queryAddressColumns)
	if err != nil {
		return fmt.Errorf("unable to read deposit_addresses columns: %w", err)
	}
	existing := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return fmt.Errorf("unable to scan column name: %w", err)
		}
		existing[name] = true
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error iterating column names: %w", err)
	}
	if err := rows.Close(); err != nil {
		return err
	}

	for _, column := range []string{"wallet_tier", "note"} {
		if existing[column] {
			continue
		}
		zap.L().Info("Adding column to deposit_addresses", zap.String("column", column))
		stmt := fmt.Sprintf("ALTER TABLE deposit_addresses ADD COLUMN %s TEXT NOT NULL DEFAULT ''", column)
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("unable to add column %s: %w", column, err)
		}
	}
	return nil
}
