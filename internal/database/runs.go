package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"prime-deposit-addresses-go/internal/models"
	"prime-deposit-addresses-go/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*models.GenerationRun, error) {
	var run models.GenerationRun
	var completedAt sql.NullTime
	if err := row.Scan(&run.Id, &run.Mode, &run.StartedAt, &completedAt, &run.Total, &run.Found, &run.Missing, &run.Errors); err != nil {
		return nil, err
	}
	if completedAt.Valid {
		t := completedAt.Time
		run.CompletedAt = &t
	}
	return &run, nil
}

func (s *Service) CreateRun(ctx context.Context, mode string) (*models.GenerationRun, error) {
	run := &models.GenerationRun{
		Id:        uuid.New().String(),
		Mode:      mode,
		StartedAt: time.Now().UTC(),
	}

	if _, err := s.db.ExecContext(ctx, queryInsertRun, run.Id, run.Mode, run.StartedAt); err != nil {
		zap.L().Error("Failed to insert generation run", zap.String("mode", mode), zap.Error(err))
		return nil, fmt.Errorf("unable to insert generation run: %w", err)
	}

	zap.L().Debug("Generation run created", zap.String("run_id", run.Id), zap.String("mode", mode))
	return run, nil
}

func (s *Service) CompleteRun(ctx context.Context, runId string, totals store.RunTotals) error {
	result, err := s.db.ExecContext(ctx, queryCompleteRun,
		time.Now().UTC(), totals.Total, totals.Found, totals.Missing, totals.Errors, runId)
	if err != nil {
		return fmt.Errorf("unable to complete generation run: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unable to read affected rows: %w", err)
	}
	if affected == 0 {
		if _, err := s.getRun(ctx, runId); err != nil {
			return err
		}
		return fmt.Errorf("run %s: %w", runId, store.ErrRunCompleted)
	}

	zap.L().Debug("Generation run completed",
		zap.String("run_id", runId),
		zap.Int("total", totals.Total),
		zap.Int("found", totals.Found))
	return nil
}

func (s *Service) GetLatestRun(ctx context.Context) (*models.GenerationRun, error) {
	run, err := scanRun(s.db.QueryRowContext(ctx, queryGetLatestRun))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("unable to query latest run: %w", err)
	}
	return run, nil
}

func (s *Service) getRun(ctx context.Context, runId string) (*models.GenerationRun, error) {
	run, err := scanRun(s.db.QueryRowContext(ctx, queryGetRun, runId))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", runId, store.ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to query run: %w", err)
	}
	return run, nil
}
