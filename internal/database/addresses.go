package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"prime-deposit-addresses-go/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *Service) StoreResult(ctx context.Context, runId string, result models.AddressResult) (*models.StoredAddress, error) {
	if _, err := s.getRun(ctx, runId); err != nil {
		return nil, err
	}

	stored := &models.StoredAddress{
		Id:         uuid.New().String(),
		RunId:      runId,
		Symbol:     result.Symbol,
		Network:    result.Network,
		Status:     result.Status,
		WalletId:   result.WalletId,
		WalletName: result.WalletName,
		WalletTier: result.WalletTier,
		Address:    result.Address,
		Memo:       result.Memo,
		Note:       result.Note,
		Error:      result.Error,
		CreatedAt:  time.Now().UTC(),
	}

	var memo sql.NullString
	if stored.Memo != nil {
		memo = sql.NullString{String: *stored.Memo, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, queryInsertAddress,
		stored.Id, stored.RunId, stored.Symbol, stored.Network, stored.Status,
		stored.WalletId, stored.WalletName, stored.WalletTier, stored.Address, memo, stored.Note,
		stored.Error, stored.CreatedAt)
	if err != nil {
		zap.L().Error("Failed to insert address result",
			zap.String("run_id", runId),
			zap.String("symbol", result.Symbol),
			zap.Error(err))
		return nil, fmt.Errorf("unable to insert address result: %w", err)
	}

	zap.L().Debug("Address result stored",
		zap.String("run_id", runId),
		zap.String("symbol", result.Symbol),
		zap.String("status", result.Status))
	return stored, nil
}

func (s *Service) GetRunResults(ctx context.Context, runId string) ([]models.StoredAddress, error) {
	if _, err := s.getRun(ctx, runId); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, queryGetRunAddresses, runId)
	if err != nil {
		zap.L().Error("Failed to query run addresses", zap.String("run_id", runId), zap.Error(err))
		return nil, fmt.Errorf("unable to query run addresses: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var addresses []models.StoredAddress
	for rows.Next() {
		var addr models.StoredAddress
		var memo sql.NullString
		err := rows.Scan(&addr.Id, &addr.RunId, &addr.Symbol, &addr.Network, &addr.Status,
			&addr.WalletId, &addr.WalletName, &addr.WalletTier, &addr.Address, &memo, &addr.Note,
			&addr.Error, &addr.CreatedAt)
		if err != nil {
			zap.L().Error("Failed to scan address row", zap.Error(err))
			return nil, fmt.Errorf("unable to scan address row: %w", err)
		}
		if memo.Valid {
			m := memo.String
			addr.Memo = &m
		}
		addresses = append(addresses, addr)
	}

	if err := rows.Err(); err != nil {
		zap.L().Error("Error during address row iteration", zap.Error(err))
		return nil, fmt.Errorf("error iterating address rows: %w", err)
	}

	zap.L().Debug("Retrieved run addresses",
		zap.String("run_id", runId),
		zap.Int("count", len(addresses)))
	return addresses, nil
}
