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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"prime-deposit-addresses-go/internal/common"
	"prime-deposit-addresses-go/internal/config"
	"prime-deposit-addresses-go/internal/models"
	"prime-deposit-addresses-go/internal/store"

	"go.uber.org/zap"
)

func toResults(stored []models.StoredAddress) []models.AddressResult {
	results := make([]models.AddressResult, len(stored))
	for i, s := range stored {
		results[i] = models.AddressResult{
			Symbol:     s.Symbol,
			Network:    s.Network,
			Status:     s.Status,
			WalletId:   s.WalletId,
			WalletName: s.WalletName,
			WalletTier: s.WalletTier,
			Address:    s.Address,
			Memo:       s.Memo,
			Note:       s.Note,
			Error:      s.Error,
		}
	}
	return results
}

func main() {
	dbPath := flag.String("db", "", "Path to the history database (default: DATABASE_PATH)")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	_, loggerCleanup := common.InitializeLogger(cfg.Log)
	defer loggerCleanup()

	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	// Read-only report, no Prime API needed
	zap.L().Info("Connecting to database", zap.String("path", cfg.Database.Path))
	dbService, err := common.InitializeDatabaseOnly(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize database", zap.Error(err))
	}
	defer dbService.Close()

	run, err := dbService.GetLatestRun(ctx)
	if errors.Is(err, store.ErrRunNotFound) {
		common.PrintFooter("No generation runs recorded yet", common.DefaultWidth)
		return
	}
	if err != nil {
		zap.L().Fatal("Failed to load latest run", zap.Error(err))
	}

	stored, err := dbService.GetRunResults(ctx, run.Id)
	if err != nil {
		zap.L().Fatal("Failed to load run results", zap.String("run_id", run.Id), zap.Error(err))
	}

	common.PrintHeader(fmt.Sprintf("LATEST RUN %s (%s)", run.Id, run.Mode), common.WideWidth)
	fmt.Printf("Started:   %s\n", run.StartedAt.Local().Format(time.RFC1123))
	if run.CompletedAt != nil {
		fmt.Printf("Completed: %s\n", run.CompletedAt.Local().Format(time.RFC1123))
	} else {
		fmt.Println("Completed: (incomplete)")
	}
	fmt.Println()
	common.PrintAddressResults(toResults(stored))

	summary := fmt.Sprintf("SUMMARY: %d results, %d with address, %d missing, %d errors",
		run.Total, run.Found, run.Missing, run.Errors)
	common.PrintFooter(summary, common.WideWidth)
}
