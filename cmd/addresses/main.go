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
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"prime-deposit-addresses-go/internal/artifact"
	"prime-deposit-addresses-go/internal/common"
	"prime-deposit-addresses-go/internal/config"
	"prime-deposit-addresses-go/internal/models"
	"prime-deposit-addresses-go/internal/resolver"

	"go.uber.org/zap"
)

func printSummary(report *resolver.Report, assetCount int) {
	s := report.Summary
	fmt.Printf("\nAssets:  %d (%s mode, %d results)\n", assetCount, report.Mode, s.Total)
	fmt.Printf("  ✅ Found:     %d\n", s.Found)
	fmt.Printf("  🔄 Fallback:  %d\n", s.Fallback)
	fmt.Printf("  ⚠️  Missing:   %d\n", s.Missing)
	fmt.Printf("  ❌ Errors:    %d\n", s.Errors)
	fmt.Printf("  Coverage:    %s%%\n", s.CoveragePercent.StringFixed(1))
}

func printMissing(results []models.AddressResult) {
	missing := resolver.MissingSymbols(results)
	if len(missing) == 0 {
		return
	}
	common.PrintHeader("MISSING WALLETS (need to be created)", common.WideWidth)
	for _, symbol := range missing {
		fmt.Printf("  • %s\n", symbol)
	}
	fmt.Printf("\nRun cmd/provision -symbols %s to create them\n", strings.Join(missing, ","))
}

func main() {
	allWallets := flag.Bool("all-wallets", false, "Return every wallet per symbol instead of the preferred one")
	jsonOnly := flag.Bool("json-only", false, "Print only the JSON results to stdout and write no files")
	assetsFile := flag.String("assets", "", "Path to the assets YAML file (default: ASSETS_FILE)")
	outputDir := flag.String("out", "", "Directory for the generated files (default: OUTPUT_DIR)")
	noStore := flag.Bool("no-store", false, "Do not record the run in the history database")
	symbols := flag.String("symbols", "", "Comma-separated symbols to limit the run to (optional)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	_, loggerCleanup := common.InitializeLogger(cfg.Log)
	defer loggerCleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *assetsFile != "" {
		cfg.Generator.AssetsFile = *assetsFile
	}
	if *outputDir != "" {
		cfg.Generator.OutputDir = *outputDir
	}
	if *allWallets {
		cfg.Generator.AllWallets = true
	}

	zap.L().Info("Starting deposit address generation",
		zap.String("assets_file", cfg.Generator.AssetsFile),
		zap.Bool("all_wallets", cfg.Generator.AllWallets))

	assets, err := common.LoadAssetConfig(cfg.Generator.AssetsFile)
	if err != nil {
		zap.L().Fatal("Failed to load assets", zap.Error(err))
	}
	if *symbols != "" {
		assets = common.FilterAssets(assets, strings.Split(*symbols, ","))
	}
	if len(assets) == 0 {
		zap.L().Fatal("No assets to resolve")
	}

	services, err := common.InitializeServices(ctx, cfg, *noStore || *jsonOnly)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	r := resolver.NewResolver(resolver.ResolverConfig{
		Client:       services.WalletClient,
		Store:        services.Store,
		AddressDelay: cfg.Generator.AddressDelay,
		AllWallets:   cfg.Generator.AllWallets,
	})

	report, err := r.Resolve(ctx, assets)
	if err != nil {
		zap.L().Fatal("Address generation failed", zap.Error(err))
	}

	if *jsonOnly {
		if err := artifact.WriteJSON(os.Stdout, report.Results); err != nil {
			zap.L().Fatal("Failed to write JSON", zap.Error(err))
		}
		return
	}

	common.PrintHeader("DEPOSIT ADDRESSES", common.WideWidth)
	common.PrintAddressResults(report.Results)
	printSummary(report, len(assets))
	printMissing(report.Results)

	paths, err := artifact.WriteFiles(cfg.Generator.OutputDir, report.Results, time.Now())
	if err != nil {
		zap.L().Fatal("Failed to write artifacts", zap.Error(err))
	}

	footer := fmt.Sprintf("Results saved to %s and %s", paths.JSON, paths.TypeScript)
	if report.RunId != "" {
		footer += fmt.Sprintf(" (run %s)", report.RunId)
	}
	common.PrintFooter(footer, common.WideWidth)
}
