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

	"prime-deposit-addresses-go/internal/common"
	"prime-deposit-addresses-go/internal/config"
	"prime-deposit-addresses-go/internal/resolver"

	"go.uber.org/zap"
)

func symbolsToProvision(symbolsFlag, assetsFile string) ([]string, error) {
	if symbolsFlag != "" {
		return strings.Split(symbolsFlag, ","), nil
	}

	assets, err := common.LoadAssetConfig(assetsFile)
	if err != nil {
		return nil, err
	}
	symbols := make([]string, len(assets))
	for i, asset := range assets {
		symbols[i] = asset.Symbol
	}
	return symbols, nil
}

func printResults(results []resolver.ProvisionResult) (failed int) {
	for i, r := range results {
		isLast := i == len(results)-1
		fmt.Printf("%s%-10s %-8s %s\n", common.BoxPrefix(isLast), r.Symbol, r.Status, r.WalletId)

		detail := common.BoxDetailPrefix(isLast)
		if r.ActivityId != "" {
			fmt.Printf("%s   Activity: %s\n", detail, r.ActivityId)
		}
		if r.Instruction != nil {
			fmt.Printf("%s   Address:  %s\n", detail, r.Instruction.Address)
			if r.Instruction.Memo != nil {
				fmt.Printf("%s   Memo:     %s\n", detail, *r.Instruction.Memo)
			}
		}
		if r.Error != "" {
			fmt.Printf("%s   Error:    %s\n", detail, r.Error)
		}
		if r.Status == resolver.ProvisionFailed {
			failed++
		}
	}
	return failed
}

func main() {
	name := flag.String("name", "Trading", "Name of the trading wallet to create per symbol")
	symbols := flag.String("symbols", "", "Comma-separated symbols (default: every asset in the assets file)")
	assetsFile := flag.String("assets", "", "Path to the assets YAML file (default: ASSETS_FILE)")
	dryRun := flag.Bool("dry-run", false, "Only report the wallets that would be created")
	wait := flag.Bool("wait", false, "Wait for new wallets to return a deposit address")
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

	requested, err := symbolsToProvision(*symbols, cfg.Generator.AssetsFile)
	if err != nil {
		zap.L().Fatal("Failed to determine symbols", zap.Error(err))
	}

	client, err := common.InitializeWalletClient(cfg.Prime)
	if err != nil {
		zap.L().Fatal("Failed to initialize wallet client", zap.Error(err))
	}

	zap.L().Info("Provisioning trading wallets",
		zap.String("name", *name),
		zap.Int("symbols", len(requested)),
		zap.Bool("dry_run", *dryRun),
		zap.Bool("wait", *wait))

	p := resolver.NewProvisioner(resolver.ProvisionerConfig{
		Client:       client,
		WalletName:   *name,
		DryRun:       *dryRun,
		Wait:         *wait,
		WaitTimeout:  cfg.Generator.ActivationTimeout,
		PollInterval: cfg.Generator.ActivationPollInterval,
	})

	results, err := p.Provision(ctx, requested)
	common.PrintHeader("TRADING WALLET PROVISIONING", common.DefaultWidth)
	failed := printResults(results)
	if err != nil {
		zap.L().Fatal("Provisioning stopped", zap.Error(err))
	}

	common.PrintFooter(fmt.Sprintf("%d symbols processed, %d failed", len(results), failed), common.DefaultWidth)
	if failed > 0 {
		os.Exit(1)
	}
}
