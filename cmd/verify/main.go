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
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"prime-deposit-addresses-go/internal/common"
	"prime-deposit-addresses-go/internal/config"
	"prime-deposit-addresses-go/internal/prime"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	_, loggerCleanup := common.InitializeLogger(cfg.Log)
	defer loggerCleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	common.PrintHeader("PRIME API READINESS CHECK", common.DefaultWidth)

	if missing := common.MissingCredentials(cfg.Prime); len(missing) > 0 {
		fmt.Println("❌ Missing credentials")
		for _, name := range missing {
			fmt.Printf("  • %s\n", name)
		}
		os.Exit(1)
	}
	fmt.Printf("✅ Credentials present (access key %s)\n", common.MaskKey(cfg.Prime.AccessKey))
	fmt.Printf("   Portfolio: %s\n", cfg.Prime.PortfolioId)

	client, err := common.InitializeWalletClient(cfg.Prime)
	if err != nil {
		fmt.Printf("❌ Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	page, err := client.ListWallets(ctx, "")
	if err != nil {
		zap.L().Error("Wallet listing failed", zap.String("kind", prime.Kind(err)), zap.Error(err))
		fmt.Printf("❌ Wallet listing failed (%s): %v\n", prime.Kind(err), err)
		os.Exit(1)
	}

	fmt.Printf("✅ API reachable, first page returned %d wallets (more pages: %v)\n", len(page.Wallets), page.HasNext)

	counts := prime.CountByType(page.Wallets)
	types := make([]string, 0, len(counts))
	for walletType := range counts {
		types = append(types, walletType)
	}
	sort.Strings(types)
	for i, walletType := range types {
		fmt.Printf("%s%-10s %d\n", common.BoxPrefix(i == len(types)-1), walletType, counts[walletType])
	}

	common.PrintFooter("Prime API is ready", common.DefaultWidth)
}
