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
	"syscall"

	"prime-deposit-addresses-go/internal/common"
	"prime-deposit-addresses-go/internal/config"
	"prime-deposit-addresses-go/internal/prime"

	"go.uber.org/zap"
)

func main() {
	name := flag.String("name", "", "Only show the portfolio with this name (optional)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	_, loggerCleanup := common.InitializeLogger(cfg.Log)
	defer loggerCleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := prime.NewPortfolioService(common.PrimeCredentials(cfg.Prime), cfg.Prime)
	if err != nil {
		zap.L().Fatal("Failed to initialize portfolio service", zap.Error(err))
	}

	common.PrintHeader("PRIME PORTFOLIOS", common.DefaultWidth)

	if *name != "" {
		portfolio, err := svc.FindPortfolio(ctx, *name)
		if err != nil {
			zap.L().Fatal("Failed to find portfolio", zap.String("name", *name), zap.Error(err))
		}
		fmt.Printf("%s%-40s %s\n", common.BoxPrefix(true), portfolio.Name, portfolio.Id)
		common.PrintFooter("Set PRIME_PORTFOLIO_ID="+portfolio.Id, common.DefaultWidth)
		return
	}

	portfolios, err := svc.ListPortfolios(ctx)
	if err != nil {
		zap.L().Fatal("Failed to list portfolios", zap.Error(err))
	}
	for i, p := range portfolios {
		marker := ""
		if p.Id == cfg.Prime.PortfolioId {
			marker = " (configured)"
		}
		fmt.Printf("%s%-40s %s%s\n", common.BoxPrefix(i == len(portfolios)-1), p.Name, p.Id, marker)
	}
	common.PrintFooter(fmt.Sprintf("%d portfolios", len(portfolios)), common.DefaultWidth)
}
