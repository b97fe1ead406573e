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
	"prime-deposit-addresses-go/internal/models"
	"prime-deposit-addresses-go/internal/prime"
	"prime-deposit-addresses-go/internal/resolver"

	"go.uber.org/zap"
)

func main() {
	walletId := flag.String("wallet", "", "Prime wallet id (required)")
	wait := flag.Bool("wait", false, "Poll until the wallet returns a deposit address")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	_, loggerCleanup := common.InitializeLogger(cfg.Log)
	defer loggerCleanup()

	if *walletId == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := common.InitializeWalletClient(cfg.Prime)
	if err != nil {
		zap.L().Fatal("Failed to initialize wallet client", zap.Error(err))
	}

	var instruction *models.DepositInstruction
	if *wait {
		instruction, err = resolver.WaitForDepositInstruction(ctx, client, *walletId,
			cfg.Generator.ActivationTimeout, cfg.Generator.ActivationPollInterval)
	} else {
		instruction, err = client.GetDepositInstruction(ctx, *walletId)
	}
	if err != nil {
		zap.L().Fatal("Failed to get deposit instruction",
			zap.String("wallet_id", *walletId),
			zap.String("kind", prime.Kind(err)),
			zap.Bool("retryable", prime.IsRetryable(err)),
			zap.Error(err))
	}

	common.PrintHeader("DEPOSIT INSTRUCTION", common.DefaultWidth)
	fmt.Printf("Wallet:  %s\n", *walletId)
	fmt.Printf("Address: %s\n", instruction.Address)
	if instruction.Memo != nil {
		fmt.Printf("Memo:    %s\n", *instruction.Memo)
	}
	common.PrintFooter("Done", common.DefaultWidth)
}
