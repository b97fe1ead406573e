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

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"prime-deposit-addresses-go/internal/models"
)

func Load() (*models.Config, error) {
	requestTimeout, err := getEnvDuration("PRIME_REQUEST_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	pageDelay, err := getEnvDuration("PRIME_PAGE_DELAY", 200*time.Millisecond)
	if err != nil {
		return nil, err
	}

	addressDelay, err := getEnvDuration("PRIME_ADDRESS_DELAY", 300*time.Millisecond)
	if err != nil {
		return nil, err
	}

	activationTimeout, err := getEnvDuration("ACTIVATION_TIMEOUT", 2*time.Minute)
	if err != nil {
		return nil, err
	}

	activationPollInterval, err := getEnvDuration("ACTIVATION_POLL_INTERVAL", 5*time.Second)
	if err != nil {
		return nil, err
	}

	connMaxLifetime, err := getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	connMaxIdleTime, err := getEnvDuration("DB_CONN_MAX_IDLE_TIME", 30*time.Second)
	if err != nil {
		return nil, err
	}

	pingTimeout, err := getEnvDuration("DB_PING_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	// Credentials are not validated here; the wallet client rejects incomplete sets
	return &models.Config{
		Prime: models.PrimeConfig{
			AccessKey:      getEnvString("PRIME_ACCESS_KEY", os.Getenv("PRIME_API_KEY")),
			SigningKey:     os.Getenv("PRIME_SIGNING_KEY"),
			Passphrase:     os.Getenv("PRIME_PASSPHRASE"),
			PortfolioId:    os.Getenv("PRIME_PORTFOLIO_ID"),
			BaseURL:        getEnvString("PRIME_BASE_URL", "https://api.prime.coinbase.com"),
			RequestTimeout: requestTimeout,
			PageDelay:      pageDelay,
		},
		Database: models.DatabaseConfig{
			Path:            getEnvString("DATABASE_PATH", "addresses.db"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 5),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 2),
			ConnMaxLifetime: connMaxLifetime,
			ConnMaxIdleTime: connMaxIdleTime,
			PingTimeout:     pingTimeout,
		},
		Generator: models.GeneratorConfig{
			AssetsFile:             getEnvString("ASSETS_FILE", "assets.yaml"),
			OutputDir:              getEnvString("OUTPUT_DIR", "."),
			AddressDelay:           addressDelay,
			AllWallets:             getEnvBool("ALL_WALLETS", false),
			ActivationTimeout:      activationTimeout,
			ActivationPollInterval: activationPollInterval,
		},
		Log: models.LogConfig{
			Level:      getEnvString("LOG_LEVEL", "info"),
			File:       os.Getenv("LOG_FILE"),
			MaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 50),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		},
	}, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	if value := os.Getenv(key); value != "" {
		duration, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %q (%w)", key, value, err)
		}
		return duration, nil
	}
	return defaultValue, nil
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
