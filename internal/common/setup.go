package common

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"prime-deposit-addresses-go/internal/database"
	"prime-deposit-addresses-go/internal/models"
	"prime-deposit-addresses-go/internal/prime"
	"prime-deposit-addresses-go/internal/store"

	"github.com/coinbase-samples/prime-sdk-go/credentials"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// init loads environment variables from .env file if it exists
func init() {
	// Environment variables can also be set via shell export, docker, etc.
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: No .env file found or unable to load it: %v\n", err)
		log.Println("Make sure to set environment variables via export or other means")
	} else {
		log.Println("✓ Loaded environment variables from .env file")
	}
}

type Services struct {
	WalletClient *prime.WalletClient
	Store        store.AddressStore
}

// InitializeLogger installs a production zap logger writing JSON to stderr and,
// when cfg.File is set, to a rotating log file.
func InitializeLogger(cfg models.LogConfig) (*zap.Logger, func()) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		log.Printf("Unknown LOG_LEVEL %q, using info\n", cfg.Level)
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level)

	var fileWriter *lumberjack.Logger
	if cfg.File != "" {
		fileWriter = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
		core = zapcore.NewTee(core, zapcore.NewCore(encoder, zapcore.AddSync(fileWriter), level))
	}

	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
		if fileWriter != nil {
			if err := fileWriter.Close(); err != nil {
				log.Printf("Failed to close log file: %v\n", err)
			}
		}
	}

	return logger, cleanup
}

// PrimeCredentials builds the SDK credential set from configuration
func PrimeCredentials(cfg models.PrimeConfig) *credentials.Credentials {
	return &credentials.Credentials{
		AccessKey:   cfg.AccessKey,
		Passphrase:  cfg.Passphrase,
		SigningKey:  cfg.SigningKey,
		PortfolioId: cfg.PortfolioId,
	}
}

// MissingCredentials names the Prime environment variables that are unset
func MissingCredentials(cfg models.PrimeConfig) []string {
	var missing []string
	if cfg.AccessKey == "" {
		missing = append(missing, "PRIME_ACCESS_KEY (or PRIME_API_KEY)")
	}
	if cfg.SigningKey == "" {
		missing = append(missing, "PRIME_SIGNING_KEY")
	}
	if cfg.Passphrase == "" {
		missing = append(missing, "PRIME_PASSPHRASE")
	}
	if cfg.PortfolioId == "" {
		missing = append(missing, "PRIME_PORTFOLIO_ID")
	}
	return missing
}

// MaskKey keeps the first four characters of a key for log correlation
func MaskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + "..."
}

func InitializeWalletClient(cfg models.PrimeConfig) (*prime.WalletClient, error) {
	zap.L().Info("Loading Prime API credentials",
		zap.String("access_key", MaskKey(cfg.AccessKey)),
		zap.String("portfolio_id", cfg.PortfolioId),
		zap.String("base_url", cfg.BaseURL))

	client, err := prime.NewWalletClient(PrimeCredentials(cfg),
		prime.WithBaseURL(cfg.BaseURL),
		prime.WithRequestTimeout(cfg.RequestTimeout),
		prime.WithPageDelay(cfg.PageDelay))
	if err != nil {
		if missing := MissingCredentials(cfg); len(missing) > 0 {
			return nil, fmt.Errorf("%w (set %s)", err, strings.Join(missing, ", "))
		}
		return nil, err
	}
	return client, nil
}

// InitializeServices builds the wallet client and, unless withoutStore is set,
// opens the run history database.
func InitializeServices(ctx context.Context, cfg *models.Config, withoutStore bool) (*Services, error) {
	walletClient, err := InitializeWalletClient(cfg.Prime)
	if err != nil {
		return nil, err
	}

	services := &Services{WalletClient: walletClient}
	if withoutStore {
		return services, nil
	}

	dbService, err := database.NewService(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	services.Store = dbService
	return services, nil
}

// InitializeDatabaseOnly initializes just the database service without Prime API
// Useful for read-only operations like the run history report
func InitializeDatabaseOnly(ctx context.Context, cfg *models.Config) (*database.Service, error) {
	dbService, err := database.NewService(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	return dbService, nil
}

func (cs *Services) Close() {
	if cs.Store != nil {
		cs.Store.Close()
	}
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stderr: invalid argument")
}
