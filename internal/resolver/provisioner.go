package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"prime-deposit-addresses-go/internal/models"
	"prime-deposit-addresses-go/internal/prime"

	"go.uber.org/zap"
)

// Provision outcomes
const (
	ProvisionCreated  = "created"
	ProvisionExisting = "existing"
	ProvisionPlanned  = "planned"
	ProvisionFailed   = "failed"
)

// WalletProvisioner is the wallet client surface the provisioner needs
type WalletProvisioner interface {
	WalletSource
	CreateTradingWallet(ctx context.Context, symbol, name string) (*models.CreatedWallet, error)
}

// ProvisionerConfig contains configuration for Provisioner
type ProvisionerConfig struct {
	Client       WalletProvisioner
	WalletName   string
	DryRun       bool
	Wait         bool
	WaitTimeout  time.Duration
	PollInterval time.Duration
}

// Provisioner creates the trading wallets that are missing for a set of symbols
type Provisioner struct {
	client       WalletProvisioner
	walletName   string
	dryRun       bool
	wait         bool
	waitTimeout  time.Duration
	pollInterval time.Duration
}

// ProvisionResult describes what happened for one symbol
type ProvisionResult struct {
	Symbol      string
	Status      string
	WalletId    string
	ActivityId  string
	Instruction *models.DepositInstruction
	Error       string
}

func NewProvisioner(cfg ProvisionerConfig) *Provisioner {
	name := strings.TrimSpace(cfg.WalletName)
	if name == "" {
		name = prime.WalletTierTrading
	}
	return &Provisioner{
		client:       cfg.Client,
		walletName:   name,
		dryRun:       cfg.DryRun,
		wait:         cfg.Wait,
		waitTimeout:  cfg.WaitTimeout,
		pollInterval: cfg.PollInterval,
	}
}

// Provision ensures a wallet named after the configured name exists for every
// symbol. Existing wallets are detected by an exact name and symbol match
// before anything is created.
func (p *Provisioner) Provision(ctx context.Context, symbols []string) ([]ProvisionResult, error) {
	if p.client == nil {
		return nil, fmt.Errorf("%w: provisioner has no wallet client", prime.ErrConfiguration)
	}

	wallets, err := p.client.ListAllWallets(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to list wallets: %w", err)
	}

	var results []ProvisionResult
	seen := make(map[string]bool)
	for _, symbol := range symbols {
		symbol = prime.NormalizeSymbol(symbol)
		if symbol == "" || seen[symbol] {
			continue
		}
		seen[symbol] = true

		result, err := p.provisionSymbol(ctx, symbol, wallets)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (p *Provisioner) provisionSymbol(ctx context.Context, symbol string, wallets []models.Wallet) (ProvisionResult, error) {
	result := ProvisionResult{Symbol: symbol}

	if existing, ok := prime.FindWallet(wallets, symbol, p.walletName); ok {
		zap.L().Info("Wallet already exists",
			zap.String("symbol", symbol),
			zap.String("wallet_id", existing.Id))
		result.Status = ProvisionExisting
		result.WalletId = existing.Id
		return result, nil
	}

	if p.dryRun {
		zap.L().Info("Dry run: would create trading wallet",
			zap.String("symbol", symbol),
			zap.String("name", p.walletName))
		result.Status = ProvisionPlanned
		return result, nil
	}

	created, err := p.client.CreateTradingWallet(ctx, symbol, p.walletName)
	switch {
	case err == nil:
		result.Status = ProvisionCreated
		result.WalletId = created.Id
		result.ActivityId = created.ActivityId
	case errors.Is(err, prime.ErrAlreadyExists):
		walletId, findErr := p.locate(ctx, symbol)
		if findErr != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			zap.L().Error("Failed to locate existing trading wallet",
				zap.String("symbol", symbol),
				zap.String("kind", prime.Kind(findErr)),
				zap.Error(findErr))
			result.Status = ProvisionFailed
			result.Error = findErr.Error()
			return result, nil
		}
		result.Status = ProvisionExisting
		result.WalletId = walletId
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return result, err
	default:
		zap.L().Error("Failed to create trading wallet",
			zap.String("symbol", symbol),
			zap.String("kind", prime.Kind(err)),
			zap.Error(err))
		result.Status = ProvisionFailed
		result.Error = err.Error()
		return result, nil
	}

	if p.wait && result.WalletId != "" {
		instruction, err := WaitForDepositInstruction(ctx, p.client, result.WalletId, p.waitTimeout, p.pollInterval)
		if err != nil {
			if ctx.Err() != nil {
				return result, err
			}
			zap.L().Warn("Wallet not active yet",
				zap.String("symbol", symbol),
				zap.String("wallet_id", result.WalletId),
				zap.Error(err))
			result.Error = err.Error()
			return result, nil
		}
		result.Instruction = instruction
	}
	return result, nil
}

// locate re-lists wallets after Prime reported a conflict
func (p *Provisioner) locate(ctx context.Context, symbol string) (string, error) {
	wallets, err := p.client.ListAllWallets(ctx)
	if err != nil {
		return "", fmt.Errorf("unable to re-list wallets: %w", err)
	}
	existing, ok := prime.FindWallet(wallets, symbol, p.walletName)
	if !ok {
		return "", fmt.Errorf("%s wallet %q reported as existing but not listed: %w", symbol, p.walletName, prime.ErrNotFound)
	}
	return existing.Id, nil
}

// WaitForDepositInstruction polls a wallet's deposit instruction until it is
// available, a non-retryable error occurs, or timeout elapses.
func WaitForDepositInstruction(ctx context.Context, client WalletSource, walletId string, timeout, interval time.Duration) (*models.DepositInstruction, error) {
	if timeout <= 0 {
		return nil, fmt.Errorf("%w: wait timeout must be positive", prime.ErrInvalidArgument)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("%w: poll interval must be positive", prime.ErrInvalidArgument)
	}

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var lastErr error = context.DeadlineExceeded
	attempt := 0
	for {
		attempt++
		instruction, err := client.GetDepositInstruction(waitCtx, walletId)
		if err == nil {
			zap.L().Info("Deposit instruction available",
				zap.String("wallet_id", walletId),
				zap.Int("attempts", attempt))
			return instruction, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if waitCtx.Err() == nil {
			if !prime.IsRetryable(err) {
				return nil, err
			}
			lastErr = err
		}

		zap.L().Debug("Deposit instruction not ready",
			zap.String("wallet_id", walletId),
			zap.Int("attempt", attempt),
			zap.String("kind", prime.Kind(err)))

		if sleepErr := sleepContext(waitCtx, interval); sleepErr != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("wallet %s not active after %v: %w", walletId, timeout, lastErr)
		}
	}
}
