package resolver

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"prime-deposit-addresses-go/internal/common"
	"prime-deposit-addresses-go/internal/models"
	"prime-deposit-addresses-go/internal/prime"
	"prime-deposit-addresses-go/internal/store"

	"go.uber.org/zap"
)

// Run modes recorded in the run history
const (
	ModePreferred  = "preferred"
	ModeAllWallets = "all-wallets"
)

// WalletSource is the read side of the Prime wallet client
type WalletSource interface {
	ListAllWallets(ctx context.Context) ([]models.Wallet, error)
	GetDepositInstruction(ctx context.Context, walletId string) (*models.DepositInstruction, error)
}

// ResolverConfig contains configuration for Resolver
type ResolverConfig struct {
	Client       WalletSource
	Store        store.AddressStore
	AddressDelay time.Duration
	AllWallets   bool
}

// Resolver maps application assets to Prime deposit addresses
type Resolver struct {
	client       WalletSource
	store        store.AddressStore
	addressDelay time.Duration
	allWallets   bool
}

// Report is the outcome of one resolution run
type Report struct {
	RunId   string
	Mode    string
	Results []models.AddressResult
	Summary Summary
}

func NewResolver(cfg ResolverConfig) *Resolver {
	return &Resolver{
		client:       cfg.Client,
		store:        cfg.Store,
		addressDelay: cfg.AddressDelay,
		allWallets:   cfg.AllWallets,
	}
}

func (r *Resolver) mode() string {
	if r.allWallets {
		return ModeAllWallets
	}
	return ModePreferred
}

// Resolve lists the portfolio's wallets once and looks up a deposit address
// for every asset, in symbol order. A failed lookup is recorded as an error
// result and does not stop the run; listing failures and cancellation do.
func (r *Resolver) Resolve(ctx context.Context, assets []common.AssetConfig) (*Report, error) {
	if r.client == nil {
		return nil, fmt.Errorf("%w: resolver has no wallet client", prime.ErrConfiguration)
	}

	sorted := make([]common.AssetConfig, len(assets))
	copy(sorted, assets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Symbol < sorted[j].Symbol
	})

	zap.L().Info("Listing Prime wallets")
	wallets, err := r.client.ListAllWallets(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to list wallets: %w", err)
	}

	directory := prime.NewWalletDirectory(wallets)
	zap.L().Info("Wallets indexed",
		zap.Int("wallets", directory.WalletCount()),
		zap.Int("symbols", directory.Len()),
		zap.Int("assets", len(sorted)),
		zap.String("mode", r.mode()))

	report := &Report{Mode: r.mode()}
	if r.store != nil {
		run, err := r.store.CreateRun(ctx, report.Mode)
		if err != nil {
			return nil, fmt.Errorf("unable to record run: %w", err)
		}
		report.RunId = run.Id
	}

	lookups := 0
	for i, asset := range sorted {
		zap.L().Debug("Processing asset",
			zap.Int("index", i+1),
			zap.Int("total", len(sorted)),
			zap.String("symbol", asset.Symbol),
			zap.String("network", asset.Network))

		symbolWallets := directory.Wallets(asset.Symbol)
		if len(symbolWallets) == 0 {
			report.Results = append(report.Results, unresolvedResult(asset))
			continue
		}

		targets := symbolWallets
		if !r.allWallets {
			preferred, err := prime.SelectPreferredWallet(symbolWallets)
			if err != nil {
				return nil, err
			}
			targets = []models.Wallet{preferred}
		}

		for _, wallet := range targets {
			if lookups > 0 {
				if err := sleepContext(ctx, r.addressDelay); err != nil {
					return nil, err
				}
			}
			lookups++

			result, err := r.lookup(ctx, asset, wallet)
			if err != nil {
				return nil, err
			}
			if !r.allWallets && len(symbolWallets) > 1 {
				result.Note = fmt.Sprintf("%d wallets available, selected %s", len(symbolWallets), wallet.Name)
			}
			report.Results = append(report.Results, result)
		}
	}

	report.Summary = Summarize(report.Results)

	if r.store != nil {
		if err := r.persist(ctx, report); err != nil {
			return nil, err
		}
	}

	zap.L().Info("Address resolution completed",
		zap.Int("found", report.Summary.Found),
		zap.Int("fallback", report.Summary.Fallback),
		zap.Int("missing", report.Summary.Missing),
		zap.Int("errors", report.Summary.Errors),
		zap.String("coverage", report.Summary.CoveragePercent.StringFixed(1)))
	return report, nil
}

// lookup resolves one wallet. Only cancellation is returned as an error;
// every other failure becomes an error result.
func (r *Resolver) lookup(ctx context.Context, asset common.AssetConfig, wallet models.Wallet) (models.AddressResult, error) {
	result := models.AddressResult{
		Symbol:     asset.Symbol,
		Network:    asset.Network,
		WalletId:   wallet.Id,
		WalletName: wallet.Name,
		WalletTier: prime.ClassifyWallet(wallet),
	}

	instruction, err := r.client.GetDepositInstruction(ctx, wallet.Id)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return result, err
		}

		zap.L().Error("Failed to get deposit address",
			zap.String("symbol", asset.Symbol),
			zap.String("wallet_id", wallet.Id),
			zap.String("wallet_name", wallet.Name),
			zap.String("kind", prime.Kind(err)),
			zap.Bool("retryable", prime.IsRetryable(err)),
			zap.Error(err))

		result.Status = models.StatusError
		result.Error = err.Error()
		return result, nil
	}

	result.Status = models.StatusFound
	result.Address = instruction.Address
	result.Memo = instruction.Memo
	return result, nil
}

func unresolvedResult(asset common.AssetConfig) models.AddressResult {
	if asset.FallbackAddress != "" {
		zap.L().Warn("No Prime wallet, using fallback address", zap.String("symbol", asset.Symbol))
		return models.AddressResult{
			Symbol:  asset.Symbol,
			Network: asset.Network,
			Status:  models.StatusFallback,
			Address: asset.FallbackAddress,
			Note:    "no Prime wallet, configured fallback address",
		}
	}

	zap.L().Warn("No Prime wallet for asset", zap.String("symbol", asset.Symbol))
	return models.AddressResult{
		Symbol:  asset.Symbol,
		Network: asset.Network,
		Status:  models.StatusMissing,
	}
}

func (r *Resolver) persist(ctx context.Context, report *Report) error {
	for _, result := range report.Results {
		if _, err := r.store.StoreResult(ctx, report.RunId, result); err != nil {
			return fmt.Errorf("unable to store result for %s: %w", result.Symbol, err)
		}
	}

	totals := store.RunTotals{
		Total:   report.Summary.Total,
		Found:   report.Summary.Found + report.Summary.Fallback,
		Missing: report.Summary.Missing,
		Errors:  report.Summary.Errors,
	}
	if err := r.store.CompleteRun(ctx, report.RunId, totals); err != nil {
		return fmt.Errorf("unable to complete run: %w", err)
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
