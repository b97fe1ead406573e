package store

import (
	"context"
	"errors"

	"prime-deposit-addresses-go/internal/models"
)

// Sentinel errors shared across all backend implementations.
var (
	ErrRunNotFound  = errors.New("generation run not found")
	ErrRunCompleted = errors.New("generation run already completed")
)

// RunTotals are the counters recorded when a generation run completes.
type RunTotals struct {
	Total   int
	Found   int
	Missing int
	Errors  int
}

// AddressStore persists generation runs and the address results they produced.
type AddressStore interface {
	// --- Runs ---
	CreateRun(ctx context.Context, mode string) (*models.GenerationRun, error)
	CompleteRun(ctx context.Context, runId string, totals RunTotals) error
	GetLatestRun(ctx context.Context) (*models.GenerationRun, error)

	// --- Results ---
	StoreResult(ctx context.Context, runId string, result models.AddressResult) (*models.StoredAddress, error)
	GetRunResults(ctx context.Context, runId string) ([]models.StoredAddress, error)

	// --- Lifecycle ---
	Close()
}
