package resolver

import (
	"context"
	"fmt"
	"testing"
	"time"

	"prime-deposit-addresses-go/internal/models"
	"prime-deposit-addresses-go/internal/prime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvision_CreatesOnlyMissing(t *testing.T) {
	client := newFakeClient(
		models.Wallet{Id: "eth-trading", Name: "Trading", Symbol: "ETH"},
		models.Wallet{Id: "sol-vault", Name: "Vault", Symbol: "SOL"},
	)

	results, err := NewProvisioner(ProvisionerConfig{Client: client}).
		Provision(context.Background(), []string{"eth", "SOL", "sol", " "})
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, ProvisionExisting, results[0].Status)
	assert.Equal(t, "eth-trading", results[0].WalletId)
	assert.Equal(t, ProvisionCreated, results[1].Status)
	assert.Equal(t, "new-SOL", results[1].WalletId)
	assert.Equal(t, "act-SOL", results[1].ActivityId)
	assert.Equal(t, []string{"SOL/Trading"}, client.createdNames)
}

func TestProvision_DryRun(t *testing.T) {
	client := newFakeClient()

	results, err := NewProvisioner(ProvisionerConfig{Client: client, DryRun: true, WalletName: "Ops"}).
		Provision(context.Background(), []string{"ADA"})
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, ProvisionPlanned, results[0].Status)
	assert.Empty(t, client.createdNames)
}

func TestProvision_AlreadyExistsRelists(t *testing.T) {
	client := newFakeClient()
	client.createErr = fmt.Errorf("create: %w", prime.ErrAlreadyExists)
	client.afterCreate = []models.Wallet{{Id: "ada-trading", Name: "Trading", Symbol: "ADA"}}

	results, err := NewProvisioner(ProvisionerConfig{Client: client}).
		Provision(context.Background(), []string{"ADA"})
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, ProvisionExisting, results[0].Status)
	assert.Equal(t, "ada-trading", results[0].WalletId)
	assert.Equal(t, 2, client.listCalls)
}

func TestProvision_AlreadyExistsButNotListedContinues(t *testing.T) {
	client := newFakeClient()
	client.createErr = fmt.Errorf("create: %w", prime.ErrAlreadyExists)

	results, err := NewProvisioner(ProvisionerConfig{Client: client}).
		Provision(context.Background(), []string{"ADA", "ETH", "SOL"})
	require.NoError(t, err)

	require.Len(t, results, 3)
	for _, r := range results {
		assert.Equal(t, ProvisionFailed, r.Status, r.Symbol)
		assert.Contains(t, r.Error, "not listed")
	}
	assert.Equal(t, []string{"ADA/Trading", "ETH/Trading", "SOL/Trading"}, client.createdNames)
}

func TestProvision_RelistFailureContinues(t *testing.T) {
	client := newFakeClient()
	client.createErr = fmt.Errorf("create: %w", prime.ErrAlreadyExists)
	client.relistErr = fmt.Errorf("list: %w", prime.ErrTransient)

	results, err := NewProvisioner(ProvisionerConfig{Client: client}).
		Provision(context.Background(), []string{"ADA", "ETH"})
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, ProvisionFailed, results[0].Status)
	assert.Contains(t, results[0].Error, "re-list")
	assert.Equal(t, ProvisionFailed, results[1].Status)
}

func TestProvision_CancelledStopsBatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := newFakeClient()
	client.createErr = fmt.Errorf("create: %w", prime.ErrAlreadyExists)
	client.onRelist = cancel

	results, err := NewProvisioner(ProvisionerConfig{Client: client}).
		Provision(ctx, []string{"ADA", "ETH"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
	assert.Equal(t, []string{"ADA/Trading"}, client.createdNames)
}

func TestProvision_SymbolCaseMatchesExisting(t *testing.T) {
	client := newFakeClient(models.Wallet{Id: "eth-trading", Name: "Trading", Symbol: "ETH"})

	results, err := NewProvisioner(ProvisionerConfig{Client: client}).
		Provision(context.Background(), []string{" eth "})
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "ETH", results[0].Symbol)
	assert.Equal(t, ProvisionExisting, results[0].Status)
	assert.Empty(t, client.createdNames)
}

func TestProvision_CreateFailureRecorded(t *testing.T) {
	client := newFakeClient()
	client.createErr = fmt.Errorf("create: %w", prime.ErrRemote)

	results, err := NewProvisioner(ProvisionerConfig{Client: client}).
		Provision(context.Background(), []string{"ADA", "DOT"})
	require.NoError(t, err)

	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, ProvisionFailed, r.Status)
		assert.NotEmpty(t, r.Error)
	}
}

func TestProvision_WaitsForActivation(t *testing.T) {
	client := newFakeClient()
	client.errs["new-ADA"] = []error{prime.ErrNotReady, prime.ErrNotReady, nil}

	results, err := NewProvisioner(ProvisionerConfig{
		Client:       client,
		Wait:         true,
		WaitTimeout:  time.Second,
		PollInterval: time.Millisecond,
	}).Provision(context.Background(), []string{"ADA"})
	require.NoError(t, err)

	require.Len(t, results, 1)
	require.NotNil(t, results[0].Instruction)
	assert.Equal(t, "addr-new-ADA", results[0].Instruction.Address)
	assert.Equal(t, 3, client.lookupCalls["new-ADA"])
}

func TestWaitForDepositInstruction_StopsOnPermanentError(t *testing.T) {
	client := newFakeClient()
	client.errs["w"] = []error{prime.ErrNotReady, fmt.Errorf("lookup: %w", prime.ErrAuthentication)}

	_, err := WaitForDepositInstruction(context.Background(), client, "w", time.Second, time.Millisecond)
	assert.ErrorIs(t, err, prime.ErrAuthentication)
	assert.Equal(t, 2, client.lookupCalls["w"])
}

func TestWaitForDepositInstruction_Timeout(t *testing.T) {
	client := newFakeClient()
	client.errs["w"] = []error{prime.ErrNotReady}

	_, err := WaitForDepositInstruction(context.Background(), client, "w", 20*time.Millisecond, 5*time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, prime.ErrNotReady)
	assert.Contains(t, err.Error(), "not active after")
}

func TestWaitForDepositInstruction_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := newFakeClient()
	client.errs["w"] = []error{prime.ErrTransient}

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := WaitForDepositInstruction(ctx, client, "w", time.Minute, time.Millisecond)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWaitForDepositInstruction_InvalidArguments(t *testing.T) {
	client := newFakeClient()
	_, err := WaitForDepositInstruction(context.Background(), client, "w", 0, time.Second)
	assert.ErrorIs(t, err, prime.ErrInvalidArgument)
	_, err = WaitForDepositInstruction(context.Background(), client, "w", time.Second, 0)
	assert.ErrorIs(t, err, prime.ErrInvalidArgument)
}
