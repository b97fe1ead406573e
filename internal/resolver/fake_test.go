package resolver

import (
	"context"
	"sync"

	"prime-deposit-addresses-go/internal/models"
)

type fakeClient struct {
	mu sync.Mutex

	wallets      []models.Wallet
	listErr      error
	instructions map[string]*models.DepositInstruction

	// errs are returned in order per wallet id; the last one repeats
	errs map[string][]error

	createErr   error
	createdId   string
	afterCreate []models.Wallet
	relistErr   error
	onRelist    func()

	listCalls    int
	lookupCalls  map[string]int
	createdNames []string
}

func newFakeClient(wallets ...models.Wallet) *fakeClient {
	return &fakeClient{
		wallets:      wallets,
		instructions: make(map[string]*models.DepositInstruction),
		errs:         make(map[string][]error),
		lookupCalls:  make(map[string]int),
	}
}

func (f *fakeClient) ListAllWallets(ctx context.Context) ([]models.Wallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.listCalls > 1 {
		if f.onRelist != nil {
			f.onRelist()
			return nil, ctx.Err()
		}
		if f.relistErr != nil {
			return nil, f.relistErr
		}
	}
	if f.listCalls > 1 && f.afterCreate != nil {
		return f.afterCreate, nil
	}
	return f.wallets, nil
}

func (f *fakeClient) GetDepositInstruction(ctx context.Context, walletId string) (*models.DepositInstruction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	call := f.lookupCalls[walletId]
	f.lookupCalls[walletId]++

	if errs := f.errs[walletId]; len(errs) > 0 {
		if call < len(errs) {
			if errs[call] != nil {
				return nil, errs[call]
			}
		} else if last := errs[len(errs)-1]; last != nil {
			return nil, last
		}
	}
	if instruction, ok := f.instructions[walletId]; ok {
		return instruction, nil
	}
	return &models.DepositInstruction{Address: "addr-" + walletId}, nil
}

func (f *fakeClient) CreateTradingWallet(ctx context.Context, symbol, name string) (*models.CreatedWallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdNames = append(f.createdNames, symbol+"/"+name)
	if f.createErr != nil {
		return nil, f.createErr
	}
	id := f.createdId
	if id == "" {
		id = "new-" + symbol
	}
	return &models.CreatedWallet{Id: id, ActivityId: "act-" + symbol, Name: name, Symbol: symbol, Type: "TRADING"}, nil
}

func strPtr(s string) *string {
	return &s
}
