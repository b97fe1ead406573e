package prime

import (
	"errors"
	"testing"

	"prime-deposit-addresses-go/internal/models"
)

func TestSelectPreferredWallet(t *testing.T) {
	trading := models.Wallet{Id: "1", Name: "Trading", Symbol: "ETH"}
	balance := models.Wallet{Id: "2", Name: "Trading Balance – ETH", Symbol: "ETH"}
	other := models.Wallet{Id: "3", Name: "Other Wallet", Symbol: "ETH"}
	otherTwo := models.Wallet{Id: "4", Name: "Treasury", Symbol: "ETH"}
	tradingDesk := models.Wallet{Id: "5", Name: "Trading Desk", Symbol: "ETH"}

	tests := []struct {
		name    string
		wallets []models.Wallet
		want    string
	}{
		{"exact beats substring", []models.Wallet{balance, trading}, "1"},
		{"exact beats substring reversed", []models.Wallet{trading, balance}, "1"},
		{"substring beats fallback", []models.Wallet{other, balance}, "2"},
		{"sole entry", []models.Wallet{other}, "3"},
		{"first in input order", []models.Wallet{otherTwo, other}, "4"},
		{"prefix is not exact", []models.Wallet{tradingDesk, other}, "5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectPreferredWallet(tt.wallets)
			if err != nil {
				t.Fatalf("SelectPreferredWallet failed: %v", err)
			}
			if got.Id != tt.want {
				t.Errorf("selected %q (%s), want %q", got.Id, got.Name, tt.want)
			}
		})
	}
}

func TestSelectPreferredWallet_Deterministic(t *testing.T) {
	wallets := []models.Wallet{
		{Id: "a", Name: "Trading Balance 1"},
		{Id: "b", Name: "Trading Balance 2"},
	}
	for i := 0; i < 10; i++ {
		got, err := SelectPreferredWallet(wallets)
		if err != nil {
			t.Fatalf("SelectPreferredWallet failed: %v", err)
		}
		if got.Id != "a" {
			t.Fatalf("run %d selected %q, want a", i, got.Id)
		}
	}
}

func TestSelectPreferredWallet_Empty(t *testing.T) {
	_, err := SelectPreferredWallet(nil)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestWalletDirectory(t *testing.T) {
	wallets := []models.Wallet{
		{Id: "1", Name: "Vault", Symbol: "BTC"},
		{Id: "2", Name: "Trading", Symbol: "ETH"},
		{Id: "3", Name: "Orphan"},
		{Id: "4", Name: "Trading Balance", Symbol: "BTC"},
	}

	d := NewWalletDirectory(wallets)
	if d.Len() != 2 {
		t.Fatalf("expected 2 symbols, got %d", d.Len())
	}
	if d.WalletCount() != 3 {
		t.Errorf("expected 3 indexed wallets, got %d", d.WalletCount())
	}

	symbols := d.Symbols()
	if len(symbols) != 2 || symbols[0] != "BTC" || symbols[1] != "ETH" {
		t.Errorf("unexpected symbols %v", symbols)
	}

	btc := d.Wallets("BTC")
	if len(btc) != 2 || btc[0].Id != "1" || btc[1].Id != "4" {
		t.Errorf("BTC wallets out of listing order: %+v", btc)
	}

	preferred, err := d.Preferred("BTC")
	if err != nil {
		t.Fatalf("Preferred failed: %v", err)
	}
	if preferred.Id != "4" {
		t.Errorf("expected Trading Balance wallet, got %q", preferred.Id)
	}

	if _, err := d.Preferred("SOL"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown symbol, got %v", err)
	}
}

func TestClassifyWallet(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Trading", WalletTierTrading},
		{"ETH Trading Balance", WalletTierTradingBalance},
		{"trading", WalletTierOther},
		{"Vault", WalletTierOther},
	}
	for _, tt := range tests {
		if got := ClassifyWallet(models.Wallet{Name: tt.name}); got != tt.want {
			t.Errorf("ClassifyWallet(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestFindWallet(t *testing.T) {
	wallets := []models.Wallet{
		{Id: "1", Name: "Trading", Symbol: "ETH"},
		{Id: "2", Name: "Trading", Symbol: "SOL"},
	}
	w, ok := FindWallet(wallets, "SOL", "Trading")
	if !ok || w.Id != "2" {
		t.Errorf("expected wallet 2, got %+v (found=%v)", w, ok)
	}
	if _, ok := FindWallet(wallets, "SOL", "trading"); ok {
		t.Error("name match must be exact")
	}
	if w, ok := FindWallet(wallets, " sol", "Trading"); !ok || w.Id != "2" {
		t.Errorf("symbol match must ignore case, got %+v (found=%v)", w, ok)
	}
}

func TestWalletDirectory_SymbolCase(t *testing.T) {
	d := NewWalletDirectory([]models.Wallet{
		{Id: "1", Name: "Trading", Symbol: "eth"},
		{Id: "2", Name: "Vault", Symbol: "ETH"},
	})
	if d.Len() != 1 {
		t.Fatalf("expected one symbol, got %v", d.Symbols())
	}
	if got := d.Wallets("Eth"); len(got) != 2 || got[0].Id != "1" {
		t.Errorf("unexpected wallets %+v", got)
	}
	if got := NormalizeSymbol(" usdc "); got != "USDC" {
		t.Errorf("NormalizeSymbol = %q", got)
	}
}

func TestCountByType(t *testing.T) {
	counts := CountByType([]models.Wallet{
		{Type: "TRADING"}, {Type: "vault"}, {Type: "TRADING"}, {},
	})
	if counts["TRADING"] != 2 || counts["VAULT"] != 1 || counts["UNKNOWN"] != 1 {
		t.Errorf("unexpected counts %v", counts)
	}
}
