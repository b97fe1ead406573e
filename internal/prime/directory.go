package prime

import (
	"fmt"
	"sort"
	"strings"

	"prime-deposit-addresses-go/internal/models"
)

// Wallet tiers, in selection priority order
const (
	WalletTierTrading        = "Trading"
	WalletTierTradingBalance = "Trading Balance"
	WalletTierOther          = "Other"
)

// NormalizeSymbol returns the canonical form of an asset symbol. Symbols are
// matched case-insensitively everywhere through this form.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// WalletDirectory groups wallets by normalized asset symbol. Wallets under a
// symbol keep the order in which they were listed.
type WalletDirectory struct {
	bySymbol map[string][]models.Wallet
	count    int
}

// NewWalletDirectory builds a directory from a full wallet listing. Wallets
// without a symbol are skipped.
func NewWalletDirectory(wallets []models.Wallet) *WalletDirectory {
	d := &WalletDirectory{bySymbol: make(map[string][]models.Wallet)}
	for _, w := range wallets {
		symbol := NormalizeSymbol(w.Symbol)
		if symbol == "" {
			continue
		}
		d.bySymbol[symbol] = append(d.bySymbol[symbol], w)
		d.count++
	}
	return d
}

// Wallets returns the wallets listed for symbol, nil when there are none
func (d *WalletDirectory) Wallets(symbol string) []models.Wallet {
	return d.bySymbol[NormalizeSymbol(symbol)]
}

// Symbols returns every symbol in the directory, sorted
func (d *WalletDirectory) Symbols() []string {
	symbols := make([]string, 0, len(d.bySymbol))
	for symbol := range d.bySymbol {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// Len returns the number of distinct symbols
func (d *WalletDirectory) Len() int {
	return len(d.bySymbol)
}

// WalletCount returns the number of wallets indexed
func (d *WalletDirectory) WalletCount() int {
	return d.count
}

// Preferred applies SelectPreferredWallet to the wallets of symbol
func (d *WalletDirectory) Preferred(symbol string) (models.Wallet, error) {
	wallets := d.Wallets(symbol)
	if len(wallets) == 0 {
		return models.Wallet{}, fmt.Errorf("no wallet for %s: %w", symbol, ErrNotFound)
	}
	return SelectPreferredWallet(wallets)
}

// ClassifyWallet returns the selection tier a wallet's display name puts it in
func ClassifyWallet(w models.Wallet) string {
	switch {
	case w.Name == WalletTierTrading:
		return WalletTierTrading
	case strings.Contains(w.Name, WalletTierTradingBalance):
		return WalletTierTradingBalance
	default:
		return WalletTierOther
	}
}

// SelectPreferredWallet picks, among wallets of one symbol, the wallet named
// exactly "Trading", else the first whose name contains "Trading Balance",
// else the first wallet.
func SelectPreferredWallet(wallets []models.Wallet) (models.Wallet, error) {
	if len(wallets) == 0 {
		return models.Wallet{}, fmt.Errorf("%w: no wallets to select from", ErrInvalidArgument)
	}

	for _, w := range wallets {
		if ClassifyWallet(w) == WalletTierTrading {
			return w, nil
		}
	}
	for _, w := range wallets {
		if ClassifyWallet(w) == WalletTierTradingBalance {
			return w, nil
		}
	}
	return wallets[0], nil
}

// FindWallet returns the first wallet of symbol whose name matches exactly
func FindWallet(wallets []models.Wallet, symbol, name string) (models.Wallet, bool) {
	symbol = NormalizeSymbol(symbol)
	for _, w := range wallets {
		if NormalizeSymbol(w.Symbol) == symbol && w.Name == name {
			return w, true
		}
	}
	return models.Wallet{}, false
}

// CountByType counts wallets per category; wallets without a type count as UNKNOWN
func CountByType(wallets []models.Wallet) map[string]int {
	counts := make(map[string]int)
	for _, w := range wallets {
		walletType := strings.ToUpper(w.Type)
		if walletType == "" {
			walletType = "UNKNOWN"
		}
		counts[walletType]++
	}
	return counts
}
