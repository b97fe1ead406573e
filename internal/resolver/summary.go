package resolver

import (
	"prime-deposit-addresses-go/internal/models"

	"github.com/shopspring/decimal"
)

// Summary counts results by status. CoveragePercent is the share of results
// carrying a usable address, found or fallback.
type Summary struct {
	Total           int
	Found           int
	Fallback        int
	Missing         int
	Errors          int
	CoveragePercent decimal.Decimal
}

func Summarize(results []models.AddressResult) Summary {
	s := Summary{Total: len(results), CoveragePercent: decimal.Zero}
	for _, r := range results {
		switch r.Status {
		case models.StatusFound:
			s.Found++
		case models.StatusFallback:
			s.Fallback++
		case models.StatusMissing:
			s.Missing++
		default:
			s.Errors++
		}
	}

	if s.Total > 0 {
		s.CoveragePercent = decimal.NewFromInt(int64(s.Found + s.Fallback)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(s.Total))).
			Round(1)
	}
	return s
}

// MissingSymbols lists the symbols with no wallet and no fallback, in result order
func MissingSymbols(results []models.AddressResult) []string {
	var symbols []string
	seen := make(map[string]bool)
	for _, r := range results {
		if r.Status == models.StatusMissing && !seen[r.Symbol] {
			seen[r.Symbol] = true
			symbols = append(symbols, r.Symbol)
		}
	}
	return symbols
}
