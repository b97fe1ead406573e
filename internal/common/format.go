package common

import (
	"fmt"
	"strings"

	"prime-deposit-addresses-go/internal/models"
)

const (
	DefaultWidth = 80
	WideWidth    = 100
)

// PrintHeader prints a title framed by "=" rules
func PrintHeader(title string, width int) {
	rule := strings.Repeat("=", width)
	fmt.Println("\n" + rule)
	fmt.Println(title)
	fmt.Println(rule)
}

// PrintFooter prints a closing message framed by "=" rules
func PrintFooter(message string, width int) {
	rule := strings.Repeat("=", width)
	fmt.Println("\n" + rule)
	fmt.Println(message)
	fmt.Println(rule + "\n")
}

// BoxPrefix returns the box-drawing prefix for a list item
func BoxPrefix(isLast bool) string {
	if isLast {
		return "└  "
	}
	return "│  "
}

// BoxDetailPrefix returns the prefix for detail lines under a list item
func BoxDetailPrefix(isLast bool) string {
	if isLast {
		return "   "
	}
	return "│  "
}

// StatusIcon returns the marker shown next to an address result
func StatusIcon(status string) string {
	switch status {
	case models.StatusFound:
		return "✅"
	case models.StatusFallback:
		return "🔄"
	case models.StatusMissing:
		return "⚠️ "
	default:
		return "❌"
	}
}

// PrintAddressResults prints one entry per result with its address and memo
func PrintAddressResults(results []models.AddressResult) {
	for i, r := range results {
		isLast := i == len(results)-1
		fmt.Printf("%s%s %-10s → %-18s %s\n", BoxPrefix(isLast), StatusIcon(r.Status), r.Symbol, r.Network, describeResult(r))

		detail := BoxDetailPrefix(isLast)
		if r.WalletName != "" {
			if r.WalletTier != "" {
				fmt.Printf("%s   Wallet: %s (%s) [%s]\n", detail, r.WalletName, r.WalletId, r.WalletTier)
			} else {
				fmt.Printf("%s   Wallet: %s (%s)\n", detail, r.WalletName, r.WalletId)
			}
		}
		if r.Memo != nil {
			fmt.Printf("%s   Memo:   %s\n", detail, *r.Memo)
		}
		if r.Note != "" {
			fmt.Printf("%s   Note:   %s\n", detail, r.Note)
		}
	}
}

func describeResult(r models.AddressResult) string {
	switch {
	case r.Address != "":
		return r.Address
	case r.Error != "":
		return "error: " + r.Error
	default:
		return "(no wallet)"
	}
}
