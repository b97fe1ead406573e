package artifact

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"prime-deposit-addresses-go/internal/models"

	"go.uber.org/zap"
)

const (
	filePrefix      = "prime_deposit_addresses"
	timestampLayout = "20060102_150405"
)

// Paths are the files written for one run
type Paths struct {
	JSON       string
	TypeScript string
}

// FileName returns the timestamped artifact name for ext, e.g.
// prime_deposit_addresses_20250101_120000.json
func FileName(generatedAt time.Time, ext string) string {
	return fmt.Sprintf("%s_%s.%s", filePrefix, generatedAt.Format(timestampLayout), ext)
}

// WriteJSON writes the results as an indented JSON array
func WriteJSON(w io.Writer, results []models.AddressResult) error {
	if results == nil {
		results = []models.AddressResult{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		return fmt.Errorf("unable to encode results: %w", err)
	}
	return nil
}

// WriteTypeScript writes a module exporting the deposit address table keyed
// by symbol and the list of symbols that still need a wallet. When several
// results share a symbol the first one with an address is exported.
func WriteTypeScript(w io.Writer, results []models.AddressResult, generatedAt time.Time) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "// Coinbase Prime Deposit Addresses")
	fmt.Fprintf(bw, "// Generated: %s\n\n", generatedAt.Format(time.RFC3339))

	fmt.Fprintln(bw, "export const PRIME_DEPOSIT_ADDRESSES: Record<string, { address: string; memo?: string }> = {")
	exported := make(map[string]bool)
	for _, r := range results {
		if !r.HasAddress() || exported[r.Symbol] {
			continue
		}
		exported[r.Symbol] = true

		fmt.Fprintf(bw, "  %s: { address: %s", quote(r.Symbol), quote(r.Address))
		if r.Memo != nil {
			fmt.Fprintf(bw, ", memo: %s", quote(*r.Memo))
		}
		fmt.Fprint(bw, " },")
		if r.Status == models.StatusFallback {
			fmt.Fprint(bw, " // fallback")
		}
		fmt.Fprintln(bw)
	}
	fmt.Fprintln(bw, "}")
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "export const MISSING_ASSETS: string[] = [")
	missing := make(map[string]bool)
	for _, r := range results {
		if r.Status != models.StatusMissing || missing[r.Symbol] {
			continue
		}
		missing[r.Symbol] = true
		fmt.Fprintf(bw, "  %s, // %s\n", quote(r.Symbol), r.Network)
	}
	fmt.Fprintln(bw, "]")

	return bw.Flush()
}

// quote renders s as a string literal valid in both JSON and TypeScript
func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// WriteFiles writes the JSON and TypeScript artifacts into dir
func WriteFiles(dir string, results []models.AddressResult, generatedAt time.Time) (*Paths, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create output directory %s: %w", dir, err)
	}

	paths := &Paths{
		JSON:       filepath.Join(dir, FileName(generatedAt, "json")),
		TypeScript: filepath.Join(dir, FileName(generatedAt, "ts")),
	}

	if err := writeFile(paths.JSON, func(w io.Writer) error {
		return WriteJSON(w, results)
	}); err != nil {
		return nil, err
	}
	if err := writeFile(paths.TypeScript, func(w io.Writer) error {
		return WriteTypeScript(w, results, generatedAt)
	}); err != nil {
		return nil, err
	}

	zap.L().Info("Artifacts written",
		zap.String("json", paths.JSON),
		zap.String("typescript", paths.TypeScript),
		zap.Int("results", len(results)))
	return paths, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("unable to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("unable to close %s: %w", path, err)
	}
	return nil
}
