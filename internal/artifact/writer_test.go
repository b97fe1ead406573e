package artifact

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"prime-deposit-addresses-go/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func sampleResults() []models.AddressResult {
	return []models.AddressResult{
		{Symbol: "DOGE", Network: "DOGECOIN", Status: models.StatusMissing},
		{Symbol: "ETH", Network: "ETHEREUM", Status: models.StatusFound, WalletId: "w1", WalletName: "Trading", Address: "0xabc"},
		{Symbol: "ETH", Network: "ETHEREUM", Status: models.StatusFound, WalletId: "w2", WalletName: "Vault", Address: "0xdef"},
		{Symbol: "SOL", Network: "SOLANA", Status: models.StatusError, WalletId: "w3", Error: "boom"},
		{Symbol: "SUI", Network: "SUI", Status: models.StatusFallback, Address: "0xfb"},
		{Symbol: "XLM", Network: "STELLAR", Status: models.StatusFound, WalletId: "w4", Address: "GXLM", Memo: strPtr("42")},
	}
}

var generatedAt = time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

func TestFileName(t *testing.T) {
	assert.Equal(t, "prime_deposit_addresses_20250304_050607.json", FileName(generatedAt, "json"))
	assert.Equal(t, "prime_deposit_addresses_20250304_050607.ts", FileName(generatedAt, "ts"))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResults()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 6)

	assert.Equal(t, "DOGE", decoded[0]["symbol"])
	assert.Nil(t, decoded[0]["memo"], "memo is always present, null when absent")
	assert.Contains(t, decoded[0], "memo")
	assert.Equal(t, "42", decoded[5]["memo"])
	assert.Equal(t, "boom", decoded[3]["error"])
}

func TestWriteJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteTypeScript(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTypeScript(&buf, sampleResults(), generatedAt))
	out := buf.String()

	assert.Contains(t, out, "// Generated: 2025-03-04T05:06:07Z")
	assert.Contains(t, out, `  "ETH": { address: "0xabc" },`)
	assert.NotContains(t, out, "0xdef", "only the first address per symbol is exported")
	assert.Contains(t, out, `  "XLM": { address: "GXLM", memo: "42" },`)
	assert.Contains(t, out, `  "SUI": { address: "0xfb" }, // fallback`)
	assert.NotContains(t, out, `"SOL": {`)
	assert.Contains(t, out, "export const MISSING_ASSETS: string[] = [\n  \"DOGE\", // DOGECOIN\n]")
	assert.Equal(t, 1, strings.Count(out, "export const PRIME_DEPOSIT_ADDRESSES"))
}

func TestWriteTypeScript_EscapesValues(t *testing.T) {
	var buf bytes.Buffer
	results := []models.AddressResult{
		{Symbol: "X", Status: models.StatusFound, Address: `a"b\c`},
	}
	require.NoError(t, WriteTypeScript(&buf, results, generatedAt))
	assert.Contains(t, buf.String(), `address: "a\"b\\c"`)
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	paths, err := WriteFiles(dir, sampleResults(), generatedAt)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "prime_deposit_addresses_20250304_050607.json"), paths.JSON)
	assert.Equal(t, filepath.Join(dir, "prime_deposit_addresses_20250304_050607.ts"), paths.TypeScript)

	data, err := os.ReadFile(paths.JSON)
	require.NoError(t, err)
	var decoded []models.AddressResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded, 6)

	ts, err := os.ReadFile(paths.TypeScript)
	require.NoError(t, err)
	assert.Contains(t, string(ts), "PRIME_DEPOSIT_ADDRESSES")
}
