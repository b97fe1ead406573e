package common

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"prime-deposit-addresses-go/internal/prime"

	"gopkg.in/yaml.v2"
)

// AssetConfig maps an application asset symbol to the chain label the
// front end routes it on. FallbackAddress is used when Prime has no wallet.
type AssetConfig struct {
	Symbol          string `yaml:"symbol"`
	Network         string `yaml:"network"`
	FallbackAddress string `yaml:"fallback_address,omitempty"`
}

type AssetsConfig struct {
	Assets []AssetConfig `yaml:"assets"`
}

func LoadAssetConfig(assetsFile string) ([]AssetConfig, error) {
	var assetsPath string
	if filepath.IsAbs(assetsFile) {
		assetsPath = assetsFile
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		assetsPath = filepath.Join(wd, assetsFile)
	}

	data, err := os.ReadFile(assetsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", assetsFile, err)
	}

	return ParseAssetConfig(data)
}

// ParseAssetConfig decodes and validates an assets YAML document. Assets are
// returned sorted by symbol.
func ParseAssetConfig(data []byte) ([]AssetConfig, error) {
	var config AssetsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unable to parse assets: %w", err)
	}

	seen := make(map[string]bool, len(config.Assets))
	for i, asset := range config.Assets {
		asset.Symbol = prime.NormalizeSymbol(asset.Symbol)
		asset.Network = strings.TrimSpace(asset.Network)
		asset.FallbackAddress = strings.TrimSpace(asset.FallbackAddress)
		if asset.Symbol == "" {
			return nil, fmt.Errorf("asset at index %d missing symbol", i)
		}
		if asset.Network == "" {
			return nil, fmt.Errorf("asset at index %d missing network", i)
		}
		if seen[asset.Symbol] {
			return nil, fmt.Errorf("asset %s listed more than once", asset.Symbol)
		}
		seen[asset.Symbol] = true
		config.Assets[i] = asset
	}

	sort.Slice(config.Assets, func(i, j int) bool {
		return config.Assets[i].Symbol < config.Assets[j].Symbol
	})
	return config.Assets, nil
}

// FilterAssets keeps the assets whose symbol is listed; an empty list keeps all
func FilterAssets(assets []AssetConfig, symbols []string) []AssetConfig {
	if len(symbols) == 0 {
		return assets
	}
	wanted := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		if s = prime.NormalizeSymbol(s); s != "" {
			wanted[s] = true
		}
	}

	var filtered []AssetConfig
	for _, asset := range assets {
		if wanted[prime.NormalizeSymbol(asset.Symbol)] {
			filtered = append(filtered, asset)
		}
	}
	return filtered
}
