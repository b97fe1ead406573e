package models

import "time"

// Config represents the application configuration
type Config struct {
	Prime     PrimeConfig
	Database  DatabaseConfig
	Generator GeneratorConfig
	Log       LogConfig
}

// PrimeConfig holds Prime API credentials and client tuning
type PrimeConfig struct {
	AccessKey      string
	SigningKey     string
	Passphrase     string
	PortfolioId    string
	BaseURL        string
	RequestTimeout time.Duration
	PageDelay      time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// GeneratorConfig holds deposit address generation settings
type GeneratorConfig struct {
	AssetsFile             string
	OutputDir              string
	AddressDelay           time.Duration
	AllWallets             bool
	ActivationTimeout      time.Duration
	ActivationPollInterval time.Duration
}

// LogConfig holds logger settings. File is optional; when empty logs only go to stderr.
type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}
