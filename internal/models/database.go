package models

import "time"

// GenerationRun is one execution of the deposit address generator
type GenerationRun struct {
	Id          string     `db:"id"`
	Mode        string     `db:"mode"`
	StartedAt   time.Time  `db:"started_at"`
	CompletedAt *time.Time `db:"completed_at"`
	Total       int        `db:"total"`
	Found       int        `db:"found"`
	Missing     int        `db:"missing"`
	Errors      int        `db:"errors"`
}

// StoredAddress is an address result persisted for a generation run
type StoredAddress struct {
	Id         string    `db:"id"`
	RunId      string    `db:"run_id"`
	Symbol     string    `db:"symbol"`
	Network    string    `db:"network"`
	Status     string    `db:"status"`
	WalletId   string    `db:"wallet_id"`
	WalletName string    `db:"wallet_name"`
	WalletTier string    `db:"wallet_tier"`
	Address    string    `db:"address"`
	Memo       *string   `db:"memo"`
	Note       string    `db:"note"`
	Error      string    `db:"error"`
	CreatedAt  time.Time `db:"created_at"`
}
