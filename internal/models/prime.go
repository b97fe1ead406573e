package models

// Portfolio represents a Prime portfolio
type Portfolio struct {
	Id   string
	Name string
}

// Wallet represents a Prime wallet. Type is the wallet category reported by
// Prime (TRADING, VAULT, ...).
type Wallet struct {
	Id     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Type   string `json:"type"`
}

// WalletPage is one page of the wallet listing endpoint
type WalletPage struct {
	Wallets    []Wallet
	NextCursor string
	HasNext    bool
}

// DepositInstruction is where a depositor must send funds to credit a wallet.
// Memo is nil for chains that do not use a routing tag.
type DepositInstruction struct {
	Address string  `json:"address"`
	Memo    *string `json:"memo,omitempty"`
}

// CreatedWallet is the descriptor returned by a wallet creation request. Prime
// may answer with an activity id before the wallet id is assigned.
type CreatedWallet struct {
	Id         string `json:"id,omitempty"`
	ActivityId string `json:"activity_id,omitempty"`
	Name       string `json:"name"`
	Symbol     string `json:"symbol"`
	Type       string `json:"wallet_type"`
}
