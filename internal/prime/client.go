package prime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"prime-deposit-addresses-go/internal/models"

	"github.com/coinbase-samples/prime-sdk-go/credentials"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL        = "https://api.prime.coinbase.com"
	DefaultRequestTimeout = 30 * time.Second
	DefaultPageDelay      = 200 * time.Millisecond

	headerAccessKey   = "X-CB-ACCESS-KEY"
	headerPassphrase  = "X-CB-ACCESS-PASSPHRASE"
	headerSignature   = "X-CB-ACCESS-SIGNATURE"
	headerTimestamp   = "X-CB-ACCESS-TIMESTAMP"
	headerContentType = "Content-Type"
	contentTypeJSON   = "application/json"

	WalletTypeTrading = "TRADING"
	WalletTypeVault   = "VAULT"
	depositTypeCrypto = "CRYPTO"
)

// WalletClient talks to the Prime wallet endpoints of a single portfolio.
// It holds no mutable state besides its immutable credentials, so one
// instance can serve concurrent callers.
type WalletClient struct {
	accessKey   string
	signingKey  string
	passphrase  string
	portfolioId string

	rest      *resty.Client
	pageDelay time.Duration
	now       func() time.Time
}

type clientOptions struct {
	baseURL    string
	timeout    time.Duration
	pageDelay  time.Duration
	httpClient *http.Client
	now        func() time.Time
}

// ClientOption customises a WalletClient
type ClientOption func(*clientOptions)

// WithBaseURL points the client at another Prime host. An empty value keeps the default.
func WithBaseURL(baseURL string) ClientOption {
	return func(o *clientOptions) {
		if baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/"); baseURL != "" {
			o.baseURL = baseURL
		}
	}
}

// WithRequestTimeout sets the per request deadline. Ignored when WithHTTPClient is used.
func WithRequestTimeout(timeout time.Duration) ClientOption {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithPageDelay sets the pause between wallet listing pages. Zero disables it.
func WithPageDelay(delay time.Duration) ClientOption {
	return func(o *clientOptions) {
		o.pageDelay = delay
	}
}

// WithHTTPClient replaces the default HTTP/2 client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(o *clientOptions) {
		o.httpClient = httpClient
	}
}

// WithClock replaces the time source used for request timestamps
func WithClock(now func() time.Time) ClientOption {
	return func(o *clientOptions) {
		o.now = now
	}
}

// NewWalletClient validates the credential set and builds a client. Every
// credential field, including PortfolioId, is required. Validation happens
// before any network activity.
func NewWalletClient(creds *credentials.Credentials, opts ...ClientOption) (*WalletClient, error) {
	if err := validateCredentials(creds); err != nil {
		return nil, err
	}

	o := &clientOptions{
		baseURL:   DefaultBaseURL,
		timeout:   DefaultRequestTimeout,
		pageDelay: DefaultPageDelay,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.pageDelay < 0 {
		return nil, fmt.Errorf("%w: page delay cannot be negative, got %v", ErrConfiguration, o.pageDelay)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		hc, err := NewHTTPClient(o.timeout)
		if err != nil {
			return nil, err
		}
		httpClient = &hc
	}

	rest := resty.NewWithClient(httpClient).
		SetBaseURL(o.baseURL).
		SetLogger(zap.S())

	return &WalletClient{
		accessKey:   strings.TrimSpace(creds.AccessKey),
		signingKey:  strings.TrimSpace(creds.SigningKey),
		passphrase:  strings.TrimSpace(creds.Passphrase),
		portfolioId: strings.TrimSpace(creds.PortfolioId),
		rest:        rest,
		pageDelay:   o.pageDelay,
		now:         o.now,
	}, nil
}

func validateCredentials(creds *credentials.Credentials) error {
	if creds == nil {
		return fmt.Errorf("%w: credentials are required", ErrConfiguration)
	}

	var missing []string
	if strings.TrimSpace(creds.AccessKey) == "" {
		missing = append(missing, "access key")
	}
	if strings.TrimSpace(creds.SigningKey) == "" {
		missing = append(missing, "signing key")
	}
	if strings.TrimSpace(creds.Passphrase) == "" {
		missing = append(missing, "passphrase")
	}
	if strings.TrimSpace(creds.PortfolioId) == "" {
		missing = append(missing, "portfolio id")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing Prime credentials: %s", ErrConfiguration, strings.Join(missing, ", "))
	}
	return nil
}

// PortfolioId returns the portfolio every request is scoped to
func (c *WalletClient) PortfolioId() string {
	return c.portfolioId
}

// Sign signs a canonical request with the client's signing key
func (c *WalletClient) Sign(timestamp, method, path, body string) string {
	return Sign(c.signingKey, timestamp, method, path, body)
}

type apiRequest struct {
	kind    requestKind
	method  string
	path    string
	query   map[string]string
	payload any
	out     any
}

func (c *WalletClient) do(ctx context.Context, req apiRequest) error {
	var body string
	if req.payload != nil {
		encoded, err := json.Marshal(req.payload)
		if err != nil {
			return fmt.Errorf("unable to encode %s %s request: %w", req.method, req.path, err)
		}
		body = string(encoded)
	}

	timestamp := strconv.FormatInt(c.now().Unix(), 10)
	signature := c.Sign(timestamp, req.method, req.path, body)

	r := c.rest.R().
		SetContext(ctx).
		SetHeaders(map[string]string{
			headerAccessKey:   c.accessKey,
			headerPassphrase:  c.passphrase,
			headerSignature:   signature,
			headerTimestamp:   timestamp,
			headerContentType: contentTypeJSON,
		})
	if len(req.query) > 0 {
		r.SetQueryParams(req.query)
	}
	if body != "" {
		r.SetBody(body)
	}

	started := time.Now()
	resp, err := r.Execute(req.method, req.path)
	if err != nil {
		zap.L().Debug("Prime API request failed",
			zap.String("method", req.method),
			zap.String("path", req.path),
			zap.Duration("elapsed", time.Since(started)),
			zap.Error(err))
		return transportError(req.method, req.path, err)
	}

	zap.L().Debug("Prime API response received",
		zap.String("method", req.method),
		zap.String("path", req.path),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("elapsed", time.Since(started)))

	if !resp.IsSuccess() {
		return newRemoteError(req.kind, req.method, req.path, resp.StatusCode(), resp.Body())
	}

	if req.out != nil {
		if err := json.Unmarshal(resp.Body(), req.out); err != nil {
			return fmt.Errorf("unable to decode %s %s response: %w", req.method, req.path, err)
		}
	}
	return nil
}

func (c *WalletClient) walletsPath() string {
	return fmt.Sprintf("/v1/portfolios/%s/wallets", c.portfolioId)
}

type walletResponse struct {
	Id         string `json:"id"`
	Name       string `json:"name"`
	Symbol     string `json:"symbol"`
	Type       string `json:"type"`
	WalletType string `json:"wallet_type"`
}

func (w walletResponse) toModel() models.Wallet {
	walletType := w.Type
	if walletType == "" {
		walletType = w.WalletType
	}
	return models.Wallet{
		Id:     w.Id,
		Name:   w.Name,
		Symbol: w.Symbol,
		Type:   walletType,
	}
}

type listWalletsResponse struct {
	Wallets    []walletResponse `json:"wallets"`
	Pagination struct {
		NextCursor string `json:"next_cursor"`
		HasNext    bool   `json:"has_next"`
	} `json:"pagination"`
}

// ListWallets fetches a single page of the portfolio's wallets. An empty
// cursor requests the first page. The cursor travels as a query parameter and
// is not part of the signed path.
func (c *WalletClient) ListWallets(ctx context.Context, cursor string) (*models.WalletPage, error) {
	req := apiRequest{
		method: http.MethodGet,
		path:   c.walletsPath(),
	}
	if cursor != "" {
		req.query = map[string]string{"cursor": cursor}
	}

	var response listWalletsResponse
	req.out = &response
	if err := c.do(ctx, req); err != nil {
		return nil, fmt.Errorf("unable to list wallets: %w", err)
	}

	page := &models.WalletPage{
		Wallets:    make([]models.Wallet, len(response.Wallets)),
		NextCursor: response.Pagination.NextCursor,
		HasNext:    response.Pagination.HasNext,
	}
	for i, w := range response.Wallets {
		page.Wallets[i] = w.toModel()
	}
	return page, nil
}

// ListAllWallets follows the listing cursor until Prime reports no further
// pages, returning every wallet in page order. A page that claims more
// results but carries no cursor, or a cursor already followed, ends the listing.
func (c *WalletClient) ListAllWallets(ctx context.Context) ([]models.Wallet, error) {
	var all []models.Wallet
	cursor := ""
	followed := make(map[string]bool)

	for page := 1; ; page++ {
		result, err := c.ListWallets(ctx, cursor)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		all = append(all, result.Wallets...)

		zap.L().Debug("Retrieved wallet page",
			zap.Int("page", page),
			zap.Int("count", len(result.Wallets)),
			zap.Int("total", len(all)))

		if !result.HasNext {
			break
		}
		if result.NextCursor == "" || followed[result.NextCursor] {
			zap.L().Warn("Wallet listing reported more pages without a new cursor, stopping",
				zap.Int("page", page),
				zap.String("cursor", result.NextCursor))
			break
		}
		cursor = result.NextCursor
		followed[cursor] = true

		if err := sleepContext(ctx, c.pageDelay); err != nil {
			return nil, err
		}
	}

	zap.L().Info("Retrieved all wallets", zap.Int("count", len(all)))
	return all, nil
}

type depositInstructionsResponse struct {
	CryptoInstructions *struct {
		Address           string  `json:"address"`
		AccountIdentifier *string `json:"account_identifier"`
	} `json:"crypto_instructions"`
}

// GetDepositInstruction fetches the crypto deposit address, and memo where the
// chain needs one, for a wallet.
func (c *WalletClient) GetDepositInstruction(ctx context.Context, walletId string) (*models.DepositInstruction, error) {
	walletId = strings.TrimSpace(walletId)
	if walletId == "" {
		return nil, fmt.Errorf("%w: wallet id is required", ErrInvalidArgument)
	}

	var response depositInstructionsResponse
	req := apiRequest{
		kind:   kindDepositInstructions,
		method: http.MethodGet,
		path:   fmt.Sprintf("%s/%s/deposit_instructions", c.walletsPath(), walletId),
		query:  map[string]string{"deposit_type": depositTypeCrypto},
		out:    &response,
	}
	if err := c.do(ctx, req); err != nil {
		return nil, fmt.Errorf("unable to get deposit instructions for wallet %s: %w", walletId, err)
	}

	return parseDepositInstruction(walletId, response)
}

func parseDepositInstruction(walletId string, response depositInstructionsResponse) (*models.DepositInstruction, error) {
	crypto := response.CryptoInstructions
	if crypto == nil || crypto.Address == "" {
		return nil, fmt.Errorf("wallet %s returned no crypto deposit address: %w", walletId, ErrNotReady)
	}

	instruction := &models.DepositInstruction{Address: crypto.Address}
	if crypto.AccountIdentifier != nil && *crypto.AccountIdentifier != "" {
		memo := *crypto.AccountIdentifier
		instruction.Memo = &memo
	}
	return instruction, nil
}

type createWalletRequest struct {
	Name       string `json:"name"`
	Symbol     string `json:"symbol"`
	WalletType string `json:"wallet_type"`
}

type createWalletResponse struct {
	Id         string `json:"id"`
	WalletId   string `json:"wallet_id"`
	ActivityId string `json:"activity_id"`
	Name       string `json:"name"`
	Symbol     string `json:"symbol"`
	WalletType string `json:"wallet_type"`
}

// CreateTradingWallet creates a TRADING wallet for symbol named name. It is
// not idempotent: a repeated call either fails with ErrAlreadyExists or
// creates a duplicate, depending on Prime.
func (c *WalletClient) CreateTradingWallet(ctx context.Context, symbol, name string) (*models.CreatedWallet, error) {
	symbol = strings.TrimSpace(symbol)
	name = strings.TrimSpace(name)
	if symbol == "" || name == "" {
		return nil, fmt.Errorf("%w: wallet symbol and name are required", ErrInvalidArgument)
	}

	zap.L().Info("Creating trading wallet",
		zap.String("symbol", symbol),
		zap.String("name", name))

	var response createWalletResponse
	req := apiRequest{
		kind:   kindCreateWallet,
		method: http.MethodPost,
		path:   c.walletsPath(),
		payload: createWalletRequest{
			Name:       name,
			Symbol:     symbol,
			WalletType: WalletTypeTrading,
		},
		out: &response,
	}
	if err := c.do(ctx, req); err != nil {
		return nil, fmt.Errorf("unable to create %s wallet %q: %w", symbol, name, err)
	}

	created := &models.CreatedWallet{
		Id:         response.Id,
		ActivityId: response.ActivityId,
		Name:       response.Name,
		Symbol:     response.Symbol,
		Type:       response.WalletType,
	}
	if created.Id == "" {
		created.Id = response.WalletId
	}
	if created.Name == "" {
		created.Name = name
	}
	if created.Symbol == "" {
		created.Symbol = symbol
	}
	if created.Type == "" {
		created.Type = WalletTypeTrading
	}

	zap.L().Info("Trading wallet created",
		zap.String("symbol", created.Symbol),
		zap.String("wallet_id", created.Id),
		zap.String("activity_id", created.ActivityId))
	return created, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
