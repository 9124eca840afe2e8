// Package plaid reads settled transactions from the Plaid API.
package plaid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledger/internal/transaction"
)

type Environment string

const (
	Sandbox     Environment = "sandbox"
	Development Environment = "development"
	Production  Environment = "production"
)

// BaseURL returns the API host of the environment.
func (e Environment) BaseURL() (string, error) {
	switch e {
	case Sandbox, Development, Production:
		return "https://" + string(e) + ".plaid.com", nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownEnvironment, string(e))
}

const (
	// pageSize is the largest page transactions/get allows.
	pageSize       = 500
	defaultTimeout = 15 * time.Second
)

type Config struct {
	ClientID     string
	Secret       string
	Env          Environment
	AccessTokens []string
	Timeout      time.Duration

	// BaseURL overrides the environment host.
	BaseURL string
	// HTTPClient overrides the default client.
	HTTPClient *http.Client
}

type Client struct {
	baseURL  string
	clientID string
	secret   string
	tokens   []string
	timeout  time.Duration
	http     *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.ClientID == "" || cfg.Secret == "" {
		return nil, ErrMissingCredentials
	}

	tokens := slices.DeleteFunc(slices.Clone(cfg.AccessTokens), func(t string) bool {
		return strings.TrimSpace(t) == ""
	})
	if len(tokens) == 0 {
		return nil, ErrMissingAccessToken
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		var err error
		if baseURL, err = cfg.Env.BaseURL(); err != nil {
			return nil, err
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		clientID: cfg.ClientID,
		secret:   cfg.Secret,
		tokens:   tokens,
		timeout:  timeout,
		http:     httpClient,
	}, nil
}

// Fetch returns the settled transactions of every linked item dated within
// [start, end], newest first.
func (c *Client) Fetch(ctx context.Context, start, end time.Time) ([]*transaction.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var out []*transaction.Transaction

	for i, token := range c.tokens {
		txs, err := c.fetchItem(ctx, token, start, end)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}

		out = append(out, txs...)
	}

	slices.SortStableFunc(out, func(a, b *transaction.Transaction) int {
		return b.Date.Compare(a.Date)
	})

	return out, nil
}

func (c *Client) fetchItem(ctx context.Context, token string, start, end time.Time) ([]*transaction.Transaction, error) {
	accounts, err := c.accounts(ctx, token)
	if err != nil {
		return nil, err
	}

	var (
		raw   []apiTransaction
		total = -1
	)

	for total < 0 || len(raw) < total {
		page, err := c.transactionsPage(ctx, token, start, end, len(raw))
		if err != nil {
			return nil, err
		}

		raw = append(raw, page.Transactions...)
		total = page.TotalTransactions

		if len(page.Transactions) == 0 {
			break
		}
	}

	slog.DebugContext(ctx, "fetched plaid transactions", "count", len(raw), "total", total)

	txs := make([]*transaction.Transaction, 0, len(raw))

	for _, t := range raw {
		if t.Pending {
			continue
		}

		tx, err := t.toTransaction(accounts)
		if err != nil {
			return nil, err
		}

		txs = append(txs, tx)
	}

	return txs, nil
}

type credentials struct {
	ClientID    string `json:"client_id"`
	Secret      string `json:"secret"`
	AccessToken string `json:"access_token"`
}

type accountsResponse struct {
	Accounts []struct {
		AccountID string `json:"account_id"`
		Name      string `json:"name"`
	} `json:"accounts"`
}

func (c *Client) accounts(ctx context.Context, token string) (map[string]string, error) {
	var resp accountsResponse
	if err := c.post(ctx, "/accounts/get", c.credentials(token), &resp); err != nil {
		return nil, fmt.Errorf("getting accounts: %w", err)
	}

	names := make(map[string]string, len(resp.Accounts))
	for _, a := range resp.Accounts {
		names[a.AccountID] = a.Name
	}

	return names, nil
}

type transactionsRequest struct {
	credentials
	StartDate string              `json:"start_date"`
	EndDate   string              `json:"end_date"`
	Options   transactionsOptions `json:"options"`
}

type transactionsOptions struct {
	Count  int `json:"count"`
	Offset int `json:"offset"`
}

type transactionsResponse struct {
	Transactions      []apiTransaction `json:"transactions"`
	TotalTransactions int              `json:"total_transactions"`
}

type apiTransaction struct {
	TransactionID string          `json:"transaction_id"`
	AccountID     string          `json:"account_id"`
	Name          string          `json:"name"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date"`
	Pending       bool            `json:"pending"`
	Category      []string        `json:"category"`
}

func (t apiTransaction) toTransaction(accounts map[string]string) (*transaction.Transaction, error) {
	date, err := time.Parse(time.DateOnly, t.Date)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: parsing date %q: %w", t.TransactionID, t.Date, err)
	}

	account, ok := accounts[t.AccountID]
	if !ok {
		account = transaction.UnknownAccount
	}

	return &transaction.Transaction{
		ID:           t.TransactionID,
		Date:         date,
		Account:      account,
		Name:         t.Name,
		Category:     transaction.JoinCategory(t.Category),
		CategoryPath: t.Category,
		Amount:       t.Amount,
	}, nil
}

func (c *Client) transactionsPage(ctx context.Context, token string, start, end time.Time, offset int) (*transactionsResponse, error) {
	body := transactionsRequest{
		credentials: c.credentials(token),
		StartDate:   start.Format(time.DateOnly),
		EndDate:     end.Format(time.DateOnly),
		Options:     transactionsOptions{Count: pageSize, Offset: offset},
	}

	var resp transactionsResponse
	if err := c.post(ctx, "/transactions/get", body, &resp); err != nil {
		return nil, fmt.Errorf("getting transactions at offset %d: %w", offset, err)
	}

	return &resp, nil
}

func (c *Client) credentials(token string) credentials {
	return credentials{ClientID: c.clientID, Secret: c.secret, AccessToken: token}
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", transaction.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(data, apiErr); err != nil {
			apiErr.Message = fmt.Sprintf("unexpected status code %d", resp.StatusCode)
		}

		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
