// Package walletclient is the caller side of the internal endpoint: the
// users-service uses it to post transactions on a user's behalf.
package walletclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/baharkarakas/wallet-service/internal/auth"
	"github.com/baharkarakas/wallet-service/internal/models"
)

// maxErrBody bounds how much of a failed response is kept.
const maxErrBody = 4 << 10

// StatusError is any non-2xx answer from the wallet service.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("wallet service error: %d", e.Code)
}

type Client struct {
	baseURL string
	tokens  *auth.InternalTokens
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(baseURL string, tokens *auth.InternalTokens, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type createReq struct {
	UserID string                 `json:"userId"`
	Type   models.TransactionType `json:"type"`
	Amount json.Number            `json:"amount"`
}

// CreateTransaction mints a fresh internal token and posts one transaction
// for userID. Tokens are never cached or reused.
func (c *Client) CreateTransaction(ctx context.Context, userID string, typ models.TransactionType, amount decimal.Decimal) (models.TransactionView, error) {
	token, err := c.tokens.Mint()
	if err != nil {
		return models.TransactionView{}, err
	}

	slog.Info("creating transaction", "user_id", userID, "type", typ, "amount", amount.String())

	var out models.TransactionView
	err = c.do(ctx, http.MethodPost, "/internal/transactions", token, createReq{
		UserID: userID,
		Type:   typ,
		Amount: json.Number(amount.String()),
	}, &out)
	if err != nil {
		return models.TransactionView{}, err
	}
	slog.Info("transaction created", "id", out.ID, "user_id", out.UserID)
	return out, nil
}

// Balance reads the balance of whoever userToken belongs to.
func (c *Client) Balance(ctx context.Context, userToken string) (models.BalanceView, error) {
	var out models.BalanceView
	if err := c.do(ctx, http.MethodGet, "/balance", userToken, nil, &out); err != nil {
		return models.BalanceView{}, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
		slog.Error("wallet service error", "status", resp.StatusCode, "path", path, "body", string(raw))
		return &StatusError{Code: resp.StatusCode, Body: string(raw)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
