// Package upstream is the HTTP client for the remote soup shop API. Every
// response arrives wrapped in the {data, message, success} envelope; the
// client unwraps it and maps HTTP status codes onto domain errors.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Mokhaled2004/SoupShop/internal/domain"
)

// Client talks to the upstream API. The zero value is not usable; construct
// with New.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

// New builds a Client for the given base URL.
func New(baseURL string, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Success bool            `json:"success"`
}

// Error carries the upstream failure message alongside the status code.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("upstream: status %d", e.StatusCode)
}

// LoginInput are the credentials for POST /auth/login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput is the payload for POST /auth/register.
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// AuthResult is the {user, token} pair returned by login and register.
type AuthResult struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

// CreateOrderInput is the POST /orders body: a snapshot of the cart lines
// plus shipping and payment details.
type CreateOrderInput struct {
	Items           []domain.OrderItem `json:"items"`
	ShippingAddress domain.Address     `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
	TotalAmount     float64            `json:"totalAmount"`
}

// Soups fetches the full catalog.
func (c *Client) Soups(ctx context.Context) ([]domain.Soup, error) {
	var soups []domain.Soup
	err := c.do(ctx, http.MethodGet, "/soups", "", "", nil, &soups)
	return soups, err
}

// SoupByID fetches one catalog item; missing ids yield domain.ErrNotFound.
func (c *Client) SoupByID(ctx context.Context, id int) (*domain.Soup, error) {
	var soup domain.Soup
	if err := c.do(ctx, http.MethodGet, "/soups/"+strconv.Itoa(id), "", "", nil, &soup); err != nil {
		return nil, err
	}
	return &soup, nil
}

// SoupsByCategory fetches the catalog filtered by category server-side.
func (c *Client) SoupsByCategory(ctx context.Context, category string) ([]domain.Soup, error) {
	var soups []domain.Soup
	err := c.do(ctx, http.MethodGet, "/soups/category/"+url.PathEscape(category), "", "", nil, &soups)
	return soups, err
}

// SearchSoups runs a server-side catalog search.
func (c *Client) SearchSoups(ctx context.Context, query string) ([]domain.Soup, error) {
	var soups []domain.Soup
	err := c.do(ctx, http.MethodGet, "/soups/search?q="+url.QueryEscape(query), "", "", nil, &soups)
	return soups, err
}

// TopRatedSoups fetches the highest-rated items, truncated to limit.
func (c *Client) TopRatedSoups(ctx context.Context, limit int) ([]domain.Soup, error) {
	var soups []domain.Soup
	err := c.do(ctx, http.MethodGet, "/soups/top-rated?limit="+strconv.Itoa(limit), "", "", nil, &soups)
	return soups, err
}

// CreateOrder submits an order. idempotencyKey identifies the checkout
// attempt so the upstream can deduplicate double submissions.
func (c *Client) CreateOrder(ctx context.Context, token, idempotencyKey string, in CreateOrderInput) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodPost, "/orders", token, idempotencyKey, in, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Orders lists the authenticated user's orders.
func (c *Client) Orders(ctx context.Context, token string) ([]domain.Order, error) {
	var orders []domain.Order
	err := c.do(ctx, http.MethodGet, "/orders", token, "", nil, &orders)
	return orders, err
}

// OrderByID fetches one order; missing ids yield domain.ErrNotFound.
func (c *Client) OrderByID(ctx context.Context, token string, id int) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+strconv.Itoa(id), token, "", nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CancelOrder requests cancellation and returns the server's updated order.
func (c *Client) CancelOrder(ctx context.Context, token string, id int) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodPut, "/orders/"+strconv.Itoa(id)+"/cancel", token, "", nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Login exchanges credentials for a user and token.
func (c *Client) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", "", in, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates an account and returns the user and token.
func (c *Client) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", "", in, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Me resolves the user bound to token via GET /auth/me.
func (c *Client) Me(ctx context.Context, token string) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", token, "", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) do(ctx context.Context, method, path, token, idempotencyKey string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if len(raw) > 0 {
		// A non-envelope body is tolerated; status handling below decides.
		_ = json.Unmarshal(raw, &env)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized:
		return domain.ErrUnauthenticated
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.logger.Printf("upstream: %s %s status=%d message=%q", method, path, resp.StatusCode, env.Message)
		return &Error{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if !env.Success && env.Message != "" {
		return &Error{StatusCode: resp.StatusCode, Message: env.Message}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
