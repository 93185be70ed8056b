// Package api is the typed HTTP client for the REST surface. Every response
// is the uniform envelope; error envelopes are turned into apperr errors
// carrying the server's message. There are no retries: any failure is
// reported once to the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/paulikeo/mercadito/internal/apperr"
	"github.com/paulikeo/mercadito/internal/client/session"
	"github.com/paulikeo/mercadito/internal/models"
)

// Client talks to the mercadito server.
type Client struct {
	base string
	http *http.Client
}

// New creates a client for the server at baseURL.
func New(baseURL string) *Client {
	return &Client{
		base: baseURL,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

type envelope struct {
	Error   bool             `json:"error"`
	Msg     string           `json:"msg"`
	User    *session.User    `json:"user"`
	Product *models.Product  `json:"product"`
	Data    []models.Product `json:"data"`
}

// ErrUnreachable wraps network-level failures. Callers treat it the same as
// a server-reported error; the distinction is not surfaced to the user.
var ErrUnreachable = errors.New("server unreachable")

func (c *Client) do(ctx context.Context, method, path, token string, body interface{}) (*envelope, error) {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return nil, err
		}
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if env.Error {
		msg := env.Msg
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		if kind := apperr.FromStatus(resp.StatusCode); kind != nil {
			return nil, apperr.E(kind, msg)
		}
		return nil, errors.New(msg)
	}

	return &env, nil
}

// Register creates an account. The returned string is the server's
// confirmation message; no session is started.
func (c *Client) Register(ctx context.Context, fullName, email, password, confirm string) (string, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/users", "", map[string]string{
		"fullName":        fullName,
		"email":           email,
		"password":        password,
		"confirmPassword": confirm,
	})
	if err != nil {
		return "", err
	}
	return env.Msg, nil
}

// Login authenticates and returns the identity plus token to persist.
func (c *Client) Login(ctx context.Context, email, password string) (session.User, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/users/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return session.User{}, err
	}
	if env.User == nil {
		return session.User{}, errors.New("malformed login response")
	}
	return *env.User, nil
}

// VerifyToken checks that a stored token still resolves to a live account.
func (c *Client) VerifyToken(ctx context.Context, token string) error {
	_, err := c.do(ctx, http.MethodGet, "/api/users/verify-token", token, nil)
	return err
}

// ListProducts returns the full catalog with creator info.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/products", "", nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// GetProduct returns one product by id.
func (c *Client) GetProduct(ctx context.Context, id int64) (models.Product, error) {
	env, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", id), "", nil)
	if err != nil {
		return models.Product{}, err
	}
	if env.Product == nil {
		return models.Product{}, errors.New("malformed product response")
	}
	return *env.Product, nil
}

type productBody struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int64   `json:"stock"`
}

// CreateProduct creates a product owned by the token's user.
func (c *Client) CreateProduct(ctx context.Context, token, name string, price float64, stock int64) (models.Product, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/products", token, productBody{Name: name, Price: price, Stock: stock})
	if err != nil {
		return models.Product{}, err
	}
	if env.Product == nil {
		return models.Product{}, errors.New("malformed product response")
	}
	return *env.Product, nil
}

// UpdateProduct rewrites a product's name, price and stock.
func (c *Client) UpdateProduct(ctx context.Context, token string, id int64, name string, price float64, stock int64) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/products/%d", id), token, productBody{Name: name, Price: price, Stock: stock})
	return err
}

// DeleteProduct permanently removes a product.
func (c *Client) DeleteProduct(ctx context.Context, token string, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), token, nil)
	return err
}
