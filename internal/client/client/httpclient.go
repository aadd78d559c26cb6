package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophterms/internal/api"
	"github.com/dmitrijs2005/gophterms/internal/common"
)

const refreshPath = "/user/authentication/refresh"

type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

// NewHTTPClient returns a client for the server at baseURL, e.g.
// "http://localhost:8080". Paths are resolved under common.APIPrefix.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/") + common.APIPrefix,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

func (c *HTTPClient) tokens() (access, refresh string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken, c.refreshToken
}

func (c *HTTPClient) setTokens(access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = access
	c.refreshToken = refresh
}

// Logout forgets both tokens.
func (c *HTTPClient) Logout() {
	c.setTokens("", "")
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Register(ctx context.Context, userName string, salt []byte, verifier []byte) error {
	req := api.RegisterRequest{Username: userName, Salt: salt, Verifier: verifier}
	return c.call(ctx, http.MethodPost, "/user", req, nil)
}

func (c *HTTPClient) GetSalt(ctx context.Context, userName string) ([]byte, error) {
	var resp api.SaltResponse
	path := "/user/salt?username=" + url.QueryEscape(userName)
	if err := c.call(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Salt, nil
}

func (c *HTTPClient) Login(ctx context.Context, userName string, verifier []byte) error {
	var resp api.TokenResponse
	req := api.LoginRequest{Username: userName, Verifier: verifier}
	if err := c.call(ctx, http.MethodPost, "/user/authentication", req, &resp); err != nil {
		return err
	}
	c.setTokens(resp.AccessToken, resp.RefreshToken)
	return nil
}

// Refresh rotates the token pair using the stored refresh token.
func (c *HTTPClient) Refresh(ctx context.Context) error {
	_, refresh := c.tokens()
	if refresh == "" {
		return ErrUnauthorized
	}

	var resp api.TokenResponse
	req := api.RefreshRequest{RefreshToken: refresh}
	status, msg, err := c.send(ctx, http.MethodPost, refreshPath, "", req, &resp)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return mapStatus(status, msg)
	}

	c.setTokens(resp.AccessToken, resp.RefreshToken)
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	var resp api.PingResponse
	if err := c.call(ctx, http.MethodGet, "/ping", nil, &resp); err != nil {
		return err
	}
	if resp.Status != api.StatusOK {
		return ErrUnavailable
	}
	return nil
}

func (c *HTTPClient) Me(ctx context.Context) (*api.Profile, error) {
	var resp api.Profile
	if err := c.call(ctx, http.MethodGet, "/user/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ListCollections(ctx context.Context) ([]api.Collection, error) {
	var resp []api.Collection
	if err := c.call(ctx, http.MethodGet, "/collection", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *HTTPClient) GetCollection(ctx context.Context, id string) (*api.Collection, error) {
	var resp api.Collection
	if err := c.call(ctx, http.MethodGet, "/collection/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) CreateCollection(ctx context.Context, req api.CreateCollectionRequest) (*api.Collection, error) {
	var resp api.Collection
	if err := c.call(ctx, http.MethodPost, "/collection", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) UpdateTerms(ctx context.Context, id, termsText string) (*api.Collection, error) {
	var resp api.Collection
	req := api.UpdateTermsRequest{Terms: termsText}
	if err := c.call(ctx, http.MethodPut, "/collection/"+url.PathEscape(id)+"/terms", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AcceptTerms posts the accepted terms hash for a collection. Any non-2xx
// answer is an error.
func (c *HTTPClient) AcceptTerms(ctx context.Context, collectionID, hash string) error {
	req := api.AcceptTermsRequest{TermsHash: hash}
	return c.call(ctx, http.MethodPost, "/collection/"+url.PathEscape(collectionID)+"/acceptTerms", req, nil)
}

// call sends an authenticated request. An expired access token is refreshed
// once and the request replayed with the new token.
func (c *HTTPClient) call(ctx context.Context, method, path string, in, out any) error {
	access, refresh := c.tokens()

	status, msg, err := c.send(ctx, method, path, access, in, out)
	if err != nil {
		return err
	}
	if status < 300 {
		return nil
	}

	if status != http.StatusUnauthorized || msg != common.ErrTokenExpired.Error() || refresh == "" {
		return mapStatus(status, msg)
	}

	if err := c.Refresh(ctx); err != nil {
		return err
	}

	access, _ = c.tokens()
	status, msg, err = c.send(ctx, method, path, access, in, out)
	if err != nil {
		return err
	}
	if status < 300 {
		return nil
	}
	return mapStatus(status, msg)
}

// send performs one round trip. For 2xx it decodes the body into out and
// returns the status; otherwise it returns the status and the server's
// error message. Transport failures are returned as err.
func (c *HTTPClient) send(ctx context.Context, method, path, token string, in, out any) (int, string, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, "", fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, "", mapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var e api.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return resp.StatusCode, e.Error, nil
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
			return 0, "", fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, "", nil
}

func mapStatus(status int, msg string) error {
	var sentinel error
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		sentinel = ErrUnauthorized
	case http.StatusNotFound:
		sentinel = ErrNotFound
	case http.StatusConflict:
		sentinel = ErrConflict
	case http.StatusPreconditionFailed:
		sentinel = ErrTermsMismatch
	case http.StatusBadRequest:
		sentinel = ErrBadRequest
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		sentinel = ErrUnavailable
	default:
		return fmt.Errorf("http error: %d %s", status, msg)
	}

	if msg == "" || msg == sentinel.Error() {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, msg)
}

// mapTransportError treats every failure to reach the server as
// ErrUnavailable, except a caller cancelling the context.
func mapTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
