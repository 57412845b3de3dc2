// Package client is a Go consumer of the ProjectPulse HTTP API. Reads go
// through per-query hooks backed by a response cache; when the server cannot
// be reached they are answered from the bundled sample dataset.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/pkg/apperr"
)

const sourceHeader = "X-Data-Source"

// Client talks to one API base URL, e.g. http://localhost:8080/api/v1.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	cache   Cache
	log     *zap.Logger

	offlineOnce sync.Once
	offline     *offline
	offlineErr  error

	mu    sync.Mutex
	hooks map[watcher]struct{}

	// epoch advances on every invalidation; fills that started under an
	// older epoch are not written back.
	fillMu sync.RWMutex
	epoch  atomic.Uint64
}

type Option func(*Client)

func WithCache(c Cache) Option { return func(cl *Client) { cl.cache = c } }

func WithHTTPClient(h *http.Client) Option { return func(cl *Client) { cl.http = h } }

// WithToken sends token as the bearer session on every request.
func WithToken(token string) Option { return func(cl *Client) { cl.token = token } }

func WithLogger(l *zap.Logger) Option { return func(cl *Client) { cl.log = l } }

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		cache:   NewMemoryCache(),
		log:     zap.NewNop(),
		hooks:   make(map[watcher]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a 4xx answer. It is surfaced to callers as is.
type APIError struct {
	Status  int
	Msg     string
	Detail  string
	Details []apperr.FieldError
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%d %s: %s", e.Status, e.Msg, e.Detail)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Msg)
}

// unreachableError marks a transport failure or 5xx answer. Reads recover from
// it with the sample dataset.
type unreachableError struct {
	err error
}

func (e *unreachableError) Error() string { return "api unreachable: " + e.err.Error() }
func (e *unreachableError) Unwrap() error { return e.err }

// IsUnreachable reports whether err means the server could not answer.
func IsUnreachable(err error) bool {
	var u *unreachableError
	return errors.As(err, &u)
}

type envelope[T any] struct {
	Code    int                 `json:"code"`
	Data    T                   `json:"data"`
	Msg     string              `json:"msg"`
	Error   string              `json:"error"`
	Details []apperr.FieldError `json:"details"`
	Source  string              `json:"source"`
}

// Result is decoded data with the store that produced it ("real" or "mock").
type Result[T any] struct {
	Data   T
	Source string
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any) ([]byte, string, error) {
	var rdr io.Reader
	if body != nil {
		b, err := sonic.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, "", ctx.Err()
		}
		return nil, "", &unreachableError{err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &unreachableError{err: err}
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, "", &unreachableError{err: fmt.Errorf("%s %s answered %d", method, path, resp.StatusCode)}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		var env envelope[any]
		_ = sonic.Unmarshal(raw, &env)
		return nil, "", &APIError{Status: resp.StatusCode, Msg: env.Msg, Detail: env.Error, Details: env.Details}
	}
	return raw, resp.Header.Get(sourceHeader), nil
}

func decode[T any](raw []byte, header string) (Result[T], error) {
	var env envelope[T]
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return Result[T]{}, fmt.Errorf("decode response: %w", err)
	}
	src := env.Source
	if src == "" {
		src = header
	}
	return Result[T]{Data: env.Data, Source: src}, nil
}

// cacheKey is the path plus the canonical (sorted) query string.
func cacheKey(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

// get answers from the cache, or fetches and caches a successful answer.
func get[T any](ctx context.Context, c *Client, path string, query url.Values) (Result[T], error) {
	key := cacheKey(path, query)
	raw, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.log.Warn("client cache read failed", zap.String("key", key), zap.Error(err))
	}
	if ok {
		return decode[T](raw, "")
	}

	epoch := c.epoch.Load()
	raw, header, err := c.send(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return Result[T]{}, err
	}
	res, err := decode[T](raw, header)
	if err != nil {
		return res, err
	}
	c.fill(ctx, key, raw, epoch)
	return res, nil
}

func (c *Client) fill(ctx context.Context, key string, raw []byte, epoch uint64) {
	c.fillMu.RLock()
	defer c.fillMu.RUnlock()
	if ctx.Err() != nil || c.epoch.Load() != epoch {
		return
	}
	if err := c.cache.Set(ctx, key, raw); err != nil {
		c.log.Warn("client cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// mutate sends a write and, once the server confirms it, invalidates what it
// may have changed. There is no local optimistic update.
func mutate[T any](ctx context.Context, c *Client, method, path string, body any, effect func(T) Mutation) (Result[T], error) {
	raw, header, err := c.send(ctx, method, path, nil, body)
	if err != nil {
		return Result[T]{}, err
	}
	res, err := decode[T](raw, header)
	if err != nil {
		return res, err
	}
	c.Invalidate(ctx, effect(res.Data))
	return res, nil
}
