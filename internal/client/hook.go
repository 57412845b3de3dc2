package client

import (
	"context"
	"net/url"
	"sync"

	"go.uber.org/zap"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// State is a snapshot of a hook. Data keeps the previous answer while a new
// one is loading.
type State[T any] struct {
	Status   Status
	Data     T
	Source   string
	Fallback bool
	Err      error
}

// route maps hook params to the request path and query.
type route func(params url.Values) (string, url.Values)

// fallbackFunc answers params from the sample dataset.
type fallbackFunc[T any] func(ctx context.Context, o *offline, params url.Values) (T, error)

type watcher interface {
	currentKey() string
	Refetch()
}

// Hook follows one query. Each SetParams with a new key cancels the request
// in flight and any answer that arrives for an older key is dropped.
type Hook[T any] struct {
	c        *Client
	name     string
	route    route
	fallback fallbackFunc[T]

	mu     sync.Mutex
	gen    uint64
	key    string
	params url.Values
	cancel context.CancelFunc
	done   chan struct{}
	state  State[T]
}

func newHook[T any](c *Client, name string, r route, fb fallbackFunc[T]) *Hook[T] {
	h := &Hook[T]{c: c, name: name, route: r, fallback: fb, state: State[T]{Status: StatusIdle}}
	c.watch(h)
	return h
}

// SetParams fetches for params unless they map to the key already loaded or
// loading.
func (h *Hook[T]) SetParams(params url.Values) {
	path, query := h.route(params)
	key := cacheKey(path, query)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.done != nil && key == h.key && h.state.Status != StatusError {
		return
	}
	h.startLocked(key, params)
}

// Refetch reloads the current params, bypassing nothing but the in-flight call.
func (h *Hook[T]) Refetch() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.done == nil {
		return
	}
	h.startLocked(h.key, h.params)
}

func (h *Hook[T]) startLocked(key string, params url.Values) {
	if h.cancel != nil {
		h.cancel()
	}
	h.gen++
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	h.key, h.params, h.cancel, h.done = key, params, cancel, done
	h.state.Status = StatusLoading
	h.state.Err = nil

	go h.run(ctx, h.gen, params, done)
}

func (h *Hook[T]) run(ctx context.Context, gen uint64, params url.Values, done chan struct{}) {
	defer close(done)
	st := h.load(ctx, params)

	h.mu.Lock()
	defer h.mu.Unlock()
	if gen != h.gen {
		return
	}
	h.state = st
}

func (h *Hook[T]) load(ctx context.Context, params url.Values) State[T] {
	path, query := h.route(params)
	res, err := get[T](ctx, h.c, path, query)
	if err == nil {
		return State[T]{Status: StatusSuccess, Data: res.Data, Source: res.Source}
	}
	if !IsUnreachable(err) || h.fallback == nil {
		return State[T]{Status: StatusError, Err: err}
	}

	h.c.log.Warn("api unreachable, answering from sample data",
		zap.String("hook", h.name),
		zap.String("key", cacheKey(path, query)),
		zap.Error(err))

	o, oerr := h.c.offlineData()
	if oerr != nil {
		return State[T]{Status: StatusError, Err: oerr}
	}
	data, ferr := h.fallback(ctx, o, params)
	if ferr != nil {
		return State[T]{Status: StatusError, Err: ferr}
	}
	return State[T]{Status: StatusSuccess, Data: data, Source: "mock", Fallback: true}
}

func (h *Hook[T]) State() State[T] {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Wait blocks until the latest fetch settles or ctx ends.
func (h *Hook[T]) Wait(ctx context.Context) (State[T], error) {
	for {
		h.mu.Lock()
		done, st := h.done, h.state
		h.mu.Unlock()
		if done == nil {
			return st, nil
		}

		select {
		case <-done:
			h.mu.Lock()
			if h.done == done {
				st = h.state
				h.mu.Unlock()
				return st, nil
			}
			h.mu.Unlock()
		case <-ctx.Done():
			return st, ctx.Err()
		}
	}
}

// Close cancels the request in flight and stops invalidation refetches.
func (h *Hook[T]) Close() {
	h.c.unwatch(h)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancel != nil {
		h.cancel()
	}
	h.gen++
}

func (h *Hook[T]) currentKey() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.key
}

func (c *Client) watch(w watcher) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks[w] = struct{}{}
}

func (c *Client) unwatch(w watcher) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.hooks, w)
}

func (c *Client) watchers() []watcher {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]watcher, 0, len(c.hooks))
	for w := range c.hooks {
		out = append(out, w)
	}
	return out
}
