package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/bootstrap"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/config"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
)

// newServer runs the real API over a fresh sample dataset with the primary
// store switched off. hits counts requests that reached it.
func newServer(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	inj := bootstrap.BuildContainerWith(&config.Config{
		App: config.AppCfg{Name: "projectpulse-test", Env: gin.TestMode},
		Log: config.LogCfg{Level: "error"},
	})
	engine := do.MustInvoke[*gin.Engine](inj)

	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		engine.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func waitState[T any](t *testing.T, h *Hook[T]) State[T] {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	st, err := h.Wait(ctx)
	require.NoError(t, err)
	return st
}

func TestHook_LoadsFromServer(t *testing.T) {
	srv, _ := newServer(t)
	c := New(srv.URL + "/api/v1")

	h := c.Tasks()
	defer h.Close()
	h.SetParams(url.Values{"projectId": {"1"}})
	st := waitState(t, h)

	require.Equal(t, StatusSuccess, st.Status)
	assert.False(t, st.Fallback)
	assert.Equal(t, "mock", st.Source)
	require.Len(t, st.Data, 3)
	assert.Equal(t, "Design homepage mockups", st.Data[0].Title)
}

func TestHook_FallsBackWhenUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := New(base + "/api/v1")
	h := c.Tasks()
	defer h.Close()
	h.SetParams(url.Values{"projectId": {"1"}})
	st := waitState(t, h)

	require.Equal(t, StatusSuccess, st.Status)
	assert.True(t, st.Fallback)
	assert.Equal(t, "mock", st.Source)
	assert.Len(t, st.Data, 3)
}

func TestHook_FallsBackOn5xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL)
	h := c.Summary()
	defer h.Close()
	h.SetParams(nil)
	st := waitState(t, h)

	require.Equal(t, StatusSuccess, st.Status)
	assert.True(t, st.Fallback)
	assert.Equal(t, 4, st.Data.TotalProjects)
}

func TestHook_ClientErrorIsSurfaced(t *testing.T) {
	srv, _ := newServer(t)
	c := New(srv.URL + "/api/v1")

	h := c.Task()
	defer h.Close()
	h.SetParams(IDParams(999))
	st := waitState(t, h)

	require.Equal(t, StatusError, st.Status)
	var apiErr *APIError
	require.ErrorAs(t, st.Err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.False(t, st.Fallback)
}

func TestHook_CachesByKey(t *testing.T) {
	srv, hits := newServer(t)
	c := New(srv.URL + "/api/v1")

	a := c.Projects()
	defer a.Close()
	a.SetParams(url.Values{"status": {"in_progress"}})
	waitState(t, a)

	b := c.Projects()
	defer b.Close()
	b.SetParams(url.Values{"status": {"in_progress"}})
	st := waitState(t, b)

	assert.Equal(t, StatusSuccess, st.Status)
	assert.EqualValues(t, 1, hits.Load())
}

func TestHook_DropsSupersededAnswer(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("projectId") == "1" {
			select {
			case <-release:
			case <-r.Context().Done():
				return
			}
			_, _ = w.Write([]byte(`{"code":0,"msg":"","source":"real","data":[{"id":1,"title":"old"}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"code":0,"msg":"","source":"real","data":[{"id":5,"title":"new"}]}`))
	}))
	defer srv.Close()
	defer close(release)

	c := New(srv.URL)
	h := c.Tasks()
	defer h.Close()

	h.SetParams(url.Values{"projectId": {"1"}})
	h.SetParams(url.Values{"projectId": {"2"}})
	st := waitState(t, h)

	require.Equal(t, StatusSuccess, st.Status)
	require.Len(t, st.Data, 1)
	assert.Equal(t, "new", st.Data[0].Title)

	_, ok, err := c.cache.Get(context.Background(), "/tasks?projectId=1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGet_SkipsFillAfterInvalidation(t *testing.T) {
	arrived := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(arrived)
		<-release
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":0,"msg":"","source":"real","data":[{"id":1,"title":"before edit"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()
	q := url.Values{"projectId": {"1"}}

	done := make(chan error, 1)
	go func() {
		_, err := get[[]model.Task](ctx, c, "/tasks", q)
		done <- err
	}()

	<-arrived
	c.Invalidate(ctx, Mutation{Kind: model.KindTask, ID: 1, Fields: url.Values{"projectId": {"1"}}})
	close(release)
	require.NoError(t, <-done)

	_, ok, err := c.cache.Get(ctx, "/tasks?projectId=1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMutation_InvalidatesConsistentKeys(t *testing.T) {
	srv, _ := newServer(t)
	c := New(srv.URL + "/api/v1")
	ctx := context.Background()

	for _, q := range []url.Values{{"projectId": {"1"}}, {"projectId": {"2"}}} {
		h := c.Tasks()
		h.SetParams(q)
		waitState(t, h)
		h.Close()
	}
	s := c.Summary()
	s.SetParams(nil)
	before := waitState(t, s)

	created, err := c.CreateTask(ctx, model.Task{Title: "Write release notes", ProjectID: 1})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	cached := func(key string) bool {
		_, ok, err := c.cache.Get(ctx, key)
		require.NoError(t, err)
		return ok
	}
	assert.False(t, cached("/tasks?projectId=1"))
	assert.True(t, cached("/tasks?projectId=2"))

	after := waitState(t, s)
	assert.Equal(t, before.Data.TotalTasks+1, after.Data.TotalTasks)
	s.Close()

	h := c.Tasks()
	defer h.Close()
	h.SetParams(url.Values{"projectId": {"1"}})
	st := waitState(t, h)
	assert.Len(t, st.Data, 4)
}

func TestMutation_Affects(t *testing.T) {
	taskMove := Mutation{Kind: model.KindTask, ID: 2, Fields: url.Values{"projectId": {"1"}, "status": {"completed"}}}
	list := []byte(`{"code":0,"msg":"","data":[{"id":2},{"id":3}]}`)

	tests := []struct {
		name string
		m    Mutation
		key  string
		raw  []byte
		want bool
	}{
		{name: "own key", m: taskMove, key: "/tasks/2", want: true},
		{name: "other entity", m: taskMove, key: "/tasks/3", want: false},
		{name: "consistent filter", m: taskMove, key: "/tasks?projectId=1&status=completed", want: true},
		{name: "unknown filter is kept conservative", m: taskMove, key: "/tasks?deadlineBefore=2024-02-01", want: true},
		{name: "inconsistent filter", m: taskMove, key: "/tasks?status=in_progress", want: false},
		{name: "list held the entity", m: taskMove, key: "/tasks?status=in_progress", raw: list, want: true},
		{name: "analytics", m: taskMove, key: "/analytics?type=summary", want: true},
		{name: "other collection", m: taskMove, key: "/users", want: false},
		{
			name: "comment touches its task",
			m:    Mutation{Kind: model.KindComment, ID: 9, Fields: url.Values{"taskId": {"2"}}},
			key:  "/tasks/2/comments",
			want: true,
		},
		{
			name: "mark all read for another user",
			m:    Mutation{Kind: model.KindNotification, Fields: url.Values{"userId": {"2"}}},
			key:  "/notifications?userId=3",
			want: false,
		},
		{
			name: "delete skips a cached list without the entity",
			m:    Mutation{Kind: model.KindTask, ID: 3, Deleted: true},
			key:  "/tasks?projectId=2",
			raw:  []byte(`{"code":0,"msg":"","data":[{"id":4},{"id":5}]}`),
			want: false,
		},
		{
			name: "delete evicts a cached list holding the entity",
			m:    Mutation{Kind: model.KindTask, ID: 3, Deleted: true},
			key:  "/tasks?projectId=1",
			raw:  list,
			want: true,
		},
		{
			name: "delete with nothing cached",
			m:    Mutation{Kind: model.KindTask, ID: 3, Deleted: true},
			key:  "/tasks?projectId=2",
			want: true,
		},
		{
			name: "unassigned task stays out of assignee lists",
			m:    Mutation{Kind: model.KindTask, ID: 9, Fields: taskFields(model.Task{ProjectID: 1, Status: model.TaskNotStarted})},
			key:  "/tasks?assigneeId=7",
			want: false,
		},
		{
			name: "project without client",
			m:    Mutation{Kind: model.KindProject, ID: 5, Fields: projectFields(model.Project{Status: model.ProjectInProgress})},
			key:  "/projects?clientId=4",
			want: false,
		},
		{
			name: "project member filter",
			m:    Mutation{Kind: model.KindProject, ID: 1, Fields: url.Values{"memberId": {"2", "3"}}},
			key:  "/projects?memberId=3",
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.m.affects(tt.key, tt.raw))
		})
	}
}

func TestStatus(t *testing.T) {
	srv, _ := newServer(t)
	c := New(srv.URL + "/api/v1")

	st, err := c.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, st.DatabaseConnected)
	assert.True(t, st.UsingMockData)

	down := New("http://127.0.0.1:1/api/v1")
	st, err = down.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "offline", st.Environment)
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	require.NoError(t, c.Set(ctx, "/users", []byte("x")))

	v, ok, err := c.Get(ctx, "/users")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("x"), v)

	keys, err := c.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"/users"}, keys)

	require.NoError(t, c.Delete(ctx, "/users"))
	_, ok, _ = c.Get(ctx, "/users")
	assert.False(t, ok)
}
