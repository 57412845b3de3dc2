package client

import (
	"context"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
)

// Mutation describes a confirmed write. Fields holds the entity's filterable
// attributes after the write, keyed by query parameter name; an unset
// reference is recorded as noneValue.
type Mutation struct {
	Kind    model.Kind
	ID      uint
	Fields  url.Values
	Deleted bool
}

// noneValue never equals a query id, so an entity without an assignee, client
// or members stays out of lists filtered on one.
const noneValue = "none"

var collections = map[model.Kind]string{
	model.KindProject:      "/projects",
	model.KindTask:         "/tasks",
	model.KindUser:         "/users",
	model.KindNotification: "/notifications",
	model.KindTimeEntry:    "/time-entries",
}

// derived lists paths whose answers are computed from other entities.
var derived = []string{"/analytics", "/activity"}

// Invalidate drops the cached answers m may have changed and refetches the
// hooks showing them.
func (c *Client) Invalidate(ctx context.Context, m Mutation) {
	stale := c.evict(ctx, m)

	for _, w := range c.watchers() {
		k := w.currentKey()
		if k == "" {
			continue
		}
		if slices.Contains(stale, k) || m.affects(k, nil) {
			w.Refetch()
		}
	}
}

func (c *Client) evict(ctx context.Context, m Mutation) []string {
	c.fillMu.Lock()
	defer c.fillMu.Unlock()
	c.epoch.Add(1)

	keys, err := c.cache.Keys(ctx)
	if err != nil {
		c.log.Warn("client cache scan failed", zap.Error(err))
	}

	var stale []string
	for _, k := range keys {
		raw, _, _ := c.cache.Get(ctx, k)
		if m.affects(k, raw) {
			stale = append(stale, k)
		}
	}
	if len(stale) > 0 {
		if err := c.cache.Delete(ctx, stale...); err != nil {
			c.log.Warn("client cache delete failed", zap.Error(err))
		}
	}
	return stale
}

// affects reports whether the answer cached under key may be stale after m.
// raw is the cached body, or nil when unknown.
func (m Mutation) affects(key string, raw []byte) bool {
	path, rawQuery, _ := strings.Cut(key, "?")
	query, _ := url.ParseQuery(rawQuery)

	for _, d := range derived {
		if path == d {
			return true
		}
	}
	// tasks, projects and comments notify users as a side effect
	if path == "/notifications" && (m.Kind == model.KindTask || m.Kind == model.KindProject || m.Kind == model.KindComment) {
		return true
	}

	if m.Kind == model.KindComment {
		taskID := m.Fields.Get("taskId")
		return taskID != "" && (path == "/tasks/"+taskID || path == "/tasks/"+taskID+"/comments")
	}

	base, ok := collections[m.Kind]
	if !ok {
		return false
	}
	if m.ID != 0 {
		own := base + "/" + strconv.FormatUint(uint64(m.ID), 10)
		if path == own || strings.HasPrefix(path, own+"/") {
			return true
		}
	}
	if path != base {
		return false
	}
	if m.Deleted {
		// a cached list changes only if it held the entity
		return raw == nil || listContains(raw, m.ID)
	}
	return m.consistent(query) || (m.ID != 0 && listContains(raw, m.ID))
}

// consistent reports whether the entity passes every filter in query. Filters
// the mutation carries no value for are assumed to match.
func (m Mutation) consistent(query url.Values) bool {
	for k, want := range query {
		have, ok := m.Fields[k]
		if !ok {
			continue
		}
		if !slices.ContainsFunc(want, func(w string) bool { return slices.Contains(have, w) }) {
			return false
		}
	}
	return true
}

func listContains(raw []byte, id uint) bool {
	if raw == nil {
		return false
	}
	var env envelope[[]struct {
		ID uint `json:"id"`
	}]
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return false
	}
	return slices.ContainsFunc(env.Data, func(e struct {
		ID uint `json:"id"`
	}) bool {
		return e.ID == id
	})
}

func projectFields(p model.Project) url.Values {
	v := url.Values{"status": {string(p.Status)}}
	v.Set("clientId", idValue(p.ClientID))
	for _, m := range p.TeamMembers {
		v.Add("memberId", strconv.FormatUint(uint64(m), 10))
	}
	if len(p.TeamMembers) == 0 {
		v.Set("memberId", noneValue)
	}
	return v
}

func taskFields(t model.Task) url.Values {
	return url.Values{
		"projectId":  {strconv.FormatUint(uint64(t.ProjectID), 10)},
		"status":     {string(t.Status)},
		"assigneeId": {idValue(t.AssigneeID)},
	}
}

func idValue(id *uint) string {
	if id == nil {
		return noneValue
	}
	return strconv.FormatUint(uint64(*id), 10)
}
