package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/mockstore"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/service"
)

// offline answers reads from the bundled sample dataset through the same
// services the server uses with its primary store switched off.
type offline struct {
	projects  service.ProjectService
	tasks     service.TaskService
	users     service.UserService
	notes     service.NotificationService
	analytics service.AnalyticsService
}

func (c *Client) offlineData() (*offline, error) {
	c.offlineOnce.Do(func() {
		store, err := mockstore.NewSeeded()
		if err != nil {
			c.offlineErr = fmt.Errorf("load sample data: %w", err)
			return
		}
		log := c.log.Named("offline")
		res := service.NewResolver(nil, log)
		activity := service.NewActivityService(store, nil, log)
		notes := service.NewNotificationService(nil, store, res, log)
		projects := service.NewProjectService(nil, store, res, activity, notes, log)
		tasks := service.NewTaskService(nil, nil, store, res, activity, notes, log)
		users := service.NewUserService(nil, store, res, log)
		entries := service.NewTimeEntryService(nil, store, res, log)
		c.offline = &offline{
			projects:  projects,
			tasks:     tasks,
			users:     users,
			notes:     notes,
			analytics: service.NewAnalyticsService(projects, tasks, users, entries, activity),
		}
	})
	return c.offline, c.offlineErr
}

func fixed(path string) route {
	return func(params url.Values) (string, url.Values) { return path, params }
}

// byID moves the "id" param into the path.
func byID(base string) route {
	return func(params url.Values) (string, url.Values) {
		rest := url.Values{}
		for k, v := range params {
			if k != "id" {
				rest[k] = v
			}
		}
		return base + "/" + params.Get("id"), rest
	}
}

func qUint(q url.Values, key string) *uint {
	v, err := strconv.ParseUint(q.Get(key), 10, 64)
	if err != nil {
		return nil
	}
	u := uint(v)
	return &u
}

func qDate(q url.Values, key string) *time.Time {
	t, err := time.Parse(time.DateOnly, q.Get(key))
	if err != nil {
		return nil
	}
	return &t
}

// IDParams builds the params of a single-entity hook.
func IDParams(id uint) url.Values {
	return url.Values{"id": {strconv.FormatUint(uint64(id), 10)}}
}

func (c *Client) Projects() *Hook[[]model.Project] {
	return newHook(c, "projects", fixed("/projects"),
		func(ctx context.Context, o *offline, q url.Values) ([]model.Project, error) {
			res, err := o.projects.List(ctx, model.ProjectFilter{
				Status:         model.ProjectStatus(q.Get("status")),
				ClientID:       qUint(q, "clientId"),
				MemberID:       qUint(q, "memberId"),
				DeadlineBefore: qDate(q, "deadlineBefore"),
			})
			return res.Data, err
		})
}

func (c *Client) Project() *Hook[model.Project] {
	return newHook(c, "project", byID("/projects"),
		func(ctx context.Context, o *offline, q url.Values) (model.Project, error) {
			id := qUint(q, "id")
			if id == nil {
				return model.Project{}, fmt.Errorf("project id %q", q.Get("id"))
			}
			res, err := o.projects.Get(ctx, *id)
			if err != nil {
				return model.Project{}, err
			}
			return *res.Data, nil
		})
}

func (c *Client) Tasks() *Hook[[]model.Task] {
	return newHook(c, "tasks", fixed("/tasks"),
		func(ctx context.Context, o *offline, q url.Values) ([]model.Task, error) {
			res, err := o.tasks.List(ctx, model.TaskFilter{
				ProjectID:      qUint(q, "projectId"),
				AssigneeID:     qUint(q, "assigneeId"),
				Status:         model.TaskStatus(q.Get("status")),
				DeadlineBefore: qDate(q, "deadlineBefore"),
			})
			return res.Data, err
		})
}

func (c *Client) Task() *Hook[model.Task] {
	return newHook(c, "task", byID("/tasks"),
		func(ctx context.Context, o *offline, q url.Values) (model.Task, error) {
			id := qUint(q, "id")
			if id == nil {
				return model.Task{}, fmt.Errorf("task id %q", q.Get("id"))
			}
			res, err := o.tasks.Get(ctx, *id)
			if err != nil {
				return model.Task{}, err
			}
			return *res.Data, nil
		})
}

func (c *Client) Users() *Hook[[]model.User] {
	return newHook(c, "users", fixed("/users"),
		func(ctx context.Context, o *offline, q url.Values) ([]model.User, error) {
			res, err := o.users.List(ctx, model.UserFilter{Role: model.Role(q.Get("role")), Email: q.Get("email")})
			return res.Data, err
		})
}

func (c *Client) Notifications() *Hook[[]model.Notification] {
	return newHook(c, "notifications", fixed("/notifications"),
		func(ctx context.Context, o *offline, q url.Values) ([]model.Notification, error) {
			unread, _ := strconv.ParseBool(q.Get("unreadOnly"))
			res, err := o.notes.List(ctx, model.NotificationFilter{UserID: qUint(q, "userId"), UnreadOnly: unread})
			return res.Data, err
		})
}

// Summary follows the dashboard summary analytics.
func (c *Client) Summary() *Hook[service.Summary] {
	return newHook(c, "summary",
		func(url.Values) (string, url.Values) {
			return "/analytics", url.Values{"type": {string(service.AnalyticsSummary)}}
		},
		func(ctx context.Context, o *offline, _ url.Values) (service.Summary, error) {
			res, err := o.analytics.Summary(ctx)
			return res.Data, err
		})
}

// Status asks the server for its backend status. It is never cached; when the
// server cannot be reached the answer says so instead of failing.
func (c *Client) Status(ctx context.Context) (service.SystemStatus, error) {
	raw, header, err := c.send(ctx, http.MethodGet, "/system/status", nil, nil)
	if IsUnreachable(err) {
		c.log.Warn("api unreachable", zap.Error(err))
		return service.SystemStatus{UsingMockData: true, Environment: "offline", Timestamp: time.Now().UTC()}, nil
	}
	if err != nil {
		return service.SystemStatus{}, err
	}
	res, err := decode[service.SystemStatus](raw, header)
	return res.Data, err
}

func (c *Client) CreateProject(ctx context.Context, p model.Project) (model.Project, error) {
	res, err := mutate(ctx, c, http.MethodPost, "/projects", p, func(p model.Project) Mutation {
		return Mutation{Kind: model.KindProject, ID: p.ID, Fields: projectFields(p)}
	})
	return res.Data, err
}

func (c *Client) UpdateProject(ctx context.Context, id uint, patch model.ProjectPatch) (model.Project, error) {
	res, err := mutate(ctx, c, http.MethodPatch, fmt.Sprintf("/projects/%d", id), patch, func(p model.Project) Mutation {
		return Mutation{Kind: model.KindProject, ID: p.ID, Fields: projectFields(p)}
	})
	return res.Data, err
}

func (c *Client) DeleteProject(ctx context.Context, id uint) error {
	_, err := mutate(ctx, c, http.MethodDelete, fmt.Sprintf("/projects/%d", id), nil, func(deletedID) Mutation {
		return Mutation{Kind: model.KindProject, ID: id, Deleted: true}
	})
	return err
}

func (c *Client) CreateTask(ctx context.Context, t model.Task) (model.Task, error) {
	res, err := mutate(ctx, c, http.MethodPost, "/tasks", t, func(t model.Task) Mutation {
		return Mutation{Kind: model.KindTask, ID: t.ID, Fields: taskFields(t)}
	})
	return res.Data, err
}

func (c *Client) UpdateTask(ctx context.Context, id uint, patch model.TaskPatch) (model.Task, error) {
	res, err := mutate(ctx, c, http.MethodPatch, fmt.Sprintf("/tasks/%d", id), patch, func(t model.Task) Mutation {
		return Mutation{Kind: model.KindTask, ID: t.ID, Fields: taskFields(t)}
	})
	return res.Data, err
}

func (c *Client) DeleteTask(ctx context.Context, id uint) error {
	_, err := mutate(ctx, c, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, func(deletedID) Mutation {
		return Mutation{Kind: model.KindTask, ID: id, Deleted: true}
	})
	return err
}

func (c *Client) AddComment(ctx context.Context, taskID uint, text string) (model.Comment, error) {
	body := map[string]any{"text": text}
	res, err := mutate(ctx, c, http.MethodPost, fmt.Sprintf("/tasks/%d/comments", taskID), body, func(cm model.Comment) Mutation {
		return Mutation{Kind: model.KindComment, ID: cm.ID, Fields: url.Values{"taskId": {strconv.FormatUint(uint64(taskID), 10)}}}
	})
	return res.Data, err
}

func (c *Client) SetNotificationRead(ctx context.Context, id uint, read bool) (model.Notification, error) {
	body := map[string]any{"id": id, "read": read}
	res, err := mutate(ctx, c, http.MethodPatch, "/notifications", body, func(n model.Notification) Mutation {
		return Mutation{Kind: model.KindNotification, ID: n.ID, Fields: url.Values{"userId": {strconv.FormatUint(uint64(n.UserID), 10)}}}
	})
	return res.Data, err
}

type markAllRead struct {
	UserID  uint  `json:"userId"`
	Updated int64 `json:"updated"`
}

// MarkAllNotificationsRead returns how many notifications changed.
func (c *Client) MarkAllNotificationsRead(ctx context.Context, userID uint) (int64, error) {
	body := map[string]any{"userId": userID, "markAllAsRead": true}
	res, err := mutate(ctx, c, http.MethodPatch, "/notifications", body, func(markAllRead) Mutation {
		return Mutation{Kind: model.KindNotification, Fields: url.Values{"userId": {strconv.FormatUint(uint64(userID), 10)}}}
	})
	return res.Data.Updated, err
}

type deletedID struct {
	ID uint `json:"id"`
}
