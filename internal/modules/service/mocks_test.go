package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/mockstore"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/pkg/apperr"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errDown = apperr.Connectivity(errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"))

type toggle bool

func (t toggle) Enabled() bool { return bool(t) }

// MockProjectRepo is a mock implementation of ProjectRepo
type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) List(ctx context.Context, f model.ProjectFilter) ([]model.Project, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectRepo) Get(ctx context.Context, id uint) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepo) Create(ctx context.Context, p *model.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepo) Update(ctx context.Context, id uint, patch model.ProjectPatch) (*model.Project, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepo) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTaskRepo is a mock implementation of TaskRepo
type MockTaskRepo struct {
	mock.Mock
}

func (m *MockTaskRepo) List(ctx context.Context, f model.TaskFilter) ([]model.Task, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepo) Get(ctx context.Context, id uint) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepo) Create(ctx context.Context, t *model.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepo) Update(ctx context.Context, id uint, patch model.TaskPatch) (*model.Task, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepo) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCommentRepo struct {
	mock.Mock
}

func (m *MockCommentRepo) List(ctx context.Context, f model.CommentFilter) ([]model.Comment, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Comment), args.Error(1)
}

func (m *MockCommentRepo) Create(ctx context.Context, c *model.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// MockUserRepo is a mock implementation of UserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) List(ctx context.Context, f model.UserFilter) ([]model.User, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepo) Get(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) Create(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepo) Update(ctx context.Context, id uint, patch model.UserPatch) (*model.User, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) List(ctx context.Context, f model.NotificationFilter) ([]model.Notification, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepo) SetRead(ctx context.Context, id uint, read bool) (*model.Notification, error) {
	args := m.Called(ctx, id, read)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *MockNotificationRepo) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockTimeEntryRepo struct {
	mock.Mock
}

func (m *MockTimeEntryRepo) List(ctx context.Context, f model.TimeEntryFilter) ([]model.TimeEntry, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepo) Create(ctx context.Context, e *model.TimeEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

// MockPublisher is a mock implementation of queue.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishJSON(ctx context.Context, routingKey string, data any) error {
	args := m.Called(ctx, routingKey, data)
	return args.Error(0)
}

// env wires every service over mock repos and a seeded mock store.
type env struct {
	store    *mockstore.Store
	projects *MockProjectRepo
	tasks    *MockTaskRepo
	comments *MockCommentRepo
	users    *MockUserRepo
	notes    *MockNotificationRepo
	entries  *MockTimeEntryRepo

	activity      ActivityService
	notifications NotificationService
	projectSvc    ProjectService
	taskSvc       TaskService
	userSvc       UserService
	entrySvc      TimeEntryService
	analyticsSvc  AnalyticsService
}

func newEnv(t *testing.T, primary bool) *env {
	t.Helper()
	store, err := mockstore.NewSeeded()
	require.NoError(t, err)

	log := zap.NewNop()
	res := NewResolver(toggle(primary), log)
	e := &env{
		store:    store,
		projects: &MockProjectRepo{},
		tasks:    &MockTaskRepo{},
		comments: &MockCommentRepo{},
		users:    &MockUserRepo{},
		notes:    &MockNotificationRepo{},
		entries:  &MockTimeEntryRepo{},
	}
	e.activity = NewActivityService(store, nil, log)
	e.notifications = NewNotificationService(e.notes, store, res, log)
	e.projectSvc = NewProjectService(e.projects, store, res, e.activity, e.notifications, log)
	e.taskSvc = NewTaskService(e.tasks, e.comments, store, res, e.activity, e.notifications, log)
	e.userSvc = NewUserService(e.users, store, res, log)
	e.entrySvc = NewTimeEntryService(e.entries, store, res, log)
	e.analyticsSvc = NewAnalyticsService(e.projectSvc, e.taskSvc, e.userSvc, e.entrySvc, e.activity)

	t.Cleanup(func() {
		e.projects.AssertExpectations(t)
		e.tasks.AssertExpectations(t)
		e.comments.AssertExpectations(t)
		e.users.AssertExpectations(t)
		e.notes.AssertExpectations(t)
		e.entries.AssertExpectations(t)
	})
	return e
}

func ptr[T any](v T) *T { return &v }
