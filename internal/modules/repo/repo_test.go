package repo

import (
	"context"
	"fmt"
	"testing"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/config"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/infra/db"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/mockstore"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSeededProvider(t *testing.T) *db.Provider {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	cfg := &config.Config{Database: config.DBCfg{UseRealBackend: true, Driver: "sqlite", DSN: dsn}}
	p := db.NewProvider(cfg, zap.NewNop())
	t.Cleanup(func() { _ = p.Close() })

	d, err := p.DB(context.Background())
	require.NoError(t, err)
	require.NoError(t, db.Migrate(d))
	store, err := mockstore.NewSeeded()
	require.NoError(t, err)
	require.NoError(t, db.Seed(d, store))
	return p
}

func ptr[T any](v T) *T { return &v }

func TestProjectRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	r := NewProjectRepo(newSeededProvider(t))

	all, err := r.List(ctx, model.ProjectFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)

	members, err := r.List(ctx, model.ProjectFilter{MemberID: ptr(uint(3))})
	require.NoError(t, err)
	for _, p := range members {
		assert.Contains(t, []uint(p.TeamMembers), uint(3))
	}
	assert.NotEmpty(t, members)

	p := &model.Project{Name: "Data Platform", Status: model.ProjectNotStarted, Priority: model.PriorityHigh, TeamMembers: []uint{2}}
	require.NoError(t, r.Create(ctx, p))
	assert.EqualValues(t, 5, p.ID)

	updated, err := r.Update(ctx, p.ID, model.ProjectPatch{Progress: ptr(40)})
	require.NoError(t, err)
	assert.Equal(t, 40, updated.Progress)
	assert.Equal(t, "Data Platform", updated.Name)

	require.NoError(t, r.Delete(ctx, p.ID))
	_, err = r.Get(ctx, p.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	err = r.Delete(ctx, p.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestProjectRepo_UpdateMissing(t *testing.T) {
	r := NewProjectRepo(newSeededProvider(t))
	_, err := r.Update(context.Background(), 999, model.ProjectPatch{Name: ptr("x")})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestTaskRepo_GetPreloadsComments(t *testing.T) {
	ctx := context.Background()
	r := NewTaskRepo(newSeededProvider(t))

	task, err := r.Get(ctx, 1)
	require.NoError(t, err)
	require.Len(t, task.Comments, 2)
	assert.True(t, !task.Comments[1].CreatedAt.Before(task.Comments[0].CreatedAt))

	byProject, err := r.List(ctx, model.TaskFilter{ProjectID: ptr(uint(1))})
	require.NoError(t, err)
	for _, tk := range byProject {
		assert.EqualValues(t, 1, tk.ProjectID)
	}

	done, err := r.Update(ctx, 1, model.TaskPatch{Status: ptr(model.TaskCompleted)})
	require.NoError(t, err)
	assert.Equal(t, model.TaskCompleted, done.Status)
	assert.Len(t, done.Comments, 2)
}

func TestUserRepo_DuplicateEmailIsConflict(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepo(newSeededProvider(t))

	existing, err := r.Get(ctx, 2)
	require.NoError(t, err)

	err = r.Create(ctx, &model.User{Name: "Dup", Email: existing.Email, Role: model.RoleTeam, PasswordHash: "x"})
	assert.True(t, apperr.Is(err, apperr.KindConflict), "got %v", err)

	found, err := r.List(ctx, model.UserFilter{Email: "  " + existing.Email})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, existing.ID, found[0].ID)
}

func TestNotificationRepo_ReadFlags(t *testing.T) {
	ctx := context.Background()
	r := NewNotificationRepo(newSeededProvider(t))

	list, err := r.List(ctx, model.NotificationFilter{UserID: ptr(uint(2))})
	require.NoError(t, err)
	require.NotEmpty(t, list)
	for i := 1; i < len(list); i++ {
		assert.False(t, list[i].CreatedAt.After(list[i-1].CreatedAt), "newest first")
	}

	n, err := r.SetRead(ctx, list[0].ID, true)
	require.NoError(t, err)
	assert.True(t, n.Read)

	_, err = r.MarkAllRead(ctx, 2)
	require.NoError(t, err)
	unread, err := r.List(ctx, model.NotificationFilter{UserID: ptr(uint(2)), UnreadOnly: true})
	require.NoError(t, err)
	assert.Empty(t, unread)

	_, err = r.SetRead(ctx, 999, true)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestTimeEntryRepo_CreateAndFilter(t *testing.T) {
	ctx := context.Background()
	r := NewTimeEntryRepo(newSeededProvider(t))

	e := &model.TimeEntry{Minutes: 90, UserID: 4, ProjectID: 2, Description: "review"}
	require.NoError(t, r.Create(ctx, e))
	assert.NotZero(t, e.ID)

	mine, err := r.List(ctx, model.TimeEntryFilter{UserID: ptr(uint(4))})
	require.NoError(t, err)
	for _, m := range mine {
		assert.EqualValues(t, 4, m.UserID)
	}

	err = r.Create(ctx, &model.TimeEntry{Minutes: 0, UserID: 4, ProjectID: 2})
	assert.True(t, apperr.Is(err, apperr.KindValidation), "got %v", err)
}

func TestCommentRepo(t *testing.T) {
	ctx := context.Background()
	r := NewCommentRepo(newSeededProvider(t))

	c := &model.Comment{TaskID: 1, AuthorID: 2, AuthorName: "John Doe", Text: "ship it"}
	require.NoError(t, r.Create(ctx, c))

	list, err := r.List(ctx, model.CommentFilter{TaskID: ptr(uint(1))})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "ship it", list[2].Text)
}

func TestClassify(t *testing.T) {
	assert.Nil(t, classify("op", nil))
	assert.Equal(t, apperr.KindConnectivity, apperr.KindOf(classify("op", fmt.Errorf("dial tcp: connection refused"))))
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(classify("op", fmt.Errorf("UNIQUE constraint failed: users.email"))))
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(classify("op", fmt.Errorf("boom"))))

	nf := apperr.NotFound("task", 3)
	assert.Same(t, nf, classify("op", nf))
}
