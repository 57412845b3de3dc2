package service

import (
	"context"
	"testing"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/pkg/apperr"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/pkg/utils/tokens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTaskService_ListByProjectInCreationOrder(t *testing.T) {
	e := newEnv(t, false)

	res, err := e.taskSvc.List(context.Background(), model.TaskFilter{ProjectID: ptr(uint(1))})
	require.NoError(t, err)
	require.Len(t, res.Data, 3)
	for i, tk := range res.Data {
		assert.EqualValues(t, i+1, tk.ID)
		assert.EqualValues(t, 1, tk.ProjectID)
	}
}

func TestTaskService_GetFallbackCarriesComments(t *testing.T) {
	e := newEnv(t, true)
	e.tasks.On("Get", mock.Anything, uint(1)).Return(nil, errDown)

	res, err := e.taskSvc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, SourceMock, res.Source)
	require.Len(t, res.Data.Comments, 2)
	assert.Equal(t, "Looks great, please add a dark variant.", res.Data.Comments[0].Text)
}

func TestTaskService_CreateWithAssigneeNotifies(t *testing.T) {
	ctx := tokens.WithIdentity(context.Background(), tokens.Identity{UserID: 1, Name: "Admin User", Role: "admin"})
	e := newEnv(t, false)

	res, err := e.taskSvc.Create(ctx, &model.Task{Title: "Write release notes", ProjectID: 1, AssigneeID: ptr(uint(4))})
	require.NoError(t, err)
	assert.Equal(t, model.TaskNotStarted, res.Data.Status)

	notes := e.store.Notifications.List(model.NotificationFilter{UserID: ptr(uint(4))}.Match)
	last := notes[len(notes)-1]
	assert.Equal(t, model.NotifyTaskAssigned, last.Type)
	assert.Equal(t, res.Data.ID, *last.RelatedID)

	recent := e.activity.Recent(ctx, 1)
	require.Len(t, recent, 1)
	assert.Equal(t, "Admin User", recent[0].ActorName)
	assert.Equal(t, model.KindTask, recent[0].EntityKind)
}

func TestTaskService_CreateRequiresProject(t *testing.T) {
	e := newEnv(t, true)
	_, err := e.taskSvc.Create(context.Background(), &model.Task{Title: "orphan"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, "projectId", apperr.FieldsOf(err)[0].Field)
}

func TestTaskService_DeleteMissing(t *testing.T) {
	e := newEnv(t, true)
	e.tasks.On("Delete", mock.Anything, uint(404)).Return(apperr.NotFound("task", 404))

	_, err := e.taskSvc.Delete(context.Background(), 404)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestTaskService_MockDeleteDropsComments(t *testing.T) {
	e := newEnv(t, false)
	_, err := e.taskSvc.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, e.store.Comments.List(model.CommentFilter{TaskID: ptr(uint(1))}.Match))

	_, err = e.taskSvc.Comments(context.Background(), 1)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestTaskService_AddComment(t *testing.T) {
	ctx := context.Background()

	t.Run("primary store", func(t *testing.T) {
		e := newEnv(t, true)
		e.tasks.On("Get", mock.Anything, uint(2)).Return(&model.Task{ID: 2, Title: "nav", AssigneeID: ptr(uint(2))}, nil)
		e.comments.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Comment) bool {
			return c.TaskID == 2 && c.AuthorID == 3 && c.Text == "logo is in"
		})).Return(nil)
		e.notes.On("Create", mock.Anything, mock.MatchedBy(func(n *model.Notification) bool {
			return n.UserID == 2 && n.Type == model.NotifyCommentAdded
		})).Return(nil)

		res, err := e.taskSvc.AddComment(ctx, 2, CommentInput{AuthorID: 3, AuthorName: "Jane Smith", Text: "logo is in"})
		require.NoError(t, err)
		assert.Equal(t, SourceReal, res.Source)
	})

	t.Run("session identity wins over body", func(t *testing.T) {
		e := newEnv(t, false)
		sess := tokens.WithIdentity(ctx, tokens.Identity{UserID: 4, Name: "Mike Johnson"})
		res, err := e.taskSvc.AddComment(sess, 1, CommentInput{AuthorID: 9, AuthorName: "someone", Text: "ok"})
		require.NoError(t, err)
		assert.EqualValues(t, 4, res.Data.AuthorID)
		assert.Equal(t, "Mike Johnson", res.Data.AuthorName)

		list, err := e.taskSvc.Comments(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, list.Data, 3)
	})

	t.Run("missing task", func(t *testing.T) {
		e := newEnv(t, false)
		_, err := e.taskSvc.AddComment(ctx, 99, CommentInput{AuthorID: 1, Text: "hello"})
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
	})

	t.Run("empty text", func(t *testing.T) {
		e := newEnv(t, false)
		_, err := e.taskSvc.AddComment(ctx, 1, CommentInput{AuthorID: 1})
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	})
}

func TestTaskService_EmptyPatchOnlyTouchesUpdatedAt(t *testing.T) {
	e := newEnv(t, false)
	before, _ := e.store.Tasks.Get(3)

	res, err := e.taskSvc.Update(context.Background(), 3, model.TaskPatch{})
	require.NoError(t, err)

	after := *res.Data
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
	after.UpdatedAt = before.UpdatedAt
	after.Comments = nil
	assert.Equal(t, before, after)
}
