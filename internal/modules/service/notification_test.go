package service

import (
	"context"
	"testing"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_ListNewestFirst(t *testing.T) {
	e := newEnv(t, false)

	res, err := e.notifications.List(context.Background(), model.NotificationFilter{UserID: ptr(uint(2))})
	require.NoError(t, err)
	require.Len(t, res.Data, 2)
	assert.Equal(t, "Deadline approaching", res.Data[0].Title)
	assert.Equal(t, "New task assigned", res.Data[1].Title)
}

func TestNotificationService_MarkAllRead(t *testing.T) {
	ctx := context.Background()

	t.Run("mock store only touches the user's unread items", func(t *testing.T) {
		e := newEnv(t, false)
		res, err := e.notifications.MarkAllRead(ctx, 1)
		require.NoError(t, err)
		assert.EqualValues(t, 1, res.Data)

		for _, n := range e.store.Notifications.List(nil) {
			if n.UserID == 1 {
				assert.True(t, n.Read)
			}
		}
		others, _ := e.notifications.List(ctx, model.NotificationFilter{UserID: ptr(uint(2)), UnreadOnly: true})
		assert.Len(t, others.Data, 2)
	})

	t.Run("primary store", func(t *testing.T) {
		e := newEnv(t, true)
		e.notes.On("MarkAllRead", mock.Anything, uint(1)).Return(int64(3), nil)
		res, err := e.notifications.MarkAllRead(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, SourceReal, res.Source)
		assert.EqualValues(t, 3, res.Data)
	})
}

func TestNotificationService_SetRead(t *testing.T) {
	e := newEnv(t, false)

	res, err := e.notifications.SetRead(context.Background(), 3, true)
	require.NoError(t, err)
	assert.True(t, res.Data.Read)

	_, err = e.notifications.SetRead(context.Background(), 99, true)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestNotificationService_NotifySwallowsFailures(t *testing.T) {
	e := newEnv(t, true)
	e.notes.On("Create", mock.Anything, mock.AnythingOfType("*model.Notification")).
		Return(apperr.Validation("create notification: constraint violated"))

	assert.NotPanics(t, func() {
		e.notifications.Notify(context.Background(), model.Notification{UserID: 1, Title: "x", Type: model.NotifyTeamUpdated})
	})
}
