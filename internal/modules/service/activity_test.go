package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/mockstore"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestActivityService_PublishFailureIsSwallowed(t *testing.T) {
	store := mockstore.New()
	pub := &MockPublisher{}
	pub.On("PublishJSON", mock.Anything, "activity.task.deleted", mock.AnythingOfType("model.Activity")).
		Return(errors.New("channel/connection is not open"))

	svc := NewActivityService(store, pub, zap.NewNop())
	assert.NotPanics(t, func() {
		svc.Record(context.Background(), model.VerbDeleted, model.KindTask, 3, "deleted task 3")
	})
	assert.Equal(t, 1, store.Activities.Len())
	pub.AssertExpectations(t)
}

func TestActivityService_RecentIsNewestFirstAndBounded(t *testing.T) {
	svc := NewActivityService(mockstore.New(), nil, zap.NewNop())
	for i := uint(1); i <= 30; i++ {
		svc.Record(context.Background(), model.VerbUpdated, model.KindProject, i, "")
	}

	got := svc.Recent(context.Background(), 0)
	assert.Len(t, got, defaultActivityLimit)
	assert.EqualValues(t, 30, got[0].EntityID)

	assert.Len(t, svc.Recent(context.Background(), 1000), 30)
}
