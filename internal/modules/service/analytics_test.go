package service

import (
	"context"
	"testing"
	"time"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAnalytics_SummaryOnSampleData(t *testing.T) {
	e := newEnv(t, false)
	e.analyticsSvc.(*analyticsService).now = func() time.Time { return time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC) }

	res, err := e.analyticsSvc.Summary(context.Background())
	require.NoError(t, err)
	s := res.Data
	assert.Equal(t, SourceMock, res.Source)
	assert.Equal(t, 4, s.TotalProjects)
	assert.Equal(t, 3, s.ActiveProjects)
	assert.Equal(t, 8, s.TotalTasks)
	assert.Equal(t, 2, s.CompletedTasks)
	assert.Equal(t, 25.0, s.TaskCompletionRate)
	assert.Equal(t, 1, s.OverdueTasks, "only the review task is past its deadline")
	assert.Equal(t, 14.3, s.HoursLogged)
	assert.Equal(t, 3, s.TeamMembers)
}

func TestAnalytics_MixedSourcesReportMock(t *testing.T) {
	e := newEnv(t, true)
	e.projects.On("List", mock.Anything, model.ProjectFilter{}).Return([]model.Project{{ID: 1, Status: model.ProjectCompleted}}, nil)
	e.tasks.On("List", mock.Anything, model.TaskFilter{}).Return(nil, errDown)
	e.users.On("List", mock.Anything, model.UserFilter{Role: model.RoleTeam}).Return([]model.User{}, nil)
	e.entries.On("List", mock.Anything, model.TimeEntryFilter{}).Return([]model.TimeEntry{}, nil)

	res, err := e.analyticsSvc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceMock, res.Source)
	assert.Equal(t, 1, res.Data.CompletedProjects)
}

func TestAnalytics_StatusBreakdowns(t *testing.T) {
	e := newEnv(t, false)

	ps, err := e.analyticsSvc.ProjectStatus(context.Background())
	require.NoError(t, err)
	require.Len(t, ps.Data, len(model.ProjectStatuses))
	total := 0
	for _, c := range ps.Data {
		total += c.Count
	}
	assert.Equal(t, 4, total)

	ts, err := e.analyticsSvc.TaskStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusCount{Status: "completed", Count: 2}, ts.Data[4])
}

func TestAnalytics_UserTasksSkipsClients(t *testing.T) {
	e := newEnv(t, false)
	res, err := e.analyticsSvc.UserTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Data, 4)

	byID := map[uint]UserTaskStats{}
	for _, st := range res.Data {
		byID[st.UserID] = st
	}
	assert.Equal(t, 3, byID[2].Total)
	assert.Equal(t, 1, byID[2].InProgress)
	assert.Equal(t, 2, byID[3].Completed)
}

func TestAnalytics_Compute(t *testing.T) {
	e := newEnv(t, false)
	_, err := e.analyticsSvc.Compute(context.Background(), "velocity", 0)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	e.activity.Record(context.Background(), model.VerbCreated, model.KindProject, 1, "created")
	res, err := e.analyticsSvc.Compute(context.Background(), AnalyticsRecentActivity, 5)
	require.NoError(t, err)
	assert.Len(t, res.Data.([]model.Activity), 1)
}
