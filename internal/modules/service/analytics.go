package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/pkg/apperr"
)

type AnalyticsKind string

const (
	AnalyticsSummary        AnalyticsKind = "summary"
	AnalyticsProjectStatus  AnalyticsKind = "project-status"
	AnalyticsTaskStatus     AnalyticsKind = "task-status"
	AnalyticsUserTasks      AnalyticsKind = "user-tasks"
	AnalyticsRecentActivity AnalyticsKind = "recent-activity"
)

var AnalyticsKinds = []AnalyticsKind{
	AnalyticsSummary, AnalyticsProjectStatus, AnalyticsTaskStatus, AnalyticsUserTasks, AnalyticsRecentActivity,
}

type Summary struct {
	TotalProjects      int     `json:"totalProjects"`
	ActiveProjects     int     `json:"activeProjects"`
	CompletedProjects  int     `json:"completedProjects"`
	TotalTasks         int     `json:"totalTasks"`
	CompletedTasks     int     `json:"completedTasks"`
	OverdueTasks       int     `json:"overdueTasks"`
	TaskCompletionRate float64 `json:"taskCompletionRate"`
	TotalBudget        float64 `json:"totalBudget"`
	TotalSpent         float64 `json:"totalSpent"`
	BudgetUtilization  float64 `json:"budgetUtilization"`
	HoursLogged        float64 `json:"hoursLogged"`
	TeamMembers        int     `json:"teamMembers"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type UserTaskStats struct {
	UserID     uint   `json:"userId"`
	Name       string `json:"name"`
	Total      int    `json:"total"`
	Completed  int    `json:"completed"`
	InProgress int    `json:"inProgress"`
	Overdue    int    `json:"overdue"`
}

// AnalyticsService computes dashboard aggregates. They are derived on the
// server from the same resolved collections the CRUD endpoints serve.
type AnalyticsService interface {
	Compute(ctx context.Context, kind AnalyticsKind, limit int) (Result[any], error)
	Summary(ctx context.Context) (Result[Summary], error)
	ProjectStatus(ctx context.Context) (Result[[]StatusCount], error)
	TaskStatus(ctx context.Context) (Result[[]StatusCount], error)
	UserTasks(ctx context.Context) (Result[[]UserTaskStats], error)
}

type analyticsService struct {
	projects ProjectService
	tasks    TaskService
	users    UserService
	entries  TimeEntryService
	activity ActivityService
	now      func() time.Time
}

func NewAnalyticsService(projects ProjectService, tasks TaskService, users UserService, entries TimeEntryService, activity ActivityService) AnalyticsService {
	return &analyticsService{
		projects: projects,
		tasks:    tasks,
		users:    users,
		entries:  entries,
		activity: activity,
		now:      time.Now,
	}
}

func (s *analyticsService) Compute(ctx context.Context, kind AnalyticsKind, limit int) (Result[any], error) {
	switch kind {
	case AnalyticsSummary:
		return erase(s.Summary(ctx))
	case AnalyticsProjectStatus:
		return erase(s.ProjectStatus(ctx))
	case AnalyticsTaskStatus:
		return erase(s.TaskStatus(ctx))
	case AnalyticsUserTasks:
		return erase(s.UserTasks(ctx))
	case AnalyticsRecentActivity:
		return Result[any]{Data: s.activity.Recent(ctx, limit), Source: SourceMock}, nil
	}
	return Result[any]{}, apperr.Validation(fmt.Sprintf("unknown analytics type %q", kind), apperr.FieldError{
		Field: "type", Rule: "oneof", Msg: fmt.Sprintf("type must be one of %v", AnalyticsKinds),
	})
}

func (s *analyticsService) Summary(ctx context.Context) (Result[Summary], error) {
	projects, err := s.projects.List(ctx, model.ProjectFilter{})
	if err != nil {
		return Result[Summary]{}, err
	}
	tasks, err := s.tasks.List(ctx, model.TaskFilter{})
	if err != nil {
		return Result[Summary]{}, err
	}
	users, err := s.users.List(ctx, model.UserFilter{Role: model.RoleTeam})
	if err != nil {
		return Result[Summary]{}, err
	}
	entries, err := s.entries.List(ctx, model.TimeEntryFilter{})
	if err != nil {
		return Result[Summary]{}, err
	}

	now := s.now()
	var out Summary
	out.TotalProjects = len(projects.Data)
	for _, p := range projects.Data {
		switch p.Status {
		case model.ProjectInProgress, model.ProjectAlmostComplete:
			out.ActiveProjects++
		case model.ProjectCompleted:
			out.CompletedProjects++
		}
		out.TotalBudget += p.Budget
		out.TotalSpent += p.Spent
	}
	out.TotalTasks = len(tasks.Data)
	for _, t := range tasks.Data {
		if t.Status == model.TaskCompleted {
			out.CompletedTasks++
		} else if overdue(t, now) {
			out.OverdueTasks++
		}
	}
	minutes := 0
	for _, e := range entries.Data {
		minutes += e.Minutes
	}

	out.TaskCompletionRate = percent(float64(out.CompletedTasks), float64(out.TotalTasks))
	out.BudgetUtilization = percent(out.TotalSpent, out.TotalBudget)
	out.HoursLogged = round1(float64(minutes) / 60)
	out.TeamMembers = len(users.Data)

	src := projects.Source.Merge(tasks.Source).Merge(users.Source).Merge(entries.Source)
	return Result[Summary]{Data: out, Source: src}, nil
}

func (s *analyticsService) ProjectStatus(ctx context.Context) (Result[[]StatusCount], error) {
	projects, err := s.projects.List(ctx, model.ProjectFilter{})
	if err != nil {
		return Result[[]StatusCount]{}, err
	}
	counts := make(map[model.ProjectStatus]int)
	for _, p := range projects.Data {
		counts[p.Status]++
	}
	out := make([]StatusCount, 0, len(model.ProjectStatuses))
	for _, st := range model.ProjectStatuses {
		out = append(out, StatusCount{Status: string(st), Count: counts[st]})
	}
	return Result[[]StatusCount]{Data: out, Source: projects.Source}, nil
}

func (s *analyticsService) TaskStatus(ctx context.Context) (Result[[]StatusCount], error) {
	tasks, err := s.tasks.List(ctx, model.TaskFilter{})
	if err != nil {
		return Result[[]StatusCount]{}, err
	}
	counts := make(map[model.TaskStatus]int)
	for _, t := range tasks.Data {
		counts[t.Status]++
	}
	out := make([]StatusCount, 0, len(model.TaskStatuses))
	for _, st := range model.TaskStatuses {
		out = append(out, StatusCount{Status: string(st), Count: counts[st]})
	}
	return Result[[]StatusCount]{Data: out, Source: tasks.Source}, nil
}

// UserTasks reports task load per user, for every user that is not a client.
func (s *analyticsService) UserTasks(ctx context.Context) (Result[[]UserTaskStats], error) {
	users, err := s.users.List(ctx, model.UserFilter{})
	if err != nil {
		return Result[[]UserTaskStats]{}, err
	}
	tasks, err := s.tasks.List(ctx, model.TaskFilter{})
	if err != nil {
		return Result[[]UserTaskStats]{}, err
	}

	now := s.now()
	idx := make(map[uint]int)
	out := make([]UserTaskStats, 0, len(users.Data))
	for _, u := range users.Data {
		if u.Role == model.RoleClient {
			continue
		}
		idx[u.ID] = len(out)
		out = append(out, UserTaskStats{UserID: u.ID, Name: u.Name})
	}
	for _, t := range tasks.Data {
		if t.AssigneeID == nil {
			continue
		}
		i, ok := idx[*t.AssigneeID]
		if !ok {
			continue
		}
		st := &out[i]
		st.Total++
		switch {
		case t.Status == model.TaskCompleted:
			st.Completed++
		case t.Status == model.TaskInProgress:
			st.InProgress++
		}
		if overdue(t, now) {
			st.Overdue++
		}
	}
	return Result[[]UserTaskStats]{Data: out, Source: users.Source.Merge(tasks.Source)}, nil
}

func overdue(t model.Task, now time.Time) bool {
	return t.Status != model.TaskCompleted && t.Deadline != nil && t.Deadline.Before(now)
}

func percent(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return round1(part / whole * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func erase[T any](r Result[T], err error) (Result[any], error) {
	if err != nil {
		return Result[any]{Source: r.Source}, err
	}
	return Result[any]{Data: r.Data, Source: r.Source}, nil
}
