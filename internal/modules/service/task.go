package service

import (
	"context"
	"fmt"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/mockstore"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/repo"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/pkg/apperr"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/pkg/utils/tokens"
	"go.uber.org/zap"
)

type TaskService interface {
	List(ctx context.Context, f model.TaskFilter) (Result[[]model.Task], error)
	// Get returns the task with its comments in creation order.
	Get(ctx context.Context, id uint) (Result[*model.Task], error)
	Create(ctx context.Context, t *model.Task) (Result[*model.Task], error)
	Update(ctx context.Context, id uint, patch model.TaskPatch) (Result[*model.Task], error)
	Delete(ctx context.Context, id uint) (Source, error)

	Comments(ctx context.Context, taskID uint) (Result[[]model.Comment], error)
	AddComment(ctx context.Context, taskID uint, in CommentInput) (Result[*model.Comment], error)
}

type CommentInput struct {
	AuthorID   uint
	AuthorName string
	Text       string
}

type taskService struct {
	r        repo.TaskRepo
	comments repo.CommentRepo
	store    *mockstore.Store
	res      *Resolver
	activity ActivityService
	notes    NotificationService
	log      *zap.Logger
}

func NewTaskService(r repo.TaskRepo, comments repo.CommentRepo, store *mockstore.Store, res *Resolver, activity ActivityService, notes NotificationService, log *zap.Logger) TaskService {
	return &taskService{r: r, comments: comments, store: store, res: res, activity: activity, notes: notes, log: log}
}

func (s *taskService) List(ctx context.Context, f model.TaskFilter) (Result[[]model.Task], error) {
	return resolve(ctx, s.res, model.KindTask, "list",
		func(ctx context.Context) ([]model.Task, error) { return s.r.List(ctx, f) },
		func() ([]model.Task, error) { return s.store.Tasks.List(f.Match), nil })
}

func (s *taskService) Get(ctx context.Context, id uint) (Result[*model.Task], error) {
	return resolve(ctx, s.res, model.KindTask, "get",
		func(ctx context.Context) (*model.Task, error) { return s.r.Get(ctx, id) },
		func() (*model.Task, error) { return s.mockGet(id) })
}

func (s *taskService) mockGet(id uint) (*model.Task, error) {
	t, ok := s.store.Tasks.Get(id)
	if !ok {
		return nil, apperr.NotFound("task", id)
	}
	t = s.store.TaskWithComments(t)
	return &t, nil
}

func (s *taskService) Create(ctx context.Context, t *model.Task) (Result[*model.Task], error) {
	if t.Status == "" {
		t.Status = model.TaskNotStarted
	}
	if t.Priority == "" {
		t.Priority = model.PriorityMedium
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	t.Comments = nil
	if err := validateTask(t); err != nil {
		return Result[*model.Task]{}, err
	}

	res, err := resolve(ctx, s.res, model.KindTask, "create",
		func(ctx context.Context) (*model.Task, error) {
			row := *t
			if err := s.r.Create(ctx, &row); err != nil {
				return nil, err
			}
			return &row, nil
		},
		func() (*model.Task, error) {
			row := s.store.Tasks.Create(*t)
			return &row, nil
		})
	if err != nil {
		return res, err
	}

	created := res.Data
	s.activity.Record(ctx, model.VerbCreated, model.KindTask, created.ID, fmt.Sprintf("created task %q", created.Title))
	if created.AssigneeID != nil {
		s.notifyAssigned(ctx, created)
	}
	return res, nil
}

func (s *taskService) Update(ctx context.Context, id uint, patch model.TaskPatch) (Result[*model.Task], error) {
	res, err := resolve(ctx, s.res, model.KindTask, "update",
		func(ctx context.Context) (*model.Task, error) { return s.r.Update(ctx, id, patch) },
		func() (*model.Task, error) {
			if _, ok := s.store.Tasks.Update(id, patch.ApplyTo); !ok {
				return nil, apperr.NotFound("task", id)
			}
			return s.mockGet(id)
		})
	if err != nil {
		return res, err
	}

	t := res.Data
	s.activity.Record(ctx, model.VerbUpdated, model.KindTask, t.ID, fmt.Sprintf("updated task %q", t.Title))
	if patch.AssigneeID.Value != nil && t.AssigneeID != nil {
		s.notifyAssigned(ctx, t)
	}
	if patch.Status != nil && *patch.Status == model.TaskCompleted && t.AssigneeID != nil {
		s.notes.Notify(ctx, model.Notification{
			UserID:      *t.AssigneeID,
			Title:       "Task completed",
			Message:     fmt.Sprintf("%q was marked as completed", t.Title),
			Type:        model.NotifyTaskCompleted,
			RelatedID:   &t.ID,
			RelatedType: model.KindTask,
		})
	}
	return res, nil
}

func (s *taskService) Delete(ctx context.Context, id uint) (Source, error) {
	src, err := exec(ctx, s.res, model.KindTask, "delete",
		func(ctx context.Context) error { return s.r.Delete(ctx, id) },
		func() error {
			if !s.store.Tasks.Delete(id) {
				return apperr.NotFound("task", id)
			}
			s.store.Comments.DeleteWhere(func(c model.Comment) bool { return c.TaskID == id })
			return nil
		})
	if err != nil {
		return src, err
	}
	s.activity.Record(ctx, model.VerbDeleted, model.KindTask, id, fmt.Sprintf("deleted task %d", id))
	return src, nil
}

func (s *taskService) Comments(ctx context.Context, taskID uint) (Result[[]model.Comment], error) {
	return resolve(ctx, s.res, model.KindComment, "list",
		func(ctx context.Context) ([]model.Comment, error) {
			t, err := s.r.Get(ctx, taskID)
			if err != nil {
				return nil, err
			}
			return nonNil(t.Comments), nil
		},
		func() ([]model.Comment, error) {
			t, err := s.mockGet(taskID)
			if err != nil {
				return nil, err
			}
			return nonNil(t.Comments), nil
		})
}

func (s *taskService) AddComment(ctx context.Context, taskID uint, in CommentInput) (Result[*model.Comment], error) {
	if in.Text == "" {
		return Result[*model.Comment]{}, apperr.Validation("comment text is required",
			apperr.FieldError{Field: "text", Rule: "required", Msg: "text is required"})
	}
	if actor, ok := tokens.FromContext(ctx); ok {
		in.AuthorID, in.AuthorName = actor.UserID, actor.Name
	}
	if in.AuthorID == 0 {
		return Result[*model.Comment]{}, apperr.Validation("comment author is required",
			apperr.FieldError{Field: "authorId", Rule: "required", Msg: "authorId is required"})
	}
	c := model.Comment{TaskID: taskID, AuthorID: in.AuthorID, AuthorName: in.AuthorName, Text: in.Text}

	var task *model.Task
	res, err := resolve(ctx, s.res, model.KindComment, "create",
		func(ctx context.Context) (*model.Comment, error) {
			t, err := s.r.Get(ctx, taskID)
			if err != nil {
				return nil, err
			}
			task = t
			row := c
			if err := s.comments.Create(ctx, &row); err != nil {
				return nil, err
			}
			return &row, nil
		},
		func() (*model.Comment, error) {
			t, ok := s.store.Tasks.Get(taskID)
			if !ok {
				return nil, apperr.NotFound("task", taskID)
			}
			task = &t
			row := s.store.Comments.Create(c)
			return &row, nil
		})
	if err != nil {
		return res, err
	}

	if task.AssigneeID != nil && *task.AssigneeID != c.AuthorID {
		s.notes.Notify(ctx, model.Notification{
			UserID:      *task.AssigneeID,
			Title:       "New comment",
			Message:     fmt.Sprintf("%s commented on %q", c.AuthorName, task.Title),
			Type:        model.NotifyCommentAdded,
			RelatedID:   &task.ID,
			RelatedType: model.KindTask,
		})
	}
	return res, nil
}

func (s *taskService) notifyAssigned(ctx context.Context, t *model.Task) {
	s.notes.Notify(ctx, model.Notification{
		UserID:      *t.AssigneeID,
		Title:       "New task assigned",
		Message:     fmt.Sprintf("You have been assigned to %q", t.Title),
		Type:        model.NotifyTaskAssigned,
		RelatedID:   &t.ID,
		RelatedType: model.KindTask,
	})
}

func validateTask(t *model.Task) error {
	var fields []apperr.FieldError
	if t.Title == "" {
		fields = append(fields, apperr.FieldError{Field: "title", Rule: "required", Msg: "title is required"})
	}
	if t.ProjectID == 0 {
		fields = append(fields, apperr.FieldError{Field: "projectId", Rule: "required", Msg: "projectId is required"})
	}
	if t.EstimatedHours < 0 || t.ActualHours < 0 {
		fields = append(fields, apperr.FieldError{Field: "estimatedHours", Rule: "min", Msg: "hours must not be negative"})
	}
	if len(fields) > 0 {
		return apperr.Validation("invalid task", fields...)
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
