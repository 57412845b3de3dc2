package repo

import (
	"context"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/infra/db"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
	"gorm.io/gorm"
)

type TaskRepo interface {
	List(ctx context.Context, f model.TaskFilter) ([]model.Task, error)
	// Get loads the task with its comments.
	Get(ctx context.Context, id uint) (*model.Task, error)
	Create(ctx context.Context, t *model.Task) error
	Update(ctx context.Context, id uint, patch model.TaskPatch) (*model.Task, error)
	Delete(ctx context.Context, id uint) error
}

type taskRepo struct{ t table[model.Task] }

func NewTaskRepo(conn *db.Provider) TaskRepo {
	return &taskRepo{t: table[model.Task]{conn: conn, entity: "task"}}
}

func (r *taskRepo) List(ctx context.Context, f model.TaskFilter) ([]model.Task, error) {
	return r.t.list(ctx, func(q *gorm.DB) *gorm.DB {
		if f.ProjectID != nil {
			q = q.Where("project_id = ?", *f.ProjectID)
		}
		if f.AssigneeID != nil {
			q = q.Where("assignee_id = ?", *f.AssigneeID)
		}
		if f.Status != "" {
			q = q.Where("status = ?", f.Status)
		}
		if f.DeadlineBefore != nil {
			q = q.Where("deadline < ?", *f.DeadlineBefore)
		}
		return q
	}, "created_at ASC, id ASC")
}

func (r *taskRepo) Get(ctx context.Context, id uint) (*model.Task, error) {
	return r.t.get(ctx, id, "Comments")
}

func (r *taskRepo) Create(ctx context.Context, t *model.Task) error {
	return r.t.create(ctx, t)
}

func (r *taskRepo) Update(ctx context.Context, id uint, patch model.TaskPatch) (*model.Task, error) {
	if _, err := r.t.update(ctx, id, patch.Columns()); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *taskRepo) Delete(ctx context.Context, id uint) error {
	return r.t.delete(ctx, id)
}
