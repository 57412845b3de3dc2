package repo

import (
	"context"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/infra/db"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
	"gorm.io/gorm"
)

type TimeEntryRepo interface {
	List(ctx context.Context, f model.TimeEntryFilter) ([]model.TimeEntry, error)
	Create(ctx context.Context, e *model.TimeEntry) error
}

type timeEntryRepo struct{ t table[model.TimeEntry] }

func NewTimeEntryRepo(conn *db.Provider) TimeEntryRepo {
	return &timeEntryRepo{t: table[model.TimeEntry]{conn: conn, entity: "time entry"}}
}

func (r *timeEntryRepo) List(ctx context.Context, f model.TimeEntryFilter) ([]model.TimeEntry, error) {
	return r.t.list(ctx, func(q *gorm.DB) *gorm.DB {
		if f.UserID != nil {
			q = q.Where("user_id = ?", *f.UserID)
		}
		if f.ProjectID != nil {
			q = q.Where("project_id = ?", *f.ProjectID)
		}
		if f.TaskID != nil {
			q = q.Where("task_id = ?", *f.TaskID)
		}
		if f.From != nil {
			q = q.Where("date >= ?", *f.From)
		}
		if f.To != nil {
			q = q.Where("date < ?", *f.To)
		}
		return q
	}, "date DESC, id DESC")
}

func (r *timeEntryRepo) Create(ctx context.Context, e *model.TimeEntry) error {
	return r.t.create(ctx, e)
}
