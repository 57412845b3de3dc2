package repo

import (
	"context"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/infra/db"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
	"gorm.io/gorm"
)

type CommentRepo interface {
	List(ctx context.Context, f model.CommentFilter) ([]model.Comment, error)
	Create(ctx context.Context, c *model.Comment) error
}

type commentRepo struct{ t table[model.Comment] }

func NewCommentRepo(conn *db.Provider) CommentRepo {
	return &commentRepo{t: table[model.Comment]{conn: conn, entity: "comment"}}
}

func (r *commentRepo) List(ctx context.Context, f model.CommentFilter) ([]model.Comment, error) {
	return r.t.list(ctx, func(q *gorm.DB) *gorm.DB {
		if f.TaskID != nil {
			q = q.Where("task_id = ?", *f.TaskID)
		}
		return q
	}, "created_at ASC, id ASC")
}

func (r *commentRepo) Create(ctx context.Context, c *model.Comment) error {
	return r.t.create(ctx, c)
}
