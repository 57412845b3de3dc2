package repo

import (
	"context"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/infra/db"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
	"gorm.io/gorm"
)

type UserRepo interface {
	List(ctx context.Context, f model.UserFilter) ([]model.User, error)
	Get(ctx context.Context, id uint) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, id uint, patch model.UserPatch) (*model.User, error)
	Delete(ctx context.Context, id uint) error
}

type userRepo struct{ t table[model.User] }

func NewUserRepo(conn *db.Provider) UserRepo {
	return &userRepo{t: table[model.User]{conn: conn, entity: "user"}}
}

func (r *userRepo) List(ctx context.Context, f model.UserFilter) ([]model.User, error) {
	return r.t.list(ctx, func(q *gorm.DB) *gorm.DB {
		if f.Role != "" {
			q = q.Where("role = ?", f.Role)
		}
		if f.Email != "" {
			q = q.Where("email = ?", model.NormalizeEmail(f.Email))
		}
		return q
	}, "created_at ASC, id ASC")
}

func (r *userRepo) Get(ctx context.Context, id uint) (*model.User, error) {
	return r.t.get(ctx, id)
}

// Create relies on the unique index on email; a clash surfaces as a conflict.
func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	return r.t.create(ctx, u)
}

func (r *userRepo) Update(ctx context.Context, id uint, patch model.UserPatch) (*model.User, error) {
	return r.t.update(ctx, id, patch.Columns())
}

func (r *userRepo) Delete(ctx context.Context, id uint) error {
	return r.t.delete(ctx, id)
}
