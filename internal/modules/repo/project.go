package repo

import (
	"context"
	"fmt"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/infra/db"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
	"gorm.io/gorm"
)

type ProjectRepo interface {
	List(ctx context.Context, f model.ProjectFilter) ([]model.Project, error)
	Get(ctx context.Context, id uint) (*model.Project, error)
	Create(ctx context.Context, p *model.Project) error
	Update(ctx context.Context, id uint, patch model.ProjectPatch) (*model.Project, error)
	Delete(ctx context.Context, id uint) error
}

type projectRepo struct{ t table[model.Project] }

func NewProjectRepo(conn *db.Provider) ProjectRepo {
	return &projectRepo{t: table[model.Project]{conn: conn, entity: "project"}}
}

func (r *projectRepo) List(ctx context.Context, f model.ProjectFilter) ([]model.Project, error) {
	return r.t.list(ctx, func(q *gorm.DB) *gorm.DB {
		if f.Status != "" {
			q = q.Where("status = ?", f.Status)
		}
		if f.ClientID != nil {
			q = q.Where("client_id = ?", *f.ClientID)
		}
		if f.DeadlineBefore != nil {
			q = q.Where("deadline < ?", *f.DeadlineBefore)
		}
		if f.MemberID != nil {
			q = q.Where(memberClause(q.Dialector.Name()), memberPatterns(*f.MemberID)...)
		}
		return q
	}, "created_at ASC, id ASC")
}

// team_members is stored as a compact JSON array, so membership is matched on
// its text form.
func memberClause(dialect string) string {
	col := "team_members"
	if dialect == "postgres" {
		col = "team_members::text"
	}
	return fmt.Sprintf("(%[1]s LIKE ? OR %[1]s LIKE ? OR %[1]s LIKE ? OR %[1]s LIKE ?)", col)
}

func memberPatterns(id uint) []any {
	return []any{
		fmt.Sprintf("[%d]", id),
		fmt.Sprintf("[%d,%%", id),
		fmt.Sprintf("%%,%d]", id),
		fmt.Sprintf("%%,%d,%%", id),
	}
}

func (r *projectRepo) Get(ctx context.Context, id uint) (*model.Project, error) {
	return r.t.get(ctx, id)
}

func (r *projectRepo) Create(ctx context.Context, p *model.Project) error {
	return r.t.create(ctx, p)
}

func (r *projectRepo) Update(ctx context.Context, id uint, patch model.ProjectPatch) (*model.Project, error) {
	return r.t.update(ctx, id, patch.Columns())
}

func (r *projectRepo) Delete(ctx context.Context, id uint) error {
	return r.t.delete(ctx, id)
}
