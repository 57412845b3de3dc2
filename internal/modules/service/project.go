package service

import (
	"context"
	"fmt"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/mockstore"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/repo"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/pkg/apperr"
	"go.uber.org/zap"
)

type ProjectService interface {
	List(ctx context.Context, f model.ProjectFilter) (Result[[]model.Project], error)
	Get(ctx context.Context, id uint) (Result[*model.Project], error)
	Create(ctx context.Context, p *model.Project) (Result[*model.Project], error)
	Update(ctx context.Context, id uint, patch model.ProjectPatch) (Result[*model.Project], error)
	Delete(ctx context.Context, id uint) (Source, error)
}

type projectService struct {
	r        repo.ProjectRepo
	store    *mockstore.Store
	res      *Resolver
	activity ActivityService
	notes    NotificationService
	log      *zap.Logger
}

func NewProjectService(r repo.ProjectRepo, store *mockstore.Store, res *Resolver, activity ActivityService, notes NotificationService, log *zap.Logger) ProjectService {
	return &projectService{r: r, store: store, res: res, activity: activity, notes: notes, log: log}
}

func (s *projectService) List(ctx context.Context, f model.ProjectFilter) (Result[[]model.Project], error) {
	return resolve(ctx, s.res, model.KindProject, "list",
		func(ctx context.Context) ([]model.Project, error) { return s.r.List(ctx, f) },
		func() ([]model.Project, error) { return s.store.Projects.List(f.Match), nil })
}

func (s *projectService) Get(ctx context.Context, id uint) (Result[*model.Project], error) {
	return resolve(ctx, s.res, model.KindProject, "get",
		func(ctx context.Context) (*model.Project, error) { return s.r.Get(ctx, id) },
		func() (*model.Project, error) {
			p, ok := s.store.Projects.Get(id)
			if !ok {
				return nil, apperr.NotFound("project", id)
			}
			return &p, nil
		})
}

func (s *projectService) Create(ctx context.Context, p *model.Project) (Result[*model.Project], error) {
	if p.Status == "" {
		p.Status = model.ProjectNotStarted
	}
	if p.Priority == "" {
		p.Priority = model.PriorityMedium
	}
	if p.TeamMembers == nil {
		p.TeamMembers = []uint{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if err := validateProject(p); err != nil {
		return Result[*model.Project]{}, err
	}

	res, err := resolve(ctx, s.res, model.KindProject, "create",
		func(ctx context.Context) (*model.Project, error) {
			row := *p
			if err := s.r.Create(ctx, &row); err != nil {
				return nil, err
			}
			return &row, nil
		},
		func() (*model.Project, error) {
			row := s.store.Projects.Create(*p)
			return &row, nil
		})
	if err != nil {
		return res, err
	}
	s.activity.Record(ctx, model.VerbCreated, model.KindProject, res.Data.ID, fmt.Sprintf("created project %q", res.Data.Name))
	return res, nil
}

func (s *projectService) Update(ctx context.Context, id uint, patch model.ProjectPatch) (Result[*model.Project], error) {
	if patch.Progress != nil && (*patch.Progress < 0 || *patch.Progress > 100) {
		return Result[*model.Project]{}, errProgress
	}

	res, err := resolve(ctx, s.res, model.KindProject, "update",
		func(ctx context.Context) (*model.Project, error) { return s.r.Update(ctx, id, patch) },
		func() (*model.Project, error) {
			p, ok := s.store.Projects.Update(id, patch.ApplyTo)
			if !ok {
				return nil, apperr.NotFound("project", id)
			}
			return &p, nil
		})
	if err != nil {
		return res, err
	}

	p := res.Data
	s.activity.Record(ctx, model.VerbUpdated, model.KindProject, p.ID, fmt.Sprintf("updated project %q", p.Name))
	if patch.Budget != nil {
		for _, member := range p.TeamMembers {
			s.notes.Notify(ctx, model.Notification{
				UserID:      member,
				Title:       "Project budget updated",
				Message:     fmt.Sprintf("Budget for %q is now %.2f", p.Name, p.Budget),
				Type:        model.NotifyBudgetUpdated,
				RelatedID:   &p.ID,
				RelatedType: model.KindProject,
			})
		}
	}
	return res, nil
}

func (s *projectService) Delete(ctx context.Context, id uint) (Source, error) {
	src, err := exec(ctx, s.res, model.KindProject, "delete",
		func(ctx context.Context) error { return s.r.Delete(ctx, id) },
		func() error {
			if !s.store.Projects.Delete(id) {
				return apperr.NotFound("project", id)
			}
			return nil
		})
	if err != nil {
		return src, err
	}
	s.activity.Record(ctx, model.VerbDeleted, model.KindProject, id, fmt.Sprintf("deleted project %d", id))
	return src, nil
}

var errProgress = apperr.Validation("progress out of range",
	apperr.FieldError{Field: "progress", Rule: "range", Msg: "progress must be between 0 and 100"})

func validateProject(p *model.Project) error {
	var fields []apperr.FieldError
	if p.Name == "" {
		fields = append(fields, apperr.FieldError{Field: "name", Rule: "required", Msg: "name is required"})
	}
	if p.Progress < 0 || p.Progress > 100 {
		fields = append(fields, apperr.FieldError{Field: "progress", Rule: "range", Msg: "progress must be between 0 and 100"})
	}
	if p.Budget < 0 {
		fields = append(fields, apperr.FieldError{Field: "budget", Rule: "min", Msg: "budget must not be negative"})
	}
	if len(fields) > 0 {
		return apperr.Validation("invalid project", fields...)
	}
	return nil
}
