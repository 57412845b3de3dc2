package service

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/mockstore"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/repo"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/pkg/apperr"
	"go.uber.org/zap"
)

type TimeEntryService interface {
	// List returns entries most recent first.
	List(ctx context.Context, f model.TimeEntryFilter) (Result[[]model.TimeEntry], error)
	Create(ctx context.Context, in NewTimeEntry) (Result[*model.TimeEntry], error)
}

// NewTimeEntry carries a duration either in minutes or in hours. Minutes win
// when both are set.
type NewTimeEntry struct {
	Date        time.Time
	Minutes     *int
	Hours       *float64
	Description string
	UserID      uint
	ProjectID   uint
	TaskID      *uint
}

type timeEntryService struct {
	r     repo.TimeEntryRepo
	store *mockstore.Store
	res   *Resolver
	log   *zap.Logger
	now   func() time.Time
}

func NewTimeEntryService(r repo.TimeEntryRepo, store *mockstore.Store, res *Resolver, log *zap.Logger) TimeEntryService {
	return &timeEntryService{r: r, store: store, res: res, log: log, now: time.Now}
}

func (s *timeEntryService) List(ctx context.Context, f model.TimeEntryFilter) (Result[[]model.TimeEntry], error) {
	return resolve(ctx, s.res, model.KindTimeEntry, "list",
		func(ctx context.Context) ([]model.TimeEntry, error) { return s.r.List(ctx, f) },
		func() ([]model.TimeEntry, error) {
			items := s.store.TimeEntries.List(f.Match)
			sortTimeEntries(items)
			return items, nil
		})
}

func (s *timeEntryService) Create(ctx context.Context, in NewTimeEntry) (Result[*model.TimeEntry], error) {
	minutes := 0
	switch {
	case in.Minutes != nil:
		minutes = *in.Minutes
	case in.Hours != nil:
		minutes = model.HoursToMinutes(*in.Hours)
	}

	var fields []apperr.FieldError
	if minutes <= 0 {
		fields = append(fields, apperr.FieldError{Field: "hours", Rule: "gt", Msg: "duration must be at least one minute"})
	}
	if in.UserID == 0 {
		fields = append(fields, apperr.FieldError{Field: "userId", Rule: "required", Msg: "userId is required"})
	}
	if in.ProjectID == 0 {
		fields = append(fields, apperr.FieldError{Field: "projectId", Rule: "required", Msg: "projectId is required"})
	}
	if len(fields) > 0 {
		return Result[*model.TimeEntry]{}, apperr.Validation("invalid time entry", fields...)
	}
	if in.Date.IsZero() {
		in.Date = s.now()
	}

	e := model.TimeEntry{
		Date:        in.Date,
		Minutes:     minutes,
		Description: in.Description,
		UserID:      in.UserID,
		ProjectID:   in.ProjectID,
		TaskID:      in.TaskID,
	}
	return resolve(ctx, s.res, model.KindTimeEntry, "create",
		func(ctx context.Context) (*model.TimeEntry, error) {
			row := e
			if err := s.r.Create(ctx, &row); err != nil {
				return nil, err
			}
			return &row, nil
		},
		func() (*model.TimeEntry, error) {
			row := s.store.TimeEntries.Create(e)
			return &row, nil
		})
}

func sortTimeEntries(items []model.TimeEntry) {
	slices.SortStableFunc(items, func(a, b model.TimeEntry) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
}
