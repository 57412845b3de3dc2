package service

import (
	"cmp"
	"context"
	"slices"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/infra/metrics"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/mockstore"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/repo"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/pkg/apperr"
	"go.uber.org/zap"
)

type NotificationService interface {
	// List returns the matching notifications newest first.
	List(ctx context.Context, f model.NotificationFilter) (Result[[]model.Notification], error)
	Create(ctx context.Context, n *model.Notification) (Result[*model.Notification], error)
	SetRead(ctx context.Context, id uint, read bool) (Result[*model.Notification], error)
	MarkAllRead(ctx context.Context, userID uint) (Result[int64], error)
	// Notify creates n and only logs on failure.
	Notify(ctx context.Context, n model.Notification)
}

type notificationService struct {
	r     repo.NotificationRepo
	store *mockstore.Store
	res   *Resolver
	log   *zap.Logger
}

func NewNotificationService(r repo.NotificationRepo, store *mockstore.Store, res *Resolver, log *zap.Logger) NotificationService {
	return &notificationService{r: r, store: store, res: res, log: log}
}

func (s *notificationService) List(ctx context.Context, f model.NotificationFilter) (Result[[]model.Notification], error) {
	return resolve(ctx, s.res, model.KindNotification, "list",
		func(ctx context.Context) ([]model.Notification, error) { return s.r.List(ctx, f) },
		func() ([]model.Notification, error) {
			items := s.store.Notifications.List(f.Match)
			slices.SortStableFunc(items, func(a, b model.Notification) int {
				if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
					return c
				}
				return cmp.Compare(b.ID, a.ID)
			})
			return items, nil
		})
}

func (s *notificationService) Create(ctx context.Context, n *model.Notification) (Result[*model.Notification], error) {
	if n.UserID == 0 {
		return Result[*model.Notification]{}, apperr.Validation("notification needs a recipient",
			apperr.FieldError{Field: "userId", Rule: "required", Msg: "userId is required"})
	}
	if n.Title == "" {
		return Result[*model.Notification]{}, apperr.Validation("notification needs a title",
			apperr.FieldError{Field: "title", Rule: "required", Msg: "title is required"})
	}
	return resolve(ctx, s.res, model.KindNotification, "create",
		func(ctx context.Context) (*model.Notification, error) {
			row := *n
			if err := s.r.Create(ctx, &row); err != nil {
				return nil, err
			}
			return &row, nil
		},
		func() (*model.Notification, error) {
			row := s.store.Notifications.Create(*n)
			return &row, nil
		})
}

func (s *notificationService) SetRead(ctx context.Context, id uint, read bool) (Result[*model.Notification], error) {
	return resolve(ctx, s.res, model.KindNotification, "update",
		func(ctx context.Context) (*model.Notification, error) { return s.r.SetRead(ctx, id, read) },
		func() (*model.Notification, error) {
			n, ok := s.store.Notifications.Update(id, func(n *model.Notification) { n.Read = read })
			if !ok {
				return nil, apperr.NotFound("notification", id)
			}
			return &n, nil
		})
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uint) (Result[int64], error) {
	return resolve(ctx, s.res, model.KindNotification, "mark_all_read",
		func(ctx context.Context) (int64, error) { return s.r.MarkAllRead(ctx, userID) },
		func() (int64, error) {
			n := s.store.Notifications.UpdateWhere(func(n model.Notification) bool {
				return n.UserID == userID && !n.Read
			}, func(n *model.Notification) { n.Read = true })
			return int64(n), nil
		})
}

func (s *notificationService) Notify(ctx context.Context, n model.Notification) {
	if _, err := s.Create(ctx, &n); err != nil {
		metrics.RecordSideEffectFailure("notification")
		s.log.Warn("notification not delivered",
			zap.Uint("user_id", n.UserID),
			zap.String("type", string(n.Type)),
			zap.Error(err))
	}
}
