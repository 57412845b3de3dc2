package repo

import (
	"context"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/infra/db"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
	"gorm.io/gorm"
)

type NotificationRepo interface {
	// List returns newest first.
	List(ctx context.Context, f model.NotificationFilter) ([]model.Notification, error)
	Create(ctx context.Context, n *model.Notification) error
	SetRead(ctx context.Context, id uint, read bool) (*model.Notification, error)
	// MarkAllRead flags every notification of userID as read and reports how
	// many rows changed.
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
}

type notificationRepo struct{ t table[model.Notification] }

func NewNotificationRepo(conn *db.Provider) NotificationRepo {
	return &notificationRepo{t: table[model.Notification]{conn: conn, entity: "notification"}}
}

func (r *notificationRepo) List(ctx context.Context, f model.NotificationFilter) ([]model.Notification, error) {
	return r.t.list(ctx, func(q *gorm.DB) *gorm.DB {
		if f.UserID != nil {
			q = q.Where("user_id = ?", *f.UserID)
		}
		if f.UnreadOnly {
			q = q.Where("read = ?", false)
		}
		return q
	}, "created_at DESC, id DESC")
}

func (r *notificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return r.t.create(ctx, n)
}

func (r *notificationRepo) SetRead(ctx context.Context, id uint, read bool) (*model.Notification, error) {
	return r.t.update(ctx, id, map[string]any{"read": read})
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	d, err := r.t.session(ctx)
	if err != nil {
		return 0, err
	}
	res := d.Model(&model.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Updates(map[string]any{"read": true})
	if res.Error != nil {
		return 0, classify("mark notifications read", res.Error)
	}
	return res.RowsAffected, nil
}
