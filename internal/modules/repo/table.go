package repo

import (
	"context"
	"errors"
	"time"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/infra/db"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/pkg/apperr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// table implements the CRUD calls every gateway repo shares.
type table[T any] struct {
	conn   *db.Provider
	entity string
}

func (t table[T]) session(ctx context.Context) (*gorm.DB, error) {
	d, err := t.conn.DB(ctx)
	if err != nil {
		return nil, classify(t.entity+" connect", err)
	}
	return d, nil
}

func (t table[T]) list(ctx context.Context, scope func(*gorm.DB) *gorm.DB, order string) ([]T, error) {
	d, err := t.session(ctx)
	if err != nil {
		return nil, err
	}
	q := d.Model(new(T))
	if scope != nil {
		q = scope(q)
	}
	items := make([]T, 0)
	if err := q.Order(order).Find(&items).Error; err != nil {
		return nil, classify("list "+t.entity, err)
	}
	return items, nil
}

func (t table[T]) get(ctx context.Context, id uint, preload ...string) (*T, error) {
	d, err := t.session(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range preload {
		d = d.Preload(p, func(q *gorm.DB) *gorm.DB { return q.Order("created_at ASC, id ASC") })
	}
	m := new(T)
	if err := d.First(m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(t.entity, id)
		}
		return nil, classify("get "+t.entity, err)
	}
	return m, nil
}

func (t table[T]) create(ctx context.Context, m *T) error {
	d, err := t.session(ctx)
	if err != nil {
		return err
	}
	return classify("create "+t.entity, d.Omit(clause.Associations).Create(m).Error)
}

// update writes cols onto row id and reloads it. updated_at is always bumped so
// an empty patch still stamps the row.
func (t table[T]) update(ctx context.Context, id uint, cols map[string]any) (*T, error) {
	d, err := t.session(ctx)
	if err != nil {
		return nil, err
	}
	if cols == nil {
		cols = map[string]any{}
	}
	cols["updated_at"] = time.Now()

	res := d.Model(new(T)).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return nil, classify("update "+t.entity, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound(t.entity, id)
	}
	return t.get(ctx, id)
}

func (t table[T]) delete(ctx context.Context, id uint) error {
	d, err := t.session(ctx)
	if err != nil {
		return err
	}
	res := d.Delete(new(T), id)
	if res.Error != nil {
		return classify("delete "+t.entity, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(t.entity, id)
	}
	return nil
}
