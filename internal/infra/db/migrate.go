package db

import (
	"fmt"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/mockstore"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Migrate creates or updates the primary store schema.
func Migrate(d *gorm.DB) error {
	return d.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.Task{},
		&model.Comment{},
		&model.Notification{},
		&model.TimeEntry{},
	)
}

// Seed copies the sample dataset of s into an empty primary store, keeping ids.
func Seed(d *gorm.DB, s *mockstore.Store) error {
	return d.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.User{}).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("primary store already holds %d users, refusing to seed", n)
		}
		if err := insert(tx, "users", s.Users.List(nil)); err != nil {
			return err
		}
		if err := insert(tx, "projects", s.Projects.List(nil)); err != nil {
			return err
		}
		if err := insert(tx, "tasks", s.Tasks.List(nil)); err != nil {
			return err
		}
		if err := insert(tx, "comments", s.Comments.List(nil)); err != nil {
			return err
		}
		if err := insert(tx, "notifications", s.Notifications.List(nil)); err != nil {
			return err
		}
		return insert(tx, "time_entries", s.TimeEntries.List(nil))
	})
}

func insert[T any](tx *gorm.DB, table string, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	if err := tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
		return fmt.Errorf("seed %s: %w", table, err)
	}
	// explicit ids leave postgres sequences behind
	if tx.Dialector.Name() == "postgres" {
		q := fmt.Sprintf("SELECT setval(pg_get_serial_sequence('%s', 'id'), (SELECT MAX(id) FROM %s))", table, table)
		if err := tx.Exec(q).Error; err != nil {
			return fmt.Errorf("advance %s sequence: %w", table, err)
		}
	}
	return nil
}
