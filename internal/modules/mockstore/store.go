// Package mockstore is the in-memory stand-in for the primary store. Every
// Store is independent, so tests and handlers each own the data they touch.
package mockstore

import (
	"time"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
)

type Store struct {
	Projects      *Collection[model.Project, *model.Project]
	Tasks         *Collection[model.Task, *model.Task]
	Users         *Collection[model.User, *model.User]
	Notifications *Collection[model.Notification, *model.Notification]
	TimeEntries   *Collection[model.TimeEntry, *model.TimeEntry]
	Comments      *Collection[model.Comment, *model.Comment]
	Activities    *Collection[model.Activity, *model.Activity]
}

type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New returns an empty store.
func New(opts ...Option) *Store {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store{
		Projects:      newCollection[model.Project](o.now),
		Tasks:         newCollection[model.Task](o.now),
		Users:         newCollection[model.User](o.now),
		Notifications: newCollection[model.Notification](o.now),
		TimeEntries:   newCollection[model.TimeEntry](o.now),
		Comments:      newCollection[model.Comment](o.now),
		Activities:    newCollection[model.Activity](o.now),
	}
}

// NewSeeded returns a store loaded with the embedded sample dataset.
func NewSeeded(opts ...Option) (*Store, error) {
	s := New(opts...)
	f, err := LoadFixture()
	if err != nil {
		return nil, err
	}
	if err := f.Apply(s); err != nil {
		return nil, err
	}
	return s, nil
}

// TaskWithComments returns a copy of t carrying its comments in creation order.
func (s *Store) TaskWithComments(t model.Task) model.Task {
	t.Comments = s.Comments.List(model.CommentFilter{TaskID: &t.ID}.Match)
	return t
}
