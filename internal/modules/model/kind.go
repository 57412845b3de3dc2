package model

import "time"

// Kind names an entity collection. It doubles as the resource segment used by
// the activity log and the client cache.
type Kind string

const (
	KindProject      Kind = "project"
	KindTask         Kind = "task"
	KindUser         Kind = "user"
	KindNotification Kind = "notification"
	KindTimeEntry    Kind = "time_entry"
	KindComment      Kind = "comment"
	KindActivity     Kind = "activity"
)

// Record is implemented by every stored entity.
type Record interface {
	GetID() uint
	SetID(id uint)
	// Stamp sets UpdatedAt, and CreatedAt too when created is true.
	Stamp(now time.Time, created bool)
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func timeBefore(t *time.Time, limit *time.Time) bool {
	if limit == nil {
		return true
	}
	return t != nil && t.Before(*limit)
}

func uintEq(v uint, want *uint) bool {
	return want == nil || v == *want
}

func optUintEq(v *uint, want *uint) bool {
	if want == nil {
		return true
	}
	return v != nil && *v == *want
}
