package model

import (
	"math"
	"time"
)

// TimeEntry stores its duration in whole minutes. Hours are derived for display
// and accepted on input, never stored.
type TimeEntry struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Minutes     int       `gorm:"not null;check:minutes > 0" json:"minutes"`
	Description string    `gorm:"type:text" json:"description"`
	UserID      uint      `gorm:"not null;index" json:"userId"`
	ProjectID   uint      `gorm:"not null;index" json:"projectId"`
	TaskID      *uint     `gorm:"index" json:"taskId,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (TimeEntry) TableName() string { return "time_entries" }

func (e *TimeEntry) GetID() uint   { return e.ID }
func (e *TimeEntry) SetID(id uint) { e.ID = id }
func (e *TimeEntry) Stamp(now time.Time, created bool) {
	if created {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
}

func (e TimeEntry) Hours() float64 {
	return float64(e.Minutes) / 60
}

// HoursToMinutes converts a fractional hour count to whole minutes, rounding
// to the nearest minute.
func HoursToMinutes(h float64) int {
	return int(math.Round(h * 60))
}

type TimeEntryFilter struct {
	UserID    *uint
	ProjectID *uint
	TaskID    *uint
	From      *time.Time
	To        *time.Time
}

func (f TimeEntryFilter) Match(e TimeEntry) bool {
	if !uintEq(e.UserID, f.UserID) || !uintEq(e.ProjectID, f.ProjectID) || !optUintEq(e.TaskID, f.TaskID) {
		return false
	}
	if f.From != nil && e.Date.Before(*f.From) {
		return false
	}
	return f.To == nil || e.Date.Before(*f.To)
}
