package model

import (
	"slices"
	"time"

	"gorm.io/datatypes"
)

type TaskStatus string

const (
	TaskNotStarted  TaskStatus = "not_started"
	TaskInProgress  TaskStatus = "in_progress"
	TaskUnderReview TaskStatus = "under_review"
	TaskOnHold      TaskStatus = "on_hold"
	TaskCompleted   TaskStatus = "completed"
)

var TaskStatuses = []TaskStatus{TaskNotStarted, TaskInProgress, TaskUnderReview, TaskOnHold, TaskCompleted}

// Task belongs to a project. ProjectID is not checked against existing
// projects when the mock store answers.
type Task struct {
	ID             uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title          string     `gorm:"type:varchar(200);not null" json:"title"`
	Description    string     `gorm:"type:text" json:"description"`
	Status         TaskStatus `gorm:"type:varchar(32);not null;default:'not_started';index" json:"status"`
	Priority       Priority   `gorm:"type:varchar(16);not null;default:'medium'" json:"priority"`
	ProjectID      uint       `gorm:"not null;index" json:"projectId"`
	AssigneeID     *uint      `gorm:"index" json:"assigneeId,omitempty"`
	Deadline       *time.Time `gorm:"index" json:"deadline,omitempty"`
	EstimatedHours float64    `gorm:"not null;default:0" json:"estimatedHours"`
	ActualHours    float64    `gorm:"not null;default:0" json:"actualHours"`

	Tags datatypes.JSONSlice[string] `gorm:"type:json" swaggertype:"array,string" json:"tags"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// Task <-> Comment, ordered by creation
	Comments []Comment `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"comments,omitempty"`
}

func (Task) TableName() string { return "tasks" }

func (t *Task) GetID() uint   { return t.ID }
func (t *Task) SetID(id uint) { t.ID = id }
func (t *Task) Stamp(now time.Time, created bool) {
	if created {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}

type TaskFilter struct {
	ProjectID      *uint
	AssigneeID     *uint
	Status         TaskStatus
	DeadlineBefore *time.Time
}

func (f TaskFilter) Match(t Task) bool {
	if !uintEq(t.ProjectID, f.ProjectID) || !optUintEq(t.AssigneeID, f.AssigneeID) {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	return timeBefore(t.Deadline, f.DeadlineBefore)
}

type TaskPatch struct {
	Title          *string             `json:"title" binding:"omitempty,min=1,max=200"`
	Description    *string             `json:"description"`
	Status         *TaskStatus         `json:"status" binding:"omitempty,oneof=not_started in_progress under_review on_hold completed"`
	Priority       *Priority           `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	ProjectID      *uint               `json:"projectId" binding:"omitempty,min=1"`
	AssigneeID     Nullable[uint]      `json:"assigneeId" swaggertype:"integer" extensions:"x-nullable"`
	Deadline       Nullable[time.Time] `json:"deadline" swaggertype:"string" format:"date-time" extensions:"x-nullable"`
	EstimatedHours *float64            `json:"estimatedHours" binding:"omitempty,min=0"`
	ActualHours    *float64            `json:"actualHours" binding:"omitempty,min=0"`
	Tags           *[]string           `json:"tags"`
}

func (p TaskPatch) ApplyTo(m *Task) {
	setIf(&m.Title, p.Title)
	setIf(&m.Description, p.Description)
	setIf(&m.Status, p.Status)
	setIf(&m.Priority, p.Priority)
	setIf(&m.ProjectID, p.ProjectID)
	setNullable(&m.AssigneeID, p.AssigneeID)
	setNullable(&m.Deadline, p.Deadline)
	setIf(&m.EstimatedHours, p.EstimatedHours)
	setIf(&m.ActualHours, p.ActualHours)
	if p.Tags != nil {
		m.Tags = slices.Clone(*p.Tags)
	}
}

func (p TaskPatch) MarshalJSON() ([]byte, error) {
	type plain TaskPatch
	return marshalPatch(plain(p), map[string]bool{"assigneeId": p.AssigneeID.Set, "deadline": p.Deadline.Set})
}

func (p TaskPatch) Columns() map[string]any {
	cols := columns{}
	cols.add("title", p.Title)
	cols.add("description", p.Description)
	cols.add("status", p.Status)
	cols.add("priority", p.Priority)
	cols.add("project_id", p.ProjectID)
	addNullable(cols, "assignee_id", p.AssigneeID)
	addNullable(cols, "deadline", p.Deadline)
	cols.add("estimated_hours", p.EstimatedHours)
	cols.add("actual_hours", p.ActualHours)
	if p.Tags != nil {
		cols["tags"] = datatypes.JSONSlice[string](*p.Tags)
	}
	return cols
}
