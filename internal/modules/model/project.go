package model

import (
	"slices"
	"time"

	"gorm.io/datatypes"
)

type ProjectStatus string

const (
	ProjectNotStarted     ProjectStatus = "not_started"
	ProjectInProgress     ProjectStatus = "in_progress"
	ProjectOnHold         ProjectStatus = "on_hold"
	ProjectCompleted      ProjectStatus = "completed"
	ProjectCancelled      ProjectStatus = "cancelled"
	ProjectAlmostComplete ProjectStatus = "almost_complete"
)

// ProjectStatuses lists every status in display order.
var ProjectStatuses = []ProjectStatus{
	ProjectNotStarted, ProjectInProgress, ProjectOnHold,
	ProjectAlmostComplete, ProjectCompleted, ProjectCancelled,
}

type Project struct {
	ID          uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string        `gorm:"type:varchar(200);not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	Status      ProjectStatus `gorm:"type:varchar(32);not null;default:'not_started';index" json:"status"`
	Progress    int           `gorm:"not null;default:0;check:progress >= 0 AND progress <= 100" json:"progress"`
	StartDate   *time.Time    `json:"startDate,omitempty"`
	Deadline    *time.Time    `gorm:"index" json:"deadline,omitempty"`
	Budget      float64       `gorm:"not null;default:0" json:"budget"`
	Spent       float64       `gorm:"not null;default:0" json:"spent"`
	ClientID    *uint         `gorm:"index" json:"clientId,omitempty"`
	Priority    Priority      `gorm:"type:varchar(16);not null;default:'medium'" json:"priority"`

	TeamMembers datatypes.JSONSlice[uint]   `gorm:"type:json" swaggertype:"array,integer" json:"teamMembers"`
	Tags        datatypes.JSONSlice[string] `gorm:"type:json" swaggertype:"array,string" json:"tags"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Project) TableName() string { return "projects" }

func (p *Project) GetID() uint   { return p.ID }
func (p *Project) SetID(id uint) { p.ID = id }
func (p *Project) Stamp(now time.Time, created bool) {
	if created {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

// BudgetUtilization reports spent as a percentage of budget. Spending past the
// budget is allowed and yields values above 100.
func (p Project) BudgetUtilization() float64 {
	if p.Budget <= 0 {
		return 0
	}
	return p.Spent / p.Budget * 100
}

type ProjectFilter struct {
	Status         ProjectStatus
	ClientID       *uint
	MemberID       *uint
	DeadlineBefore *time.Time
}

func (f ProjectFilter) Match(p Project) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if !optUintEq(p.ClientID, f.ClientID) {
		return false
	}
	if f.MemberID != nil && !slices.Contains(p.TeamMembers, *f.MemberID) {
		return false
	}
	return timeBefore(p.Deadline, f.DeadlineBefore)
}

// ProjectPatch is a partial update. Nil fields are left untouched; an
// explicit null on a Nullable field clears it.
type ProjectPatch struct {
	Name        *string             `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string             `json:"description"`
	Status      *ProjectStatus      `json:"status" binding:"omitempty,oneof=not_started in_progress on_hold completed cancelled almost_complete"`
	Progress    *int                `json:"progress" binding:"omitempty,min=0,max=100"`
	StartDate   Nullable[time.Time] `json:"startDate" swaggertype:"string" format:"date-time" extensions:"x-nullable"`
	Deadline    Nullable[time.Time] `json:"deadline" swaggertype:"string" format:"date-time" extensions:"x-nullable"`
	Budget      *float64            `json:"budget" binding:"omitempty,min=0"`
	Spent       *float64            `json:"spent" binding:"omitempty,min=0"`
	ClientID    Nullable[uint]      `json:"clientId" swaggertype:"integer" extensions:"x-nullable"`
	TeamMembers *[]uint             `json:"teamMembers"`
	Tags        *[]string           `json:"tags"`
	Priority    *Priority           `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
}

func (p ProjectPatch) ApplyTo(m *Project) {
	setIf(&m.Name, p.Name)
	setIf(&m.Description, p.Description)
	setIf(&m.Status, p.Status)
	setIf(&m.Progress, p.Progress)
	setNullable(&m.StartDate, p.StartDate)
	setNullable(&m.Deadline, p.Deadline)
	setIf(&m.Budget, p.Budget)
	setIf(&m.Spent, p.Spent)
	setNullable(&m.ClientID, p.ClientID)
	if p.TeamMembers != nil {
		m.TeamMembers = slices.Clone(*p.TeamMembers)
	}
	if p.Tags != nil {
		m.Tags = slices.Clone(*p.Tags)
	}
	setIf(&m.Priority, p.Priority)
}

func (p ProjectPatch) MarshalJSON() ([]byte, error) {
	type plain ProjectPatch
	return marshalPatch(plain(p), map[string]bool{
		"startDate": p.StartDate.Set,
		"deadline":  p.Deadline.Set,
		"clientId":  p.ClientID.Set,
	})
}

func (p ProjectPatch) Columns() map[string]any {
	cols := columns{}
	cols.add("name", p.Name)
	cols.add("description", p.Description)
	cols.add("status", p.Status)
	cols.add("progress", p.Progress)
	addNullable(cols, "start_date", p.StartDate)
	addNullable(cols, "deadline", p.Deadline)
	cols.add("budget", p.Budget)
	cols.add("spent", p.Spent)
	addNullable(cols, "client_id", p.ClientID)
	if p.TeamMembers != nil {
		cols["team_members"] = datatypes.JSONSlice[uint](*p.TeamMembers)
	}
	if p.Tags != nil {
		cols["tags"] = datatypes.JSONSlice[string](*p.Tags)
	}
	cols.add("priority", p.Priority)
	return cols
}
