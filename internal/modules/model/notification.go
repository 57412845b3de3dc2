package model

import "time"

type NotificationType string

const (
	NotifyTaskAssigned   NotificationType = "task_assigned"
	NotifyProjectUpdated NotificationType = "project_updated"
	NotifyCommentAdded   NotificationType = "comment_added"
	NotifyBudgetUpdated  NotificationType = "budget_updated"
	NotifyTaskDeadline   NotificationType = "task_deadline"
	NotifyTeamUpdated    NotificationType = "team_updated"
	NotifyTaskCompleted  NotificationType = "task_completed"
)

type Notification struct {
	ID          uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint             `gorm:"not null;index" json:"userId"`
	Title       string           `gorm:"type:varchar(200);not null" json:"title"`
	Message     string           `gorm:"type:text" json:"message"`
	Type        NotificationType `gorm:"type:varchar(32);not null" json:"type"`
	Read        bool             `gorm:"not null;default:false" json:"read"`
	RelatedID   *uint            `json:"relatedId,omitempty"`
	RelatedType Kind             `gorm:"type:varchar(32)" json:"relatedType,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Notification) TableName() string { return "notifications" }

func (n *Notification) GetID() uint   { return n.ID }
func (n *Notification) SetID(id uint) { n.ID = id }
func (n *Notification) Stamp(now time.Time, created bool) {
	if created {
		n.CreatedAt = now
	}
	n.UpdatedAt = now
}

type NotificationFilter struct {
	UserID     *uint
	UnreadOnly bool
}

func (f NotificationFilter) Match(n Notification) bool {
	if !uintEq(n.UserID, f.UserID) {
		return false
	}
	return !f.UnreadOnly || !n.Read
}
