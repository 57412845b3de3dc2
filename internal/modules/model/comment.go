package model

import "time"

type Comment struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	TaskID     uint   `gorm:"not null;index" json:"taskId"`
	AuthorID   uint   `gorm:"not null" json:"authorId"`
	AuthorName string `gorm:"type:varchar(120)" json:"authorName"`
	Text       string `gorm:"type:text;not null" json:"text"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Comment) TableName() string { return "comments" }

func (c *Comment) GetID() uint   { return c.ID }
func (c *Comment) SetID(id uint) { c.ID = id }
func (c *Comment) Stamp(now time.Time, created bool) {
	if created {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}

type CommentFilter struct {
	TaskID *uint
}

func (f CommentFilter) Match(c Comment) bool {
	return uintEq(c.TaskID, f.TaskID)
}
