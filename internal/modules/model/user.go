package model

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleTeam   Role = "team"
	RoleClient Role = "client"
)

// User never serializes its password hash.
type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"type:varchar(120);not null" json:"name"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Role         Role   `gorm:"type:varchar(16);not null;default:'team';index" json:"role"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	Position     string `gorm:"type:varchar(120)" json:"position"`
	Department   string `gorm:"type:varchar(120)" json:"department"`
	Avatar       string `gorm:"type:varchar(512)" json:"avatar"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

func (u *User) GetID() uint   { return u.ID }
func (u *User) SetID(id uint) { u.ID = id }
func (u *User) Stamp(now time.Time, created bool) {
	if created {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
}

// NormalizeEmail is the form emails are stored and compared in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type UserFilter struct {
	Role  Role
	Email string
}

func (f UserFilter) Match(u User) bool {
	if f.Role != "" && u.Role != f.Role {
		return false
	}
	return f.Email == "" || u.Email == NormalizeEmail(f.Email)
}

// UserPatch carries a new password in clear; services hash it into
// PasswordHash before it reaches any store.
type UserPatch struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=120"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Role         *Role   `json:"role" binding:"omitempty,oneof=admin team client"`
	Password     *string `json:"password" binding:"omitempty,min=6"`
	Position     *string `json:"position"`
	Department   *string `json:"department"`
	Avatar       *string `json:"avatar"`
	PasswordHash *string `json:"-"`
}

func (p UserPatch) ApplyTo(m *User) {
	setIf(&m.Name, p.Name)
	if p.Email != nil {
		m.Email = NormalizeEmail(*p.Email)
	}
	setIf(&m.Role, p.Role)
	setIf(&m.PasswordHash, p.PasswordHash)
	setIf(&m.Position, p.Position)
	setIf(&m.Department, p.Department)
	setIf(&m.Avatar, p.Avatar)
}

func (p UserPatch) Columns() map[string]any {
	cols := columns{}
	cols.add("name", p.Name)
	if p.Email != nil {
		cols["email"] = NormalizeEmail(*p.Email)
	}
	cols.add("role", p.Role)
	cols.add("password_hash", p.PasswordHash)
	cols.add("position", p.Position)
	cols.add("department", p.Department)
	cols.add("avatar", p.Avatar)
	return cols
}
