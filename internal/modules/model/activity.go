package model

import "time"

type Verb string

const (
	VerbCreated Verb = "created"
	VerbUpdated Verb = "updated"
	VerbDeleted Verb = "deleted"
)

// Activity is one line of the audit trail written after project and task
// mutations.
type Activity struct {
	ID         uint   `json:"id"`
	ActorID    uint   `json:"actorId"`
	ActorName  string `json:"actorName"`
	Verb       Verb   `json:"verb"`
	EntityKind Kind   `json:"entityKind"`
	EntityID   uint   `json:"entityId"`
	Summary    string `json:"summary"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Activity) GetID() uint   { return a.ID }
func (a *Activity) SetID(id uint) { a.ID = id }
func (a *Activity) Stamp(now time.Time, created bool) {
	if created {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
}
