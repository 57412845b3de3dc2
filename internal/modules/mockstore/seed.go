package mockstore

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/pkg/utils/secrets"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

// Fixture is the deterministic sample dataset. Passwords in it are demo
// credentials and are hashed before they reach any store.
type Fixture struct {
	Epoch         time.Time             `yaml:"epoch"`
	Users         []fixtureUser         `yaml:"users"`
	Projects      []fixtureProject      `yaml:"projects"`
	Tasks         []fixtureTask         `yaml:"tasks"`
	Comments      []fixtureComment      `yaml:"comments"`
	Notifications []fixtureNotification `yaml:"notifications"`
	TimeEntries   []fixtureTimeEntry    `yaml:"timeEntries"`
}

type fixtureUser struct {
	Name       string `yaml:"name"`
	Email      string `yaml:"email"`
	Password   string `yaml:"password"`
	Role       string `yaml:"role"`
	Position   string `yaml:"position"`
	Department string `yaml:"department"`
	Avatar     string `yaml:"avatar"`
}

type fixtureProject struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Status      string     `yaml:"status"`
	Progress    int        `yaml:"progress"`
	StartDate   *time.Time `yaml:"startDate"`
	Deadline    *time.Time `yaml:"deadline"`
	Budget      float64    `yaml:"budget"`
	Spent       float64    `yaml:"spent"`
	ClientID    *uint      `yaml:"clientId"`
	TeamMembers []uint     `yaml:"teamMembers"`
	Tags        []string   `yaml:"tags"`
	Priority    string     `yaml:"priority"`
}

type fixtureTask struct {
	Title          string     `yaml:"title"`
	Description    string     `yaml:"description"`
	Status         string     `yaml:"status"`
	Priority       string     `yaml:"priority"`
	ProjectID      uint       `yaml:"projectId"`
	AssigneeID     *uint      `yaml:"assigneeId"`
	Deadline       *time.Time `yaml:"deadline"`
	EstimatedHours float64    `yaml:"estimatedHours"`
	ActualHours    float64    `yaml:"actualHours"`
	Tags           []string   `yaml:"tags"`
}

type fixtureComment struct {
	TaskID   uint   `yaml:"taskId"`
	AuthorID uint   `yaml:"authorId"`
	Text     string `yaml:"text"`
}

type fixtureNotification struct {
	UserID      uint   `yaml:"userId"`
	Title       string `yaml:"title"`
	Message     string `yaml:"message"`
	Type        string `yaml:"type"`
	Read        bool   `yaml:"read"`
	RelatedID   *uint  `yaml:"relatedId"`
	RelatedType string `yaml:"relatedType"`
	AgeHours    int    `yaml:"ageHours"`
}

type fixtureTimeEntry struct {
	UserID      uint      `yaml:"userId"`
	ProjectID   uint      `yaml:"projectId"`
	TaskID      *uint     `yaml:"taskId"`
	Date        time.Time `yaml:"date"`
	Minutes     int       `yaml:"minutes"`
	Description string    `yaml:"description"`
}

// LoadFixture parses the embedded sample dataset.
func LoadFixture() (*Fixture, error) {
	f := new(Fixture)
	if err := yaml.Unmarshal(seedYAML, f); err != nil {
		return nil, fmt.Errorf("parse seed fixture: %w", err)
	}
	return f, nil
}

// Apply loads the fixture into s. Records get ids in file order starting at 1
// and creation times one hour apart from the fixture epoch.
func (f *Fixture) Apply(s *Store) error {
	at := func(i int) time.Time { return f.Epoch.Add(time.Duration(i) * time.Hour) }

	for i, u := range f.Users {
		hash, err := secrets.HashPassword(u.Password)
		if err != nil {
			return fmt.Errorf("hash fixture password: %w", err)
		}
		s.Users.seed(model.User{
			Name:         u.Name,
			Email:        model.NormalizeEmail(u.Email),
			Role:         model.Role(u.Role),
			PasswordHash: hash,
			Position:     u.Position,
			Department:   u.Department,
			Avatar:       u.Avatar,
			CreatedAt:    at(i),
			UpdatedAt:    at(i),
		})
	}
	for i, p := range f.Projects {
		s.Projects.seed(model.Project{
			Name:        p.Name,
			Description: p.Description,
			Status:      model.ProjectStatus(p.Status),
			Progress:    p.Progress,
			StartDate:   p.StartDate,
			Deadline:    p.Deadline,
			Budget:      p.Budget,
			Spent:       p.Spent,
			ClientID:    p.ClientID,
			TeamMembers: p.TeamMembers,
			Tags:        p.Tags,
			Priority:    model.Priority(p.Priority),
			CreatedAt:   at(i),
			UpdatedAt:   at(i),
		})
	}
	for i, t := range f.Tasks {
		s.Tasks.seed(model.Task{
			Title:          t.Title,
			Description:    t.Description,
			Status:         model.TaskStatus(t.Status),
			Priority:       model.Priority(t.Priority),
			ProjectID:      t.ProjectID,
			AssigneeID:     t.AssigneeID,
			Deadline:       t.Deadline,
			EstimatedHours: t.EstimatedHours,
			ActualHours:    t.ActualHours,
			Tags:           t.Tags,
			CreatedAt:      at(i),
			UpdatedAt:      at(i),
		})
	}
	for i, c := range f.Comments {
		author, _ := s.Users.Get(c.AuthorID)
		s.Comments.seed(model.Comment{
			TaskID:     c.TaskID,
			AuthorID:   c.AuthorID,
			AuthorName: author.Name,
			Text:       c.Text,
			CreatedAt:  at(i),
			UpdatedAt:  at(i),
		})
	}
	// notifications are dated backwards from the latest one
	latest := at(len(f.Notifications))
	for _, n := range f.Notifications {
		created := latest.Add(-time.Duration(n.AgeHours) * time.Hour)
		s.Notifications.seed(model.Notification{
			UserID:      n.UserID,
			Title:       n.Title,
			Message:     n.Message,
			Type:        model.NotificationType(n.Type),
			Read:        n.Read,
			RelatedID:   n.RelatedID,
			RelatedType: model.Kind(n.RelatedType),
			CreatedAt:   created,
			UpdatedAt:   created,
		})
	}
	for i, e := range f.TimeEntries {
		s.TimeEntries.seed(model.TimeEntry{
			Date:        e.Date,
			Minutes:     e.Minutes,
			Description: e.Description,
			UserID:      e.UserID,
			ProjectID:   e.ProjectID,
			TaskID:      e.TaskID,
			CreatedAt:   at(i),
			UpdatedAt:   at(i),
		})
	}
	return nil
}
