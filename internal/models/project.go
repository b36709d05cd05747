package models

import (
	"fmt"
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ProjectStatus is the project lifecycle state. The wire values are the
// backend's original Spanish labels and must not be translated.
type ProjectStatus string

const (
	StatusNotStarted ProjectStatus = "No Iniciado"
	StatusInProgress ProjectStatus = "En Progreso"
	StatusCompleted  ProjectStatus = "Completado"
	StatusOnHold     ProjectStatus = "En Pausa"
)

// ProjectStatuses lists every valid status value
var ProjectStatuses = []ProjectStatus{
	StatusNotStarted,
	StatusInProgress,
	StatusCompleted,
	StatusOnHold,
}

// ParseProjectStatus maps a wire string to a status, rejecting anything
// outside the fixed enum
func ParseProjectStatus(s string) (ProjectStatus, error) {
	for _, status := range ProjectStatuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", fmt.Errorf("invalid project status %q", s)
}

// Project represents a client project
type Project struct {
	ID         string        `json:"id,omitempty"`
	Name       string        `json:"name"`
	ClientID   string        `json:"clientId"`
	ClientName string        `json:"clientName,omitempty"`
	StartDate  string        `json:"startDate"`
	EndDate    string        `json:"endDate"`
	Budget     float64       `json:"budget"`
	Status     ProjectStatus `json:"status"`
}

// Validate checks required fields before any network call is made
func (p Project) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.ClientID, validation.Required),
		validation.Field(&p.Status, validation.Required, validation.By(func(v interface{}) error {
			_, err := ParseProjectStatus(string(v.(ProjectStatus)))
			return err
		})),
	)
}

// End parses the project's end date; the zero time means unparseable
func (p Project) End() time.Time {
	t, err := time.Parse(time.RFC3339, p.EndDate)
	if err != nil {
		t, _ = time.Parse("2006-01-02", p.EndDate)
	}
	return t
}

// Start parses the project's start date; the zero time means unparseable
func (p Project) Start() time.Time {
	t, err := time.Parse(time.RFC3339, p.StartDate)
	if err != nil {
		t, _ = time.Parse("2006-01-02", p.StartDate)
	}
	return t
}

// UpcomingDeliveries returns up to limit projects that are not completed and
// end after now, ordered by the nearest end date first
func UpcomingDeliveries(projects []Project, now time.Time, limit int) []Project {
	upcoming := make([]Project, 0, len(projects))
	for _, p := range projects {
		if p.Status != StatusCompleted && p.End().After(now) {
			upcoming = append(upcoming, p)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].End().Before(upcoming[j].End())
	})

	if len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}
