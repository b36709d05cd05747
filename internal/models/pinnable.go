package models

import (
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Pinnable is a record carrying an optional pinned flag that affects sort
// order: pinned entries sort before unpinned ones, then newest first.
type Pinnable interface {
	Pinned() bool
	Created() time.Time
}

// SortPinned orders items pinned-first, then by descending creation time.
// The sort is stable so equal entries keep their relative order across polls.
func SortPinned[T Pinnable](items []T) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Pinned() != items[j].Pinned() {
			return items[i].Pinned()
		}
		return items[i].Created().After(items[j].Created())
	})
}

func parseCreatedAt(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, _ = time.Parse("2006-01-02", s)
	}
	return t
}

// Note is a per-project note
type Note struct {
	ID        string `json:"id,omitempty"`
	ProjectID string `json:"projectId"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt,omitempty"`
	IsPinned  bool   `json:"isPinned,omitempty"`
}

func (n Note) Pinned() bool       { return n.IsPinned }
func (n Note) Created() time.Time { return parseCreatedAt(n.CreatedAt) }

func (n Note) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.ProjectID, validation.Required),
		validation.Field(&n.Title, validation.Required),
		validation.Field(&n.Content, validation.Required),
	)
}

// Link is a per-project bookmark
type Link struct {
	ID          string `json:"id,omitempty"`
	ProjectID   string `json:"projectId"`
	URL         string `json:"url"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt,omitempty"`
	IsPinned    bool   `json:"isPinned,omitempty"`
}

func (l Link) Pinned() bool       { return l.IsPinned }
func (l Link) Created() time.Time { return parseCreatedAt(l.CreatedAt) }

func (l Link) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.ProjectID, validation.Required),
		validation.Field(&l.URL, validation.Required, is.URL),
	)
}

// Prompt is a logged AI prompt/response pair for a project
type Prompt struct {
	ID        string `json:"id,omitempty"`
	ProjectID string `json:"projectId"`
	Prompt    string `json:"prompt"`
	Response  string `json:"response"`
	CreatedAt string `json:"createdAt,omitempty"`
	IsPinned  bool   `json:"isPinned,omitempty"`
}

func (p Prompt) Pinned() bool       { return p.IsPinned }
func (p Prompt) Created() time.Time { return parseCreatedAt(p.CreatedAt) }

func (p Prompt) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ProjectID, validation.Required),
		validation.Field(&p.Prompt, validation.Required),
	)
}
