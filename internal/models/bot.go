package models

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Bot represents a messaging chatbot hosted on the builder-bot platform
type Bot struct {
	ID                 string `json:"id,omitempty"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	SystemInstruction  string `json:"systemInstruction"`
	CreatedAt          string `json:"createdAt,omitempty"`
	UpdatedAt          string `json:"updatedAt,omitempty"`
	BuilderBotID       string `json:"id_builderBot"`
	BuilderBotAPIKey   string `json:"builderBotApiKey,omitempty"`
	Status             string `json:"status,omitempty"`
	OnlineSince        string `json:"onlineSince,omitempty"`
	LastOnlineDuration string `json:"lastOnlineDuration,omitempty"`
}

func (b Bot) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Name, validation.Required),
		validation.Field(&b.SystemInstruction, validation.Required),
	)
}

// State maps the bot's free-form status string to its display semantics
func (b Bot) State() BotState {
	return ParseBotStatus(b.Status)
}

// Created parses the bot's creation timestamp for sorting
func (b Bot) Created() time.Time {
	t, _ := time.Parse(time.RFC3339, b.CreatedAt)
	return t
}

// OnlineFor reports how long the bot has been online. Only meaningful while
// the status denotes online; returns false otherwise.
func (b Bot) OnlineFor(now time.Time) (time.Duration, bool) {
	if !b.State().IsOnline() || b.OnlineSince == "" {
		return 0, false
	}
	since, err := time.Parse(time.RFC3339, b.OnlineSince)
	if err != nil {
		return 0, false
	}
	d := now.Sub(since)
	if d < 0 {
		d = 0
	}
	return d, true
}

// BotStateKind is the closed set of recognized bot lifecycle states
type BotStateKind int

const (
	BotStateUnknown BotStateKind = iota
	BotStateOnline
	BotStateNotFound
	BotStateFailed
	BotStateError
	BotStateInProgress
	BotStatePendingSync
	BotStateConnecting
	BotStateReadyToScan
	BotStateDisconnecting
)

// BotState is the parsed status. Raw keeps the original wire string so
// unrecognized backend states are displayed instead of being misclassified.
type BotState struct {
	Kind BotStateKind
	Raw  string
}

// ParseBotStatus maps the wire status string to its state. Matching is
// case-insensitive; anything outside the recognized set becomes Unknown.
func ParseBotStatus(raw string) BotState {
	kind := BotStateUnknown
	switch strings.ToUpper(raw) {
	case "ONLINE", "ACTIVE":
		kind = BotStateOnline
	case "NOT_FOUND":
		kind = BotStateNotFound
	case "FAILED":
		kind = BotStateFailed
	case "ERROR":
		kind = BotStateError
	case "IN_PROGRESS":
		kind = BotStateInProgress
	case "PENDING SYNC":
		kind = BotStatePendingSync
	case "CONNECTING":
		kind = BotStateConnecting
	case "READY_TO_SCAN":
		kind = BotStateReadyToScan
	case "DISCONNECTING":
		kind = BotStateDisconnecting
	}
	return BotState{Kind: kind, Raw: raw}
}

// IsOnline reports whether the bot counts as active
func (s BotState) IsOnline() bool {
	return s.Kind == BotStateOnline
}

// IsTransitional reports whether connect/disconnect actions are locked out.
// Read-only actions (flows, prompts) stay available.
func (s BotState) IsTransitional() bool {
	switch s.Kind {
	case BotStateConnecting, BotStateDisconnecting, BotStatePendingSync:
		return true
	}
	return false
}

// IsReadyToScan reports whether a pairing code should be fetched
func (s BotState) IsReadyToScan() bool {
	return s.Kind == BotStateReadyToScan
}

// Label returns the human-readable state name; unknown states show the raw
// wire value so new backend states remain visible
func (s BotState) Label() string {
	switch s.Kind {
	case BotStateOnline:
		return "Online"
	case BotStateNotFound:
		return "No connection"
	case BotStateFailed:
		return "Failed"
	case BotStateError:
		return "Error"
	case BotStateInProgress:
		return "In progress"
	case BotStatePendingSync:
		return "Syncing"
	case BotStateConnecting:
		return "Connecting..."
	case BotStateReadyToScan:
		return "Ready to scan"
	case BotStateDisconnecting:
		return "Shutting down..."
	}
	if s.Raw == "" {
		return "Unknown"
	}
	return s.Raw
}

// CountActive returns how many bots are currently online
func CountActive(bots []Bot) int {
	n := 0
	for _, b := range bots {
		if b.State().IsOnline() {
			n++
		}
	}
	return n
}
