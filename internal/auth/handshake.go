// Package auth implements the three-stage login handshake against the auth
// script: identify, verify a one-time code, or register first when the
// identifier is unknown. Registration never authenticates directly; it
// always funnels back into code verification.
package auth

import (
	"context"
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"gestorpro/internal/api"
	"gestorpro/internal/models"
)

// Stage is the handshake's current step
type Stage int

const (
	// StageIdentify asks for a WhatsApp number or email
	StageIdentify Stage = iota

	// StageAwaitingCode asks for the dispatched one-time code; this is the
	// only stage that can produce a session
	StageAwaitingCode

	// StageRegistering asks for the full profile of a new user
	StageRegistering
)

// Handshake errors
var (
	// ErrBusy is returned when a submit arrives while a call is in flight
	ErrBusy = errors.New("a request is already in flight")

	// ErrWrongStage is returned when a submit does not match the current stage
	ErrWrongStage = errors.New("submission does not match the current stage")

	// ErrRegistrationIncomplete is returned when the backend did not confirm
	// the registration
	ErrRegistrationIncomplete = errors.New("registration did not complete")
)

// Service is the slice of the gateway the handshake needs
type Service interface {
	FindUser(ctx context.Context, identifier string) (api.FindUserResult, error)
	VerifyToken(ctx context.Context, identifier, code string) (api.VerifyTokenResult, error)
	RegisterUser(ctx context.Context, form models.RegistrationForm) (api.RegisterResult, error)
}

// Handshake drives the login state machine. It is not safe for concurrent
// use; the busy flag only guards against re-submission from the same UI.
type Handshake struct {
	svc Service

	stage      Stage
	identifier string
	form       models.RegistrationForm
	message    string
	busy       bool
}

// New creates a handshake at the identify stage
func New(svc Service) *Handshake {
	return &Handshake{svc: svc}
}

// Stage returns the current step
func (h *Handshake) Stage() Stage { return h.stage }

// Identifier returns the identifier being verified
func (h *Handshake) Identifier() string { return h.identifier }

// Form returns the registration form, pre-filled after an unknown identifier
func (h *Handshake) Form() models.RegistrationForm { return h.form }

// Message returns the latest informational message from the backend, such as
// "code dispatched"
func (h *Handshake) Message() string { return h.message }

// Busy reports whether a call is in flight; submits are rejected meanwhile
func (h *Handshake) Busy() bool { return h.busy }

// begin clears prior messages and marks the handshake busy. Callers must
// defer the returned func.
func (h *Handshake) begin() (func(), error) {
	if h.busy {
		return nil, ErrBusy
	}
	h.busy = true
	h.message = ""
	return func() { h.busy = false }, nil
}

// SubmitIdentifier resolves a WhatsApp number or email. A known identifier
// moves to code verification (the backend has dispatched a code); an unknown
// one moves to registration with the matching field pre-filled.
func (h *Handshake) SubmitIdentifier(ctx context.Context, identifier string) error {
	if h.stage != StageIdentify {
		return ErrWrongStage
	}
	identifier = strings.TrimSpace(identifier)
	if err := validation.Validate(identifier, validation.Required); err != nil {
		return err
	}

	done, err := h.begin()
	if err != nil {
		return err
	}
	defer done()

	result, err := h.svc.FindUser(ctx, identifier)
	if err != nil {
		return err
	}

	h.identifier = identifier
	if result.UserExists {
		h.message = result.Message
		h.stage = StageAwaitingCode
		return nil
	}

	// New user: pre-fill exactly one profile field from the identifier
	h.form = models.RegistrationForm{}
	if strings.Contains(identifier, "@") {
		h.form.Email = identifier
	} else {
		h.form.WhatsApp = identifier
	}
	h.stage = StageRegistering
	return nil
}

// SubmitCode verifies the one-time code and yields the authenticated session.
// A rejected code reports a generic verification failure without detail.
func (h *Handshake) SubmitCode(ctx context.Context, code string) (*models.Session, error) {
	if h.stage != StageAwaitingCode {
		return nil, ErrWrongStage
	}
	code = strings.TrimSpace(code)
	if err := validation.Validate(code, validation.Required, validation.Length(6, 6), is.Digit); err != nil {
		return nil, err
	}

	done, err := h.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	result, err := h.svc.VerifyToken(ctx, h.identifier, code)
	if err != nil {
		return nil, err
	}

	if !result.Authenticated || result.IDSheet == "" {
		return nil, models.ErrVerificationFailed
	}

	return &models.Session{IDSheet: result.IDSheet}, nil
}

// SubmitRegistration registers the profile and, once the backend confirms,
// moves to code verification with the identifier taken from the form
func (h *Handshake) SubmitRegistration(ctx context.Context, form models.RegistrationForm) error {
	if h.stage != StageRegistering {
		return ErrWrongStage
	}
	if err := form.Validate(); err != nil {
		return err
	}

	done, err := h.begin()
	if err != nil {
		return err
	}
	defer done()

	result, err := h.svc.RegisterUser(ctx, form)
	if err != nil {
		return err
	}
	if !result.RegistrationComplete {
		return ErrRegistrationIncomplete
	}

	h.form = form
	h.identifier = form.Identifier()
	h.message = result.Message
	h.stage = StageAwaitingCode
	return nil
}

// Reset returns to the identify stage so the user can try another identifier
func (h *Handshake) Reset() {
	h.stage = StageIdentify
	h.identifier = ""
	h.form = models.RegistrationForm{}
	h.message = ""
}
