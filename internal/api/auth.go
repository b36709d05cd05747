package api

import (
	"context"

	"gestorpro/internal/models"
)

// FindUserResult reports whether an identifier resolves to an account. When
// it does the backend has already dispatched a one-time code.
type FindUserResult struct {
	UserExists bool   `json:"userExists"`
	Message    string `json:"message,omitempty"`
}

// VerifyTokenResult carries the tenant identifier on successful verification
type VerifyTokenResult struct {
	Authenticated bool   `json:"authenticated"`
	IDSheet       string `json:"id_sheet,omitempty"`
}

// RegisterResult reports the outcome of a registration; a completed
// registration still requires code verification before a session exists
type RegisterResult struct {
	RegistrationComplete bool   `json:"registrationComplete"`
	Message              string `json:"message,omitempty"`
}

// FindUser resolves a phone/email identifier against the auth script
func (g *Gateway) FindUser(ctx context.Context, identifier string) (FindUserResult, error) {
	raw, err := g.callAuth(ctx, "findUser", identifier)
	if err != nil {
		return FindUserResult{}, err
	}
	return decode[FindUserResult]("findUser", raw)
}

// VerifyToken exchanges a one-time code for a tenant identifier
func (g *Gateway) VerifyToken(ctx context.Context, identifier, code string) (VerifyTokenResult, error) {
	payload := struct {
		Identifier string `json:"identifier"`
		Token      string `json:"token"`
	}{Identifier: identifier, Token: code}

	raw, err := g.callAuth(ctx, "verifyToken", payload)
	if err != nil {
		return VerifyTokenResult{}, err
	}
	return decode[VerifyTokenResult]("verifyToken", raw)
}

// RegisterUser creates a new account; verification always follows
func (g *Gateway) RegisterUser(ctx context.Context, form models.RegistrationForm) (RegisterResult, error) {
	raw, err := g.callAuth(ctx, "registerUser", form)
	if err != nil {
		return RegisterResult{}, err
	}
	return decode[RegisterResult]("registerUser", raw)
}
