package models

import (
	"errors"
	"fmt"
)

// Session and gateway errors
var (
	// ErrUnauthenticated is returned when an operation requires a session and
	// none is stored; callers should send the user back to login
	ErrUnauthenticated = errors.New("not authenticated: no session found")

	// ErrVerificationFailed is returned when the one-time code was rejected;
	// intentionally carries no detail about which part failed
	ErrVerificationFailed = errors.New("verification failed, please try again")

	// ErrNoBuilderBotID is returned when a bot operation needs the hosting
	// platform id and the record has none assigned
	ErrNoBuilderBotID = errors.New("bot has no builder-bot id assigned")
)

// TransportError indicates the endpoint could not be reached at the network
// level. It keeps the endpoint URL so the CLI can print deployment
// troubleshooting steps.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("could not reach %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError indicates the endpoint answered with an empty or non-JSON body.
type ProtocolError struct {
	Endpoint string
	Body     string
	Err      error
}

func (e *ProtocolError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("empty response from %s, check the script logs", e.Endpoint)
	}
	return fmt.Sprintf("response from %s is not valid JSON: %v", e.Endpoint, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// AppError carries the error message the backend script reported with
// success:false.
type AppError struct {
	Action  string
	Message string
}

func (e *AppError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("action %q failed with an unknown script error", e.Action)
	}
	return e.Message
}
