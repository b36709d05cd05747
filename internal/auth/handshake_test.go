package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"gestorpro/internal/api"
	"gestorpro/internal/models"
)

// fakeService scripts the auth backend's answers
type fakeService struct {
	findUser      func(identifier string) (api.FindUserResult, error)
	verifyToken   func(identifier, code string) (api.VerifyTokenResult, error)
	registerUser  func(form models.RegistrationForm) (api.RegisterResult, error)
	registeredVia models.RegistrationForm
}

func (f *fakeService) FindUser(ctx context.Context, identifier string) (api.FindUserResult, error) {
	return f.findUser(identifier)
}

func (f *fakeService) VerifyToken(ctx context.Context, identifier, code string) (api.VerifyTokenResult, error) {
	return f.verifyToken(identifier, code)
}

func (f *fakeService) RegisterUser(ctx context.Context, form models.RegistrationForm) (api.RegisterResult, error) {
	f.registeredVia = form
	return f.registerUser(form)
}

func validForm() models.RegistrationForm {
	return models.RegistrationForm{
		FirstName: "Ana",
		LastName:  "Diaz",
		WhatsApp:  "599-1234",
		Email:     "ana@example.com",
		BirthDate: "1990-04-02",
	}
}

func TestKnownIdentifierMovesToCodeStage(t *testing.T) {
	svc := &fakeService{
		findUser: func(identifier string) (api.FindUserResult, error) {
			return api.FindUserResult{UserExists: true, Message: "Code sent to your WhatsApp"}, nil
		},
	}
	h := New(svc)

	require.NoError(t, h.SubmitIdentifier(context.Background(), "  599-1234  "))
	require.Equal(t, StageAwaitingCode, h.Stage())
	require.Equal(t, "599-1234", h.Identifier(), "identifier is trimmed")
	require.Equal(t, "Code sent to your WhatsApp", h.Message())
}

func TestUnknownIdentifierPrefillsRegistration(t *testing.T) {
	svc := &fakeService{
		findUser: func(identifier string) (api.FindUserResult, error) {
			return api.FindUserResult{UserExists: false}, nil
		},
	}

	h := New(svc)
	require.NoError(t, h.SubmitIdentifier(context.Background(), "ana@example.com"))
	require.Equal(t, StageRegistering, h.Stage())
	require.Equal(t, "ana@example.com", h.Form().Email)
	require.Empty(t, h.Form().WhatsApp, "exactly one field is pre-filled")

	h = New(svc)
	require.NoError(t, h.SubmitIdentifier(context.Background(), "599-1234"))
	require.Equal(t, "599-1234", h.Form().WhatsApp)
	require.Empty(t, h.Form().Email)
}

func TestSubmitIdentifierRejectsEmpty(t *testing.T) {
	h := New(&fakeService{})
	require.Error(t, h.SubmitIdentifier(context.Background(), "   "))
	require.Equal(t, StageIdentify, h.Stage())
}

func TestSubmitCodeYieldsSession(t *testing.T) {
	svc := &fakeService{
		findUser: func(identifier string) (api.FindUserResult, error) {
			return api.FindUserResult{UserExists: true}, nil
		},
		verifyToken: func(identifier, code string) (api.VerifyTokenResult, error) {
			require.Equal(t, "599-1234", identifier)
			require.Equal(t, "482913", code)
			return api.VerifyTokenResult{Authenticated: true, IDSheet: "abc"}, nil
		},
	}
	h := New(svc)
	require.NoError(t, h.SubmitIdentifier(context.Background(), "599-1234"))

	session, err := h.SubmitCode(context.Background(), "482913")
	require.NoError(t, err)
	require.Equal(t, "abc", session.IDSheet)
}

func TestSubmitCodeValidatesShape(t *testing.T) {
	svc := &fakeService{
		findUser: func(identifier string) (api.FindUserResult, error) {
			return api.FindUserResult{UserExists: true}, nil
		},
		verifyToken: func(identifier, code string) (api.VerifyTokenResult, error) {
			t.Fatal("malformed codes must not reach the backend")
			return api.VerifyTokenResult{}, nil
		},
	}
	h := New(svc)
	require.NoError(t, h.SubmitIdentifier(context.Background(), "599-1234"))

	for _, code := range []string{"", "12345", "1234567", "12345a"} {
		_, err := h.SubmitCode(context.Background(), code)
		require.Error(t, err, "code %q", code)
	}
}

func TestSubmitCodeRejectionIsGeneric(t *testing.T) {
	svc := &fakeService{
		findUser: func(identifier string) (api.FindUserResult, error) {
			return api.FindUserResult{UserExists: true}, nil
		},
		verifyToken: func(identifier, code string) (api.VerifyTokenResult, error) {
			return api.VerifyTokenResult{Authenticated: false}, nil
		},
	}
	h := New(svc)
	require.NoError(t, h.SubmitIdentifier(context.Background(), "599-1234"))

	_, err := h.SubmitCode(context.Background(), "482913")
	require.ErrorIs(t, err, models.ErrVerificationFailed)

	// Authenticated without a tenant id is just as much a failure
	svc.verifyToken = func(identifier, code string) (api.VerifyTokenResult, error) {
		return api.VerifyTokenResult{Authenticated: true}, nil
	}
	_, err = h.SubmitCode(context.Background(), "482913")
	require.ErrorIs(t, err, models.ErrVerificationFailed)
}

func TestRegistrationFunnelsIntoVerification(t *testing.T) {
	svc := &fakeService{
		findUser: func(identifier string) (api.FindUserResult, error) {
			return api.FindUserResult{UserExists: false}, nil
		},
		registerUser: func(form models.RegistrationForm) (api.RegisterResult, error) {
			return api.RegisterResult{RegistrationComplete: true, Message: "Check your WhatsApp"}, nil
		},
		verifyToken: func(identifier, code string) (api.VerifyTokenResult, error) {
			require.Equal(t, "599-1234", identifier, "verification uses the form's WhatsApp number")
			return api.VerifyTokenResult{Authenticated: true, IDSheet: "abc"}, nil
		},
	}

	h := New(svc)
	require.NoError(t, h.SubmitIdentifier(context.Background(), "599-1234"))
	require.Equal(t, StageRegistering, h.Stage())

	require.NoError(t, h.SubmitRegistration(context.Background(), validForm()))
	require.Equal(t, StageAwaitingCode, h.Stage())
	require.Equal(t, "Check your WhatsApp", h.Message())
	require.Equal(t, validForm(), svc.registeredVia)

	// Registration never authenticates directly; the code is still required
	session, err := h.SubmitCode(context.Background(), "482913")
	require.NoError(t, err)
	require.Equal(t, "abc", session.IDSheet)
}

func TestRegistrationValidatesBeforeCalling(t *testing.T) {
	svc := &fakeService{
		findUser: func(identifier string) (api.FindUserResult, error) {
			return api.FindUserResult{UserExists: false}, nil
		},
		registerUser: func(form models.RegistrationForm) (api.RegisterResult, error) {
			t.Fatal("invalid forms must not reach the backend")
			return api.RegisterResult{}, nil
		},
	}
	h := New(svc)
	require.NoError(t, h.SubmitIdentifier(context.Background(), "599-1234"))

	form := validForm()
	form.Email = "not-an-email"
	require.Error(t, h.SubmitRegistration(context.Background(), form))
	require.Equal(t, StageRegistering, h.Stage())
}

func TestRegistrationIncomplete(t *testing.T) {
	svc := &fakeService{
		findUser: func(identifier string) (api.FindUserResult, error) {
			return api.FindUserResult{UserExists: false}, nil
		},
		registerUser: func(form models.RegistrationForm) (api.RegisterResult, error) {
			return api.RegisterResult{RegistrationComplete: false}, nil
		},
	}
	h := New(svc)
	require.NoError(t, h.SubmitIdentifier(context.Background(), "599-1234"))

	err := h.SubmitRegistration(context.Background(), validForm())
	require.ErrorIs(t, err, ErrRegistrationIncomplete)
	require.Equal(t, StageRegistering, h.Stage(), "stays at registration for another attempt")
}

func TestWrongStageSubmissions(t *testing.T) {
	h := New(&fakeService{})

	_, err := h.SubmitCode(context.Background(), "482913")
	require.ErrorIs(t, err, ErrWrongStage)

	err = h.SubmitRegistration(context.Background(), validForm())
	require.ErrorIs(t, err, ErrWrongStage)
}

func TestFindUserFailureKeepsStage(t *testing.T) {
	boom := errors.New("backend down")
	svc := &fakeService{
		findUser: func(identifier string) (api.FindUserResult, error) {
			return api.FindUserResult{}, boom
		},
	}
	h := New(svc)

	require.ErrorIs(t, h.SubmitIdentifier(context.Background(), "599-1234"), boom)
	require.Equal(t, StageIdentify, h.Stage())
	require.False(t, h.Busy(), "busy flag is released after a failure")
}

func TestReset(t *testing.T) {
	svc := &fakeService{
		findUser: func(identifier string) (api.FindUserResult, error) {
			return api.FindUserResult{UserExists: false}, nil
		},
	}
	h := New(svc)
	require.NoError(t, h.SubmitIdentifier(context.Background(), "ana@example.com"))

	h.Reset()
	require.Equal(t, StageIdentify, h.Stage())
	require.Empty(t, h.Identifier())
	require.Empty(t, h.Form().Email)
}
