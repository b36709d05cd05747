package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// RegistrationForm is the profile submitted when a new user signs up. The
// JSON keys are the auth script's sheet column names and must stay as-is.
type RegistrationForm struct {
	FirstName string `json:"Nombre"`
	LastName  string `json:"Apellido"`
	WhatsApp  string `json:"WhatsApp"`
	Email     string `json:"Email"`
	BirthDate string `json:"FechaNacimiento"`
}

func (f RegistrationForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.FirstName, validation.Required),
		validation.Field(&f.LastName, validation.Required),
		validation.Field(&f.WhatsApp, validation.Required),
		validation.Field(&f.Email, validation.Required, is.Email),
		validation.Field(&f.BirthDate, validation.Required, validation.Date("2006-01-02")),
	)
}

// Identifier returns the value used for code verification after registering:
// the WhatsApp number when present, the email otherwise
func (f RegistrationForm) Identifier() string {
	if f.WhatsApp != "" {
		return f.WhatsApp
	}
	return f.Email
}
