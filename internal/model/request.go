package model

import (
	"fmt"
	"strings"

	"github.com/asaskevich/govalidator"
	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	MinPasswordLength = 6
	// bcrypt rejects inputs longer than 72 bytes.
	MaxPasswordBytes = 72
)

var emailFormat = validation.NewStringRule(govalidator.IsEmail, "must be a valid email address")

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize trims the identity fields. The password is kept verbatim.
func (r RegisterRequest) Normalize() RegisterRequest {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	return r
}

// Validate will validate the payload
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 254), emailFormat),
		validation.Field(
			&r.Password,
			validation.Required,
			validation.RuneLength(MinPasswordLength, 0),
			validation.By(maxBytes(MaxPasswordBytes)),
		),
	)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Normalize() LoginRequest {
	r.Email = strings.TrimSpace(r.Email)
	return r
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, emailFormat),
		validation.Field(&r.Password, validation.Required),
	)
}

func maxBytes(limit int) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if len(s) > limit {
			return fmt.Errorf("must be at most %d bytes long", limit)
		}
		return nil
	}
}
