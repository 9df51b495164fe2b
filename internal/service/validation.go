package service

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Messages shown to users when a form is rejected.
const (
	MsgAllFieldsRequired   = "All fields are required."
	MsgNameTooShort        = "First and last name must be at least 2 characters long."
	MsgPasswordMismatch    = "Passwords do not match."
	MsgPasswordTooLong     = "Password must be at most 72 bytes long."
	MsgInvalidEmail        = "Please enter a valid email address."
	MsgMovieFieldTooShort  = "Title, director and synopsis must be at least 3 characters long."
	MsgInvalidReleaseDate  = "Release date must be a valid date (YYYY-MM-DD)."
	MsgCredentialsRequired = "Email and password are required."
	MsgCommentEmpty        = "Comment cannot be empty."
	MsgEmailTaken          = "An account with this email already exists."
	MsgTitleTaken          = "A movie with this title already exists."
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("emailshape", emailShape)
	_ = v.RegisterValidation("bcryptmax", bcryptMax)
	return v
}

// maxPasswordBytes is the longest input bcrypt hashes.
const maxPasswordBytes = 72

// bcryptMax counts bytes, not runes.
func bcryptMax(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= maxPasswordBytes
}

// emailShape accepts local@domain where the domain contains a dot that is
// neither its first nor its last character.
func emailShape(fl validator.FieldLevel) bool {
	local, domain, ok := strings.Cut(fl.Field().String(), "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return false
	}
	dot := strings.LastIndex(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

// rule pairs a validator tag with the message reported when it fails.
// Rules are checked in order, so the first listed failure wins no matter
// which field produced it.
type rule struct {
	tag string
	msg string
}

// check runs struct validation on in and reports the first failing rule.
func check(in any, rules ...rule) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	for _, r := range rules {
		for _, fe := range ve {
			if fe.Tag() == r.tag {
				return invalid(r.msg)
			}
		}
	}
	return invalid(ve[0].Error())
}
