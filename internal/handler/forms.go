package handler

import (
	"errors"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"simaset/internal/client"
)

const minPasswordLength = 8

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Errors are keyed by the posted field name, not the Go field name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldMessages holds the message shown for each field and failed rule.
var fieldMessages = map[string]map[string]string{
	"username":         {"required": "Username is required"},
	"password":         {"required": "Password is required", "min": "Password must be at least 8 characters"},
	"full_name":        {"required": "Full name is required"},
	"role_id":          {"required": "Role selection is required", "gt": "Role selection is required"},
	"detail_id":        {"required": "Detail role selection is required"},
	"confirm_password": {"eqfield": "Passwords don't match"},
	"agree_terms":      {"required": "You must agree to the terms and conditions"},
}

func fieldMessage(field, tag string) string {
	if msg, ok := fieldMessages[field][tag]; ok {
		return msg
	}
	return field + " is invalid"
}

// fieldErrors turns the validator result into one message per field.
func fieldErrors(err error) FieldErrors {
	errs := FieldErrors{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errs
	}
	for _, fe := range verrs {
		if _, seen := errs[fe.Field()]; !seen {
			errs[fe.Field()] = fieldMessage(fe.Field(), fe.Tag())
		}
	}
	return errs
}

type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

func (f LoginForm) Validate() FieldErrors {
	f.Username = strings.TrimSpace(f.Username)
	return fieldErrors(validate.Struct(f))
}

type RegisterForm struct {
	FullName        string `form:"full_name" validate:"required"`
	Username        string `form:"username" validate:"required"`
	Password        string `form:"password" validate:"required,min=8"`
	ConfirmPassword string `form:"confirm_password" validate:"eqfield=Password"`
	RoleID          int    `form:"role_id" validate:"required,gt=0"`
	DetailID        int    `form:"detail_id"`
	AgreeTerms      bool   `form:"agree_terms" validate:"required"`
}

// Validate checks the form. needsDetail is true when the chosen role offers
// detail options, in which case one of them must be picked.
func (f RegisterForm) Validate(needsDetail bool) FieldErrors {
	f.FullName = strings.TrimSpace(f.FullName)
	f.Username = strings.TrimSpace(f.Username)
	errs := fieldErrors(validate.Struct(f))
	if needsDetail && f.DetailID <= 0 {
		errs["detail_id"] = fieldMessage("detail_id", "required")
	}
	return errs
}

type Strength struct {
	Score int
	Label string
}

var strengthLabels = []string{"Very Weak", "Weak", "Fair", "Good", "Strong", "Very Strong"}

// PasswordStrength scores one point each for length ≥ 8, an upper-case
// letter, a lower-case letter, a digit and any other character.
func PasswordStrength(password string) Strength {
	if password == "" {
		return Strength{}
	}
	var upper, lower, digit, other bool
	for _, c := range password {
		switch {
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= '0' && c <= '9':
			digit = true
		default:
			other = true
		}
	}
	score := 0
	for _, ok := range []bool{utf8.RuneCountInString(password) >= minPasswordLength, upper, lower, digit, other} {
		if ok {
			score++
		}
	}
	return Strength{Score: score, Label: strengthLabels[score]}
}

// defaultDetail maps roles whose detail is fixed to that detail id. Such roles
// never show a detail select.
var defaultDetail = map[int]int{1: 1}

// DetailKindForRole derives which master collection a role is linked to from
// the role's name.
func DetailKindForRole(name string) client.DetailKind {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "institute"), strings.Contains(n, "institusi"):
		return client.DetailInstitute
	case strings.Contains(n, "sub"):
		return client.DetailSubUnit
	case strings.Contains(n, "unit"):
		return client.DetailUnit
	case strings.Contains(n, "lokasi"), strings.Contains(n, "location"):
		return client.DetailLocation
	}
	return client.DetailNone
}
