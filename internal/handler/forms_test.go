package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"simaset/internal/client"
)

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		password string
		want     Strength
	}{
		{"", Strength{}},
		{"abc", Strength{1, "Weak"}},
		{"abcdefgh", Strength{2, "Fair"}},
		{"Abcdefgh", Strength{3, "Good"}},
		{"Abcdefg1", Strength{4, "Strong"}},
		{"Abcdef1!", Strength{5, "Very Strong"}},
		{"A1!", Strength{3, "Good"}},
		// Length counts characters, the same way validation does.
		{"éééé", Strength{1, "Weak"}},
		{"éééééééé", Strength{2, "Fair"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PasswordStrength(tt.password), tt.password)
	}
}

func TestDetailKindForRole(t *testing.T) {
	tests := map[string]client.DetailKind{
		"Admin Institusi":  client.DetailInstitute,
		"Institute Admin":  client.DetailInstitute,
		"Admin Sub Unit":   client.DetailSubUnit,
		"Admin SubUnit":    client.DetailSubUnit,
		"Admin Unit":       client.DetailUnit,
		"Petugas Lokasi":   client.DetailLocation,
		"Location Officer": client.DetailLocation,
		"Super Admin":      client.DetailNone,
	}
	for name, want := range tests {
		assert.Equal(t, want, DetailKindForRole(name), name)
	}
}

func TestLoginForm_Validate(t *testing.T) {
	assert.False(t, LoginForm{Username: "budi", Password: "x"}.Validate().Any())

	errs := LoginForm{Username: "  "}.Validate()
	assert.Equal(t, FieldErrors{
		"username": "Username is required",
		"password": "Password is required",
	}, errs)
}

func TestRegisterForm_Validate(t *testing.T) {
	valid := RegisterForm{
		FullName:        "Budi Santoso",
		Username:        "budi",
		Password:        "12345678",
		ConfirmPassword: "12345678",
		RoleID:          2,
		AgreeTerms:      true,
	}
	assert.False(t, valid.Validate(false).Any())
	assert.Equal(t, FieldErrors{"detail_id": "Detail role selection is required"}, valid.Validate(true))

	short := valid
	short.Password, short.ConfirmPassword = "1234567", "1234567"
	assert.Equal(t, FieldErrors{"password": "Password must be at least 8 characters"}, short.Validate(false))

	// Length counts characters, not bytes.
	unicode := valid
	unicode.Password, unicode.ConfirmPassword = "ééééééé", "ééééééé"
	assert.Contains(t, unicode.Validate(false), "password")
	unicode.Password, unicode.ConfirmPassword = "éééééééé", "éééééééé"
	assert.False(t, unicode.Validate(false).Any())
}

func TestRegisterForm_ValidateEmpty(t *testing.T) {
	errs := RegisterForm{FullName: "  ", Password: "x", ConfirmPassword: "y"}.Validate(true)

	assert.Equal(t, FieldErrors{
		"full_name":        "Full name is required",
		"username":         "Username is required",
		"password":         "Password must be at least 8 characters",
		"confirm_password": "Passwords don't match",
		"role_id":          "Role selection is required",
		"detail_id":        "Detail role selection is required",
		"agree_terms":      "You must agree to the terms and conditions",
	}, errs)
}

func TestRegisterForm_NegativeRoleIsRejected(t *testing.T) {
	f := RegisterForm{
		FullName:        "Budi",
		Username:        "budi",
		Password:        "12345678",
		ConfirmPassword: "12345678",
		RoleID:          -1,
		AgreeTerms:      true,
	}
	assert.Equal(t, FieldErrors{"role_id": "Role selection is required"}, f.Validate(false))
}
