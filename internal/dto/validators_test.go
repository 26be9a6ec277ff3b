package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, RegisterCustomValidators(v))
	return v
}

func TestStrongPasswordValidation(t *testing.T) {
	v := newTestValidator(t)

	type payload struct {
		Password string `validate:"strongpassword"`
	}

	valid := []string{"Password1", "Abcdefg1", "XyZ12345", "LongerPassword99"}
	for _, p := range valid {
		assert.NoError(t, v.Struct(payload{Password: p}), "expected %q to pass", p)
	}

	invalid := []string{
		"short1A",      // under 8 characters
		"alllowercase1",
		"ALLUPPERCASE1",
		"NoDigitsHere",
		"12345678",
		"",
	}
	for _, p := range invalid {
		assert.Error(t, v.Struct(payload{Password: p}), "expected %q to fail", p)
	}
}

func TestAlphanumUnderscoreValidation(t *testing.T) {
	v := newTestValidator(t)

	type payload struct {
		Username string `validate:"alphanumunderscore"`
	}

	valid := []string{"alice", "alice_42", "Bob", "a_b_c", "user123"}
	for _, u := range valid {
		assert.NoError(t, v.Struct(payload{Username: u}), "expected %q to pass", u)
	}

	invalid := []string{"alice!", "has space", "dash-ed", "dot.ted", "émile"}
	for _, u := range invalid {
		assert.Error(t, v.Struct(payload{Username: u}), "expected %q to fail", u)
	}
}

func TestRegisterRequestBindingTags(t *testing.T) {
	v := newTestValidator(t)

	// The binding tags live on the DTO; run them through the validator directly
	// to pin the rule set for registration payloads.
	type registerShape struct {
		Username string `validate:"required,alphanumunderscore,min=3,max=20"`
		Email    string `validate:"required,email"`
		Password string `validate:"required,strongpassword"`
	}

	assert.NoError(t, v.Struct(registerShape{Username: "alice", Email: "alice@example.com", Password: "Password1"}))
	assert.Error(t, v.Struct(registerShape{Username: "ab", Email: "alice@example.com", Password: "Password1"}), "username below minimum length")
	assert.Error(t, v.Struct(registerShape{Username: "alice", Email: "not-an-email", Password: "Password1"}))
	assert.Error(t, v.Struct(registerShape{Username: "alice", Email: "alice@example.com", Password: "weakpass"}))
}
