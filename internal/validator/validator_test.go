package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	v, err := New()
	require.NoError(t, err)

	err = v.ValidateStruct(testPayload{Email: "a@x.com", Password: "pw1"})
	assert.NoError(t, err)
}

func TestValidateStruct_TranslatedMessages(t *testing.T) {
	t.Parallel()

	v, err := New()
	require.NoError(t, err)

	err = v.ValidateStruct(testPayload{Email: "not-an-email"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email must be a valid email address")
	assert.Contains(t, err.Error(), "Password is a required field")
}
