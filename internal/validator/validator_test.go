package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/mentora-cli/internal/model"
)

func TestStructValid(t *testing.T) {
	assert.Nil(t, Struct(model.LoginRequest{Email: "ada@example.com", Password: "hunter22"}))
}

func TestStructReportsFieldsByJSONName(t *testing.T) {
	fields := Struct(model.LoginRequest{Email: "not-an-email", Password: "abc"})
	require.NotNil(t, fields)

	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
	// Messages are translated, human-readable text.
	assert.Contains(t, fields["email"], "email")
}

func TestStructRequired(t *testing.T) {
	fields := Struct(model.SendMessageRequest{})
	require.NotNil(t, fields)
	assert.Contains(t, fields, "body")
}
