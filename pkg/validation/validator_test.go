package validation

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Phone    string `json:"phone" binding:"omitempty,phone"`
}

func TestToDetailsValidationErrors(t *testing.T) {
	Init()

	err := binding.Validator.ValidateStruct(&sample{Email: "nope", Password: "short", Phone: "12345"})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "must be at least 8 characters and at most 72 bytes long", details["password"])
	assert.Equal(t, "must contain between 10 and 20 characters", details["phone"])
}

func TestToDetailsRequired(t *testing.T) {
	Init()

	err := binding.Validator.ValidateStruct(&sample{})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "is required", details["email"])
	assert.Equal(t, "is required", details["password"])
	assert.NotContains(t, details, "phone")
}

func TestToDetailsDecodeErrors(t *testing.T) {
	var dst sample
	syntaxErr := json.Unmarshal([]byte(`{"email":`), &dst)
	typeErr := json.Unmarshal([]byte(`{"email": 5}`), &dst)

	assert.Nil(t, ToDetails(nil))
	assert.Equal(t, map[string]string{"payload": "empty body"}, ToDetails(io.EOF))
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(syntaxErr))
	assert.Equal(t, map[string]string{"email": "must be a string"}, ToDetails(typeErr))
	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("boom")))
}

func TestPasswordOK(t *testing.T) {
	Init()

	assert.False(t, PasswordOK("short"))
	assert.True(t, PasswordOK("Secret123!"))
	assert.True(t, PasswordOK(strings.Repeat("a", 72)))
	assert.False(t, PasswordOK(strings.Repeat("a", 73)))
	assert.True(t, PasswordOK(strings.Repeat("é", 36)))
	assert.False(t, PasswordOK(strings.Repeat("é", 40)), "40 runes but 80 bytes")

	err := binding.Validator.ValidateStruct(&sample{Email: "a@example.com", Password: strings.Repeat("é", 40)})
	require.Error(t, err)
	assert.Contains(t, ToDetails(err), "password")
}

func TestPhoneLengthOK(t *testing.T) {
	assert.False(t, PhoneLengthOK("123456789"))
	assert.True(t, PhoneLengthOK("0123456789"))
	assert.True(t, PhoneLengthOK("+33 6 12 34 56 78 90"))
	assert.False(t, PhoneLengthOK("012345678901234567890"))
}
