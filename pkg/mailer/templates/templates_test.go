package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWelcome(t *testing.T) {
	subject, text, html, err := Render(Welcome, map[string]any{"Email": "alice@example.com", "AppName": "MyContacts"})
	require.NoError(t, err)
	assert.Equal(t, "Welcome to MyContacts", subject)
	assert.Contains(t, text, "Hello alice@example.com")
	assert.Contains(t, html, "<strong>MyContacts</strong>")
}

func TestRenderEscapesHTML(t *testing.T) {
	_, _, html, err := Render(Welcome, map[string]any{"Email": "<script>@x.y", "AppName": "A"})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestRenderUnknown(t *testing.T) {
	_, _, _, err := Render("nope", nil)
	assert.Error(t, err)
}
