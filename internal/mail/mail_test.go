package mail

import (
	"io"
	"log/slog"
	"testing"

	"planets-api/internal/shared/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderResetBody(t *testing.T) {
	sender := &smtpSender{
		cfg:    config.MailConfig{FromName: "Planets API", FromAddress: "no-reply@localhost"},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	body, err := sender.renderResetBody(resetEmailData{
		Name:      "Aarav",
		ResetLink: "http://localhost:8080/reset_password/confirm?token=abc123",
	})
	require.NoError(t, err)

	assert.Contains(t, body, "Hello Aarav,")
	assert.Contains(t, body, `href="http://localhost:8080/reset_password/confirm?token=abc123"`)
	// Template fully rendered, no stray actions left behind
	assert.NotContains(t, body, "{{")
}
