package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"planets-api/internal/shared/config"
	"planets-api/internal/shared/errors"

	mail "github.com/xhit/go-simple-mail/v2"
)

// Sender dispatches notification emails. The SMTP implementation lives
// here; tests substitute their own.
type Sender interface {
	SendPasswordReset(ctx context.Context, to, name, resetLink string) error
}

//go:embed templates/*.html
var templatesFS embed.FS

type smtpSender struct {
	cfg    config.MailConfig
	logger *slog.Logger
}

func NewSMTPSender(cfg config.MailConfig, logger *slog.Logger) Sender {
	logger.Debug("Initializing SMTP sender", "host", cfg.Host, "port", cfg.Port)

	return &smtpSender{
		cfg:    cfg,
		logger: logger,
	}
}

type resetEmailData struct {
	Name      string
	ResetLink string
}

// SendPasswordReset sends the password-reset email. The call blocks until
// the SMTP server accepts or rejects the message; transport failures come
// back as external errors.
func (s *smtpSender) SendPasswordReset(_ context.Context, to, name, resetLink string) error {
	logger := s.logger.With("component", "mail", "operation", "send_password_reset", "to", to)

	body, err := s.renderResetBody(resetEmailData{Name: name, ResetLink: resetLink})
	if err != nil {
		return errors.WrapInternal("failed to render reset email", err)
	}

	server := mail.NewSMTPClient()
	server.Host = s.cfg.Host
	server.Port = s.cfg.Port
	server.Username = s.cfg.Username
	server.Password = s.cfg.Password

	if s.cfg.UseSSL {
		server.Encryption = mail.EncryptionSSLTLS
	} else if s.cfg.UseTLS {
		server.Encryption = mail.EncryptionSTARTTLS
	} else {
		server.Encryption = mail.EncryptionNone
	}

	server.KeepAlive = false
	server.ConnectTimeout = 10 * time.Second
	server.SendTimeout = 10 * time.Second

	smtpClient, err := server.Connect()
	if err != nil {
		return errors.WrapExternal("failed to connect to mail server", err)
	}
	defer func() {
		if closeErr := smtpClient.Close(); closeErr != nil {
			logger.Warn("Failed to close SMTP client", "error", closeErr)
		}
	}()

	email := mail.NewMSG()
	email.SetFrom(fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.FromAddress))
	email.AddTo(to)
	email.SetSubject("Password reset requested")
	email.SetBody(mail.TextHTML, body)

	if email.Error != nil {
		return errors.WrapInternal("failed to build reset email", email.Error)
	}

	if err := email.Send(smtpClient); err != nil {
		return errors.WrapExternal("failed to send reset email", err)
	}

	logger.Info("Password reset email sent")
	return nil
}

func (s *smtpSender) renderResetBody(data resetEmailData) (string, error) {
	t, err := template.New("").ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "reset_password.html", data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
