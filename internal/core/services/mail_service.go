package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"

	portssvc "github.com/SscSPs/secure_auth_app/internal/core/ports/services"
	"github.com/SscSPs/secure_auth_app/internal/platform/config"
)

// mailService delivers verification and reset emails over SMTP. Sends run in a
// goroutine so no request ever waits on (or fails because of) email delivery;
// with SMTP unconfigured the action link is logged instead, which keeps local
// development usable without a mail account.
type mailService struct {
	cfg     *config.Config
	logger  *slog.Logger
	enabled bool
}

// NewMailService creates a new instance of mailService.
func NewMailService(cfg *config.Config, logger *slog.Logger) portssvc.MailerSvc {
	enabled := cfg.SMTPHost != "" && cfg.SMTPPort != "" && cfg.SMTPUser != "" && cfg.SMTPPassword != ""
	if !enabled {
		logger.Warn("Mail delivery disabled: SMTP not fully configured, action links will be logged")
	}
	return &mailService{cfg: cfg, logger: logger, enabled: enabled}
}

var _ portssvc.MailerSvc = (*mailService)(nil)

var verificationTmpl = template.Must(template.New("verification").Parse(`
<html>
<body style="font-family: Arial, sans-serif; padding: 20px;">
	<h2>Welcome!</h2>
	<p>Please click the link below to verify your email address:</p>
	<p><a href="{{.Link}}" style="background-color: #2563eb; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Verify email</a></p>
	<p>Or copy this link into your browser:<br>{{.Link}}</p>
	<p>This link expires in 24 hours.</p>
	<hr>
	<p style="color: #666; font-size: 12px;">If you did not register an account, please ignore this email.</p>
</body>
</html>
`))

var resetTmpl = template.Must(template.New("reset").Parse(`
<html>
<body style="font-family: Arial, sans-serif; padding: 20px;">
	<h2>Password reset requested</h2>
	<p>Click the link below to choose a new password:</p>
	<p><a href="{{.Link}}" style="background-color: #2563eb; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Reset password</a></p>
	<p>Or copy this link into your browser:<br>{{.Link}}</p>
	<p>This link expires in 24 hours.</p>
	<hr>
	<p style="color: #666; font-size: 12px;">If you did not request a reset, please ignore this email.</p>
</body>
</html>
`))

func (s *mailService) SendVerificationEmail(toEmail, token string) {
	link := fmt.Sprintf("%s/verify?token=%s", s.cfg.FrontendBaseURL, token)
	s.send(toEmail, "Verify your email address", verificationTmpl, link)
}

func (s *mailService) SendPasswordResetEmail(toEmail, token string) {
	link := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.FrontendBaseURL, token)
	s.send(toEmail, "Reset your password", resetTmpl, link)
}

func (s *mailService) send(toEmail, subject string, tmpl *template.Template, link string) {
	if !s.enabled {
		// The link is the whole point of the email; surface it in the log so the
		// flow stays testable end to end without SMTP.
		s.logger.Info("SMTP not configured, logging action link instead",
			slog.String("to", toEmail),
			slog.String("link", link),
		)
		return
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, map[string]string{"Link": link}); err != nil {
		s.logger.Error("Failed to render email template", slog.String("error", err.Error()))
		return
	}

	go func() {
		auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPassword, s.cfg.SMTPHost)
		addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)

		msg := []byte(fmt.Sprintf("To: %s\r\n"+
			"From: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
			toEmail, s.cfg.SMTPFrom, subject, body.String()))

		if err := smtp.SendMail(addr, auth, s.cfg.SMTPFrom, []string{toEmail}, msg); err != nil {
			s.logger.Error("Failed to send email",
				slog.String("to", toEmail),
				slog.String("error", err.Error()),
				slog.String("link", link),
			)
			return
		}
		s.logger.Info("Email sent", slog.String("to", toEmail), slog.String("subject", subject))
	}()
}
