package email

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"coachdesk/internal/shared/config"
	"coachdesk/internal/shared/logger"
)

// SMTPNotifier sends trainer-facing billing notifications over SMTP. When
// email is disabled in configuration it logs the notification instead of
// dialing, so development environments need no mail server.
type SMTPNotifier struct {
	cfg    config.EmailConfig
	dialer *gomail.Dialer
	logger logger.Interface
}

func NewSMTPNotifier(cfg config.EmailConfig, log logger.Interface) *SMTPNotifier {
	return &SMTPNotifier{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		logger: log,
	}
}

// NotifyPastDue emails a trainer that their subscription payment is overdue.
func (s *SMTPNotifier) NotifyPastDue(ctx context.Context, to, trainerName, planName string, dueDate time.Time) error {
	if !s.cfg.Enabled {
		s.logger.Infow("email disabled, skipping past-due notification",
			"to", to,
			"plan", planName,
			"due_date", dueDate.Format("2006-01-02"))
		return nil
	}

	subject := "Pagamento pendente - " + planName
	due := dueDate.Format("02/01/2006")

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<p>Olá, %s!</p>
			<p>O pagamento do seu plano <strong>%s</strong> venceu em %s e ainda não foi identificado.</p>
			<p>Regularize o pagamento para manter o acesso à plataforma.</p>
			<p>Se você já pagou, desconsidere este aviso.</p>
		</body>
		</html>
	`, trainerName, planName, due)

	plainBody := fmt.Sprintf(`Olá, %s!

O pagamento do seu plano %s venceu em %s e ainda não foi identificado.

Regularize o pagamento para manter o acesso à plataforma.

Se você já pagou, desconsidere este aviso.
`, trainerName, planName, due)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPNotifier) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.FromAddress, s.cfg.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
