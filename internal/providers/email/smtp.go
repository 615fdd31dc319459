package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/tedxmekong/stagehub/internal/config"
	"github.com/tedxmekong/stagehub/internal/observability/metrics"
	"go.uber.org/zap"
)

type smtpProvider struct {
	cfg     config.EmailConfig
	log     *zap.Logger
	metrics *metrics.Metrics
}

// NewFromConfig returns the SMTP provider, or the console provider when
// no SMTP host is configured (dev and test environments).
func NewFromConfig(cfg config.Config, log *zap.Logger, m *metrics.Metrics) Provider {
	if strings.TrimSpace(cfg.Email.SMTPHost) == "" {
		log.Info("smtp host not set, using console mail provider")
		return &consoleProvider{log: log.Named("email.console"), metrics: m}
	}
	return &smtpProvider{cfg: cfg.Email, log: log.Named("email.smtp"), metrics: m}
}

func (p *smtpProvider) Send(_ context.Context, msg Message) error {
	addr := fmt.Sprintf("%s:%d", p.cfg.SMTPHost, p.cfg.SMTPPort)

	var auth smtp.Auth
	if p.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", p.cfg.SMTPUsername, p.cfg.SMTPPassword, p.cfg.SMTPHost)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", p.cfg.SMTPFrom)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(msg.Body)

	if err := smtp.SendMail(addr, auth, p.cfg.SMTPFrom, []string{msg.To}, []byte(b.String())); err != nil {
		p.metrics.RecordEmailSent("error")
		return err
	}
	p.metrics.RecordEmailSent("ok")
	return nil
}

// consoleProvider logs mail instead of sending it.
type consoleProvider struct {
	log     *zap.Logger
	metrics *metrics.Metrics
}

func (p *consoleProvider) Send(_ context.Context, msg Message) error {
	p.log.Info("mail (console mode)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
	p.metrics.RecordEmailSent("ok")
	return nil
}
