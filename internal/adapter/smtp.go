package adapter

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"time"

	"github.com/MKhiriev/vitascope/internal/config"
	"github.com/MKhiriev/vitascope/internal/logger"
	"github.com/MKhiriev/vitascope/models"
)

type smtpMailer struct {
	host      string
	addr      string
	from      mail.Address
	auth      smtp.Auth
	dialer    net.Dialer
	tlsConfig *tls.Config
	now       func() time.Time
	logger    *logger.Logger
}

// NewSMTPMailer returns a [Mailer] that submits messages to cfg.Server using
// STARTTLS when the relay offers it and PLAIN authentication with
// cfg.Address / cfg.Password.
func NewSMTPMailer(cfg config.Mail, logger *logger.Logger) Mailer {
	return &smtpMailer{
		host:      cfg.Server,
		addr:      net.JoinHostPort(cfg.Server, strconv.Itoa(cfg.Port)),
		from:      mail.Address{Name: cfg.FromName, Address: cfg.Address},
		auth:      smtp.PlainAuth("", cfg.Address, cfg.Password, cfg.Server),
		tlsConfig: &tls.Config{ServerName: cfg.Server, MinVersion: tls.VersionTLS12},
		now:       time.Now,
		logger:    logger,
	}
}

// Send implements [Mailer].
func (m *smtpMailer) Send(ctx context.Context, msg models.MailMessage) error {
	log := logger.FromContext(ctx)

	if err := m.send(ctx, msg); err != nil {
		log.Err(err).Str("func", "*smtpMailer.Send").Str("to", msg.To).Msg("failed to send mail")
		return fmt.Errorf("%w: %w", ErrSendingMail, err)
	}

	log.Info().Str("func", "*smtpMailer.Send").Str("to", msg.To).Str("subject", msg.Subject).Msg("mail sent")
	return nil
}

func (m *smtpMailer) send(ctx context.Context, msg models.MailMessage) error {
	conn, err := m.dialer.DialContext(ctx, "tcp", m.addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", m.addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(m.tlsConfig); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}
	if ok, _ := c.Extension("AUTH"); ok && m.auth != nil {
		if err := c.Auth(m.auth); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}

	if err := c.Mail(m.from.Address); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := c.Rcpt(msg.To); err != nil {
		return fmt.Errorf("rcpt to: %w", err)
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write(m.compose(msg)); err != nil {
		w.Close()
		return fmt.Errorf("write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close body: %w", err)
	}

	return c.Quit()
}

func (m *smtpMailer) compose(msg models.MailMessage) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", m.from.String())
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", m.now().Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	buf.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(msg.Body)
	buf.WriteString("\r\n")
	return buf.Bytes()
}
