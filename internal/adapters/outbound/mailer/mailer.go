package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/smtp"
	"time"

	"github.com/abdidvp/integrity/internal/domain"
)

const dialTimeout = 30 * time.Second

//go:generate mockgen -source=mailer.go -destination=mock_smtp_client_test.go -package=mailer

// smtpClient is an interface over [*smtp.Client].
type smtpClient interface {
	// Extension maps to [smtp.Client.Extension]
	Extension(ext string) (bool, string)
	// StartTLS maps to [smtp.Client.StartTLS]
	StartTLS(config *tls.Config) error
	// Auth maps to [smtp.Client.Auth]
	Auth(a smtp.Auth) error
	// Mail maps to [smtp.Client.Mail]
	Mail(from string) error
	// Rcpt maps to [smtp.Client.Rcpt]
	Rcpt(to string) error
	// Data maps to [smtp.Client.Data]
	Data() (io.WriteCloser, error)
	// Quit maps to [smtp.Client.Quit]
	Quit() error
	// Close maps to [smtp.Client.Close]
	Close() error
}

type dialFunc func(ctx context.Context, addr string) (smtpClient, error)

// Transport implements domain.Transport over SMTP. STARTTLS and AUTH are
// best effort: their failures are logged and the send continues. Only a
// failure of the envelope or the body is returned.
type Transport struct {
	cfg    domain.SMTPConfig
	dial   dialFunc
	logger *slog.Logger
	now    func() time.Time
}

// New creates a Transport for cfg.
func New(cfg domain.SMTPConfig, logger *slog.Logger) *Transport {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Transport{cfg: cfg, dial: dialSMTP, logger: logger, now: time.Now}
}

func dialSMTP(ctx context.Context, addr string) (smtpClient, error) {
	d := net.Dialer{Timeout: dialTimeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		conn.Close()
		return nil, err
	}
	c, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return c, nil
}

// Send delivers msg to every recipient in one SMTP transaction.
func (t *Transport) Send(ctx context.Context, msg domain.Message) error {
	if len(msg.To) == 0 {
		return errors.New("no recipients")
	}
	mailMsg, err := BuildMessage(msg, t.now())
	if err != nil {
		return fmt.Errorf("building message: %w", err)
	}

	addr := t.cfg.Addr()
	log := t.logger.With("smtp", addr)

	c, err := t.dial(ctx, addr)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", addr, err)
	}
	defer c.Close()

	encrypted := false
	if t.cfg.UseTLS {
		if err := c.StartTLS(&tls.Config{ServerName: t.cfg.Host}); err != nil {
			log.Warn("starttls failed, continuing without encryption", "error", err)
		} else {
			encrypted = true
		}
	}

	if t.cfg.Password != "" {
		if ok, mechanisms := c.Extension("AUTH"); ok {
			if !encrypted {
				log.Debug("authenticating over an unencrypted connection", "user", t.cfg.Username)
			}
			if err := c.Auth(newAuth(mechanisms, t.cfg.Username, t.cfg.Password)); err != nil {
				log.Warn("smtp authentication failed, continuing", "user", t.cfg.Username, "error", err)
			}
		} else {
			log.Warn("server does not offer AUTH, continuing unauthenticated")
		}
	}

	if err := c.Mail(msg.From); err != nil {
		return fmt.Errorf("MAIL FROM %s: %w", msg.From, err)
	}
	for _, to := range msg.To {
		if err := c.Rcpt(to); err != nil {
			return fmt.Errorf("RCPT TO %s: %w", to, err)
		}
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("DATA: %w", err)
	}
	if _, err := mailMsg.WriteTo(w); err != nil {
		w.Close()
		return fmt.Errorf("writing message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finishing message: %w", err)
	}

	if err := c.Quit(); err != nil {
		log.Debug("smtp quit", "error", err)
	}
	return nil
}
