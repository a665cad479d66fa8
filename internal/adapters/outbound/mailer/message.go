package mailer

import (
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/abdidvp/integrity/internal/domain"
)

// BuildMessage turns msg into a UTF-8 HTML mail dated now. Addresses are
// validated here, before any connection is made.
func BuildMessage(msg domain.Message, now time.Time) (*mail.Msg, error) {
	m := mail.NewMsg(mail.WithCharset(mail.CharsetUTF8), mail.WithEncoding(mail.EncodingQP))
	if err := m.From(msg.From); err != nil {
		return nil, fmt.Errorf("sender %q: %w", msg.From, err)
	}
	if err := m.To(msg.To...); err != nil {
		return nil, fmt.Errorf("recipients: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetDateWithValue(now)
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)
	return m, nil
}
