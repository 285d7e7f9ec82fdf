package email

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/domain/delivery"
)

// GomailTransport implements delivery.Transport over SMTP.
type GomailTransport struct {
	dialer *gomail.Dialer
	from   string
}

func NewGomailTransport(host string, port int, username, password, from string) *GomailTransport {
	return &GomailTransport{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// Send delivers one message. gomail has no context support, so cancellation
// is checked before dialing; an in-flight SMTP exchange runs to completion.
func (t *GomailTransport) Send(ctx context.Context, msg *delivery.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", t.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTMLBody)

	if att := msg.Attachment; att != nil {
		m.Attach(att.Filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(att.Data)
				return err
			}),
			gomail.SetHeader(map[string][]string{
				"Content-Type": {att.ContentType},
			}),
		)
	}

	if err := t.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", msg.To, err)
	}
	return nil
}
