package smtp

import (
	"context"
	"fmt"
	"time"

	"github.com/firstlight/backend/pkg/email"

	"github.com/go-gomail/gomail"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type SMTPSender struct {
	from     string
	fromName string
	dialer   *gomail.Dialer
}

func NewSMTPSender(from, fromName, pass, host string, port int) (*SMTPSender, error) {
	if !email.IsEmailValid(from) {
		return nil, errors.New("invalid from email")
	}

	return &SMTPSender{
		from:     from,
		fromName: fromName,
		dialer:   gomail.NewDialer(host, port, from, pass),
	}, nil
}

// Send delivers input over SMTP. gomail has no cancellation of its own, so the
// dial runs in a goroutine and Send gives up when ctx is done.
func (s *SMTPSender) Send(ctx context.Context, input email.SendEmailInput) (*email.Receipt, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), s.dialer.Host)

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", s.from, s.fromName)
	msg.SetHeader("To", input.To)
	msg.SetHeader("Reply-To", s.from)
	msg.SetHeader("Subject", input.Subject)
	msg.SetHeader("Message-ID", messageID)
	msg.SetBody("text/html", input.Body)

	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(msg)
	}()

	select {
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "smtp send aborted")
	case err := <-done:
		if err != nil {
			return nil, errors.Wrapf(err, "smtp send to %s", input.To)
		}
	}

	return &email.Receipt{MessageID: messageID, AcceptedAt: time.Now()}, nil
}
