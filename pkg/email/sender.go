package email

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/mail"
	"time"
)

var (
	ErrEmptyRecipient   = errors.New("empty recipient")
	ErrEmptyContent     = errors.New("empty subject or body")
	ErrInvalidRecipient = errors.New("invalid recipient address")
)

type SendEmailInput struct {
	To      string
	Subject string
	Body    string
}

// Receipt describes an accepted delivery. A zero Receipt means nothing left
// the process.
type Receipt struct {
	MessageID  string
	AcceptedAt time.Time
}

type Sender interface {
	Send(ctx context.Context, input SendEmailInput) (*Receipt, error)
}

// RenderHTML executes the named template from fsys with data. Values are
// HTML-escaped.
func RenderHTML(fsys fs.FS, name string, data any) (string, error) {
	t, err := template.ParseFS(fsys, name)
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", name, err)
	}

	return buf.String(), nil
}

func (e *SendEmailInput) GenerateBodyFromHTML(fsys fs.FS, templateFileName string, data any) error {
	body, err := RenderHTML(fsys, templateFileName, data)
	if err != nil {
		return err
	}

	e.Body = body

	return nil
}

func (e *SendEmailInput) Validate() error {
	switch {
	case e.To == "":
		return ErrEmptyRecipient
	case e.Subject == "" || e.Body == "":
		return ErrEmptyContent
	case !IsEmailValid(e.To):
		return fmt.Errorf("%w: %q", ErrInvalidRecipient, e.To)
	}

	return nil
}

// IsEmailValid reports whether email is a bare address with no display name.
func IsEmailValid(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
