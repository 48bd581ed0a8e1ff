package mock_email

import (
	"context"

	"github.com/firstlight/backend/pkg/email"

	"github.com/stretchr/testify/mock"
)

type EmailSender struct {
	mock.Mock
}

func (m *EmailSender) Send(ctx context.Context, inp email.SendEmailInput) (*email.Receipt, error) {
	args := m.Called(ctx, inp)

	receipt, _ := args.Get(0).(*email.Receipt)
	return receipt, args.Error(1)
}
