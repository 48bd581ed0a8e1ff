package service

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"github.com/firstlight/backend/internal/config"
	"github.com/firstlight/backend/internal/domain"
	"github.com/firstlight/backend/pkg/email"
	"github.com/firstlight/backend/pkg/logger"

	"go.uber.org/zap"
)

type otpEmail struct {
	subject  string
	title    string
	template string
}

var otpEmails = map[domain.OtpPurpose]otpEmail{
	domain.OtpPurposeEmailVerification: {
		subject:  "🔐 Verify Your Email - FirstLight Apartments",
		title:    "Verify Your Email",
		template: "otp_email_verification.html",
	},
	domain.OtpPurposePasswordReset: {
		subject:  "🔄 Password Reset Request - FirstLight Apartments",
		title:    "Password Reset Request",
		template: "otp_password_reset.html",
	},
	domain.OtpPurposeTwoFactorAuth: {
		subject:  "🔒 Two-Factor Authentication Code - FirstLight Apartments",
		title:    "Two-Factor Authentication",
		template: "otp_two_factor_auth.html",
	},
}

type otpTemplateInput struct {
	Title           string
	UserName        string
	Code            string
	ValidityMinutes int
	ClientURL       string
}

type notificationService struct {
	sender    email.Sender
	templates fs.FS
	config    config.EmailConfig
	enabled   bool
}

func newNotificationService(sender email.Sender, templates fs.FS, config config.EmailConfig) *notificationService {
	return &notificationService{
		sender:    sender,
		templates: templates,
		config:    config,
		enabled:   config.Enabled,
	}
}

func (s *notificationService) SendOtp(ctx context.Context, input OtpEmailInput) (*email.Receipt, error) {
	tmpl, ok := otpEmails[input.Purpose]
	if !ok {
		return nil, ErrInvalidOtpPurpose
	}

	if !s.enabled {
		logger.Info("email delivery disabled, skipping otp email",
			zap.String("email", input.Email),
			zap.String("purpose", input.Purpose.String()),
		)
		return &email.Receipt{}, nil
	}

	userName := input.UserName
	if userName == "" {
		userName = "there"
	}

	sendInput := email.SendEmailInput{Subject: tmpl.subject, To: input.Email}
	templateInput := otpTemplateInput{
		Title:           tmpl.title,
		UserName:        userName,
		Code:            input.Code,
		ValidityMinutes: int(input.ExpiresIn.Round(time.Minute) / time.Minute),
		ClientURL:       s.config.ClientURL,
	}

	if err := sendInput.GenerateBodyFromHTML(s.templates, tmpl.template, templateInput); err != nil {
		return nil, fmt.Errorf("generate email failed: %w", err)
	}

	if s.config.SendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.SendTimeout)
		defer cancel()
	}

	receipt, err := s.sender.Send(ctx, sendInput)
	if err != nil {
		return nil, fmt.Errorf("send email failed: %w", err)
	}

	return receipt, nil
}
