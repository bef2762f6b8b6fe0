package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"academy-api/pkg/config"
)

type Mailer interface {
	SendVerificationEmail(toAddress, name, token string) error
	SendPasswordResetEmail(toAddress, name, token string) error
}

type smtpMailer struct {
	smtpConfig config.SmtpConfig
	baseUrl    string
}

func NewMailer(smtpConfig config.SmtpConfig, baseUrl string) Mailer {
	return &smtpMailer{
		smtpConfig: smtpConfig,
		baseUrl:    baseUrl,
	}
}

func (mailer *smtpMailer) SendVerificationEmail(toAddress, name, token string) error {
	verificationLink := fmt.Sprintf("%s/verify-email?token=%s", mailer.baseUrl, token)
	body := fmt.Sprintf(
		"Hi %s,<br><br>Click <a href='%s'>here</a> to verify your account.<br><br>This link will expire in 24 hours.",
		name,
		verificationLink,
	)

	return mailer.send(toAddress, "Verify your email address", body)
}

func (mailer *smtpMailer) SendPasswordResetEmail(toAddress, name, token string) error {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", mailer.baseUrl, token)
	body := fmt.Sprintf(
		"Hi %s,<br><br>Click <a href='%s'>here</a> to reset your password.<br><br>This link will expire in 1 hour.",
		name,
		resetLink,
	)

	return mailer.send(toAddress, "Reset your password", body)
}

func (mailer *smtpMailer) send(toAddress, subject, htmlBody string) error {
	message := gomail.NewMessage()
	message.SetHeader("From", mailer.smtpConfig.SenderAddress)
	message.SetHeader("To", toAddress)
	message.SetHeader("Subject", subject)
	message.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(
		mailer.smtpConfig.Host,
		mailer.smtpConfig.Port,
		mailer.smtpConfig.SenderAddress,
		mailer.smtpConfig.Password,
	)

	return dialer.DialAndSend(message)
}
