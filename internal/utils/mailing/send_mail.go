package mailing

import (
	"Pantry-API/internal/utils"
	"fmt"
	"strconv"

	"gopkg.in/gomail.v2"
)

type MailConfig struct {
	AppURL         string
	SMTPHost       string
	SMTPPort       string
	SMTPSender     string
	SMTPEmail      string
	SMTPPassword   string
	AlertRecipient string
}

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:         utils.GetConfig("APP_URL"),
		SMTPHost:       utils.GetConfig("SMTP_HOST"),
		SMTPPort:       utils.GetConfig("SMTP_PORT"),
		SMTPSender:     utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:      utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword:   utils.GetConfig("SMTP_AUTH_PASSWORD"),
		AlertRecipient: utils.GetConfig("ALERT_RECIPIENT_EMAIL"),
	}
}

func SendMail(toEmail string, subject string, body string) error {
	emailConfig := LoadMailConfig()

	mailer := gomail.NewMessage()
	mailer.SetHeader("From", emailConfig.SMTPEmail)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)
	port, err := strconv.Atoi(emailConfig.SMTPPort)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(
		emailConfig.SMTPHost,
		port,
		emailConfig.SMTPEmail,
		emailConfig.SMTPPassword,
	)

	err = dialer.DialAndSend(mailer)
	if err != nil {
		return err
	}

	return nil
}

// DangerAlertMailer emails the household caretaker when a member takes out an
// ingredient flagged as dangerous for them.
type DangerAlertMailer struct{}

func NewDangerAlertMailer() *DangerAlertMailer {
	return &DangerAlertMailer{}
}

func (m *DangerAlertMailer) SendDangerAlert(memberName, ingredientName, comment string) error {
	recipient := LoadMailConfig().AlertRecipient
	if recipient == "" {
		return nil
	}

	subject := fmt.Sprintf("Food safety warning for %s", memberName)
	body := fmt.Sprintf(
		"<p><b>%s</b> took out <b>%s</b>.</p><p>%s</p>",
		memberName, ingredientName, comment,
	)

	return SendMail(recipient, subject, body)
}
