package mail

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/corvidchat/corvid/internal/pkg/env"
)

// SMTPMailer sends emails via SMTP
func SendMail(to string, subject string, body string) error {
	host := env.GetEnv("SMTP_HOST", "")
	port := env.GetEnv("SMTP_PORT", "")
	username := env.GetEnv("SMTP_USERNAME", "")
	password := env.GetEnv("SMTP_PASSWORD", "")
	sender := env.GetEnv("SMTP_SENDER", "")

	if sender == "" {
		sender = fmt.Sprintf("no-reply@%s", "localhost")
		log.Printf("SMTP_SENDER not set, using default sender: %s", sender)
	}

	var auth smtp.Auth
	if username != "" && password != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	addr := fmt.Sprintf("%s:%s", host, port)

	msg := []byte(
		fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", sender, to, subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n\r\n" +
			body,
	)

	err := smtp.SendMail(addr, auth, sender, []string{to}, msg)
	if err != nil {
		log.Printf("SMTP send error: %v", err)
	} else {
		log.Printf("Email sent to %s via %s", to, addr)
	}
	return err
}

// SendSponsorshipRequestNotification informs the sales inbox about a new
// sponsorship request. Best-effort; failures are logged by SendMail.
func SendSponsorshipRequestNotification(accountName string) error {
	to := env.GetEnv("BILLING_NOTIFY_EMAIL", "")
	if to == "" {
		log.Print("BILLING_NOTIFY_EMAIL not set, skipping sponsorship notification")
		return nil
	}
	subject := fmt.Sprintf("Sponsoring-Anfrage: %s", accountName)
	body := fmt.Sprintf("<p>Die Organisation <strong>%s</strong> hat Sponsoring beantragt.</p>", accountName)
	return SendMail(to, subject, body)
}
