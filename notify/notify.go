package notify

import (
	"context"
	"fmt"
	"log"
	"net/smtp"

	"github.com/yourusername/loanpilot/models"
	"github.com/yourusername/loanpilot/store"
)

// Notifier delivers a message to a client. Fire-and-forget: a false
// return means delivery failed, and callers must never treat that as an
// error in their own flow.
type Notifier interface {
	Notify(ctx context.Context, client *models.Client, category, subject, message string) bool
}

// EmailNotifier sends reminders over SMTP and records every attempt in
// the notification log.
type EmailNotifier struct {
	host string
	port string
	user string
	pass string
	logs store.NotificationRepo
}

func NewEmailNotifier(host, port, user, pass string, logs store.NotificationRepo) *EmailNotifier {
	return &EmailNotifier{host: host, port: port, user: user, pass: pass, logs: logs}
}

func (n *EmailNotifier) Notify(ctx context.Context, client *models.Client, category, subject, message string) bool {
	if n.user == "" || n.pass == "" {
		log.Printf("Skipping email to %s: no SMTP credentials configured", client.Email)
		return false
	}

	body := fmt.Sprintf("To: %s\r\nSubject: %s\r\n\r\n%s\r\n", client.Email, subject, message)
	auth := smtp.PlainAuth("", n.user, n.pass, n.host)
	err := smtp.SendMail(n.host+":"+n.port, auth, n.user, []string{client.Email}, []byte(body))

	status := "Sent"
	logged := fmt.Sprintf("Subject: %s", subject)
	if err != nil {
		log.Printf("Email to %s failed: %v", client.Email, err)
		status = "Failed"
		logged = fmt.Sprintf("Failed: %v", err)
	}

	entry := &models.NotificationLog{
		ClientID: client.ID,
		Type:     "Email",
		Category: category,
		Message:  logged,
		Status:   status,
	}
	if logErr := n.logs.Create(ctx, entry); logErr != nil {
		log.Printf("Failed to record notification log: %v", logErr)
	}

	return err == nil
}

// Noop swallows every notification. Used in tests and when no SMTP
// settings are present.
type Noop struct{}

func (Noop) Notify(ctx context.Context, client *models.Client, category, subject, message string) bool {
	return false
}
