package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password, from, to string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		To:       to,
	}
}

// SendLeadNotification emails the internal recipient a summary of one
// application and its CRM delivery status. A missing recipient address is a
// configuration gap, not a delivery failure: log and move on.
func (s *EmailSender) SendLeadNotification(data LeadNotificationData) error {
	if s.To == "" {
		log.Println("⚠️ Mail: LEAD_NOTIFY_TO not configured, skipping notification")
		return nil
	}

	body, err := renderLeadNotification(data)
	if err != nil {
		return fmt.Errorf("failed to render notification template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.To)
	m.SetHeader("Subject", Subject(data.ChildName, data.CampaignCode))
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("SMTP send failed: %w", err)
	}

	return nil
}

// Subject is "{child} - {campaign}", the format the booking team filters on.
func Subject(childName, campaignCode string) string {
	return fmt.Sprintf("%s - %s", childName, campaignCode)
}

// templateDir is relative to the process working directory (repo root in
// deployment); tests point it at the checked-in templates folder.
var templateDir = "templates"

func renderLeadNotification(data LeadNotificationData) (string, error) {
	tmplPath := filepath.Join(templateDir, "lead_notification.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return "", err
	}

	return body.String(), nil
}
