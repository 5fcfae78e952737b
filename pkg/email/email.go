package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"talentmatch-backend/config"
)

// Mailer sends transactional candidate emails via SMTP.
type Mailer struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
}

// ConfirmationData holds the data for candidature confirmation emails
type ConfirmationData struct {
	CandidateName string
	JobTitle      string
	Department    string
}

// MessageData holds the data for recruiter messages to a candidate
type MessageData struct {
	CandidateName string
	Body          string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
	}
}

// IsConfigured reports whether SMTP credentials are present.
func (m *Mailer) IsConfigured() bool {
	return m.host != "" && m.username != "" && m.password != ""
}

const confirmationTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Candidature Received</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Candidature Received</h1>
        </div>
        <div class="content">
            <p>Hello {{.CandidateName}},</p>
            <p>We received your application for the position of
               <strong>{{.JobTitle}}</strong> ({{.Department}}).</p>
            <p>Our recruitment team will review your profile and contact you
               about the next steps.</p>
        </div>
        <div class="footer">
            <p>TalentMatch Recruitment</p>
        </div>
    </div>
</body>
</html>`

const messageTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Message from TalentMatch</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .content { padding: 20px; background: #f9f9f9; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #0066cc; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="content">
            <p>Hello {{.CandidateName}},</p>
            <div class="message-box">{{.Body}}</div>
        </div>
        <div class="footer">
            <p>TalentMatch Recruitment</p>
        </div>
    </div>
</body>
</html>`

// SendConfirmation sends the candidature confirmation email.
func (m *Mailer) SendConfirmation(to string, data ConfirmationData) error {
	subject := fmt.Sprintf("Candidature Confirmation - %s", data.JobTitle)
	return m.send(to, subject, confirmationTemplate, data)
}

// SendMessage sends a recruiter-authored message to a candidate.
func (m *Mailer) SendMessage(to, subject string, data MessageData) error {
	return m.send(to, subject, messageTemplate, data)
}

func (m *Mailer) send(to, subject, tmplText string, data interface{}) error {
	tmpl, err := template.New("mail").Parse(tmplText)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		m.fromEmail,
		to,
		subject,
		body.String(),
	))

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	addr := m.host + ":" + m.port
	if err := smtp.SendMail(addr, auth, m.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
