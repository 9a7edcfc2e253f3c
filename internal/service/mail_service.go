package service

import (
	"fmt"
	"html"

	"github.com/rajpalpavitra-beep/HaBet-app3/internal/config"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/util"
	"github.com/rajpalpavitra-beep/HaBet-app3/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// InviteMail is one outbound invitation. RoomName is empty for plain
// friend invites.
type InviteMail struct {
	To         string
	FromName   string
	InviteLink string
	AppName    string
	RoomName   string
}

// MailSender delivers invitation emails. Controllers depend on the
// interface so tests can swap in a recorder instead of a live SMTP
// dialer.
type MailSender interface {
	SendInvite(mail InviteMail) (messageID string, err error)
}

// MailService sends mail over SMTP with the credentials from config.
type MailService struct {
	cfg *config.Config
}

func NewMailService(cfg *config.Config) *MailService {
	return &MailService{cfg: cfg}
}

func (s *MailService) SendInvite(mail InviteMail) (string, error) {
	if !s.cfg.MailConfigured() {
		return "", util.ErrMailNotConfigured
	}

	appName := mail.AppName
	if appName == "" {
		appName = s.cfg.App.Name
	}

	subject := fmt.Sprintf("%s invited you to join %s!", mail.FromName, appName)
	if mail.RoomName != "" {
		subject = fmt.Sprintf("%s invited you to the room %q on %s!", mail.FromName, mail.RoomName, appName)
	}

	from := s.cfg.Mail.From
	if from == "" {
		from = s.cfg.Mail.User
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(from, appName))
	m.SetHeader("To", mail.To)
	m.SetHeader("Subject", subject)

	// Message-ID is generated here; gomail does not expose the one the
	// server assigns.
	messageID := fmt.Sprintf("<%s@%s>", uuid.New().String(), s.cfg.Mail.Host)
	m.SetHeader("Message-ID", messageID)
	m.SetBody("text/html", inviteBody(mail, appName))

	d := gomail.NewDialer(s.cfg.Mail.Host, s.cfg.Mail.Port, s.cfg.Mail.User, s.cfg.Mail.Password)
	if err := d.DialAndSend(m); err != nil {
		logger.Log.Error("Failed to send invite email",
			zap.String("to", mail.To),
			zap.Error(err))
		return "", err
	}

	logger.Log.Info("Invite email sent",
		zap.String("to", mail.To),
		zap.String("message_id", messageID))
	return messageID, nil
}

func inviteBody(mail InviteMail, appName string) string {
	fromName := html.EscapeString(mail.FromName)
	app := html.EscapeString(appName)
	link := html.EscapeString(mail.InviteLink)

	intro := fmt.Sprintf("<b>%s</b> invited you to join <b>%s</b> — bet on your habits and keep each other accountable.", fromName, app)
	if mail.RoomName != "" {
		intro = fmt.Sprintf("<b>%s</b> invited you to join the room <b>%s</b> on <b>%s</b> — compete on the same leaderboard and keep each other accountable.",
			fromName, html.EscapeString(mail.RoomName), app)
	}

	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 560px; margin: 0 auto; padding: 24px;">
  <h2 style="color: #4f46e5;">You're invited! 🎯</h2>
  <p style="font-size: 16px; color: #374151;">%s</p>
  <p style="margin: 32px 0;">
    <a href="%s" style="background: #4f46e5; color: #ffffff; padding: 12px 28px; border-radius: 8px; text-decoration: none; font-weight: bold;">Accept invitation</a>
  </p>
  <p style="font-size: 13px; color: #9ca3af;">If the button does not work, copy this link into your browser:<br>%s</p>
</div>`, intro, link, link)
}
