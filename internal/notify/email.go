package notify

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/techserve_ng/backend/internal/models"
)

//go:embed templates/*
var templateFS embed.FS

var (
	htmlTmpl = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/new_lead.html"))
	textTmpl = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/new_lead.txt"))
)

type leadEmailData struct {
	ID                   string
	Name                 string
	Phone                string
	PhoneE164            string
	Email                string
	Service              string
	Location             string
	Message              string
	SourcePage           string
	PreferredContactTime string
	Received             string
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	To        string
}

// EmailNotifier mails the sales inbox about each new lead.
type EmailNotifier struct {
	cfg  SMTPConfig
	send func(ctx context.Context, msg *gomail.Msg) error
}

func NewEmailNotifier(cfg SMTPConfig) *EmailNotifier {
	n := &EmailNotifier{cfg: cfg}
	n.send = n.dialAndSend
	return n
}

func (n *EmailNotifier) NotifyNewLead(ctx context.Context, lead models.Lead) error {
	msg, err := n.buildMessage(lead)
	if err != nil {
		return err
	}
	return n.send(ctx, msg)
}

func (n *EmailNotifier) buildMessage(lead models.Lead) (*gomail.Msg, error) {
	data := leadEmailData{
		ID:         lead.ID,
		Name:       lead.Name,
		Phone:      lead.Phone,
		PhoneE164:  lead.PhoneE164,
		Service:    lead.Service,
		Location:   lead.Location,
		Message:    lead.Message,
		SourcePage: lead.SourcePage,
		Received:   lead.CreatedAt.UTC().Format(time.RFC1123),
	}
	if lead.Email != nil {
		data.Email = *lead.Email
	}
	if lead.PreferredContactTime != nil {
		data.PreferredContactTime = *lead.PreferredContactTime
	}

	var html, text bytes.Buffer
	if err := htmlTmpl.ExecuteTemplate(&html, "email", data); err != nil {
		return nil, fmt.Errorf("render lead email: %w", err)
	}
	if err := textTmpl.ExecuteTemplate(&text, "email", data); err != nil {
		return nil, fmt.Errorf("render lead email: %w", err)
	}

	msg := gomail.NewMsg()
	if err := n.setFrom(msg); err != nil {
		return nil, fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(n.cfg.To); err != nil {
		return nil, fmt.Errorf("smtp to: %w", err)
	}
	if lead.Email != nil {
		_ = msg.ReplyTo(*lead.Email)
	}
	msg.Subject(fmt.Sprintf("New lead: %s (%s)", lead.Service, lead.Location))
	msg.SetBodyString(gomail.TypeTextPlain, text.String())
	msg.AddAlternativeString(gomail.TypeTextHTML, html.String())
	return msg, nil
}

// setFrom accepts either a bare address with FromName or a full
// "Name <address>" string in FromEmail.
func (n *EmailNotifier) setFrom(msg *gomail.Msg) error {
	if n.cfg.FromName == "" {
		return msg.From(n.cfg.FromEmail)
	}
	return msg.FromFormat(n.cfg.FromName, n.cfg.FromEmail)
}

func (n *EmailNotifier) dialAndSend(ctx context.Context, msg *gomail.Msg) error {
	client, err := gomail.NewClient(n.cfg.Host,
		gomail.WithPort(n.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(n.cfg.Username),
		gomail.WithPassword(n.cfg.Password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// NopNotifier is used when no email provider is configured.
type NopNotifier struct{}

func (NopNotifier) NotifyNewLead(context.Context, models.Lead) error { return nil }
