package notify

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/techserve_ng/backend/internal/models"
)

func testLead() models.Lead {
	email := "ada@example.com"
	return models.Lead{
		ID:         "lead-42",
		Name:       "Ada <Okafor>",
		Phone:      "08064398669",
		PhoneE164:  "+2348064398669",
		Email:      &email,
		Service:    "solar-installation",
		Location:   "Lekki, Lagos",
		Message:    "5kVA for the house",
		SourcePage: "/contact",
		Status:     models.LeadStatusNew,
		CreatedAt:  time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC),
	}
}

func TestNotifyBuildsMessage(t *testing.T) {
	n := NewEmailNotifier(SMTPConfig{FromEmail: "site@techserve.ng", FromName: "TechServe", To: "sales@techserve.ng"})
	var sent *gomail.Msg
	n.send = func(_ context.Context, msg *gomail.Msg) error {
		sent = msg
		return nil
	}

	if err := n.NotifyNewLead(context.Background(), testLead()); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if sent == nil {
		t.Fatalf("expected a message")
	}
	var buf bytes.Buffer
	if _, err := sent.WriteTo(&buf); err != nil {
		t.Fatalf("write message: %v", err)
	}
	raw := buf.String()
	for _, want := range []string{"sales@techserve.ng", "New lead: solar-installation", "lead-42", "Ada <Okafor>"} {
		if !strings.Contains(raw, want) {
			t.Fatalf("message missing %q", want)
		}
	}
}

func TestNotifyPropagatesSendError(t *testing.T) {
	n := NewEmailNotifier(SMTPConfig{FromEmail: "site@techserve.ng", To: "sales@techserve.ng"})
	n.send = func(context.Context, *gomail.Msg) error { return errors.New("boom") }
	if err := n.NotifyNewLead(context.Background(), testLead()); err == nil {
		t.Fatalf("expected send error")
	}
}

func TestNotifyRejectsBadRecipient(t *testing.T) {
	n := NewEmailNotifier(SMTPConfig{FromEmail: "site@techserve.ng", To: "not an address"})
	n.send = func(context.Context, *gomail.Msg) error {
		t.Fatalf("send must not be reached")
		return nil
	}
	if err := n.NotifyNewLead(context.Background(), testLead()); err == nil {
		t.Fatalf("expected address error")
	}
}
