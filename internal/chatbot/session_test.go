package chatbot

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestSession(delay time.Duration) *Session {
	return NewSession(SessionConfig{
		Engine:      NewEngine(fixedIDs()),
		Phone:       "+234 806 439 8669",
		ContactURL:  "https://techserve.ng/contact",
		TypingDelay: delay,
	})
}

func TestSessionStartsWithGreeting(t *testing.T) {
	s := newTestSession(0)
	tr := s.Transcript()
	if len(tr) != 1 || tr[0].Content != greetingText {
		t.Fatalf("expected greeting transcript, got %+v", tr)
	}
}

func TestSessionIgnoresBlankInput(t *testing.T) {
	s := newTestSession(0)
	act, err := s.Submit(context.Background(), "   ")
	if err != nil || act.Kind != ActionNone {
		t.Fatalf("unexpected result %+v %v", act, err)
	}
	if n := len(s.Transcript()); n != 1 {
		t.Fatalf("blank input should not append, got %d messages", n)
	}
}

func TestSessionRunsFlow(t *testing.T) {
	s := newTestSession(time.Millisecond)
	ctx := context.Background()
	if _, err := s.Submit(ctx, "Solar"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := s.Submit(ctx, "fridge"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	tr := s.Transcript()
	if len(tr) != 5 {
		t.Fatalf("expected 5 messages, got %d", len(tr))
	}
	if tr[1].Role != RoleUser || tr[2].Role != RoleAssistant {
		t.Fatalf("unexpected roles %s %s", tr[1].Role, tr[2].Role)
	}
	st := s.State()
	if st.Category != CategorySolar || st.QuestionIndex != 1 {
		t.Fatalf("unexpected state %+v", st)
	}
}

func TestSessionCallNowAction(t *testing.T) {
	s := newTestSession(time.Hour)
	act, err := s.Submit(context.Background(), "Call Now")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if act.Kind != ActionCall || act.URL != "tel:+2348064398669" {
		t.Fatalf("unexpected action %+v", act)
	}
	if n := len(s.Transcript()); n != 2 {
		t.Fatalf("expected only the user message appended, got %d", n)
	}
}

func TestSessionGetAQuoteCarriesSlug(t *testing.T) {
	s := newTestSession(0)
	ctx := context.Background()
	if _, err := s.Submit(ctx, "CCTV/Security"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	act, err := s.Submit(ctx, "get a quote")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if act.Kind != ActionQuote {
		t.Fatalf("expected quote action, got %+v", act)
	}
	if act.URL != "https://techserve.ng/contact?service=cctv-security" {
		t.Fatalf("unexpected quote url %q", act.URL)
	}

	s.Reset()
	act, _ = s.Submit(ctx, "Get a Quote")
	if act.URL != "https://techserve.ng/contact" {
		t.Fatalf("expected no preselection, got %q", act.URL)
	}
}

func TestSessionCancelledDropsReply(t *testing.T) {
	s := newTestSession(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Submit(ctx, "Solar")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	tr := s.Transcript()
	if len(tr) != 2 || tr[1].Role != RoleUser {
		t.Fatalf("expected user message without reply, got %+v", tr)
	}
	if s.State().Category != "" {
		t.Fatalf("state should not advance")
	}
}

func TestSessionReset(t *testing.T) {
	s := newTestSession(0)
	_, _ = s.Submit(context.Background(), "Inverter")
	s.Reset()
	if n := len(s.Transcript()); n != 1 {
		t.Fatalf("expected greeting only, got %d", n)
	}
	if st := s.State(); st.Category != "" || len(st.Answers) != 0 {
		t.Fatalf("state not reset: %+v", st)
	}
}

func TestQuoteURLKeepsExistingQuery(t *testing.T) {
	got := QuoteURL("/contact?ref=chat", State{Category: CategoryStreetLights})
	if got != "/contact?ref=chat&service=solar-street-lights" {
		t.Fatalf("unexpected url %q", got)
	}
}
