package chatbot

import (
	"context"
	"net/url"
	"strings"
	"time"
)

type ActionKind string

const (
	ActionNone  ActionKind = ""
	ActionCall  ActionKind = "call"
	ActionQuote ActionKind = "quote"
)

// Action is a navigation the widget should perform instead of waiting for an
// assistant reply.
type Action struct {
	Kind ActionKind `json:"kind,omitempty"`
	URL  string     `json:"url,omitempty"`
}

// Session is the conversational shell: one transcript and one live state,
// owned by a single event loop. It never creates leads.
type Session struct {
	engine      *Engine
	phone       string
	contactURL  string
	typingDelay time.Duration
	newID       func() string

	transcript []Message
	state      State
}

type SessionConfig struct {
	Engine      *Engine
	Phone       string
	ContactURL  string
	TypingDelay time.Duration
}

func NewSession(cfg SessionConfig) *Session {
	e := cfg.Engine
	if e == nil {
		e = defaultEngine
	}
	s := &Session{
		engine:      e,
		phone:       cfg.Phone,
		contactURL:  cfg.ContactURL,
		typingDelay: cfg.TypingDelay,
		newID:       e.newID,
	}
	s.Reset()
	return s
}

// Reset discards the transcript and state and shows the greeting again.
func (s *Session) Reset() {
	s.transcript = s.engine.InitialMessages()
	s.state = State{Answers: []string{}}
}

func (s *Session) Transcript() []Message {
	return append([]Message(nil), s.transcript...)
}

func (s *Session) State() State {
	return s.state.clone()
}

// Submit handles one typed message or quick-reply tap. "Call Now" and
// "Get a Quote" return an Action and skip the engine. Otherwise the reply is
// appended after the typing delay; if ctx ends first the reply is dropped and
// ctx.Err() is returned.
func (s *Session) Submit(ctx context.Context, text string) (Action, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Action{}, nil
	}

	s.transcript = append(s.transcript, Message{ID: s.newID(), Role: RoleUser, Content: text})

	if act := ActionFor(text, s.state, s.phone, s.contactURL); act.Kind != ActionNone {
		return act, nil
	}

	if s.typingDelay > 0 {
		t := time.NewTimer(s.typingDelay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return Action{}, ctx.Err()
		case <-t.C:
		}
	} else if err := ctx.Err(); err != nil {
		return Action{}, err
	}

	msg, next := s.engine.Respond(s.state, text)
	s.transcript = append(s.transcript, msg)
	s.state = next
	return Action{}, nil
}

// ActionFor reports the navigation a widget performs for text in place of an
// assistant reply, or an Action with Kind ActionNone.
func ActionFor(text string, state State, phone, contactURL string) Action {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "call now":
		return Action{Kind: ActionCall, URL: telURL(phone)}
	case "get a quote":
		return Action{Kind: ActionQuote, URL: QuoteURL(contactURL, state)}
	}
	return Action{}
}

// QuoteURL builds the contact-form link, preselecting the service of the
// active category when there is one.
func QuoteURL(contactURL string, state State) string {
	slug := QuoteServiceSlug(state)
	if slug == "" {
		return contactURL
	}
	u, err := url.Parse(contactURL)
	if err != nil {
		return contactURL
	}
	q := u.Query()
	q.Set("service", slug)
	u.RawQuery = q.Encode()
	return u.String()
}

func telURL(phone string) string {
	return "tel:" + strings.Join(strings.Fields(phone), "")
}
