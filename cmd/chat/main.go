package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/techserve_ng/backend/internal/chatbot"
	"github.com/techserve_ng/backend/internal/config"
	"github.com/techserve_ng/backend/internal/leadform"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	server := flag.String("server", "http://localhost:"+cfg.Port, "backend base URL for quote requests")
	delay := flag.Duration("typing-delay", 600*time.Millisecond, "pause before each assistant reply")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sh := &shell{
		in:  bufio.NewScanner(os.Stdin),
		out: os.Stdout,
		session: chatbot.NewSession(chatbot.SessionConfig{
			Phone:       cfg.CompanyPhone,
			ContactURL:  cfg.ContactPageURL,
			TypingDelay: *delay,
		}),
		client: leadform.Client{BaseURL: *server},
	}
	if err := sh.run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("chat ended")
		os.Exit(1)
	}
}

type shell struct {
	in      *bufio.Scanner
	out     io.Writer
	session *chatbot.Session
	client  leadform.Client
	shown   int
}

func (s *shell) run(ctx context.Context) error {
	s.flush()
	for {
		text, ok := s.prompt("> ")
		if !ok {
			return s.in.Err()
		}
		switch strings.ToLower(text) {
		case "quit", "exit":
			return nil
		case "restart":
			s.session.Reset()
			s.shown = 0
			s.flush()
			continue
		}

		act, err := s.session.Submit(ctx, text)
		if err != nil {
			return err
		}
		s.flush()

		switch act.Kind {
		case chatbot.ActionCall:
			fmt.Fprintf(s.out, "  Dial %s to reach an engineer.\n", strings.TrimPrefix(act.URL, "tel:"))
		case chatbot.ActionQuote:
			if err := s.quote(ctx, act.URL); err != nil {
				return err
			}
		}
	}
}

// flush prints transcript entries not yet shown, skipping the user's own echo.
func (s *shell) flush() {
	tr := s.session.Transcript()
	for _, m := range tr[s.shown:] {
		if m.Role == chatbot.RoleUser {
			continue
		}
		fmt.Fprintf(s.out, "TechServe: %s\n", m.Content)
		if len(m.QuickReplies) > 0 {
			fmt.Fprintf(s.out, "  [%s]\n", strings.Join(m.QuickReplies, "] ["))
		}
	}
	s.shown = len(tr)
}

func (s *shell) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// quote collects the contact form in the terminal and submits it once.
func (s *shell) quote(ctx context.Context, quoteURL string) error {
	form := leadform.Form{SourcePage: quoteURL, Service: serviceFromURL(quoteURL)}
	fmt.Fprintln(s.out, "  Let's get your quote request to the team.")

	fields := []struct {
		label string
		dst   *string
		skip  bool
	}{
		{"Full name", &form.Name, false},
		{"Phone number", &form.Phone, false},
		{"Email (optional)", &form.Email, false},
		{"Service", &form.Service, form.Service != ""},
		{"Location", &form.Location, false},
		{"How can we help?", &form.Message, false},
		{"Best time to call (optional)", &form.PreferredContactTime, false},
	}
	for _, f := range fields {
		if f.skip {
			continue
		}
		v, ok := s.prompt("  " + f.label + ": ")
		if !ok {
			return s.in.Err()
		}
		*f.dst = v
	}

	for {
		rec, err := s.client.Submit(ctx, form)
		var fe leadform.FieldErrors
		switch {
		case err == nil:
			if rec.ID != "" {
				fmt.Fprintf(s.out, "  Thanks! Your request reference is %s. We'll call you shortly.\n", rec.ID)
			} else {
				fmt.Fprintln(s.out, "  Thanks! We'll call you shortly.")
			}
			return nil
		case errors.As(err, &fe):
			keys := make([]string, 0, len(fe))
			for k := range fe {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(s.out, "  %s\n", fe[k])
				v, ok := s.prompt("  " + k + ": ")
				if !ok {
					return s.in.Err()
				}
				setField(&form, k, v)
			}
		default:
			var se *leadform.SubmitError
			if errors.As(err, &se) {
				fmt.Fprintf(s.out, "  %s\n", se.Message)
				return nil
			}
			return err
		}
	}
}

func setField(f *leadform.Form, name, v string) {
	switch name {
	case "name":
		f.Name = v
	case "phone":
		f.Phone = v
	case "email":
		f.Email = v
	case "service":
		f.Service = v
	case "location":
		f.Location = v
	case "message":
		f.Message = v
	}
}

func serviceFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Query().Get("service")
}
