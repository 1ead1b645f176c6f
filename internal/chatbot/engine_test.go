package chatbot

import (
	"reflect"
	"strings"
	"testing"
)

func fixedIDs() Option {
	return WithIDFunc(func() string { return "msg" })
}

func sameTurn(a, b Message) bool {
	return a.Content == b.Content &&
		a.ShowCallNow == b.ShowCallNow &&
		reflect.DeepEqual(a.QuickReplies, b.QuickReplies)
}

func sameState(a, b State) bool {
	if a.Category != b.Category || a.QuestionIndex != b.QuestionIndex || a.CollectingLead != b.CollectingLead {
		return false
	}
	if len(a.Answers) != len(b.Answers) {
		return false
	}
	for i := range a.Answers {
		if a.Answers[i] != b.Answers[i] {
			return false
		}
	}
	return a.Lead == b.Lead
}

func TestValidateFlows(t *testing.T) {
	if err := ValidateFlows(); err != nil {
		t.Fatalf("flows invalid: %v", err)
	}
	if len(Categories) != 7 {
		t.Fatalf("expected 7 categories, got %d", len(Categories))
	}
	if got := len(flows[CategorySolar].Questions); got != 3 {
		t.Fatalf("expected 3 solar questions, got %d", got)
	}
}

func TestInitialMessages(t *testing.T) {
	msgs := InitialMessages()
	if len(msgs) != 1 {
		t.Fatalf("expected exactly one greeting, got %d", len(msgs))
	}
	if msgs[0].Role != RoleAssistant {
		t.Fatalf("expected assistant greeting, got %s", msgs[0].Role)
	}
	if !reflect.DeepEqual(msgs[0].QuickReplies, FullQuickReplies()) {
		t.Fatalf("greeting quick replies = %v", msgs[0].QuickReplies)
	}
	if msgs[0].ID == "" {
		t.Fatalf("expected a message id")
	}
}

func TestMatchCategory(t *testing.T) {
	cases := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"CCTV/Security", CategoryCCTV, true},
		{"cctvsecurity", CategoryCCTV, true},
		{"cctv/security", CategoryCCTV, true},
		{"Solar", CategorySolar, true},
		{"SOLAR", CategorySolar, true},
		{"Electrical", CategoryElectrical, true},
		{"Gates/Fencing", CategoryGates, true},
		{"Gates Fencing", CategoryGates, true},
		{"gatesfencing", CategoryGates, true},
		{"Inverter", CategoryInverter, true},
		{"satellite", CategorySatellite, true},
		{"Street Lights", CategoryStreetLights, true},
		{"streetlights", CategoryStreetLights, true},
		{"  Solar  ", CategorySolar, true},
		{"solar panels", "", false},
		{"", "", false},
		{"/", "", false},
	}
	for _, tc := range cases {
		got, ok := MatchCategory(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("MatchCategory(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestRespondDeterministic(t *testing.T) {
	e := NewEngine()
	states := []State{
		{},
		{Category: CategorySolar, QuestionIndex: 1, Answers: []string{"fridge"}},
		{Category: CategoryGates, QuestionIndex: 0, Answers: []string{}},
	}
	inputs := []string{"Solar", "asdkjasdk", "Call Now", "get a quote", "two cameras", "how do i wire my house", "Street Lights"}
	for _, st := range states {
		for _, in := range inputs {
			m1, s1 := e.Respond(st, in)
			m2, s2 := e.Respond(st, in)
			if !sameTurn(m1, m2) {
				t.Fatalf("non-deterministic message for %+v / %q", st, in)
			}
			if !sameState(s1, s2) {
				t.Fatalf("non-deterministic state for %+v / %q", st, in)
			}
		}
	}
}

func TestRespondDoesNotMutateInput(t *testing.T) {
	e := NewEngine(fixedIDs())
	answers := make([]string, 1, 8)
	answers[0] = "fridge"
	st := State{Category: CategorySolar, QuestionIndex: 0, Answers: answers}

	_, next := e.Respond(st, "home")
	if len(st.Answers) != 1 || st.Category != CategorySolar || st.QuestionIndex != 0 {
		t.Fatalf("input state mutated: %+v", st)
	}
	if got := answers[:2][1]; got != "" {
		t.Fatalf("input backing array written: %q", got)
	}
	if len(next.Answers) != 2 || next.Answers[1] != "home" {
		t.Fatalf("unexpected answers %v", next.Answers)
	}
}

func TestSafetyPrecedence(t *testing.T) {
	e := NewEngine(fixedIDs())
	hazard := "how do i install this wiring myself"
	for _, c := range Categories {
		flow := flows[c]
		for idx := range flow.Questions {
			st := State{Category: c, QuestionIndex: idx, Answers: make([]string, idx)}
			msg, next := e.Respond(st, hazard)
			if msg.Content != refusalText {
				t.Fatalf("%s/%d: expected refusal, got %q", c, idx, msg.Content)
			}
			if !msg.ShowCallNow {
				t.Fatalf("%s/%d: refusal must offer Call Now", c, idx)
			}
			if next.Category != "" || next.QuestionIndex != 0 || len(next.Answers) != 0 {
				t.Fatalf("%s/%d: progress not reset: %+v", c, idx, next)
			}
		}
	}

	msg, _ := e.Respond(State{}, "HOW TO WIRE a socket")
	if msg.Content != refusalText {
		t.Fatalf("expected case-insensitive hazard match, got %q", msg.Content)
	}
}

func TestSolarFlowCompletion(t *testing.T) {
	e := NewEngine(fixedIDs())
	msg, st := e.Respond(State{}, "Solar")
	if !strings.Contains(msg.Content, flows[CategorySolar].Questions[0]) {
		t.Fatalf("expected first solar question, got %q", msg.Content)
	}
	if !reflect.DeepEqual(msg.QuickReplies, []string{"Call Now"}) {
		t.Fatalf("expected Call Now only, got %v", msg.QuickReplies)
	}
	if st.Category != CategorySolar || st.QuestionIndex != 0 || len(st.Answers) != 0 {
		t.Fatalf("unexpected state after selection: %+v", st)
	}

	msg, st = e.Respond(st, "fridge and lights")
	if !strings.HasPrefix(msg.Content, "Got it. ") || !strings.Contains(msg.Content, flows[CategorySolar].Questions[1]) {
		t.Fatalf("expected second question, got %q", msg.Content)
	}
	msg, st = e.Respond(st, "home")
	if !strings.Contains(msg.Content, flows[CategorySolar].Questions[2]) {
		t.Fatalf("expected third question, got %q", msg.Content)
	}
	if st.QuestionIndex != 2 || len(st.Answers) != 2 {
		t.Fatalf("unexpected state before last answer: %+v", st)
	}

	msg, st = e.Respond(st, "no inverter yet")
	if !strings.Contains(msg.Content, "Solar") {
		t.Fatalf("recommendation should name the category: %q", msg.Content)
	}
	if !strings.Contains(msg.Content, CoverageArea) {
		t.Fatalf("recommendation should name the coverage area: %q", msg.Content)
	}
	want := []string{"Call Now", "Get a Quote", "CCTV/Security", "Solar", "Electrical", "Gates/Fencing", "Inverter", "Satellite", "Street Lights"}
	if !reflect.DeepEqual(msg.QuickReplies, want) {
		t.Fatalf("quick replies = %v", msg.QuickReplies)
	}
	if st.Category != "" || st.QuestionIndex != 0 || st.Answers == nil || len(st.Answers) != 0 {
		t.Fatalf("state not reset: %+v", st)
	}
}

func TestFallbackIdempotent(t *testing.T) {
	e := NewEngine(fixedIDs())
	st := State{Answers: []string{}}
	m1, s1 := e.Respond(st, "asdkjasdk")
	m2, s2 := e.Respond(s1, "asdkjasdk")
	if !sameTurn(m1, m2) {
		t.Fatalf("fallback changed between calls: %q vs %q", m1.Content, m2.Content)
	}
	if !sameState(st, s1) || !sameState(st, s2) {
		t.Fatalf("fallback mutated state: %+v %+v", s1, s2)
	}
	for _, c := range Categories {
		if !strings.Contains(m1.Content, string(c)) {
			t.Fatalf("fallback should list %s: %q", c, m1.Content)
		}
	}
	if !reflect.DeepEqual(m1.QuickReplies, FullQuickReplies()) {
		t.Fatalf("fallback quick replies = %v", m1.QuickReplies)
	}
}

func TestCallNowLiteral(t *testing.T) {
	e := NewEngine(fixedIDs())
	st := State{Category: CategoryInverter, QuestionIndex: 1, Answers: []string{"fans"}}
	msg, next := e.Respond(st, "CALL NOW")
	if !sameState(st, next) {
		t.Fatalf("call now changed state: %+v", next)
	}
	if !reflect.DeepEqual(msg.QuickReplies, categoryReplies()) {
		t.Fatalf("call now quick replies = %v", msg.QuickReplies)
	}
}

func TestGetAQuoteLiteral(t *testing.T) {
	e := NewEngine(fixedIDs())
	st := State{Category: CategoryCCTV, QuestionIndex: 1, Answers: []string{"office"}, CollectingLead: true}
	msg, next := e.Respond(st, "Get A Quote")
	if next.CollectingLead {
		t.Fatalf("expected collecting flag cleared")
	}
	if next.Category != CategoryCCTV || next.QuestionIndex != 1 || len(next.Answers) != 1 {
		t.Fatalf("get a quote must not touch flow progress: %+v", next)
	}
	if !reflect.DeepEqual(msg.QuickReplies, categoryReplies()) {
		t.Fatalf("quick replies = %v", msg.QuickReplies)
	}
}

func TestUnknownCategoryInState(t *testing.T) {
	e := NewEngine(fixedIDs())
	st := State{Category: "Plumbing", QuestionIndex: 0}
	msg, next := e.Respond(st, "anything")
	if msg.Content != genericHelpText {
		t.Fatalf("expected generic help, got %q", msg.Content)
	}
	if !sameState(st, next) {
		t.Fatalf("state must be unchanged: %+v", next)
	}
}

func TestNegativeQuestionIndexDoesNotPanic(t *testing.T) {
	e := NewEngine(fixedIDs())
	msg, next := e.Respond(State{Category: CategoryElectrical, QuestionIndex: -5}, "rewiring")
	if next.QuestionIndex != 1 {
		t.Fatalf("expected index 1, got %d", next.QuestionIndex)
	}
	if !strings.Contains(msg.Content, flows[CategoryElectrical].Questions[1]) {
		t.Fatalf("unexpected content %q", msg.Content)
	}
}

func TestQuoteServiceSlug(t *testing.T) {
	if got := QuoteServiceSlug(State{}); got != "" {
		t.Fatalf("expected empty slug, got %q", got)
	}
	if got := QuoteServiceSlug(State{Category: CategorySatellite}); got != "satellite-installation" {
		t.Fatalf("unexpected slug %q", got)
	}
}
