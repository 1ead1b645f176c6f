package chatbot

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	greetingText = "Hi there! I'm the TechServe assistant. Tell me what you need help with, " +
		"or pick a service below to get started."

	refusalText = "For your safety, we can't guide you through electrical wiring or installation " +
		"work yourself. Faulty wiring can cause fires and electric shock. Please call us and a " +
		"certified engineer will handle it properly."

	callNowText = "Tap the Call Now button to speak with one of our engineers directly. " +
		"While you connect, which service are you interested in?"

	getAQuoteText = "Happy to prepare a quote for you. Which service do you need?"

	genericHelpText = "I'd be happy to help with that. Please speak with our team for the details."
)

// Engine produces assistant turns. The only varying output is the message
// id, which carries no meaning.
type Engine struct {
	newID func() string
}

type Option func(*Engine)

// WithIDFunc replaces the message id generator.
func WithIDFunc(fn func() string) Option {
	return func(e *Engine) {
		if fn != nil {
			e.newID = fn
		}
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{newID: uuid.NewString}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = NewEngine()

// Respond runs one turn with the default engine.
func Respond(state State, utterance string) (Message, State) {
	return defaultEngine.Respond(state, utterance)
}

// InitialMessages returns the greeting that opens every session.
func InitialMessages() []Message {
	return defaultEngine.InitialMessages()
}

func (e *Engine) InitialMessages() []Message {
	return []Message{e.reply(greetingText, FullQuickReplies(), false)}
}

// Respond maps (state, utterance) to the next assistant message and a new
// state. The input state is never modified.
func (e *Engine) Respond(state State, utterance string) (Message, State) {
	text := strings.TrimSpace(utterance)
	lower := strings.ToLower(text)
	next := state.clone()

	if IsHazardRequest(lower) {
		next.Category = ""
		next.QuestionIndex = 0
		next.Answers = []string{}
		return e.reply(refusalText, []string{ReplyCallNow, ReplyGetAQuote}, true), next
	}

	switch lower {
	case "call now":
		return e.reply(callNowText, categoryReplies(), true), next
	case "get a quote":
		next.CollectingLead = false
		return e.reply(getAQuoteText, categoryReplies(), false), next
	}

	selected, isSelection := MatchCategory(text)
	if isSelection || state.Category != "" {
		category := state.Category
		if isSelection {
			category = selected
		}

		flow, ok := flows[category]
		if !ok {
			return e.reply(genericHelpText, []string{ReplyCallNow}, true), next
		}

		if state.Category == "" {
			next.Category = category
			next.QuestionIndex = 0
			next.Answers = []string{}
			content := fmt.Sprintf("Great, let's talk about %s. %s", category, flow.Questions[0])
			return e.reply(content, []string{ReplyCallNow}, false), next
		}

		idx := state.QuestionIndex
		if idx < 0 {
			idx = 0
		}
		idx++
		answers := append(next.Answers, text)

		if idx < len(flow.Questions) {
			next.Category = category
			next.QuestionIndex = idx
			next.Answers = answers
			return e.reply("Got it. "+flow.Questions[idx], []string{ReplyCallNow}, false), next
		}

		next.Category = ""
		next.QuestionIndex = 0
		next.Answers = []string{}
		return e.reply(recommendation(category), FullQuickReplies(), true), next
	}

	return e.reply(fallbackText(), FullQuickReplies(), false), next
}

func (e *Engine) reply(content string, quickReplies []string, showCallNow bool) Message {
	return Message{
		ID:           e.newID(),
		Role:         RoleAssistant,
		Content:      content,
		QuickReplies: quickReplies,
		ShowCallNow:  showCallNow,
	}
}

func recommendation(c Category) string {
	return fmt.Sprintf("Thank you! Based on your answers, our %s team can design the right solution for you. "+
		"We cover %s. Tap \"Call Now\" to speak with an engineer or \"Get a Quote\" to send us your request.",
		c, CoverageArea)
}

func fallbackText() string {
	return "I can help you with " + strings.Join(categoryReplies(), ", ") +
		". Pick a topic below, or tap Call Now to speak with our team."
}

// QuoteServiceSlug resolves the catalog slug for the active category, or ""
// when no qualifying flow is in progress.
func QuoteServiceSlug(state State) string {
	if f, ok := flows[state.Category]; ok {
		return f.Slug
	}
	return ""
}
