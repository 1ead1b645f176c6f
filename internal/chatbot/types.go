// Package chatbot implements the scripted lead-qualification assistant shown on
// the marketing site. The decision function is pure: it maps the current state
// and one utterance to the next assistant message and a fresh state value.
package chatbot

type Role string

const (
	RoleAssistant Role = "assistant"
	RoleUser      Role = "user"
)

// Message is one immutable turn of a transcript.
type Message struct {
	ID           string   `json:"id"`
	Role         Role     `json:"role"`
	Content      string   `json:"content"`
	QuickReplies []string `json:"quick_replies,omitempty"`
	ShowCallNow  bool     `json:"show_call_now,omitempty"`
}

type Category string

const (
	CategoryCCTV         Category = "CCTV/Security"
	CategorySolar        Category = "Solar"
	CategoryElectrical   Category = "Electrical"
	CategoryGates        Category = "Gates/Fencing"
	CategoryInverter     Category = "Inverter"
	CategorySatellite    Category = "Satellite"
	CategoryStreetLights Category = "Street Lights"
)

// LeadDraft is reserved for in-chat lead capture. Leads are only created
// through the contact form, so the engine never fills it.
type LeadDraft struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// State is the engine's working memory for one session. An empty Category
// means no qualifying flow is active.
type State struct {
	Category       Category  `json:"category,omitempty"`
	QuestionIndex  int       `json:"question_index"`
	Answers        []string  `json:"answers"`
	CollectingLead bool      `json:"collecting_lead"`
	Lead           LeadDraft `json:"lead"`
}

func (s State) clone() State {
	out := s
	out.Answers = append([]string(nil), s.Answers...)
	return out
}

// Flow is the fixed qualifying sequence for one category.
type Flow struct {
	Questions []string `json:"questions"`
	Slug      string   `json:"slug"`
}
