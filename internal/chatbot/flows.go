package chatbot

import "fmt"

const (
	ReplyCallNow   = "Call Now"
	ReplyGetAQuote = "Get a Quote"

	CoverageArea = "Lagos, Ogun and the wider South-West"
)

// Categories is the fixed enumeration in display order.
var Categories = []Category{
	CategoryCCTV,
	CategorySolar,
	CategoryElectrical,
	CategoryGates,
	CategoryInverter,
	CategorySatellite,
	CategoryStreetLights,
}

var flows = map[Category]Flow{
	CategoryCCTV: {
		Slug: "cctv-security",
		Questions: []string{
			"Is this for a home, an office or a commercial site?",
			"Roughly how many cameras or entry points do you want covered?",
			"Do you want to view the cameras remotely on your phone?",
		},
	},
	CategorySolar: {
		Slug: "solar-installation",
		Questions: []string{
			"Which appliances do you want the solar system to power?",
			"Is the installation for a home or a business?",
			"Do you already have an inverter or batteries on site?",
		},
	},
	CategoryElectrical: {
		Slug: "electrical-installation",
		Questions: []string{
			"Is this a new installation, a rewiring job or a fault repair?",
			"What type of building is it (flat, duplex, office, shop)?",
		},
	},
	CategoryGates: {
		Slug: "automated-gates-fencing",
		Questions: []string{
			"Are you interested in an automated gate, electric fencing, or both?",
			"About how wide is the gate or how long is the perimeter?",
		},
	},
	CategoryInverter: {
		Slug: "inverter-installation",
		Questions: []string{
			"What load should the inverter carry (lights, fans, fridge, AC)?",
			"Should batteries be included in the quote?",
		},
	},
	CategorySatellite: {
		Slug: "satellite-installation",
		Questions: []string{
			"Which service do you need: DStv, GOtv, Starlink or another dish?",
			"Is this a new installation or a realignment of an existing dish?",
		},
	},
	CategoryStreetLights: {
		Slug: "solar-street-lights",
		Questions: []string{
			"Is this for an estate, a public road or a private compound?",
			"Approximately how many poles or light points do you need?",
		},
	},
}

// hazardPhrases are do-it-yourself electrical requests the assistant refuses
// to coach. Matching is a case-insensitive substring test.
var hazardPhrases = []string{
	"how do i wire",
	"how to wire",
	"how can i wire",
	"wire it myself",
	"wiring myself",
	"do the wiring",
	"do it myself",
	"install it myself",
	"install this myself",
	"fix it myself",
	"diy",
	"how do i install",
	"how to install",
	"how do i connect",
	"how to connect the",
	"bypass the meter",
	"bypass the breaker",
	"jump the meter",
	"live wire",
}

// FlowFor returns the qualifying flow for c.
func FlowFor(c Category) (Flow, bool) {
	f, ok := flows[c]
	return f, ok
}

// FullQuickReplies is the menu offered with the greeting, the fallback and
// every recommendation.
func FullQuickReplies() []string {
	out := make([]string, 0, len(Categories)+2)
	out = append(out, ReplyCallNow, ReplyGetAQuote)
	return append(out, categoryReplies()...)
}

func categoryReplies() []string {
	out := make([]string, 0, len(Categories))
	for _, c := range Categories {
		out = append(out, string(c))
	}
	return out
}

// ValidateFlows checks that every category has exactly one flow with two or
// three questions and a slug, and that no flow exists for an unknown category.
func ValidateFlows() error {
	if len(flows) != len(Categories) {
		return fmt.Errorf("chatbot: %d flows for %d categories", len(flows), len(Categories))
	}
	for _, c := range Categories {
		f, ok := flows[c]
		if !ok {
			return fmt.Errorf("chatbot: no flow for %q", c)
		}
		if n := len(f.Questions); n < 2 || n > 3 {
			return fmt.Errorf("chatbot: flow %q has %d questions", c, n)
		}
		if f.Slug == "" {
			return fmt.Errorf("chatbot: flow %q has no slug", c)
		}
	}
	return nil
}
