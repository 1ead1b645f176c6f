package models

import "time"

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQuoted    LeadStatus = "quoted"
	LeadStatusClosed    LeadStatus = "closed"
)

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQuoted, LeadStatusClosed:
		return true
	}
	return false
}

// Lead is a persisted contact-form submission. Optional columns are nil when
// the visitor left them empty.
type Lead struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name"`
	Phone                string     `json:"phone"`
	PhoneE164            string     `json:"phone_e164"`
	Email                *string    `json:"email"`
	Service              string     `json:"service"`
	Location             string     `json:"location"`
	Message              string     `json:"message"`
	SourcePage           string     `json:"source_page"`
	PreferredContactTime *string    `json:"preferred_contact_time"`
	Status               LeadStatus `json:"status"`
	AdminNote            *string    `json:"admin_note"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

type LeadFilter struct {
	Status LeadStatus
	Query  string
	Limit  int
	Offset int
}

type LeadUpdate struct {
	Status    *LeadStatus
	AdminNote *string
}

type LeadPage struct {
	Items []Lead `json:"items"`
	Total int64  `json:"total"`
}
