// Package leadform is the client side of the contact form: field validation
// that runs before anything is sent, and a one-shot submitter for the intake
// endpoint.
package leadform

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Form mirrors the fields of the public contact form. Honeypot is the hidden
// input real visitors never see; it is always sent.
type Form struct {
	Name                 string `json:"name" validate:"required,min=1,max=100"`
	Phone                string `json:"phone" validate:"required,min=10,max=20"`
	Email                string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Service              string `json:"service" validate:"required"`
	Location             string `json:"location" validate:"required,min=1,max=200"`
	Message              string `json:"message" validate:"required,min=1,max=1000"`
	SourcePage           string `json:"source_page"`
	PreferredContactTime string `json:"preferred_contact_time,omitempty"`
	Honeypot             string `json:"honeypot"`
}

var labels = map[string]string{
	"name":     "Name",
	"phone":    "Phone number",
	"email":    "Email",
	"service":  "Service",
	"location": "Location",
	"message":  "Message",
}

var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}()

// FieldErrors maps a form field (by its JSON name) to a message for display
// next to that field.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}

// Validate trims the form in place and reports per-field problems, or nil.
func (f *Form) Validate() FieldErrors {
	f.Name = strings.TrimSpace(f.Name)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Email = strings.TrimSpace(f.Email)
	f.Service = strings.TrimSpace(f.Service)
	f.Location = strings.TrimSpace(f.Location)
	f.Message = strings.TrimSpace(f.Message)

	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"form": err.Error()}
	}
	out := FieldErrors{}
	for _, e := range verrs {
		if _, seen := out[e.Field()]; seen {
			continue
		}
		out[e.Field()] = message(e)
	}
	return out
}

func message(e validator.FieldError) string {
	label := labels[e.Field()]
	if label == "" {
		label = e.Field()
	}
	switch e.Tag() {
	case "required":
		if e.Field() == "service" {
			return "Please select a service"
		}
		return label + " is required"
	case "email":
		return "Enter a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, e.Param())
	default:
		return label + " is invalid"
	}
}
