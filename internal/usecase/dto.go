package usecase

import (
	"github.com/xavierca1/lead-magnet/internal/entity"
)

type FormState string

const (
	StateForm    FormState = "form"
	StateSuccess FormState = "success"
	StateError   FormState = "error"
)

type FormFields struct {
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	Country   string `json:"country_of_interest"`
	Consent   bool   `json:"consent"`
}

// FieldsPatch holds the fields a visitor edited; nil means unchanged.
type FieldsPatch struct {
	FirstName *string `json:"first_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Country   *string `json:"country_of_interest,omitempty"`
	Consent   *bool   `json:"consent,omitempty"`
}

func (p FieldsPatch) apply(f FormFields) FormFields {
	if p.FirstName != nil {
		f.FirstName = *p.FirstName
	}
	if p.Email != nil {
		f.Email = *p.Email
	}
	if p.Country != nil {
		f.Country = entity.NormalizeCountry(*p.Country)
	}
	if p.Consent != nil {
		f.Consent = *p.Consent
	}
	return f
}

type FormView struct {
	State     FormState  `json:"state"`
	Fields    FormFields `json:"fields"`
	Loading   bool       `json:"loading"`
	Message   string     `json:"message,omitempty"`
	MessageID string     `json:"message_id,omitempty"`
}

type SessionView struct {
	ID            string    `json:"id"`
	VisitorID     string    `json:"visitor_id"`
	Language      string    `json:"language"`
	ModalOpen     bool      `json:"modal_open"`
	OpenScheduled bool      `json:"open_scheduled"`
	Form          *FormView `json:"form,omitempty"`
}
