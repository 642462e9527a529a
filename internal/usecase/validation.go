package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xavierca1/lead-magnet/internal/entity"
	"github.com/xavierca1/lead-magnet/internal/infra/i18n"
)

const minFirstNameLength = 2

// ValidationError carries the failing field and the catalog key of its message.
type ValidationError struct {
	Field   string
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Code)
}

// ValidateLeadForm applies the form rules in order and returns the first failure.
func ValidateLeadForm(ctx context.Context, fields FormFields, store entity.LeadStoreInterface) *ValidationError {
	name := strings.TrimSpace(fields.FirstName)
	email := strings.TrimSpace(fields.Email)

	switch {
	case name == "":
		return &ValidationError{Field: "first_name", Code: i18n.KeyFirstNameRequired}
	case utf8.RuneCountInString(name) < minFirstNameLength:
		return &ValidationError{Field: "first_name", Code: i18n.KeyFirstNameTooShort}
	case email == "":
		return &ValidationError{Field: "email", Code: i18n.KeyEmailRequired}
	case !entity.IsEmailShape(email):
		return &ValidationError{Field: "email", Code: i18n.KeyEmailInvalid}
	case !fields.Consent:
		return &ValidationError{Field: "consent", Code: i18n.KeyConsentRequired}
	case store.HasLead(ctx, email):
		return &ValidationError{Field: "email", Code: i18n.KeyAlreadyReceived}
	}
	return nil
}
