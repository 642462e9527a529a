package entity

import (
	"regexp"
	"strings"
	"time"
)

// CountryNotSpecified is sent to the provider when the visitor picked no country.
const CountryNotSpecified = "Not specified"

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Countries is the fixed list offered in the country-of-interest selector.
var Countries = []string{
	"portugal",
	"spain",
	"italy",
	"france",
	"germany",
	"netherlands",
	"ireland",
	"other",
}

// Submission is built for a single delivery attempt and never persisted.
type Submission struct {
	FirstName         string    `json:"first_name"`
	Email             string    `json:"email"`
	CountryOfInterest string    `json:"country_of_interest,omitempty"`
	Consent           bool      `json:"consent"`
	Language          string    `json:"language"`
	Timestamp         time.Time `json:"timestamp"`
}

// CountryOrDefault returns the chosen country or CountryNotSpecified.
func (s Submission) CountryOrDefault() string {
	if s.CountryOfInterest == "" {
		return CountryNotSpecified
	}
	return s.CountryOfInterest
}

// IsEmailShape checks the loose local@domain.tld shape accepted by the form.
func IsEmailShape(email string) bool {
	return emailShape.MatchString(email)
}

// NormalizeEmail is the canonical form used for duplicate detection.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeCountry returns the country if it is in Countries, otherwise "".
func NormalizeCountry(country string) string {
	c := strings.ToLower(strings.TrimSpace(country))
	for _, known := range Countries {
		if c == known {
			return c
		}
	}
	return ""
}
