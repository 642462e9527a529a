package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogMatchesRegionalLocales(t *testing.T) {
	c := Default()

	assert.Equal(t, "pt", c.Match("pt-BR"))
	assert.Equal(t, "es", c.Match("es-MX"))
	assert.Equal(t, "en", c.Match("en-GB"))
	assert.Equal(t, "en", c.Match("ja"))
	assert.Equal(t, "en", c.Match("not a tag"))
}

func TestCatalogFallsBack(t *testing.T) {
	c := Default()

	assert.Equal(t, "Por favor, informe seu nome.", c.T("pt-PT", Namespace, KeyFirstNameRequired))
	assert.Equal(t, "Please enter your first name.", c.T("de", Namespace, KeyFirstNameRequired))
	assert.Equal(t, "missing.key", c.T("en", Namespace, "missing.key"))
}

func TestMessagesAreDistinct(t *testing.T) {
	c := Default()
	keys := []string{
		KeyFirstNameRequired, KeyFirstNameTooShort, KeyEmailRequired,
		KeyEmailInvalid, KeyConsentRequired, KeyAlreadyReceived, KeyGeneric,
	}

	for _, locale := range []string{"en", "pt", "es"} {
		seen := map[string]bool{}
		for _, k := range keys {
			msg := c.T(locale, Namespace, k)
			assert.False(t, seen[msg], "duplicate message %q in %s", msg, locale)
			seen[msg] = true
		}
	}
}
