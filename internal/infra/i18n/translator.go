// Package i18n resolves widget copy for a visitor's locale.
package i18n

import (
	"golang.org/x/text/language"
)

const Namespace = "leadMagnet"

// Translator looks up display text for a (namespace, key) pair in a locale.
type Translator interface {
	T(locale, namespace, key string) string
	// Match returns the supported locale tag closest to locale.
	Match(locale string) string
}

// Catalog is an in-memory Translator. The first registered language is the fallback.
type Catalog struct {
	tags     []language.Tag
	messages map[string]map[string]string // tag -> "namespace.key" -> text
	matcher  language.Matcher
}

func NewCatalog(entries map[language.Tag]map[string]string, fallback language.Tag) *Catalog {
	c := &Catalog{
		tags:     []language.Tag{fallback},
		messages: make(map[string]map[string]string),
	}
	for tag, msgs := range entries {
		if tag != fallback {
			c.tags = append(c.tags, tag)
		}
		c.messages[tag.String()] = msgs
	}
	c.matcher = language.NewMatcher(c.tags)
	return c
}

func (c *Catalog) Match(locale string) string {
	_, idx, _ := c.matcher.Match(language.Make(locale))
	return c.tags[idx].String()
}

// T falls back to the default language and then to the key itself.
func (c *Catalog) T(locale, namespace, key string) string {
	id := namespace + "." + key
	if msg, ok := c.messages[c.Match(locale)][id]; ok {
		return msg
	}
	if msg, ok := c.messages[c.tags[0].String()][id]; ok {
		return msg
	}
	return key
}
