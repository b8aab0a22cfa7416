// BYZRA ⸻ internal/catalog/vocabulary.go
// bilingual fixed domains and descriptive phrasebooks

package catalog

import (
	"fmt"
	"slices"
	"strings"

	"mirage/internal/metadata"
)

type Locale string

const (
	LocaleEN Locale = "en"
	LocaleZH Locale = "zh"
)

func ParseLocale(s string) (Locale, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "en", "en_us", "en-us", "english":
		return LocaleEN, nil
	case "zh", "zh_cn", "zh-cn", "chinese":
		return LocaleZH, nil
	default:
		return LocaleEN, fmt.Errorf("unsupported locale: %s", s)
	}
}

// templates for descriptive fields
//
// Creator, Location and Title take one integer; Copyright takes the capture
// year; Description takes make and model.
type Phrasebook struct {
	Creator     string
	Copyright   string
	Description string
	Title       string
	Location    string
	KeywordSep  string
	Topics      []string
}

// phrasebook for a locale, english when unknown
func (c *Catalog) Phrasebook(l Locale) Phrasebook {
	pb, ok := phrasebooks[l]
	if !ok {
		pb = phrasebooks[LocaleEN]
	}
	pb.Topics = slices.Clone(pb.Topics)
	return pb
}

// true for fields whose values must come from a fixed bilingual list
func (c *Catalog) FixedDomain(field metadata.Field) bool {
	_, ok := c.domains[field]
	return ok
}

// maps caller vocabulary to the wire value exiftool expects
//
// Accepts the wire value in any case, the zh label, and for reference
// letters the english words (north, south, east, west).
func (c *Catalog) Canonical(field metadata.Field, text string) (string, bool) {
	vocab, ok := c.domains[field]
	if !ok {
		return text, true
	}

	t := strings.TrimSpace(text)
	if t == "" {
		return "", false
	}

	if alias, ok := refAliases[strings.ToLower(t)]; ok {
		t = alias
	}

	for _, entry := range vocab {
		if strings.EqualFold(entry.wire, t) || entry.zh == t {
			return entry.wire, true
		}
	}
	return "", false
}

// display label of a wire value; unknown values come back unchanged
func (c *Catalog) Label(field metadata.Field, wire string, l Locale) string {
	if l != LocaleZH {
		return wire
	}
	for _, entry := range c.domains[field] {
		if entry.wire == wire {
			return entry.zh
		}
	}
	return wire
}
