package classify

import (
	"strings"
	"unicode/utf8"

	"github.com/jmittelstaedt/faxsort/internal/core/domain"
)

// emptyValues are model answers that mean "nothing recognized" and are
// replaced with the field's default.
var emptyValues = map[string]struct{}{
	"":                  {},
	"none":              {},
	"null":              {},
	"n/a":               {},
	"-":                 {},
	"unbekannt":         {},
	"nicht erkennbar":   {},
	"nicht ersichtlich": {},
	"nicht angegeben":   {},
	"keine angabe":      {},
	"keine":             {},
	"k.a.":              {},
	"k. a.":             {},
	"n.a.":              {},
	"kein angabe":       {},
	"nicht vorhanden":   {},
	"nicht bekannt":     {},
}

// identityStoplist contains titles, abbreviations and address fragments that
// are never significant on their own when matching the own identity.
var identityStoplist = map[string]struct{}{
	"dr": {}, "dr.": {}, "med": {}, "med.": {}, "prof": {}, "prof.": {},
	"str": {}, "str.": {}, "huttenstr": {}, "huttenstr.": {},
	"praxis": {}, "herr": {}, "frau": {},
}

// Normalize trims and defaults the parsed fields and applies the identity
// filter: the practice's own name must never be recorded as sender or
// patient, no matter what the model returned.
func Normalize(fields Fields, ownIdentity string) domain.Classification {
	cls := domain.Classification{
		Category: strings.TrimSpace(fields.Category),
		Sender:   strings.TrimSpace(fields.Sender),
		Patient:  strings.TrimSpace(fields.Patient),
	}

	if isEmptyValue(cls.Category) {
		cls.Category = domain.FallbackCategory
	}
	if isEmptyValue(cls.Sender) {
		cls.Sender = domain.UnknownSender
	}
	if isEmptyValue(cls.Patient) {
		cls.Patient = ""
	}

	if ownIdentity != "" {
		if ContainsOwnIdentity(cls.Sender, ownIdentity) {
			cls.Sender = domain.UnknownSender
		}
		if ContainsOwnIdentity(cls.Patient, ownIdentity) {
			cls.Patient = ""
		}
	}

	return cls
}

func isEmptyValue(value string) bool {
	_, ok := emptyValues[strings.ToLower(strings.TrimSpace(value))]
	return ok
}

// ContainsOwnIdentity reports whether text mentions the configured recipient
// identity, either as the full string or via any significant name token
// (>= 3 characters, not in the stoplist). Matching is a case-insensitive
// substring check.
func ContainsOwnIdentity(text, ownIdentity string) bool {
	if ownIdentity == "" || text == "" {
		return false
	}
	lowerText := strings.ToLower(text)
	if strings.Contains(lowerText, strings.ToLower(ownIdentity)) {
		return true
	}
	for _, part := range strings.Fields(ownIdentity) {
		part = strings.Trim(part, ".,")
		if utf8.RuneCountInString(part) < 3 {
			continue
		}
		lowerPart := strings.ToLower(part)
		if _, stopped := identityStoplist[lowerPart]; stopped {
			continue
		}
		if strings.Contains(lowerText, lowerPart) {
			return true
		}
	}
	return false
}
