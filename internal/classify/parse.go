package classify

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Fields holds the raw classification values recovered from a model response,
// before normalization.
type Fields struct {
	Category string
	Sender   string
	Patient  string
}

// Some vision models emit doubled unicode escapes (`\uö` instead of
// `ö`), which breaks JSON decoding. Applied repeatedly until stable so
// chains collapse too.
var reDoubledEscape = regexp.MustCompile(`\\u(\\u[0-9a-fA-F]{4})`)

func repairEscapes(raw string) string {
	for {
		repaired := reDoubledEscape.ReplaceAllString(raw, "$1")
		if repaired == raw {
			return repaired
		}
		raw = repaired
	}
}

// strategy attempts to recover classification fields from raw model text.
type strategy func(raw string) (Fields, bool)

var strategies = []strategy{
	parseDirectJSON,
	parseEmbeddedJSON,
	parseLabeledText,
}

// Parse turns a possibly malformed model response into classification fields.
// Strategies are tried in fixed order; the first success wins.
func Parse(raw string) (Fields, error) {
	for _, try := range strategies {
		if fields, ok := try(raw); ok {
			return fields, nil
		}
	}
	return Fields{}, fmt.Errorf("no parsable classification in response: %q", truncate(raw, 200))
}

func parseDirectJSON(raw string) (Fields, bool) {
	for _, text := range []string{repairEscapes(raw), raw} {
		if fields, ok := decodeObject(text); ok {
			return fields, true
		}
	}
	return Fields{}, false
}

var jsonCandidates = []*regexp.Regexp{
	regexp.MustCompile("(?s)```json\\s*(\\{[^{}]*\\})\\s*```"),
	regexp.MustCompile("(?s)```\\s*(\\{[^{}]*\\})\\s*```"),
	regexp.MustCompile(`(?s)\{[^{}]*\}`),
}

func parseEmbeddedJSON(raw string) (Fields, bool) {
	for _, text := range []string{repairEscapes(raw), raw} {
		for _, re := range jsonCandidates {
			for _, match := range re.FindAllStringSubmatch(text, -1) {
				candidate := match[0]
				if len(match) > 1 {
					candidate = match[1]
				}
				if fields, ok := decodeObject(candidate); ok {
					return fields, true
				}
			}
		}
	}
	return Fields{}, false
}

// parseLabeledText is the last-resort scanner for markdown/free-text answers
// of the form `**Kategorie:** Arztbrief`, `Kategorie: Arztbrief` or
// `- Kategorie: Arztbrief`. It succeeds only if a category was recovered.
func parseLabeledText(raw string) (Fields, bool) {
	fields := Fields{
		Category: matchLabel(raw, labelPatterns["kategorie"]),
		Sender:   matchLabel(raw, labelPatterns["absender"]),
		Patient:  matchLabel(raw, labelPatterns["patient"]),
	}
	if fields.Category == "" {
		return Fields{}, false
	}
	return fields, true
}

var labelPatterns = map[string][]*regexp.Regexp{
	"kategorie": {
		regexp.MustCompile(`(?i)\*\*Kategorie[:*]*\*\*\s*:?\s*(.+?)(?:\n|$)`),
		regexp.MustCompile(`(?i)(?:^|\n)\s*[-•]?\s*Kategorie\s*:\s*(.+?)(?:\n|$)`),
		regexp.MustCompile(`(?i)Kategorie[:\s]+([A-ZÄÖÜ][a-zäöüß-]+)`),
	},
	"absender": {
		regexp.MustCompile(`(?i)\*\*Absender[:*]*\*\*\s*:?\s*(.+?)(?:\n|$)`),
		regexp.MustCompile(`(?i)(?:^|\n)\s*[-•]?\s*Absender\s*:\s*(.+?)(?:\n|$)`),
	},
	"patient": {
		regexp.MustCompile(`(?i)\*\*Patient[:*]*\*\*\s*:?\s*(.+?)(?:\n|$)`),
		regexp.MustCompile(`(?i)(?:^|\n)\s*[-•]?\s*Patient\s*:\s*(.+?)(?:\n|$)`),
	},
}

var reTrailingParen = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

func matchLabel(raw string, patterns []*regexp.Regexp) string {
	for _, re := range patterns {
		match := re.FindStringSubmatch(raw)
		if match == nil {
			continue
		}
		value := strings.TrimSpace(match[1])
		value = strings.TrimSpace(strings.Trim(value, "*"))
		value = reTrailingParen.ReplaceAllString(value, "")
		if value != "" {
			return value
		}
	}
	return ""
}

func decodeObject(text string) (Fields, bool) {
	var data map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &data); err != nil {
		return Fields{}, false
	}
	return Fields{
		Category: pickField(data, "kategorie", "Kategorie"),
		Sender:   pickField(data, "absender", "Absender"),
		Patient:  pickField(data, "patient", "Patient"),
	}, true
}

// pickField accepts either of the two fixed key spellings.
func pickField(data map[string]any, keys ...string) string {
	for _, key := range keys {
		value, ok := data[key]
		if !ok || value == nil {
			continue
		}
		if s, ok := value.(string); ok {
			return s
		}
		return fmt.Sprint(value)
	}
	return ""
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
