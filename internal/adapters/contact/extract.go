// Package contact provides rule-based extraction of contact details from
// free-form text. Extraction is best effort: patterns may misfire on unusual
// input, and absent fields come back empty rather than as errors.
package contact

import (
	"regexp"
	"strings"

	"faqdesk/internal/domain/entities"
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

	// Optional leading + and country-code group, then 6-14 digits with
	// optional space/dot/dash separators.
	phonePattern = regexp.MustCompile(`(\+?\d{1,3}[\s.-]?)?(\d[\s.-]?){5,13}\d`)

	// Explicit marker: "name: Jane Doe" or "name - Jane Doe", value limited
	// to letters and spaces, at most 50 characters.
	namedPattern = regexp.MustCompile(`(?i)name\s*[:\-]\s*([A-Za-z][A-Za-z ]{0,49})`)

	// Fallback: one or two consecutive capitalized word tokens.
	capitalizedPattern = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?\b`)
)

// Extractor implements ports.ContactExtractor.
type Extractor struct{}

// NewExtractor creates a new contact extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract scans text for an email address, a phone number and a name.
func (e *Extractor) Extract(text string) entities.Contact {
	return entities.Contact{
		Name:  extractName(text),
		Email: emailPattern.FindString(text),
		Phone: extractPhone(text),
	}
}

// extractPhone returns the first phone-shaped substring. The email's local
// part can contain digit runs, so candidate matches inside an email token are
// skipped.
func extractPhone(text string) string {
	// Blank out email tokens before scanning for digits.
	scrubbed := emailPattern.ReplaceAllStringFunc(text, func(m string) string {
		return strings.Repeat(" ", len(m))
	})
	match := phonePattern.FindString(scrubbed)
	return strings.TrimSpace(match)
}

// extractName prefers an explicit "name:" marker when the token appears in
// the text, otherwise falls back to the first capitalized word pair.
func extractName(text string) string {
	if strings.Contains(strings.ToLower(text), "name") {
		if m := namedPattern.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return strings.TrimSpace(capitalizedPattern.FindString(text))
}
