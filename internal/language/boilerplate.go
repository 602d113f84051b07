package language

import "regexp"

// Vendor metadata blocks and trailing legal/EEO paragraphs are frequently
// English regardless of the posting's actual language, so they are removed
// before any sampling. Kept as a declarative table so each pattern is
// independently testable against vendor text.
var boilerplatePatterns = []*regexp.Regexp{
	// posted-date labels
	regexp.MustCompile(`(?im)^\s*(posted|veröffentlicht( am)?|ausgeschrieben( am)?|date posted)\b[^\n]*$`),
	regexp.MustCompile(`(?i)\bvor\s+\d+\+?\s+tagen\s+ausgeschrieben\b`),
	regexp.MustCompile(`(?i)\bposted\s+\d+\+?\s+days?\s+ago\b`),
	// requisition-id labels
	regexp.MustCompile(`(?i)\b(req(?:uisition)?\s*(id|nr|no)|job\s*(id|requisition)|kennziffer|referenznummer|stellen-id)\s*[:#]?\s*[A-Za-z0-9_-]+`),
	// location labels
	regexp.MustCompile(`(?im)^\s*(locations?|standorte?|arbeitsort)\s*:[^\n]*$`),
	// trailing legal / EEO paragraphs
	regexp.MustCompile(`(?is)\b(equal\s+opportunity\s+employer|eeo\s+is\s+the\s+law|all\s+qualified\s+applicants\s+will\s+receive).*\z`),
	regexp.MustCompile(`(?is)\b(we\s+(are\s+an?|celebrate)\s+(inclusive|diversity)|committed\s+to\s+diversity\s+and\s+inclusion).*\z`),
}

// StripBoilerplate removes the table's matches from a description text.
func StripBoilerplate(text string) string {
	for _, re := range boilerplatePatterns {
		text = re.ReplaceAllString(text, " ")
	}
	return text
}
