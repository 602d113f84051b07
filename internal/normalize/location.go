package normalize

import (
	"regexp"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

var locationSeparators = regexp.MustCompile(`\s*[|/;]\s*`)

// UI placeholders vendors render instead of a real location.
var locationNoisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\d+\s+locations?$`),
	regexp.MustCompile(`(?i)^\d+\s+standorte?$`),
	regexp.MustCompile(`(?i)^multiple locations$`),
	regexp.MustCompile(`(?i)^mehrere standorte$`),
	regexp.MustCompile(`(?i)^various$`),
	regexp.MustCompile(`(?i)^remote$`), // workplace signal, not a place
}

// SplitLocations breaks a free-text location field ("Mainz | München/Berlin")
// into trimmed tokens.
func SplitLocations(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := locationSeparators.Split(raw, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Locations deduplicates location tokens case-insensitively, preserving
// first-seen order and spelling, and drops UI noise. The first surviving
// token is the primary location.
func Locations(tokens ...string) (primary string, all []string) {
	seen := mapset.NewThreadUnsafeSet[string]()
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" || isLocationNoise(tok) {
			continue
		}
		if seen.Add(strings.ToLower(tok)) {
			all = append(all, tok)
		}
	}
	if len(all) > 0 {
		primary = all[0]
	}
	return primary, all
}

func isLocationNoise(tok string) bool {
	for _, re := range locationNoisePatterns {
		if re.MatchString(tok) {
			return true
		}
	}
	return false
}
