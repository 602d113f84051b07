// Small text helpers shared by adapters and normalizers.

package textutil

import (
	"crypto/sha256"
	"encoding/hex"
	"html"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	tagRegex        = regexp.MustCompile(`(?s)<[^>]*>`)
	blockEndRegex   = regexp.MustCompile(`(?i)</(p|div|li|ul|ol|h[1-6]|tr|table|section|article)>|<br\s*/?>`)
	scriptRegex     = regexp.MustCompile(`(?is)<(script|style|noscript)[^>]*>.*?</(script|style|noscript)>`)
	spaceRunRegex   = regexp.MustCompile(`[ \t\r\f]+`)
	newlineRunRegex = regexp.MustCompile(`\n{3,}`)
)

// StripHTML turns an HTML fragment into readable plain text: scripts and
// styles removed, block boundaries kept as newlines, entities decoded.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	s = scriptRegex.ReplaceAllString(s, " ")
	s = blockEndRegex.ReplaceAllString(s, "\n")
	s = tagRegex.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return CollapseWhitespace(s)
}

// CollapseWhitespace squeezes runs of spaces and trims every line, keeping
// at most one blank line between paragraphs.
func CollapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = spaceRunRegex.ReplaceAllString(s, " ")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")
	s = newlineRunRegex.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// StableID derives a deterministic posting id from the canonical URL.
// The same URL yields the same id across runs, which the diff engine
// depends on.
func StableID(url string) string {
	sum := sha256.Sum256([]byte(strings.TrimRight(strings.TrimSpace(url), "/")))
	return hex.EncodeToString(sum[:])[:16]
}

// Fold lowercases and removes diacritics ("Büro" -> "buro").
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(result)
}
