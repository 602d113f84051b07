// Multi-signal DE/EN gate. A posting passes through, in order: a hard
// script gate, boilerplate stripping, statistical language identification,
// and a stopword-dominance fallback. The gate is biased toward false
// negatives: losing a valid DE/EN posting is worse than keeping a rare
// misclassified one, so low-signal text is kept.

package language

import (
	"regexp"
	"strings"
	"unicode"

	"careerwatch/internal/textutil"

	"github.com/abadojack/whatlanggo"
)

const (
	// runes of description considered by the script gate
	scriptGatePrefix = 2000
	// runes per description sample window (start + middle, never the tail)
	sampleWindow = 600
	// minimum field length before the statistical detector is consulted;
	// trigram confidence on shorter fields is noise
	detectorMinRunes = 40

	// stopword-dominance thresholds; empirical starting points validated
	// against the labeled fixtures in classifier_test.go
	acceptRate = 0.18
	rejectRate = 0.15
	margin     = 0.05
	// below this many tokens the fallback refuses to judge
	minTokens = 4
)

// scripts that immediately disqualify a posting
var foreignScripts = []*unicode.RangeTable{
	unicode.Han,
	unicode.Hiragana,
	unicode.Katakana,
	unicode.Hangul,
	unicode.Arabic,
	unicode.Cyrillic,
	unicode.Thai,
	unicode.Hebrew,
}

// Verdict explains a keep/drop decision for run metadata.
type Verdict struct {
	Keep   bool
	Reason string
}

type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Keep reports whether a posting's title and description text look German
// or English.
func (c *Classifier) Keep(title, text string) bool {
	return c.Classify(title, text).Keep
}

// Classify scores title and description independently and merges the
// signals.
func (c *Classifier) Classify(title, text string) Verdict {
	//1. hard script gate
	if hasForeignScript(title) || hasForeignScript(prefixRunes(text, scriptGatePrefix)) {
		return Verdict{Keep: false, Reason: "script"}
	}

	//2. strip vendor boilerplate before sampling
	clean := StripBoilerplate(text)
	sample := sampleText(clean)

	//3. statistical detection per field
	var foreign string
	for _, field := range []string{title, sample} {
		lang, reliable := detect(field)
		if !reliable {
			continue
		}
		if lang == "de" || lang == "en" {
			return Verdict{Keep: true, Reason: "detector:" + lang}
		}
		foreign = lang
	}

	//4. stopword-dominance fallback
	tokens := tokenize(title + " " + sample)
	if len(tokens) < minTokens {
		if foreign != "" {
			return Verdict{Keep: false, Reason: "detector:" + foreign}
		}
		return Verdict{Keep: true, Reason: "short"}
	}

	deEn, foreignRate, foreignLang := stopwordRates(tokens)
	if deEn >= acceptRate && deEn >= foreignRate+margin {
		return Verdict{Keep: true, Reason: "stopwords"}
	}
	if foreignRate >= rejectRate && foreignRate >= deEn+margin {
		return Verdict{Keep: false, Reason: "stopwords:" + foreignLang}
	}
	if foreign != "" {
		return Verdict{Keep: false, Reason: "detector:" + foreign}
	}
	return Verdict{Keep: true, Reason: "default"}
}

func hasForeignScript(s string) bool {
	for _, r := range s {
		for _, table := range foreignScripts {
			if unicode.Is(table, r) {
				return true
			}
		}
	}
	return false
}

func prefixRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// sampleText takes a start window plus a middle window, explicitly avoiding
// the tail where legal boilerplate concentrates.
func sampleText(s string) string {
	runes := []rune(s)
	if len(runes) <= 2*sampleWindow {
		return s
	}
	start := string(runes[:sampleWindow])
	mid := len(runes) / 2
	middle := string(runes[mid : mid+sampleWindow])
	return start + " " + middle
}

func detect(s string) (lang string, reliable bool) {
	if len([]rune(strings.TrimSpace(s))) < detectorMinRunes {
		return "", false
	}
	info := whatlanggo.Detect(s)
	if !info.IsReliable() {
		return "", false
	}
	switch info.Lang {
	case whatlanggo.Deu:
		return "de", true
	case whatlanggo.Eng:
		return "en", true
	default:
		return info.Lang.Iso6391(), true
	}
}

var tokenSplit = regexp.MustCompile(`[^\p{L}]+`)

func tokenize(s string) []string {
	parts := tokenSplit.Split(strings.ToLower(s), -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// stopwordRates computes the hit-rate of each candidate language's closed
// stopword set. The German and English sets carry their folded spellings
// explicitly and are matched raw only; folding a foreign token against them
// would let "à" count as the English "a". Foreign sets are additionally
// checked diacritic-folded.
func stopwordRates(tokens []string) (deEn float64, bestForeign float64, foreignLang string) {
	total := float64(len(tokens))
	for lang, set := range stopwordSets {
		accept := lang == "de" || lang == "en"
		hits := 0
		for _, tok := range tokens {
			if set.Contains(tok) || (!accept && set.Contains(textutil.Fold(tok))) {
				hits++
			}
		}
		rate := float64(hits) / total
		if accept {
			if rate > deEn {
				deEn = rate
			}
			continue
		}
		if rate > bestForeign {
			bestForeign = rate
			foreignLang = lang
		}
	}
	return deEn, bestForeign, foreignLang
}
