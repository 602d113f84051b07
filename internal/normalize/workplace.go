package normalize

import (
	"strings"

	"careerwatch/internal/model"
)

// Literal vendor labels where the keyword heuristics misfire. Checked first.
var workplaceOverrides = map[string]model.Workplace{
	"vollständig remote": model.WorkplaceRemote,
	"fully remote":       model.WorkplaceRemote,
	"home office":        model.WorkplaceRemote,
	"mobiles arbeiten":   model.WorkplaceRemote,
	"teilweise remote":   model.WorkplaceHybrid,
}

// remote before onsite: "home office" contains "office".
var workplaceKeywords = []struct {
	kind  model.Workplace
	words []string
}{
	{model.WorkplaceRemote, []string{"remote", "homeoffice", "home-office", "home office", "telearbeit", "work from home"}},
	{model.WorkplaceHybrid, []string{"hybrid", "flex"}},
	{model.WorkplaceOnsite, []string{"onsite", "on-site", "on site", "vor ort", "büro", "buero", "office", "präsenz"}},
}

// Workplace maps a vendor workplace label onto remote/hybrid/onsite.
// Ambiguous or absent input is unknown; filters must treat that as
// "unknown", never as a specific category.
func Workplace(raw string) model.Workplace {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return ""
	}
	if kind, ok := workplaceOverrides[text]; ok {
		return kind
	}
	for _, entry := range workplaceKeywords {
		for _, w := range entry.words {
			if strings.Contains(text, w) {
				return entry.kind
			}
		}
	}
	return ""
}
