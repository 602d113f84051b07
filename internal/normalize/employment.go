package normalize

import (
	"strings"

	"careerwatch/internal/model"
)

// Ordered German/English keyword table; first match wins.
var employmentKeywords = []struct {
	kind  model.EmploymentType
	words []string
}{
	{model.EmploymentFullTime, []string{"full", "vollzeit"}},
	{model.EmploymentPartTime, []string{"part", "teilzeit"}},
	{model.EmploymentContract, []string{"contract", "freelance", "freiberuf"}},
	{model.EmploymentInternship, []string{"intern", "praktikum", "werkstudent"}},
	{model.EmploymentTemporary, []string{"temp", "befrist"}},
}

// EmploymentType maps a vendor label ("Vollzeit", "Full time") onto the
// canonical enum. No match means unknown, never a default.
func EmploymentType(raw string) model.EmploymentType {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return ""
	}
	for _, entry := range employmentKeywords {
		for _, w := range entry.words {
			if strings.Contains(text, w) {
				return entry.kind
			}
		}
	}
	return ""
}
