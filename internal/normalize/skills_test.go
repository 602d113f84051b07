package normalize

import (
	"testing"

	"careerwatch/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDictionary() []config.Skill {
	return []config.Skill{
		{ID: "python", Label: "Python", Group: "engineering", Patterns: []string{"python"}},
		{ID: "go", Label: "Go", Group: "engineering", Patterns: []string{"golang", `re:\bGo\b`}},
		{ID: "kubernetes", Label: "Kubernetes", Group: "platform", Patterns: []string{"kubernetes", `re:\bk8s\b`}},
	}
}

func TestSkillMatcher(t *testing.T) {
	m, err := NewSkillMatcher(testDictionary())
	require.NoError(t, err)

	tests := []struct {
		name  string
		title string
		text  string
		want  []string
	}{
		{
			name:  "multiple matches sorted lexicographically",
			title: "Platform Engineer",
			text:  "You will operate k8s clusters and write Python tooling.",
			want:  []string{"kubernetes", "python"},
		},
		{
			name:  "regex word boundary",
			title: "Go Developer",
			text:  "",
			want:  []string{"go"},
		},
		{
			name:  "substring of a longer word does not match regex pattern",
			title: "Google Ads Specialist",
			text:  "Gondola logistics",
			want:  nil,
		},
		{
			name:  "case-insensitive literal",
			title: "Senior PYTHON Engineer",
			text:  "",
			want:  []string{"python"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Match(tt.title, tt.text)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSkillMatcher_BadRegex(t *testing.T) {
	_, err := NewSkillMatcher([]config.Skill{
		{ID: "broken", Patterns: []string{"re:("}},
	})
	assert.Error(t, err)
}
