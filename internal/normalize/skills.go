package normalize

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"careerwatch/internal/config"
)

// SkillMatcher tags postings against the static skill dictionary. It is
// constructed once at startup and passed in explicitly; there is no hidden
// process-wide cache.
type SkillMatcher struct {
	skills []compiledSkill
}

type compiledSkill struct {
	id       string
	literals []string // lowercased substrings
	regexps  []*regexp.Regexp
}

const regexPrefix = "re:"

func NewSkillMatcher(defs []config.Skill) (*SkillMatcher, error) {
	m := &SkillMatcher{skills: make([]compiledSkill, 0, len(defs))}
	for _, def := range defs {
		cs := compiledSkill{id: def.ID}
		for _, pat := range def.Patterns {
			if strings.HasPrefix(pat, regexPrefix) {
				re, err := regexp.Compile("(?i)" + strings.TrimPrefix(pat, regexPrefix))
				if err != nil {
					return nil, fmt.Errorf("skill %s: bad pattern %q: %w", def.ID, pat, err)
				}
				cs.regexps = append(cs.regexps, re)
				continue
			}
			cs.literals = append(cs.literals, strings.ToLower(pat))
		}
		m.skills = append(m.skills, cs)
	}
	return m, nil
}

// Match returns the ids of every skill with at least one matching pattern
// against title plus description text, sorted lexicographically so the
// output is deterministic.
func (m *SkillMatcher) Match(title, descriptionText string) []string {
	haystack := title + "\n" + descriptionText
	lower := strings.ToLower(haystack)

	var ids []string
	for _, cs := range m.skills {
		if cs.matches(haystack, lower) {
			ids = append(ids, cs.id)
		}
	}
	sort.Strings(ids)
	return ids
}

func (cs *compiledSkill) matches(haystack, lower string) bool {
	for _, lit := range cs.literals {
		if strings.Contains(lower, lit) {
			return true
		}
	}
	for _, re := range cs.regexps {
		if re.MatchString(haystack) {
			return true
		}
	}
	return false
}
