package gsk

import (
	"regexp"
	"testing"
	"time"

	"careerwatch/internal/normalize"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBotChallenge(t *testing.T) {
	assert.True(t, isBotChallenge("Just a moment..."))
	assert.True(t, isBotChallenge("Attention Required! | Cloudflare"))
	assert.True(t, isBotChallenge("Access Denied"))
	assert.False(t, isBotChallenge("Senior Scientist | Careers"))
	assert.False(t, isBotChallenge(""))
}

func TestExtractLocation(t *testing.T) {
	labelled := "Senior Scientist\nLocation: München, Germany\nApply now"
	assert.Equal(t, "München, Germany", extractLocation(labelled))

	german := "Wissenschaftler (m/w/d)\nStandort: Heidelberg\nJetzt bewerben"
	assert.Equal(t, "Heidelberg", extractLocation(german))

	prose := "You will join our oncology team based in Heidelberg, Germany. The role reports to the site head."
	assert.Equal(t, "Heidelberg, Germany", extractLocation(prose))

	assert.Empty(t, extractLocation("No geography mentioned anywhere."))
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "Senior Scientist", firstLine("\n\n  Senior Scientist  \nMünchen"))
	assert.Empty(t, firstLine("   \n \n"))
}

func TestDefaultURLPattern(t *testing.T) {
	re := regexp.MustCompile(defaultURLPattern)

	assert.True(t, re.MatchString("/jobs/senior-scientist-oncology-409923"))
	assert.True(t, re.MatchString("https://jobs.example.com/jobs/data-engineer"))
	assert.False(t, re.MatchString("/jobs/"))
	assert.False(t, re.MatchString("/search?q=jobs"))
}

func TestReqIDTextRegex(t *testing.T) {
	assert.Equal(t, "R-409923", reqIDTextRegex.FindString("Requisition ID: R-409923. Apply by Friday."))
	assert.Equal(t, "R40992311", reqIDTextRegex.FindString("ref R40992311 listed"))
	assert.Empty(t, reqIDTextRegex.FindString("R-42 is too short"))
}

func TestPostedLineFeedsDateResolution(t *testing.T) {
	text := "Senior Scientist\nPosted 3 Days Ago\nApply now"
	line := postedLineRegex.FindString(text)
	require.Equal(t, "Posted 3 Days Ago", line)

	ref := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	got := normalize.PostedAt(line, ref)
	require.NotNil(t, got)
	// three civil days back from 2024-03-10 13:00 Berlin
	assert.Equal(t, time.Date(2024, 3, 6, 23, 0, 0, 0, time.UTC), *got)
}
