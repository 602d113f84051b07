package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHTML(t *testing.T) {
	in := `<div><h2>Your  tasks</h2><script>evil()</script><p>Build &amp; run pipelines.</p><ul><li>Go</li><li>Python</li></ul></div>`
	out := StripHTML(in)

	assert.Contains(t, out, "Your tasks")
	assert.Contains(t, out, "Build & run pipelines.")
	assert.Contains(t, out, "Go\nPython")
	assert.NotContains(t, out, "evil")
	assert.NotContains(t, out, "<")
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b\n\nc", CollapseWhitespace("  a \t b \n\n\n\n   c  "))
	assert.Equal(t, "nbsp here", CollapseWhitespace("nbsp\u00a0here"))
}

func TestStableID(t *testing.T) {
	a := StableID("https://example.com/job/123")
	b := StableID("https://example.com/job/123")
	c := StableID("https://example.com/job/124")

	//identical input must yield the identical id, diffing depends on it
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 16)

	//trailing slash and padding do not change identity
	assert.Equal(t, a, StableID(" https://example.com/job/123/ "))
}

func TestFold(t *testing.T) {
	assert.Equal(t, "buro", Fold("Büro"))
	assert.Equal(t, "strasse", Fold("Strasse"))
	assert.Equal(t, "ingenieur", Fold("Ingénieur"))
}
