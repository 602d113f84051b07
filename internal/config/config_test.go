package config

import (
	"os"
	"path/filepath"
	"testing"

	"careerwatch/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
sources:
  - company:
      id: biontech
      name: BioNTech
      careers_url: https://jobs.biontech.com
    kind: biontech_html
    listing_url: https://jobs.biontech.com/go/Jobs/505001
  - company:
      id: moderna
      name: Moderna
      careers_url: https://careers.modernatx.com
    kind: workday
    listing_url: https://modernatx.wd1.myworkdayjobs.com/wday/cxs/modernatx/M_tx/jobs
  - company:
      id: gsk
      name: GSK
      careers_url: https://jobs.gsk.com
    kind: gsk_playwright
    listing_url: https://jobs.gsk.com/en-gb/jobs
skills:
  - id: python
    label: Python
    patterns: ["python"]
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, 3, cfg.Concurrency)
	require.Len(t, cfg.Sources, 3)
	assert.Equal(t, 20, cfg.Sources[1].PageSize, "workday page size default")
	assert.Equal(t, 40, cfg.Sources[2].MaxDetails, "playwright detail cap default")
	assert.Equal(t, model.KindBioNTechHTML, cfg.Sources[0].Kind)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-100200300")
	t.Setenv("DATA_DIR", "/tmp/careerwatch-test")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.TelegramToken)
	assert.Equal(t, int64(-100200300), cfg.TelegramChatID)
	assert.Equal(t, "/tmp/careerwatch-test", cfg.DataDir)
}

func TestLoad_RejectsUnknownKind(t *testing.T) {
	bad := `
sources:
  - company:
      id: x
      name: X
    kind: greenhouse
    listing_url: https://example.com
`
	_, err := Load(writeConfig(t, bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown kind")
}

func TestLoad_RejectsEmptySources(t *testing.T) {
	_, err := Load(writeConfig(t, "sources: []\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no sources")
}

func TestLoad_RejectsSkillWithoutPatterns(t *testing.T) {
	bad := sampleConfig + `
  - id: empty
    label: Empty
    patterns: []
`
	_, err := Load(writeConfig(t, bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "skill")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_BadChatIDEnv(t *testing.T) {
	t.Setenv("TELEGRAM_CHAT_ID", "not-a-number")
	_, err := Load(writeConfig(t, sampleConfig))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_CHAT_ID")
}
