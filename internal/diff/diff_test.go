package diff

import (
	"testing"
	"time"

	"careerwatch/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func job(id, title string, posted *time.Time) model.Job {
	return model.Job{
		ID:      id,
		Company: model.Company{ID: "acme", Name: "Acme"},
		Title:   title,
		URL:     "https://example.com/job/" + id,
		Description: model.Description{
			Text: "description of " + id,
		},
		Skills:   []string{"go"},
		PostedAt: posted,
	}
}

func snapshot(scrapedAt time.Time, jobs ...model.Job) *model.Snapshot {
	for i := range jobs {
		jobs[i].ScrapedAt = scrapedAt
	}
	return &model.Snapshot{ScrapedAt: scrapedAt, Total: len(jobs), Jobs: jobs}
}

func TestCompute_IdenticalSnapshotsYieldEmptyChangeset(t *testing.T) {
	now := time.Now().UTC()
	snap := snapshot(now, job("a", "Engineer", ts("2024-06-01T00:00:00Z")))

	cs := Compute(snap, snap)

	assert.Equal(t, model.ChangeCounts{}, cs.Counts)
	assert.Empty(t, cs.New)
	assert.Empty(t, cs.Updated)
	assert.Empty(t, cs.Removed)
}

func TestCompute_ScrapedAtIsExcludedFromSignatures(t *testing.T) {
	//two runs a day apart, postings otherwise identical
	prev := snapshot(time.Date(2024, 6, 1, 3, 0, 0, 0, time.UTC), job("a", "Engineer", nil))
	cur := snapshot(time.Date(2024, 6, 2, 3, 0, 0, 0, time.UTC), job("a", "Engineer", nil))

	cs := Compute(prev, cur)
	assert.Equal(t, model.ChangeCounts{}, cs.Counts)
}

func TestCompute_NoPreviousSnapshot(t *testing.T) {
	cur := snapshot(time.Now().UTC(), job("a", "Engineer", nil), job("b", "Scientist", nil))

	cs := Compute(nil, cur)

	assert.Nil(t, cs.PreviousScrapedAt)
	assert.Equal(t, model.ChangeCounts{New: 2}, cs.Counts)
	assert.Len(t, cs.New, 2)
}

func TestCompute_NewUpdatedRemoved(t *testing.T) {
	prevTime := time.Date(2024, 6, 1, 3, 0, 0, 0, time.UTC)
	curTime := time.Date(2024, 6, 2, 3, 0, 0, 0, time.UTC)

	kept := job("kept", "Engineer", ts("2024-05-20T00:00:00Z"))
	gone := job("gone", "Analyst", nil)

	changed := job("changed", "Scientist", ts("2024-05-25T00:00:00Z"))
	changedAfter := changed
	changedAfter.Location = "Mainz"
	changedAfter.Skills = []string{"go", "python"}

	fresh := job("fresh", "Technician", ts("2024-06-01T00:00:00Z"))

	prev := snapshot(prevTime, kept, gone, changed)
	cur := snapshot(curTime, kept, changedAfter, fresh)

	cs := Compute(prev, cur)

	require.Equal(t, model.ChangeCounts{New: 1, Updated: 1, Removed: 1}, cs.Counts)
	assert.Equal(t, "fresh", cs.New[0].ID)
	assert.Equal(t, "gone", cs.Removed[0].ID)

	up := cs.Updated[0]
	assert.Equal(t, "changed", up.After.ID)
	//hash-backed fields surface with their semantic labels
	assert.ElementsMatch(t, []string{"location", "skills"}, up.Fields)
}

func TestCompute_SkillsOrderDoesNotMatter(t *testing.T) {
	prevJob := job("a", "Engineer", nil)
	prevJob.Skills = []string{"python", "go"}
	curJob := job("a", "Engineer", nil)
	curJob.Skills = []string{"go", "python"}

	cs := Compute(snapshot(time.Now().UTC(), prevJob), snapshot(time.Now().UTC(), curJob))
	assert.Equal(t, model.ChangeCounts{}, cs.Counts)
}

func TestCompute_DescriptionChangeSurfacesAsDescription(t *testing.T) {
	before := job("a", "Engineer", nil)
	after := before
	after.Description.Text = "rewritten"

	cs := Compute(snapshot(time.Now().UTC(), before), snapshot(time.Now().UTC(), after))
	require.Len(t, cs.Updated, 1)
	assert.Equal(t, []string{"description"}, cs.Updated[0].Fields)
}

func TestCompute_OutputOrdering(t *testing.T) {
	cur := snapshot(time.Now().UTC(),
		job("old", "Zebra Keeper", ts("2024-01-01T00:00:00Z")),
		job("new", "Analyst", ts("2024-06-01T00:00:00Z")),
		job("undated", "Curator", nil),
	)

	cs := Compute(nil, cur)

	require.Len(t, cs.New, 3)
	//postedAt descending, unknown dates last
	assert.Equal(t, "new", cs.New[0].ID)
	assert.Equal(t, "old", cs.New[1].ID)
	assert.Equal(t, "undated", cs.New[2].ID)
}

func TestCompute_DoesNotMutateInputs(t *testing.T) {
	prev := snapshot(time.Now().UTC(), job("a", "Engineer", nil))
	cur := snapshot(time.Now().UTC(), job("a", "Renamed Engineer", nil), job("b", "Scientist", nil))

	prevTitle := prev.Jobs[0].Title
	curLen := len(cur.Jobs)

	_ = Compute(prev, cur)

	assert.Equal(t, prevTitle, prev.Jobs[0].Title)
	assert.Equal(t, curLen, len(cur.Jobs))
}
