// Change detection between successive snapshots. Compute is a pure
// comparison: it never mutates either input and yields deterministically
// ordered output so the changes feed is stable across runs.

package diff

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"time"

	"careerwatch/internal/model"
)

// signature covers exactly the fields whose change makes a posting
// "updated". ScrapedAt is deliberately excluded: a re-scrape alone is not a
// change.
type signature struct {
	title          string
	location       string
	applyURL       string
	workplace      model.Workplace
	employmentType model.EmploymentType
	timeType       string
	postedAt       string
	descriptionSum string
	skillsSum      string
}

// Compute diffs the previous snapshot against the current one. A nil
// previous snapshot is "no previous data": every posting is new.
func Compute(prev, cur *model.Snapshot) *model.ChangeSet {
	cs := &model.ChangeSet{
		GeneratedAt:      time.Now().UTC(),
		CurrentScrapedAt: cur.ScrapedAt,
		New:              []model.JobSummary{},
		Updated:          []model.UpdatedJob{},
		Removed:          []model.JobSummary{},
	}

	var prevJobs []model.Job
	if prev != nil {
		t := prev.ScrapedAt
		cs.PreviousScrapedAt = &t
		prevJobs = prev.Jobs
	}

	prevByID := indexByID(prevJobs)
	curByID := indexByID(cur.Jobs)

	for _, job := range cur.Jobs {
		before, existed := prevByID[job.ID]
		if !existed {
			cs.New = append(cs.New, job.Summary())
			continue
		}
		if fields := changedFields(before, job); len(fields) > 0 {
			cs.Updated = append(cs.Updated, model.UpdatedJob{
				Before: before.Summary(),
				After:  job.Summary(),
				Fields: fields,
			})
		}
	}
	for _, job := range prevJobs {
		if _, still := curByID[job.ID]; !still {
			cs.Removed = append(cs.Removed, job.Summary())
		}
	}

	sortSummaries(cs.New)
	sortSummaries(cs.Removed)
	sort.Slice(cs.Updated, func(i, j int) bool {
		return summaryLess(cs.Updated[i].After, cs.Updated[j].After)
	})

	cs.Counts = model.ChangeCounts{
		New:     len(cs.New),
		Updated: len(cs.Updated),
		Removed: len(cs.Removed),
	}
	return cs
}

func indexByID(jobs []model.Job) map[string]model.Job {
	m := make(map[string]model.Job, len(jobs))
	for _, j := range jobs {
		m[j.ID] = j
	}
	return m
}

func signatureOf(j model.Job) signature {
	postedAt := ""
	if j.PostedAt != nil {
		postedAt = j.PostedAt.UTC().Format(time.RFC3339)
	}
	return signature{
		title:          j.Title,
		location:       j.Location,
		applyURL:       j.ApplyURL,
		workplace:      j.Workplace,
		employmentType: j.EmploymentType,
		timeType:       j.TimeType,
		postedAt:       postedAt,
		descriptionSum: contentHash(j.Description.Text),
		skillsSum:      contentHash(strings.Join(sortedCopy(j.Skills), "\n")),
	}
}

// changedFields reports the semantic labels of every differing signature
// field; the hash fields map back to "description" and "skills", not to the
// internal hash names.
func changedFields(before, after model.Job) []string {
	a, b := signatureOf(before), signatureOf(after)
	var fields []string
	if a.title != b.title {
		fields = append(fields, "title")
	}
	if a.location != b.location {
		fields = append(fields, "location")
	}
	if a.applyURL != b.applyURL {
		fields = append(fields, "applyUrl")
	}
	if a.workplace != b.workplace {
		fields = append(fields, "workplace")
	}
	if a.employmentType != b.employmentType {
		fields = append(fields, "employmentType")
	}
	if a.timeType != b.timeType {
		fields = append(fields, "timeType")
	}
	if a.postedAt != b.postedAt {
		fields = append(fields, "postedAt")
	}
	if a.descriptionSum != b.descriptionSum {
		fields = append(fields, "description")
	}
	if a.skillsSum != b.skillsSum {
		fields = append(fields, "skills")
	}
	return fields
}

func contentHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func sortedCopy(s []string) []string {
	out := append([]string(nil), s...)
	sort.Strings(out)
	return out
}

// sortSummaries orders by postedAt descending (unknown dates last), then
// title, then id.
func sortSummaries(list []model.JobSummary) {
	sort.Slice(list, func(i, j int) bool {
		return summaryLess(list[i], list[j])
	})
}

func summaryLess(a, b model.JobSummary) bool {
	switch {
	case a.PostedAt != nil && b.PostedAt == nil:
		return true
	case a.PostedAt == nil && b.PostedAt != nil:
		return false
	case a.PostedAt != nil && b.PostedAt != nil && !a.PostedAt.Equal(*b.PostedAt):
		return a.PostedAt.After(*b.PostedAt)
	}
	if a.Title != b.Title {
		return a.Title < b.Title
	}
	return a.ID < b.ID
}
