// Canonical job record shared by all adapters, the pipeline,
// the diff engine and the output sinks.

package model

import "time"

type SourceKind string

const (
	KindBioNTechHTML  SourceKind = "biontech_html"
	KindWorkday       SourceKind = "workday"
	KindGSKPlaywright SourceKind = "gsk_playwright"
)

type Workplace string

const (
	WorkplaceRemote Workplace = "remote"
	WorkplaceHybrid Workplace = "hybrid"
	WorkplaceOnsite Workplace = "onsite"
)

type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "full_time"
	EmploymentPartTime   EmploymentType = "part_time"
	EmploymentContract   EmploymentType = "contract"
	EmploymentInternship EmploymentType = "internship"
	EmploymentTemporary  EmploymentType = "temporary"
)

// Company is static per configured source.
type Company struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	CareersURL string `json:"careersUrl" yaml:"careers_url"`
}

type Description struct {
	Text string `json:"text,omitempty"`
	HTML string `json:"html,omitempty"`
}

// Source records provenance plus an optional raw debug payload.
type Source struct {
	Kind SourceKind     `json:"kind"`
	Raw  map[string]any `json:"raw,omitempty"`
}

// Job is immutable once emitted for a scrape cycle. ID is stable across
// re-scrapes of the same logical posting: the vendor requisition id when
// available, otherwise a hash of the canonical posting URL.
type Job struct {
	ID             string         `json:"id"`
	Company        Company        `json:"company"`
	Title          string         `json:"title"`
	Location       string         `json:"location,omitempty"`
	Locations      []string       `json:"locations,omitempty"`
	Workplace      Workplace      `json:"workplace,omitempty"`
	WorkplaceRaw   string         `json:"workplaceRaw,omitempty"`
	EmploymentType EmploymentType `json:"employmentType,omitempty"`
	TimeType       string         `json:"timeType,omitempty"`
	Department     string         `json:"department,omitempty"`
	Team           string         `json:"team,omitempty"`
	JobFamily      string         `json:"jobFamily,omitempty"`
	JobCategory    string         `json:"jobCategory,omitempty"`
	JobType        string         `json:"jobType,omitempty"`
	ReqID          string         `json:"reqId,omitempty"`
	URL            string         `json:"url"`
	ApplyURL       string         `json:"applyUrl,omitempty"`
	Description    Description    `json:"description"`
	Skills         []string       `json:"skills,omitempty"`
	Source         Source         `json:"source"`
	PostedAt       *time.Time     `json:"postedAt,omitempty"`
	ScrapedAt      time.Time      `json:"scrapedAt"`
}

// Valid is the structural gate a record must pass to enter a snapshot.
func (j *Job) Valid() bool {
	return j.Title != "" && j.URL != "" && j.Company.ID != ""
}

// JobSummary is the denormalized projection used by the diff engine and
// the changes feed. Raw description and source payloads are dropped.
type JobSummary struct {
	ID             string         `json:"id"`
	Company        Company        `json:"company"`
	Title          string         `json:"title"`
	Location       string         `json:"location,omitempty"`
	Locations      []string       `json:"locations,omitempty"`
	Workplace      Workplace      `json:"workplace,omitempty"`
	EmploymentType EmploymentType `json:"employmentType,omitempty"`
	TimeType       string         `json:"timeType,omitempty"`
	URL            string         `json:"url"`
	ApplyURL       string         `json:"applyUrl,omitempty"`
	Skills         []string       `json:"skills,omitempty"`
	PostedAt       *time.Time     `json:"postedAt,omitempty"`
}

func (j *Job) Summary() JobSummary {
	return JobSummary{
		ID:             j.ID,
		Company:        j.Company,
		Title:          j.Title,
		Location:       j.Location,
		Locations:      j.Locations,
		Workplace:      j.Workplace,
		EmploymentType: j.EmploymentType,
		TimeType:       j.TimeType,
		URL:            j.URL,
		ApplyURL:       j.ApplyURL,
		Skills:         j.Skills,
		PostedAt:       j.PostedAt,
	}
}

// Snapshot is the unit of persistence: one per run, replacing the previous.
type Snapshot struct {
	RunID              string         `json:"runId"`
	ScrapedAt          time.Time      `json:"scrapedAt"`
	Total              int            `json:"total"`
	Sources            map[string]int `json:"sources"`
	FilteredOutNonDeEn map[string]int `json:"filteredOutNonDeEn"`
	Jobs               []Job          `json:"jobs"`
}

type ChangeCounts struct {
	New     int `json:"new"`
	Updated int `json:"updated"`
	Removed int `json:"removed"`
}

// UpdatedJob lists exactly which semantic fields changed between runs.
type UpdatedJob struct {
	Before JobSummary `json:"before"`
	After  JobSummary `json:"after"`
	Fields []string   `json:"fields"`
}

// ChangeSet is computed once per run and never mutated afterwards.
type ChangeSet struct {
	GeneratedAt       time.Time    `json:"generatedAt"`
	PreviousScrapedAt *time.Time   `json:"previousScrapedAt,omitempty"`
	CurrentScrapedAt  time.Time    `json:"currentScrapedAt"`
	Counts            ChangeCounts `json:"counts"`
	New               []JobSummary `json:"new"`
	Updated           []UpdatedJob `json:"updated"`
	Removed           []JobSummary `json:"removed"`
}
