// Response shapes and the fallback extraction chains. The chains are data
// tables of extractors tried in priority order, so a new tenant quirk is a
// new table entry, not new control flow.

package workday

import (
	"regexp"
	"strings"
	"time"

	"careerwatch/internal/model"
	"careerwatch/internal/normalize"
	"careerwatch/internal/textutil"
)

type listingResponse struct {
	Total       int          `json:"total"`
	JobPostings []jobPosting `json:"jobPostings"`
}

type jobPosting struct {
	Title         string   `json:"title"`
	ExternalPath  string   `json:"externalPath"`
	LocationsText string   `json:"locationsText"`
	PostedOn      string   `json:"postedOn"`
	BulletFields  []string `json:"bulletFields"`
}

type detailResponse struct {
	JobPostingInfo *jobPostingInfo `json:"jobPostingInfo"`
}

type jobPostingInfo struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	JobDescription      string   `json:"jobDescription"`
	Location            string   `json:"location"`
	AdditionalLocations []string `json:"additionalLocations"`
	PostedOn            string   `json:"postedOn"`
	StartDate           string   `json:"startDate"`
	TimeType            string   `json:"timeType"`
	JobReqID            string   `json:"jobReqId"`
	ExternalURL         string   `json:"externalUrl"`
	RemoteType          string   `json:"remoteType"`
	WorkplaceType       string   `json:"workplaceType"`
	JobFamily           string   `json:"jobFamily"`
	JobCategory         string   `json:"jobCategory"`
	JobType             string   `json:"jobType"`
	Department          string   `json:"department"`
	Team                string   `json:"team"`
}

var (
	reqIDRegex = regexp.MustCompile(`^[A-Z]{1,4}-?\d{3,}$`)
	// labelled "bullet field" strings like "Locations: Mainz; München"
	labelledLocationRegex = regexp.MustCompile(`(?i)^(locations?|standorte?)\s*:\s*(.+)$`)
	// free-text fallback for workplace hints; deliberately narrow so that a
	// passing mention of "office" in prose does not classify the posting
	freeTextWorkplaceRegex = regexp.MustCompile(`(?i)\b(fully remote|100%\s*remote|remote|home\s?office|homeoffice|hybrid|vor ort|on-?site)\b`)
)

// locationExtractors gather location tokens from every response shape a
// tenant has been seen to use.
var locationExtractors = []func(p jobPosting, info *jobPostingInfo) []string{
	func(_ jobPosting, info *jobPostingInfo) []string {
		if info == nil {
			return nil
		}
		return normalize.SplitLocations(info.Location)
	},
	func(_ jobPosting, info *jobPostingInfo) []string {
		if info == nil {
			return nil
		}
		var out []string
		for _, loc := range info.AdditionalLocations {
			out = append(out, normalize.SplitLocations(loc)...)
		}
		return out
	},
	func(p jobPosting, _ *jobPostingInfo) []string {
		return normalize.SplitLocations(p.LocationsText)
	},
	func(p jobPosting, _ *jobPostingInfo) []string {
		var out []string
		for _, field := range p.BulletFields {
			if m := labelledLocationRegex.FindStringSubmatch(field); m != nil {
				out = append(out, normalize.SplitLocations(m[2])...)
			}
		}
		return out
	},
}

// postedRawExtractors yield the first non-empty posted signal.
var postedRawExtractors = []func(p jobPosting, info *jobPostingInfo) string{
	func(_ jobPosting, info *jobPostingInfo) string {
		if info == nil {
			return ""
		}
		return info.PostedOn
	},
	func(p jobPosting, _ *jobPostingInfo) string { return p.PostedOn },
	func(_ jobPosting, info *jobPostingInfo) string {
		if info == nil {
			return ""
		}
		return info.StartDate
	},
}

// workplaceRawExtractors yield candidate workplace labels, structured fields
// first, free description text last.
var workplaceRawExtractors = []func(info *jobPostingInfo, descText string) string{
	func(info *jobPostingInfo, _ string) string {
		if info == nil {
			return ""
		}
		return info.RemoteType
	},
	func(info *jobPostingInfo, _ string) string {
		if info == nil {
			return ""
		}
		return info.WorkplaceType
	},
	func(_ *jobPostingInfo, descText string) string {
		return freeTextWorkplaceRegex.FindString(descText)
	},
}

func (s *Scraper) buildJob(p jobPosting, info *jobPostingInfo, now time.Time) model.Job {
	title := p.Title
	if info != nil && info.Title != "" {
		title = info.Title
	}

	jobURL := ""
	if info != nil {
		jobURL = info.ExternalURL
	}
	if jobURL == "" && p.ExternalPath != "" {
		jobURL = strings.TrimRight(s.src.Company.CareersURL, "/") + p.ExternalPath
	}

	var tokens []string
	for _, extract := range locationExtractors {
		tokens = append(tokens, extract(p, info)...)
	}
	primary, all := normalize.Locations(tokens...)

	var postedAt *time.Time
	for _, extract := range postedRawExtractors {
		if raw := extract(p, info); raw != "" {
			if postedAt = normalize.PostedAt(raw, now); postedAt != nil {
				break
			}
		}
	}

	descText, descHTML := "", ""
	if info != nil && info.JobDescription != "" {
		descHTML = info.JobDescription
		descText = textutil.StripHTML(descHTML)
	}

	workplace, workplaceRaw := model.Workplace(""), ""
	for _, extract := range workplaceRawExtractors {
		raw := extract(info, descText)
		if raw == "" {
			continue
		}
		if w := normalize.Workplace(raw); w != "" {
			workplace, workplaceRaw = w, raw
			break
		}
		if workplaceRaw == "" {
			workplaceRaw = raw
		}
	}

	timeType, employment := "", model.EmploymentType("")
	if info != nil {
		timeType = info.TimeType
		for _, raw := range []string{info.TimeType, info.JobCategory} {
			if employment = normalize.EmploymentType(raw); employment != "" {
				break
			}
		}
	}

	id := reqIDOf(p, info)
	if id == "" {
		id = textutil.StableID(jobURL)
	}

	job := model.Job{
		ID:             id,
		Company:        s.src.Company,
		Title:          textutil.CollapseWhitespace(title),
		Location:       primary,
		Locations:      all,
		Workplace:      workplace,
		WorkplaceRaw:   workplaceRaw,
		EmploymentType: employment,
		TimeType:       timeType,
		URL:            jobURL,
		Description:    model.Description{Text: descText, HTML: descHTML},
		Source: model.Source{
			Kind: model.KindWorkday,
			Raw:  map[string]any{"externalPath": p.ExternalPath},
		},
		PostedAt: postedAt,
	}
	if info != nil {
		job.ReqID = info.JobReqID
		job.ApplyURL = info.ExternalURL
		job.Department = info.Department
		job.Team = info.Team
		job.JobFamily = info.JobFamily
		job.JobCategory = info.JobCategory
		job.JobType = info.JobType
	}
	if job.ReqID == "" {
		job.ReqID = bulletReqID(p.BulletFields)
		if job.ID == "" {
			job.ID = job.ReqID
		}
	}
	return job
}

// reqIDOf prefers the vendor-native requisition id so the posting keeps its
// identity across re-scrapes even when the URL shifts.
func reqIDOf(p jobPosting, info *jobPostingInfo) string {
	if info != nil && info.JobReqID != "" {
		return info.JobReqID
	}
	return bulletReqID(p.BulletFields)
}

func bulletReqID(fields []string) string {
	for _, f := range fields {
		if reqIDRegex.MatchString(strings.TrimSpace(f)) {
			return strings.TrimSpace(f)
		}
	}
	return ""
}
