// Static-HTML adapter. The career site has no reliable total count, so the
// listing is paginated with an offset query parameter until a page yields
// almost no new detail links. Each detail page is fetched independently;
// an unparseable page is skipped, never fatal to the run.

package biontech

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"careerwatch/internal/config"
	"careerwatch/internal/fetch"
	"careerwatch/internal/model"
	"careerwatch/internal/normalize"
	"careerwatch/internal/textutil"

	"github.com/PuerkitoBio/goquery"
	mapset "github.com/deckarep/golang-set/v2"
)

const (
	offsetParam   = "startrow"
	offsetStep    = 25
	maxPages      = 40
	linkThreshold = 3
)

var (
	detailLinkSelectors = []string{
		"a.jobTitle-link",
		`a[href*="/job/"]`,
	}
	descriptionSelectors = []string{
		"div.jobdescription",
		"div.job-description",
		"main",
		"body",
	}
	// "Mainz, Germany | Full time | R-12345"
	summaryLineRegex = regexp.MustCompile(`^[^|\n]{2,80}\|[^|\n]{2,60}(\|[^|\n]{2,40})?$`)
	postedLabelRegex = regexp.MustCompile(`(?i)(?:veröffentlicht am|ausgeschrieben am|posted on|date posted)\s*:?\s*([0-9]{1,2}\.[0-9]{1,2}\.[0-9]{4}|\d{4}-\d{2}-\d{2})`)
)

type Scraper struct {
	src    config.Source
	client *fetch.Client
}

func New(src config.Source, client *fetch.Client) *Scraper {
	return &Scraper{src: src, client: client}
}

func (s *Scraper) Name() string {
	return s.src.Company.Name
}

func (s *Scraper) Scrape(ctx context.Context) ([]model.Job, error) {
	detailURLs, err := s.collectDetailURLs(ctx)
	if err != nil {
		return nil, err
	}
	log.Printf("  📦 %s: %d detail pages to fetch", s.Name(), len(detailURLs))

	var jobs []model.Job
	for _, u := range detailURLs {
		if ctx.Err() != nil {
			return jobs, ctx.Err()
		}
		job, err := s.scrapeDetail(ctx, u)
		if err != nil {
			log.Printf("  ⚠️ %s: skipping %s: %v", s.Name(), u, err)
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// collectDetailURLs pages through the listing until a page contributes fewer
// than linkThreshold new links. A failure on the first page aborts the
// adapter; later failures just stop pagination.
func (s *Scraper) collectDetailURLs(ctx context.Context) ([]string, error) {
	seen := mapset.NewThreadUnsafeSet[string]()
	var urls []string

	for page := 0; page < maxPages; page++ {
		pageURL, err := s.pageURL(page * offsetStep)
		if err != nil {
			return nil, err
		}
		body, err := s.client.FetchText(ctx, pageURL, nil)
		if err != nil {
			if page == 0 {
				return nil, fmt.Errorf("listing page: %w", err)
			}
			log.Printf("  ⚠️ %s: stopping pagination at offset %d: %v", s.Name(), page*offsetStep, err)
			break
		}

		links, err := s.extractDetailLinks(body)
		if err != nil {
			if page == 0 {
				return nil, err
			}
			break
		}

		added := 0
		for _, link := range links {
			if seen.Add(link) {
				urls = append(urls, link)
				added++
			}
		}
		if added < linkThreshold {
			break
		}
	}
	return urls, nil
}

func (s *Scraper) pageURL(offset int) (string, error) {
	u, err := url.Parse(s.src.ListingURL)
	if err != nil {
		return "", fmt.Errorf("bad listing_url: %w", err)
	}
	q := u.Query()
	q.Set(offsetParam, strconv.Itoa(offset))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (s *Scraper) extractDetailLinks(body string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse listing HTML: %w", err)
	}
	base, err := url.Parse(s.src.ListingURL)
	if err != nil {
		return nil, err
	}

	var links []string
	for _, sel := range detailLinkSelectors {
		doc.Find(sel).Each(func(_ int, a *goquery.Selection) {
			href, ok := a.Attr("href")
			if !ok || href == "" {
				return
			}
			ref, err := url.Parse(href)
			if err != nil {
				return
			}
			links = append(links, base.ResolveReference(ref).String())
		})
		if len(links) > 0 {
			break
		}
	}
	return links, nil
}

func (s *Scraper) scrapeDetail(ctx context.Context, detailURL string) (model.Job, error) {
	body, err := s.client.FetchText(ctx, detailURL, nil)
	if err != nil {
		return model.Job{}, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return model.Job{}, fmt.Errorf("parse detail HTML: %w", err)
	}

	title := textutil.CollapseWhitespace(doc.Find("h1").First().Text())
	if title == "" {
		return model.Job{}, fmt.Errorf("no title heading")
	}

	descHTML, descText := extractDescription(doc)
	summary := findSummaryLine(doc)
	locationRaw, employmentRaw, reqID := splitSummary(summary)

	primary, all := normalize.Locations(normalize.SplitLocations(locationRaw)...)

	postedAt := normalize.PostedAt(findPostedRaw(descText), time.Now())

	id := reqID
	if id == "" {
		id = textutil.StableID(detailURL)
	}

	return model.Job{
		ID:             id,
		Company:        s.src.Company,
		Title:          title,
		Location:       primary,
		Locations:      all,
		EmploymentType: normalize.EmploymentType(employmentRaw),
		TimeType:       employmentRaw,
		ReqID:          reqID,
		URL:            detailURL,
		Description:    model.Description{Text: descText, HTML: descHTML},
		Source: model.Source{
			Kind: model.KindBioNTechHTML,
			Raw:  map[string]any{"summary": summary},
		},
		PostedAt: postedAt,
	}, nil
}

func extractDescription(doc *goquery.Document) (html, text string) {
	for _, sel := range descriptionSelectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		h, err := node.Html()
		if err != nil || strings.TrimSpace(h) == "" {
			continue
		}
		return h, textutil.StripHTML(h)
	}
	return "", ""
}

// findSummaryLine looks for the "location | employment | id" line: first the
// heading's immediate siblings, then any line of the page text.
func findSummaryLine(doc *goquery.Document) string {
	sibling := textutil.CollapseWhitespace(doc.Find("h1").First().Next().Text())
	if summaryLineRegex.MatchString(sibling) {
		return sibling
	}
	for _, line := range strings.Split(textutil.StripHTML(mustHTML(doc)), "\n") {
		line = strings.TrimSpace(line)
		if summaryLineRegex.MatchString(line) {
			return line
		}
	}
	return ""
}

func mustHTML(doc *goquery.Document) string {
	h, err := doc.Find("body").Html()
	if err != nil {
		return ""
	}
	return h
}

// splitSummary breaks "Mainz, Germany | Full time | R-12345" into its parts.
// Fewer segments degrade gracefully: one segment is a bare location.
func splitSummary(line string) (location, employment, reqID string) {
	if line == "" {
		return "", "", ""
	}
	parts := strings.Split(line, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	switch len(parts) {
	case 1:
		return parts[0], "", ""
	case 2:
		return parts[0], parts[1], ""
	default:
		return parts[0], parts[1], parts[2]
	}
}

func findPostedRaw(text string) string {
	m := postedLabelRegex.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}
