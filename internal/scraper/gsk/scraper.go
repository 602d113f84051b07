// Browser-automation adapter for a JS-rendered, bot-defended career site.
// The listing page is rendered once, posting links are harvested by URL
// pattern, and detail pages are visited sequentially on the same tab up to
// a fixed cap. Extraction runs textual heuristics over the rendered page
// text; a failing detail page drops only that posting.

package gsk

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"
	"time"

	"careerwatch/internal/config"
	"careerwatch/internal/fetch"
	"careerwatch/internal/model"
	"careerwatch/internal/normalize"
	"careerwatch/internal/textutil"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/playwright-community/playwright-go"
)

const defaultURLPattern = `/jobs/[a-z0-9][a-z0-9-]+`

var (
	locationRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?im)^\s*(?:locations?|standorte?)\s*:\s*(.+)$`),
		regexp.MustCompile(`\bin ([A-ZÄÖÜ][\p{L} .-]+,\s*[A-Z][\p{L}]+)\.`),
	}
	postedLineRegex = regexp.MustCompile(`(?im)^.*\b(?:posted|veröffentlicht|ausgeschrieben|date posted)\b.*$`)
	reqIDTextRegex  = regexp.MustCompile(`\b(R-?\d{5,})\b`)
)

type Scraper struct {
	src     config.Source
	browser *fetch.Browser
}

func New(src config.Source, browser *fetch.Browser) *Scraper {
	return &Scraper{src: src, browser: browser}
}

func (s *Scraper) Name() string {
	return s.src.Company.Name
}

func (s *Scraper) Scrape(ctx context.Context) ([]model.Job, error) {
	var jobs []model.Job

	err := s.browser.WithPage(ctx, s.src.ListingURL, func(page playwright.Page) error {
		//human behavior before touching anything
		fetch.RandomDelay(800, 1500)
		fetch.SmoothScroll(page)

		if title, _ := page.Title(); isBotChallenge(title) {
			return fmt.Errorf("bot challenge on listing page: %q", title)
		}

		detailURLs, err := s.harvestDetailURLs(page)
		if err != nil {
			return fmt.Errorf("harvest listing anchors: %w", err)
		}
		log.Printf("  📦 %s: %d posting links harvested (cap %d)", s.Name(), len(detailURLs), s.src.MaxDetails)

		//single tab reused, strictly sequential
		for _, u := range detailURLs {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			job, err := s.scrapeDetail(page, u)
			if err != nil {
				log.Printf("  ⚠️ %s: dropping %s: %v", s.Name(), u, err)
				continue
			}
			jobs = append(jobs, job)
			fetch.RandomDelay(600, 1400)
		}
		return nil
	})
	if err != nil && len(jobs) == 0 {
		return nil, err
	}
	//always return whatever was collected
	return jobs, nil
}

func (s *Scraper) harvestDetailURLs(page playwright.Page) ([]string, error) {
	pattern := s.src.URLPattern
	if pattern == "" {
		pattern = defaultURLPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad url_pattern %q: %w", pattern, err)
	}
	base, err := url.Parse(s.src.ListingURL)
	if err != nil {
		return nil, err
	}

	anchors, err := page.Locator("a[href]").All()
	if err != nil {
		return nil, err
	}

	seen := mapset.NewThreadUnsafeSet[string]()
	var urls []string
	for _, a := range anchors {
		href, err := a.GetAttribute("href")
		if err != nil || href == "" || !re.MatchString(href) {
			continue
		}
		ref, err := url.Parse(href)
		if err != nil {
			continue
		}
		abs := base.ResolveReference(ref).String()
		if seen.Add(abs) {
			urls = append(urls, abs)
		}
		if len(urls) >= s.src.MaxDetails {
			break
		}
	}
	return urls, nil
}

func (s *Scraper) scrapeDetail(page playwright.Page, detailURL string) (model.Job, error) {
	if _, err := page.Goto(detailURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		return model.Job{}, err
	}

	if title, _ := page.Title(); isBotChallenge(title) {
		return model.Job{}, fmt.Errorf("bot challenge on detail page")
	}

	bodyText, err := page.Locator("body").InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(10000),
	})
	if err != nil {
		return model.Job{}, fmt.Errorf("read rendered text: %w", err)
	}
	text := textutil.CollapseWhitespace(bodyText)

	title, err := page.Locator("h1").First().TextContent(playwright.LocatorTextContentOptions{
		Timeout: playwright.Float(3000),
	})
	if err != nil || strings.TrimSpace(title) == "" {
		title = firstLine(text)
	}
	title = textutil.CollapseWhitespace(title)
	if title == "" {
		return model.Job{}, fmt.Errorf("no title on rendered page")
	}

	locationRaw := extractLocation(text)
	primary, all := normalize.Locations(normalize.SplitLocations(locationRaw)...)

	reqID := reqIDTextRegex.FindString(text)
	id := reqID
	if id == "" {
		id = textutil.StableID(detailURL)
	}

	return model.Job{
		ID:        id,
		Company:   s.src.Company,
		Title:     title,
		Location:  primary,
		Locations: all,
		ReqID:     reqID,
		URL:       detailURL,
		Description: model.Description{
			Text: text,
		},
		Source: model.Source{
			Kind: model.KindGSKPlaywright,
		},
		PostedAt: normalize.PostedAt(postedLineRegex.FindString(text), time.Now()),
	}, nil
}

func isBotChallenge(pageTitle string) bool {
	for _, marker := range []string{"Attention Required", "Just a moment", "Cloudflare", "Access Denied"} {
		if strings.Contains(pageTitle, marker) {
			return true
		}
	}
	return false
}

func extractLocation(text string) string {
	for _, re := range locationRegexes {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
