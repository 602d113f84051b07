// JSON-API adapter for a Workday-hosted ATS. Tenants differ in which query
// convention their listing endpoint accepts, so requests are tried in a
// fixed priority order (GET, POST with searchText, POST with keyword) and
// the first convention that works is locked in for the rest of the run.

package workday

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"careerwatch/internal/config"
	"careerwatch/internal/fetch"
	"careerwatch/internal/model"

	"golang.org/x/sync/errgroup"
)

const (
	maxPages          = 50
	detailConcurrency = 6
)

type Scraper struct {
	src    config.Source
	client *fetch.Client

	// index into listingVariants once a request shape succeeded, -1 before
	variant int
}

func New(src config.Source, client *fetch.Client) *Scraper {
	return &Scraper{src: src, client: client, variant: -1}
}

func (s *Scraper) Name() string {
	return s.src.Company.Name
}

func (s *Scraper) Scrape(ctx context.Context) ([]model.Job, error) {
	postings, err := s.collectListings(ctx)
	if err != nil {
		return nil, err
	}
	log.Printf("  📦 %s: %d listings collected", s.Name(), len(postings))

	details := s.fetchDetails(ctx, postings)

	now := time.Now()
	jobs := make([]model.Job, 0, len(postings))
	for i, p := range postings {
		job := s.buildJob(p, details[i], now)
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// collectListings pages strictly sequentially: the next request depends on
// whether the previous page was exhausted. It stops on an empty page, on
// reaching the declared total, or on a short page.
func (s *Scraper) collectListings(ctx context.Context) ([]jobPosting, error) {
	var postings []jobPosting
	total := 0

	for page := 0; page < maxPages; page++ {
		offset := page * s.src.PageSize
		resp, err := s.fetchListingPage(ctx, offset)
		if err != nil {
			if page == 0 {
				return nil, err
			}
			log.Printf("  ⚠️ %s: stopping pagination at offset %d: %v", s.Name(), offset, err)
			break
		}
		if resp.Total > 0 {
			total = resp.Total
		}
		if len(resp.JobPostings) == 0 {
			break
		}
		postings = append(postings, resp.JobPostings...)
		if total > 0 && len(postings) >= total {
			break
		}
		if len(resp.JobPostings) < s.src.PageSize {
			break
		}
	}
	return postings, nil
}

// listingVariants are the vendor-dependent undocumented query conventions,
// in fixed priority order.
var listingVariants = []struct {
	name string
	do   func(s *Scraper, ctx context.Context, offset int) (*listingResponse, error)
}{
	{"GET", (*Scraper).listingGet},
	{"POST searchText", (*Scraper).listingPostSearchText},
	{"POST keyword", (*Scraper).listingPostKeyword},
}

func (s *Scraper) fetchListingPage(ctx context.Context, offset int) (*listingResponse, error) {
	if s.variant >= 0 {
		return listingVariants[s.variant].do(s, ctx, offset)
	}

	var lastErr error
	for i, v := range listingVariants {
		resp, err := v.do(s, ctx, offset)
		if err != nil {
			lastErr = err
			continue
		}
		s.variant = i
		log.Printf("  🔧 %s: listing endpoint accepts %s", s.Name(), v.name)
		return resp, nil
	}
	return nil, fmt.Errorf("all listing request variants failed: %w", lastErr)
}

func (s *Scraper) listingGet(ctx context.Context, offset int) (*listingResponse, error) {
	u, err := url.Parse(s.src.ListingURL)
	if err != nil {
		return nil, fmt.Errorf("bad listing_url: %w", err)
	}
	q := u.Query()
	q.Set("limit", strconv.Itoa(s.src.PageSize))
	q.Set("offset", strconv.Itoa(offset))
	u.RawQuery = q.Encode()

	var resp listingResponse
	if err := s.client.FetchJSON(ctx, "GET", u.String(), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *Scraper) listingPostSearchText(ctx context.Context, offset int) (*listingResponse, error) {
	body := map[string]any{
		"appliedFacets": map[string]any{},
		"searchText":    "",
		"limit":         s.src.PageSize,
		"offset":        offset,
	}
	var resp listingResponse
	if err := s.client.FetchJSON(ctx, "POST", s.src.ListingURL, body, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *Scraper) listingPostKeyword(ctx context.Context, offset int) (*listingResponse, error) {
	body := map[string]any{
		"keyword": "",
		"limit":   s.src.PageSize,
		"offset":  offset,
	}
	var resp listingResponse
	if err := s.client.FetchJSON(ctx, "POST", s.src.ListingURL, body, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// fetchDetails enriches listings with the richer detail payload, with a
// small fixed fan-out per listing page. Results stay index-aligned with the
// input so id/url pairing is correct regardless of completion order. A
// failed detail fetch leaves a nil entry; the job is built from the listing
// alone.
func (s *Scraper) fetchDetails(ctx context.Context, postings []jobPosting) []*jobPostingInfo {
	details := make([]*jobPostingInfo, len(postings))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(detailConcurrency)
	for i, p := range postings {
		i, p := i, p
		g.Go(func() error {
			details[i] = s.fetchDetail(gctx, p.ExternalPath)
			return nil
		})
	}
	g.Wait()
	return details
}

// detailURLShapes are the candidate URL conventions for the detail payload;
// the first responsive one wins.
var detailURLShapes = []func(listingURL, externalPath string) string{
	func(listingURL, p string) string { return strings.TrimSuffix(listingURL, "/jobs") + p },
	func(listingURL, p string) string { return listingURL + p },
	func(listingURL, p string) string {
		u, err := url.Parse(listingURL)
		if err != nil {
			return ""
		}
		return u.Scheme + "://" + u.Host + p
	},
}

func (s *Scraper) fetchDetail(ctx context.Context, externalPath string) *jobPostingInfo {
	if externalPath == "" {
		return nil
	}
	for _, shape := range detailURLShapes {
		detailURL := shape(s.src.ListingURL, externalPath)
		if detailURL == "" {
			continue
		}
		var resp detailResponse
		if err := s.client.FetchJSON(ctx, "GET", detailURL, nil, nil, &resp); err != nil {
			continue
		}
		if resp.JobPostingInfo != nil {
			return resp.JobPostingInfo
		}
	}
	return nil
}
