// Bounded-concurrency orchestrator. Browser-heavy and plain-HTTP sources
// share one limiter: the cap is a politeness constraint toward the vendors,
// not a performance knob. A failing source is logged and contributes zero
// postings; it never aborts the run.

package pipeline

import (
	"context"
	"log"
	"sort"
	"time"

	"careerwatch/internal/language"
	"careerwatch/internal/model"
	"careerwatch/internal/normalize"
	"careerwatch/internal/scraper"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Source pairs a configured company id with its adapter.
type Source struct {
	CompanyID string
	Scraper   scraper.Scraper
}

type Runner struct {
	sources     []Source
	classifier  *language.Classifier
	skills      *normalize.SkillMatcher
	concurrency int
}

func NewRunner(sources []Source, classifier *language.Classifier, skills *normalize.SkillMatcher, concurrency int) *Runner {
	if concurrency <= 0 {
		concurrency = 3
	}
	return &Runner{
		sources:     sources,
		classifier:  classifier,
		skills:      skills,
		concurrency: concurrency,
	}
}

type sourceResult struct {
	kept    []model.Job
	dropped int
}

// Run scrapes every source, gates and filters the postings, and assembles
// exactly one snapshot.
func (r *Runner) Run(ctx context.Context) (*model.Snapshot, error) {
	//index-aligned result slots: each goroutine writes only its own slot,
	//merging happens single-threaded after Wait
	results := make([]sourceResult, len(r.sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, src := range r.sources {
		i, src := i, src
		g.Go(func() error {
			log.Printf("▶️ Starting scraper: %s", src.Scraper.Name())
			jobs, err := src.Scraper.Scrape(gctx)
			if err != nil {
				log.Printf("❌ Scraper %s failed: %v (recording zero postings)", src.Scraper.Name(), err)
			}
			results[i] = r.filterSource(src.Scraper.Name(), jobs)
			return nil
		})
	}
	g.Wait()

	scrapedAt := time.Now().UTC()
	snapshot := &model.Snapshot{
		RunID:              uuid.NewString(),
		ScrapedAt:          scrapedAt,
		Sources:            make(map[string]int, len(r.sources)),
		FilteredOutNonDeEn: make(map[string]int, len(r.sources)),
	}

	//merge in configured source order so dedup's last-write-wins is stable
	var merged []model.Job
	for i, src := range r.sources {
		snapshot.Sources[src.CompanyID] = len(results[i].kept)
		snapshot.FilteredOutNonDeEn[src.CompanyID] = results[i].dropped
		merged = append(merged, results[i].kept...)
	}

	snapshot.Jobs = r.finalize(merged, scrapedAt)
	snapshot.Total = len(snapshot.Jobs)
	return snapshot, nil
}

// filterSource applies the structural validity gate and the language gate.
// Invalid records are excluded silently (expected and noisy otherwise);
// language drops are counted for run metadata.
func (r *Runner) filterSource(name string, jobs []model.Job) sourceResult {
	res := sourceResult{}
	for _, job := range jobs {
		if !job.Valid() {
			continue
		}
		if !r.classifier.Keep(job.Title, job.Description.Text) {
			res.dropped++
			continue
		}
		res.kept = append(res.kept, job)
	}
	log.Printf("✅ Scraper %s finished: %d kept, %d dropped as non-DE/EN", name, len(res.kept), res.dropped)
	return res
}

// finalize deduplicates by id (last occurrence wins), sorts for stable
// output, tags skills and stamps the run timestamp.
func (r *Runner) finalize(jobs []model.Job, scrapedAt time.Time) []model.Job {
	byID := make(map[string]model.Job, len(jobs))
	order := make([]string, 0, len(jobs))
	for _, job := range jobs {
		if _, exists := byID[job.ID]; !exists {
			order = append(order, job.ID)
		}
		byID[job.ID] = job
	}

	out := make([]model.Job, 0, len(byID))
	for _, id := range order {
		job := byID[id]
		job.Skills = r.skills.Match(job.Title, job.Description.Text)
		job.ScrapedAt = scrapedAt
		out = append(out, job)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Company.Name != out[j].Company.Name {
			return out[i].Company.Name < out[j].Company.Name
		}
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].ID < out[j].ID
	})
	return out
}
