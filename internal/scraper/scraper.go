// Define an interface for all site adapters
// Ensure consistency

package scraper

import (
	"context"

	"careerwatch/internal/model"
)

//Scraper defines the interface every source adapter must implement.
//Scrape returns the raw postings it managed to collect; per-posting
//failures only reduce yield, a listing-level failure aborts the adapter.
type Scraper interface {
	Scrape(ctx context.Context) ([]model.Job, error)

	//Name is the company/source label used in logs and run metadata
	Name() string
}
