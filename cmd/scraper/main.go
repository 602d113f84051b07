package main

import (
	"context"
	"flag"
	"log"
	"time"

	"careerwatch/internal/config"
	"careerwatch/internal/diff"
	"careerwatch/internal/fetch"
	"careerwatch/internal/language"
	"careerwatch/internal/model"
	"careerwatch/internal/normalize"
	"careerwatch/internal/pipeline"
	"careerwatch/internal/reporter"
	"careerwatch/internal/scraper/biontech"
	"careerwatch/internal/scraper/gsk"
	"careerwatch/internal/scraper/workday"
	"careerwatch/internal/store"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config.yaml")
	flag.Parse()

	//load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}
	log.Printf("🔧 Config loaded. Sources: %d, skills: %d, concurrency: %d",
		len(cfg.Sources), len(cfg.Skills), cfg.Concurrency)

	skills, err := normalize.NewSkillMatcher(cfg.Skills)
	if err != nil {
		log.Fatalf("❌ Invalid skill dictionary: %v", err)
	}

	//setup context with timeout = 30 mins for the whole run
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	log.Println("🚀 Starting scrape run...")

	sources, err := buildSources(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to build adapters: %v", err)
	}

	st := store.New(cfg.DataDir)
	previous, err := st.LoadPrevious()
	if err != nil {
		log.Fatalf("❌ Failed to load previous snapshot: %v", err)
	}
	if previous == nil {
		log.Println("ℹ️ No previous snapshot, all postings will be reported as new.")
	}

	runner := pipeline.NewRunner(sources, language.NewClassifier(), skills, cfg.Concurrency)
	snapshot, err := runner.Run(ctx)
	if err != nil {
		log.Fatalf("❌ Run failed: %v", err)
	}
	log.Printf("📦 Snapshot assembled: %d postings across %d sources", snapshot.Total, len(snapshot.Sources))

	changes := diff.Compute(previous, snapshot)
	log.Printf("🔍 Changes: %d new, %d updated, %d removed",
		changes.Counts.New, changes.Counts.Updated, changes.Counts.Removed)

	//output sink failures are the only fatal condition
	if err := st.WriteSnapshot(snapshot); err != nil {
		log.Fatalf("❌ Failed to write snapshot: %v", err)
	}
	if err := st.WriteChanges(changes); err != nil {
		log.Fatalf("❌ Failed to write changes: %v", err)
	}
	log.Printf("📁 Artifacts written to %s", cfg.DataDir)

	notify(cfg, changes)

	log.Println("🏁 Execution finished.")
}

func buildSources(cfg *config.Config) ([]pipeline.Source, error) {
	client := fetch.NewClient(30 * time.Second)
	browser := fetch.NewBrowser()

	sources := make([]pipeline.Source, 0, len(cfg.Sources))
	for _, src := range cfg.Sources {
		p := pipeline.Source{CompanyID: src.Company.ID}
		switch src.Kind {
		case model.KindBioNTechHTML:
			p.Scraper = biontech.New(src, client)
		case model.KindWorkday:
			p.Scraper = workday.New(src, client)
		case model.KindGSKPlaywright:
			p.Scraper = gsk.New(src, browser)
		}
		sources = append(sources, p)
	}
	return sources, nil
}

func notify(cfg *config.Config, changes *model.ChangeSet) {
	if cfg.TelegramToken == "" || cfg.TelegramChatID == 0 {
		return
	}
	tg, err := reporter.NewTelegramReporter(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		log.Printf("⚠️ Telegram reporter unavailable: %v", err)
		return
	}
	if err := tg.SendChanges(changes); err != nil {
		log.Printf("⚠️ Failed to send changes to Telegram: %v", err)
	}
}
