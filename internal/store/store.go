// Flat-file persistence at the pipeline boundary. One run replaces the
// previous run's artifacts: jobs.json (the snapshot), meta.json (run
// metadata) and changes.json (the diff against the previous snapshot).

package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"careerwatch/internal/model"
)

const (
	jobsFile    = "jobs.json"
	metaFile    = "meta.json"
	changesFile = "changes.json"
)

type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

// meta is the snapshot without its jobs payload.
type meta struct {
	RunID              string         `json:"runId"`
	ScrapedAt          time.Time      `json:"scrapedAt"`
	Total              int            `json:"total"`
	Sources            map[string]int `json:"sources"`
	FilteredOutNonDeEn map[string]int `json:"filteredOutNonDeEn"`
}

// LoadPrevious reads the last committed snapshot. A missing file is not an
// error, it means "no previous data" and yields (nil, nil).
func (s *Store) LoadPrevious() (*model.Snapshot, error) {
	jobsData, err := os.ReadFile(filepath.Join(s.dir, jobsFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", jobsFile, err)
	}

	var jobs []model.Job
	if err := json.Unmarshal(jobsData, &jobs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", jobsFile, err)
	}

	snap := &model.Snapshot{Jobs: jobs, Total: len(jobs)}

	metaData, err := os.ReadFile(filepath.Join(s.dir, metaFile))
	if err == nil {
		var m model.Snapshot
		if err := json.Unmarshal(metaData, &m); err == nil {
			snap.RunID = m.RunID
			snap.ScrapedAt = m.ScrapedAt
			snap.Sources = m.Sources
			snap.FilteredOutNonDeEn = m.FilteredOutNonDeEn
		}
	}
	return snap, nil
}

// WriteSnapshot commits the run's jobs and metadata.
func (s *Store) WriteSnapshot(snap *model.Snapshot) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := s.writeJSON(jobsFile, snap.Jobs); err != nil {
		return err
	}
	return s.writeJSON(metaFile, meta{
		RunID:              snap.RunID,
		ScrapedAt:          snap.ScrapedAt.UTC(),
		Total:              snap.Total,
		Sources:            snap.Sources,
		FilteredOutNonDeEn: snap.FilteredOutNonDeEn,
	})
}

func (s *Store) WriteChanges(cs *model.ChangeSet) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return s.writeJSON(changesFile, cs)
}

func (s *Store) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
