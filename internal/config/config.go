// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"fmt"
	"os"
	"strconv"

	"careerwatch/internal/model"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Source describes one configured career site. Kind selects the adapter;
// the remaining fields are kind-specific connection parameters.
type Source struct {
	Company    model.Company    `yaml:"company"`
	Kind       model.SourceKind `yaml:"kind"`
	ListingURL string           `yaml:"listing_url"`
	// workday only: CXS jobs endpoint page size
	PageSize int `yaml:"page_size"`
	// gsk_playwright only
	URLPattern string `yaml:"url_pattern"`
	MaxDetails int    `yaml:"max_details"`
}

// Skill is one entry of the static classification dictionary. Patterns are
// case-insensitive literal substrings unless prefixed with "re:", which
// marks a regular expression.
type Skill struct {
	ID       string   `yaml:"id"`
	Label    string   `yaml:"label"`
	Group    string   `yaml:"group"`
	Patterns []string `yaml:"patterns"`
}

type Config struct {
	Sources []Source `yaml:"sources"`
	Skills  []Skill  `yaml:"skills"`
	//Paths
	DataDir string `yaml:"data_dir"`
	//Politeness cap shared by all sources
	Concurrency int `yaml:"concurrency"`
	//Optional changes notification
	TelegramToken  string `yaml:"telegram_token"`
	TelegramChatID int64  `yaml:"telegram_chat_id"`
}

var knownKinds = map[model.SourceKind]bool{
	model.KindBioNTechHTML:  true,
	model.KindWorkday:       true,
	model.KindGSKPlaywright: true,
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = "configs/config.yaml"
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	//Override with env vars
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}
	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		cfg.DataDir = dir
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 3
	}
	for i := range c.Sources {
		s := &c.Sources[i]
		if s.Kind == model.KindWorkday && s.PageSize <= 0 {
			s.PageSize = 20
		}
		if s.Kind == model.KindGSKPlaywright && s.MaxDetails <= 0 {
			s.MaxDetails = 40
		}
	}
}

func (c *Config) validate() error {
	if len(c.Sources) == 0 {
		return fmt.Errorf("config: no sources defined")
	}
	for _, s := range c.Sources {
		if s.Company.ID == "" || s.Company.Name == "" {
			return fmt.Errorf("config: source %q is missing company id/name", s.Company.ID)
		}
		if !knownKinds[s.Kind] {
			return fmt.Errorf("config: source %s has unknown kind %q", s.Company.ID, s.Kind)
		}
		if s.ListingURL == "" {
			return fmt.Errorf("config: source %s has no listing_url", s.Company.ID)
		}
	}
	for _, sk := range c.Skills {
		if sk.ID == "" || len(sk.Patterns) == 0 {
			return fmt.Errorf("config: skill %q needs an id and at least one pattern", sk.ID)
		}
	}
	return nil
}
