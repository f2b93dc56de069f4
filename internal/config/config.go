package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"internship-radar/internal/rank"
)

// Company lists the ATS handles a tracked company is known under. A company
// typically has exactly one, but nothing stops a board migration from leaving
// postings on two.
type Company struct {
	Name       string `yaml:"name"`
	Greenhouse string `yaml:"greenhouse,omitempty"`
	Lever      string `yaml:"lever,omitempty"`
	Ashby      string `yaml:"ashby,omitempty"`
	Workable   string `yaml:"workable,omitempty"`
}

type Source struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	App struct {
		DataDir    string `yaml:"data_dir"`
		Database   string `yaml:"database"`
		ReportPath string `yaml:"report_path"`
	} `yaml:"app"`

	Scoring rank.Keywords `yaml:"scoring"`

	Dedup struct {
		TitleSimilarityThreshold float64 `yaml:"title_similarity_threshold"`
	} `yaml:"dedup"`

	Companies []Company `yaml:"companies"`

	Sources struct {
		Greenhouse Source `yaml:"greenhouse"`
		Lever      Source `yaml:"lever"`
		Ashby      Source `yaml:"ashby"`
		Workable   Source `yaml:"workable"`

		RemoteOK struct {
			Enabled bool   `yaml:"enabled"`
			Tag     string `yaml:"tag"`
		} `yaml:"remoteok"`

		TheMuse struct {
			Enabled  bool   `yaml:"enabled"`
			Category string `yaml:"category"`
			Level    string `yaml:"level"`
		} `yaml:"themuse"`

		Adzuna struct {
			Enabled bool   `yaml:"enabled"`
			Query   string `yaml:"query"`
		} `yaml:"adzuna"`

		Jooble struct {
			Enabled  bool   `yaml:"enabled"`
			Keywords string `yaml:"keywords"`
		} `yaml:"jooble"`

		HackerNews Source `yaml:"hackernews"`

		YCombinator Source `yaml:"ycombinator"`

		LinkedIn struct {
			Enabled  bool     `yaml:"enabled"`
			Keywords []string `yaml:"keywords"`
			Location string   `yaml:"location"`
		} `yaml:"linkedin"`

		RSS struct {
			Enabled bool              `yaml:"enabled"`
			Feeds   map[string]string `yaml:"feeds"` // display name -> feed URL
		} `yaml:"rss"`
	} `yaml:"sources"`

	Scrape struct {
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		Burst             int     `yaml:"burst"`
	} `yaml:"scrape"`

	Notify struct {
		Username string `yaml:"username"`
	} `yaml:"notify"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
