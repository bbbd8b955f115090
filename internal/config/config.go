package config

import (
	"log"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"NewsPipeline/internal/domain"
)

const configPathEnv = "NEWS_PIPELINE_CONFIG"

var (
	mediaCloudKeyEnvs = []string{"MEDIACLOUD_API_KEY", "MC_API_KEY", "MY_API_KEY"}
	gistTokenEnvs     = []string{"GIST_PAT", "GITHUB_TOKEN"}
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Data       DataConfig       `yaml:"data"`
	MediaCloud MediaCloudConfig `yaml:"mediacloud"`
	Gist       GistConfig       `yaml:"gist"`
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	Topics     []TopicConfig    `yaml:"topics"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DataConfig locates the per-topic dataset directory.
type DataConfig struct {
	Dir string `yaml:"dir"`
}

// MediaCloudConfig describes the story search API endpoint.
type MediaCloudConfig struct {
	BaseURL string `yaml:"baseUrl"`
	APIKey  string `yaml:"apiKey"`
}

// GistConfig wires the snippet-store publisher.
type GistConfig struct {
	APIURL string `yaml:"apiUrl"`
	Token  string `yaml:"token"`
}

// PipelineConfig tunes a collection run.
type PipelineConfig struct {
	// MaxBackfillDays caps a run to the most recent N planned dates;
	// zero collects everything the planner returns.
	MaxBackfillDays int `yaml:"maxBackfillDays"`
	// SkipDescribe disables scraping article pages for missing descriptions.
	SkipDescribe bool `yaml:"skipDescribe"`
}

// TopicConfig is one named collection: query, sources, filters, and the gist
// the datasets publish to.
type TopicConfig struct {
	Name           string         `yaml:"name"`
	StartDate      domain.Date    `yaml:"startDate"`
	Query          string         `yaml:"query"`
	FilterKeywords []string       `yaml:"filterKeywords"`
	GistID         string         `yaml:"gistId"`
	Sources        []SourceConfig `yaml:"sources"`
}

// SourceConfig binds a fetch strategy to its per-topic parameters.
type SourceConfig struct {
	Name    string            `yaml:"name"`
	Fetcher string            `yaml:"fetcher"`
	Outlets map[string]int    `yaml:"outlets"`
	Feeds   []string          `yaml:"feeds"`
	Options map[string]string `yaml:"options"`
}

// OutletDomains returns the union of outlet domains across all sources,
// sorted, for the cleaning filter.
func (t TopicConfig) OutletDomains() []string {
	set := map[string]struct{}{}
	for _, src := range t.Sources {
		for outlet := range src.Outlets {
			set[outlet] = struct{}{}
		}
	}
	domains := make([]string, 0, len(set))
	for outlet := range set {
		domains = append(domains, outlet)
	}
	sort.Strings(domains)
	return domains
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	if len(cfg.Topics) == 0 {
		cfg.Topics = defaultConfig().Topics
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	for _, name := range mediaCloudKeyEnvs {
		if v := os.Getenv(name); v != "" {
			c.MediaCloud.APIKey = v
			break
		}
	}

	for _, name := range gistTokenEnvs {
		if v := os.Getenv(name); v != "" {
			c.Gist.Token = v
			break
		}
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Data.Dir != "" {
		base.Data = override.Data
	}

	if override.MediaCloud.BaseURL != "" {
		base.MediaCloud.BaseURL = override.MediaCloud.BaseURL
	}
	if override.MediaCloud.APIKey != "" {
		base.MediaCloud.APIKey = override.MediaCloud.APIKey
	}

	if override.Gist.APIURL != "" {
		base.Gist.APIURL = override.Gist.APIURL
	}
	if override.Gist.Token != "" {
		base.Gist.Token = override.Gist.Token
	}

	if override.Pipeline.MaxBackfillDays != 0 {
		base.Pipeline.MaxBackfillDays = override.Pipeline.MaxBackfillDays
	}
	if override.Pipeline.SkipDescribe {
		base.Pipeline.SkipDescribe = true
	}

	if len(override.Topics) > 0 {
		base.Topics = override.Topics
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging:    LoggingConfig{Level: "info"},
		Data:       DataConfig{Dir: "data"},
		MediaCloud: MediaCloudConfig{BaseURL: "https://search.mediacloud.org/api"},
		Gist:       GistConfig{APIURL: "https://api.github.com"},
		Pipeline:   PipelineConfig{},
		Topics: []TopicConfig{
			{
				Name:      "minneapolis-ice",
				StartDate: domain.NewDate(2026, time.January, 1),
				Query: `("Renée Good" OR "Renee Good" OR (Minneapolis AND ICE) OR (Minnesota AND ICE) ` +
					`OR (ICE AND (shooting OR shot OR killed OR fatal OR death)))`,
				FilterKeywords: []string{
					"renée good", "renee good",
					"minneapolis", "minnesota", "ice",
					"shooting", "shot", "killed", "fatal", "death",
				},
				Sources: []SourceConfig{
					{
						Name:    "mediacloud-main",
						Fetcher: "mediacloud",
						Outlets: map[string]int{
							"foxnews.com":        1092,
							"apnews.com":         106145,
							"cnn.com":            1095,
							"nypost.com":         7,
							"nytimes.com":        1,
							"npr.org":            1096,
							"washingtonpost.com": 2,
						},
					},
				},
			},
		},
	}
}
