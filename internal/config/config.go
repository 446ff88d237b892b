package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LLM describes the chat-completions endpoint shared by the classifier,
// the location extractor and the QA assistant.
type LLM struct {
	Endpoint string
	APIKey   string
	Model    string
}

// Reddit describes the ingestion source.
type Reddit struct {
	UserAgent  string
	Subreddits []string
	PostLimit  int
}

// Filter holds the retention thresholds applied before enrichment.
type Filter struct {
	MinBodyLen int
	MinScore   int
}

// Sample bounds API cost during experimentation; Fraction >= 1 disables it.
type Sample struct {
	Fraction float64
	Seed     int64
}

// Geocode describes the name->coordinate collaborator and the map anchor.
type Geocode struct {
	City        string
	MinInterval time.Duration
	CenterLat   float64
	CenterLng   float64
}

// Paths are the tabular stage boundaries between the pipeline binaries.
type Paths struct {
	RawFile        string
	ClassifiedFile string
	MapFile        string
}

// Config is assembled once at process start and passed into each component
// that needs a collaborator.
type Config struct {
	LLM     LLM
	Reddit  Reddit
	Filter  Filter
	Sample  Sample
	Geocode Geocode
	Paths   Paths
	Workers int
}

// Load reads .env (if present) and environment overrides, then fills
// defaults for everything the environment leaves unset.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		LLM: LLM{
			Endpoint: envOr("LLM_ENDPOINT", "https://api.openai.com/v1/chat/completions"),
			APIKey:   os.Getenv("OPENAI_API_KEY"),
			Model:    envOr("LLM_MODEL", "gpt-4o-mini"),
		},
		Reddit: Reddit{
			UserAgent:  envOr("REDDIT_USER_AGENT", "roadsense/0.1"),
			Subreddits: envList("SUBREDDITS", []string{"SaltLakeCity", "Utah", "UtahDrivers", "utahcounty", "slc"}),
			PostLimit:  envInt("POST_LIMIT", 500),
		},
		Filter: Filter{
			MinBodyLen: envInt("MIN_BODY_LEN", 30),
			MinScore:   envInt("MIN_SCORE", 2),
		},
		Sample: Sample{
			Fraction: envFloat("SAMPLE_FRACTION", 0.01),
			Seed:     int64(envInt("SAMPLE_SEED", 42)),
		},
		Geocode: Geocode{
			City:        envOr("GEOCODE_CITY", "Salt Lake City, Utah"),
			MinInterval: envDuration("GEOCODE_MIN_INTERVAL", time.Second),
			CenterLat:   envFloat("MAP_CENTER_LAT", 40.7608),
			CenterLng:   envFloat("MAP_CENTER_LNG", -111.8910),
		},
		Paths: Paths{
			RawFile:        envOr("RAW_FILE", "output/road_reports.csv"),
			ClassifiedFile: envOr("CLASSIFIED_FILE", "output/road_reports_classified.csv"),
			MapFile:        envOr("MAP_FILE", "output/road_map.html"),
		},
		Workers: envInt("WORKERS", 1),
	}
}

// RequireLLM guards stages that cannot run without credentials.
func (c Config) RequireLLM() error {
	if c.LLM.APIKey == "" {
		return errors.New("OPENAI_API_KEY is not set")
	}
	return nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func envList(k string, def []string) []string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
