package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration

	// DBPath is the sqlite file holding the answer log and mastery states.
	DBPath string

	// LLM question generation
	LLMURL   string // OpenAI-compatible endpoint, e.g. "http://localhost:1234"
	LLMModel string // model name, e.g. "qwen3-8b"

	// CurriculumPath overrides the embedded prerequisite table when set.
	CurriculumPath string

	// GraphCacheSize bounds the per-learner graph LRU cache.
	GraphCacheSize int
	// HistoryWindow bounds how many recent answer events feed a graph or
	// ability estimate.
	HistoryWindow int
	// AnalysisWorkers bounds the per-response analysis fan-out.
	AnalysisWorkers int
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	return &Config{
		ServerAddress:   mustGetenv("SERVER_ADDRESS"),
		ShutdownTimeout: mustGetDuration("SHUTDOWN_TIMEOUT"),
		DBPath:          getenvDefault("DB_PATH", "adaptive.db"),
		LLMURL:          getenvDefault("LLM_URL", "http://localhost:1234"),
		LLMModel:        getenvDefault("LLM_MODEL", "qwen3-8b"),
		CurriculumPath:  os.Getenv("CURRICULUM_PATH"),
		GraphCacheSize:  getenvInt("GRAPH_CACHE_SIZE", 256),
		HistoryWindow:   getenvInt("HISTORY_WINDOW", 2000),
		AnalysisWorkers: getenvInt("ANALYSIS_WORKERS", 8),
	}
}

func mustGetenv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	return v
}

func mustGetDuration(k string) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getenvInt(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid integer: %v", k, v, err)
	}
	return n
}
