package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/ICAI-IMAT-NLP1/chargram/pkg/chargram"
	"github.com/ICAI-IMAT-NLP1/chargram/pkg/heatmap"
)

// PipelineConfig holds the settings for one analysis run.
type PipelineConfig struct {
	InputPath    string `json:"input_path"`
	CorpusDBPath string `json:"corpus_db_path"` // Optional SQLite corpus; empty means read the input file directly.
	OutputPath   string `json:"output_path"`    // Heatmap PNG path; empty disables rendering.
	Alphabet     string `json:"alphabet"`
	StartToken   string `json:"start_token"`
	EndToken     string `json:"end_token"`
	OnUnknown    string `json:"on_unknown"` // "skip" or "error"
	TopBigrams   int    `json:"top_bigrams"`
	LogLevel     string `json:"log_level"`
}

// Config is the top-level configuration struct that aggregates all other configs.
type Config struct {
	Pipeline *PipelineConfig `json:"pipeline_config"`
	Heatmap  *heatmap.Config `json:"heatmap_config"`
}

// DefaultPipelineConfig creates a pipeline configuration with default values.
func DefaultPipelineConfig() *PipelineConfig {
	return &PipelineConfig{
		InputPath:  "./data/names.txt",
		OutputPath: "./data/bigrams.png",
		Alphabet:   "abcdefghijklmnopqrstuvwxyz ",
		StartToken: "-",
		EndToken:   ".",
		OnUnknown:  "skip",
		TopBigrams: 10,
		LogLevel:   "info",
	}
}

// LoadConfig reads the configuration from a JSON file at the given path.
// If the file doesn't exist, it creates one with default values.
func LoadConfig(path string) (*Config, error) {
	config := &Config{
		Pipeline: DefaultPipelineConfig(),
		Heatmap:  heatmap.DefaultConfig(),
	}

	file, err := os.ReadFile(path)
	if err != nil {
		// If the file doesn't exist, create it with the default config.
		if os.IsNotExist(err) {
			var data []byte
			data, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// Log a warning instead of failing, as the run can still proceed with defaults.
				fmt.Printf("warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = json.Unmarshal(file, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// tokenRune checks that a configured sentinel is exactly one rune.
func tokenRune(name, s string) (rune, error) {
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, fmt.Errorf("config field %s must be a single character, got %q", name, s)
	}
	return runes[0], nil
}

// unknownPolicy maps the config string to the counter policy.
func unknownPolicy(s string) (chargram.UnknownPolicy, error) {
	switch strings.ToLower(s) {
	case "", "skip":
		return chargram.UnknownSkip, nil
	case "error":
		return chargram.UnknownError, nil
	default:
		return 0, fmt.Errorf("config field on_unknown must be \"skip\" or \"error\", got %q", s)
	}
}

// parseLogLevel maps the config string to a slog level, defaulting to info.
func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
