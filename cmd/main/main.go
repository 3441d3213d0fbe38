package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ICAI-IMAT-NLP1/chargram/pkg/chargram"
	"github.com/ICAI-IMAT-NLP1/chargram/pkg/heatmap"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	configPath := "./config.json"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	baseLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := run(configPath); err != nil {
		baseLogger.Error("An error occurred during the run.", "error", err)
		os.Exit(1)
	}
}

// run executes one full pipeline pass: config, vocabulary, source
// selection, counting, stats, heatmap.
func run(configPath string) error {
	config, err := LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	pipeline := config.Pipeline

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(pipeline.LogLevel)}))
	logger.Info("Starting bigram analysis", "version", Version, "input", pipeline.InputPath)

	startToken, err := tokenRune("start_token", pipeline.StartToken)
	if err != nil {
		return err
	}
	endToken, err := tokenRune("end_token", pipeline.EndToken)
	if err != nil {
		return err
	}

	vocab, err := chargram.NewVocabulary(pipeline.Alphabet, startToken, endToken)
	if err != nil {
		return fmt.Errorf("invalid vocabulary configuration: %w", err)
	}

	policy, err := unknownPolicy(pipeline.OnUnknown)
	if err != nil {
		return err
	}

	ctx := context.Background()

	src, cleanup, err := openSource(ctx, pipeline, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	counter := chargram.NewCounter(vocab,
		chargram.WithUnknownPolicy(policy),
		chargram.WithLogger(logger),
	)

	table, err := counter.Count(ctx, src)
	if err != nil {
		return fmt.Errorf("counting failed: %w", err)
	}

	stats := chargram.Stats(table)
	logger.Info("Bigram statistics",
		"total_bigrams", stats.Total,
		"distinct_bigrams", stats.Distinct,
		"max_bigram", stats.MaxLabel,
		"max_count", stats.MaxCount,
	)
	for i, bc := range chargram.TopBigrams(table, pipeline.TopBigrams) {
		logger.Debug("Top bigram", "rank", i+1, "bigram", bc.Label, "count", bc.Count)
	}

	if pipeline.OutputPath != "" {
		if err := heatmap.SavePNG(table, config.Heatmap, pipeline.OutputPath); err != nil {
			return fmt.Errorf("failed to render heatmap: %w", err)
		}
		logger.Info("Heatmap written", "path", pipeline.OutputPath)
	}

	return nil
}

// openSource picks the word source for the run. With a corpus database
// configured, the input file (if any) is imported first and the stored
// corpus is counted; otherwise the input file is read directly.
func openSource(ctx context.Context, pipeline *PipelineConfig, logger *slog.Logger) (chargram.Source, func(), error) {
	if pipeline.CorpusDBPath == "" {
		file, err := os.Open(pipeline.InputPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open input file: %w", err)
		}
		return chargram.NewLineSource(file), func() { _ = file.Close() }, nil
	}

	db, err := initDB(pipeline.CorpusDBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize corpus database: %w", err)
	}
	if err = chargram.SetupSchema(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to set up corpus schema: %w", err)
	}

	store, err := chargram.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to create corpus store: %w", err)
	}
	store.SetLogger(logger)

	cleanup := func() {
		store.Close()
		_ = db.Close()
	}

	if pipeline.InputPath != "" {
		file, err := os.Open(pipeline.InputPath)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to open input file: %w", err)
		}
		words, err := store.Import(ctx, file)
		_ = file.Close()
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to import corpus: %w", err)
		}
		logger.Info("Corpus imported into store", "path", pipeline.CorpusDBPath, "words", words)
	}

	src, err := store.Source(ctx)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return src, cleanup, nil
}
