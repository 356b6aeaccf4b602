package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/sunatthegilddotcom/wiki-tSNE/internal/config"
	"github.com/sunatthegilddotcom/wiki-tSNE/internal/corpus"
	"github.com/sunatthegilddotcom/wiki-tSNE/internal/domain"
	"github.com/sunatthegilddotcom/wiki-tSNE/internal/embedding"
	"github.com/sunatthegilddotcom/wiki-tSNE/internal/export"
	"github.com/sunatthegilddotcom/wiki-tSNE/internal/logger"
	"github.com/sunatthegilddotcom/wiki-tSNE/internal/pipeline"
	"github.com/sunatthegilddotcom/wiki-tSNE/internal/reducer"
	"github.com/sunatthegilddotcom/wiki-tSNE/internal/tokenizer"
	"github.com/sunatthegilddotcom/wiki-tSNE/internal/tui"
	"github.com/sunatthegilddotcom/wiki-tSNE/internal/vectorizer"
	"github.com/sunatthegilddotcom/wiki-tSNE/internal/wikipedia"
)

func main() {
	_ = godotenv.Load()

	var (
		cfgPath   string
		seed      string
		cachePath string
		outPath   string
		maxDocs   int
		preview   bool
		logLevel  string
	)
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/wiki-tsne/config.yaml if not provided)")
	flag.StringVar(&seed, "seed", "", "Seed article or Category: page to build the corpus from")
	flag.StringVar(&cachePath, "cache", "", "Corpus cache file: loaded if present, written after fetching")
	flag.StringVar(&outPath, "out", "", "Output artifact path (overrides config)")
	flag.IntVar(&maxDocs, "max", 0, "Maximum number of articles (overrides config)")
	flag.BoolVar(&preview, "preview", false, "Show the similarity map in the terminal after writing the artifact")
	flag.StringVar(&logLevel, "log", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if outPath == "" {
		outPath = cfg.Output.Path
	}
	if maxDocs == 0 {
		maxDocs = cfg.Wikipedia.MaxArticles
	}

	lg := logger.New(logLevel)

	texts, err := loadTexts(cfg, lg, seed, cachePath, maxDocs)
	if err != nil {
		log.Fatalf("failed to load corpus: %v", err)
	}
	docs := domain.NewCorpus(texts)
	lg.Infof("corpus ready: %d documents", len(docs))

	points, err := buildPipeline(cfg, lg).Run(docs)
	if err != nil {
		log.Fatalf("pipeline failed: %v", err)
	}

	if err := export.Write(outPath, points); err != nil {
		log.Fatalf("failed to write %s: %v", outPath, err)
	}
	lg.Infof("wrote %d points to %s", len(points), outPath)

	if preview {
		if _, err := tea.NewProgram(tui.New(points), tea.WithAltScreen()).Run(); err != nil {
			log.Fatal(err)
		}
	}
}

// loadTexts prefers the corpus cache when it exists; otherwise it fetches from
// Wikipedia and, if a cache path was given, snapshots the result.
func loadTexts(cfg *config.AppConfig, lg *logger.Logger, seed, cachePath string, maxDocs int) (map[string]string, error) {
	if cachePath != "" {
		if _, err := os.Stat(cachePath); err == nil {
			lg.Infof("loading corpus from cache %s", cachePath)
			return corpus.Load(cachePath)
		}
	}
	if seed == "" {
		fmt.Println("Usage: wiki-tsne -seed \"Article title\" [-cache corpus.json] [-out points.json] [-preview]")
		os.Exit(1)
	}

	client := wikipedia.NewClient(wikipedia.Config{
		Language:   cfg.Wikipedia.Language,
		BaseURL:    cfg.Wikipedia.BaseURL,
		UserAgent:  cfg.Wikipedia.UserAgent,
		FetchDelay: time.Duration(cfg.Wikipedia.FetchDelayMs) * time.Millisecond,
		Timeout:    time.Duration(cfg.Wikipedia.TimeoutSecs) * time.Second,
	}, lg)

	texts, err := client.LoadCorpus(context.Background(), seed, maxDocs)
	if err != nil {
		return nil, err
	}
	if cachePath != "" {
		if err := corpus.Save(cachePath, texts); err != nil {
			return nil, fmt.Errorf("writing cache: %w", err)
		}
		lg.Infof("cached %d articles to %s", len(texts), cachePath)
	}
	return texts, nil
}

func buildPipeline(cfg *config.AppConfig, lg *logger.Logger) *pipeline.Pipeline {
	var opts []tokenizer.Option
	switch cfg.Vectorizer.StopWords {
	case "none":
		opts = append(opts, tokenizer.WithoutStopWords())
	case "english", "":
	default:
		log.Fatalf("unknown stop_words set: %s", cfg.Vectorizer.StopWords)
	}
	if len(cfg.Vectorizer.ExtraStopWords) > 0 {
		opts = append(opts, tokenizer.WithExtraStopWords(cfg.Vectorizer.ExtraStopWords))
	}
	tok := tokenizer.New(opts...)

	vec := vectorizer.New(tok, cfg.Vectorizer.MaxFeatures)

	// svd_components < 0 disables the linear reduction stage and feeds the
	// tf-idf matrix straight to the embedder.
	var red domain.Reducer
	if cfg.Reducer.SVDComponents > 0 {
		svd, err := reducer.New(cfg.Reducer.SVDComponents)
		if err != nil {
			log.Fatalf("invalid reducer config: %v", err)
		}
		red = svd
	}

	emb := embedding.New(
		cfg.Embedding.Perplexity,
		cfg.Embedding.LearningRate,
		cfg.Embedding.MaxIterations,
		cfg.Embedding.ConvergencePatience,
		cfg.Embedding.RandomSeed,
	)

	return pipeline.New(vec, red, emb, lg)
}
