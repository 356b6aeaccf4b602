package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// WikipediaConfig controls the corpus loader.
type WikipediaConfig struct {
	Language     string `yaml:"language"`
	BaseURL      string `yaml:"base_url,omitempty"`
	UserAgent    string `yaml:"user_agent"`
	FetchDelayMs int    `yaml:"fetch_delay_ms"`
	TimeoutSecs  int    `yaml:"timeout_secs"`
	MaxArticles  int    `yaml:"max_articles"`
}

// VectorizerConfig controls vocabulary construction and tf-idf weighting.
type VectorizerConfig struct {
	MaxFeatures int `yaml:"max_features"`
	// StopWords selects the stop-word set: "english" (default) or "none".
	StopWords string `yaml:"stop_words"`
	// ExtraStopWords are appended to the selected set.
	ExtraStopWords []string `yaml:"extra_stop_words,omitempty"`
}

// ReducerConfig controls the truncated-SVD stage. A negative SVDComponents
// disables the stage and feeds the sparse tf-idf matrix to the embedder
// directly; 0 selects the default component count.
type ReducerConfig struct {
	SVDComponents int `yaml:"svd_components"`
}

// EmbeddingConfig controls the t-SNE stage.
type EmbeddingConfig struct {
	Perplexity          float64 `yaml:"perplexity"`
	LearningRate        float64 `yaml:"learning_rate"`
	MaxIterations       int     `yaml:"max_iterations"`
	ConvergencePatience int     `yaml:"convergence_patience"`
	RandomSeed          int64   `yaml:"random_seed"`
}

// OutputConfig names the artifact written for the external renderer.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Wikipedia  WikipediaConfig  `yaml:"wikipedia"`
	Vectorizer VectorizerConfig `yaml:"vectorizer"`
	Reducer    ReducerConfig    `yaml:"reducer"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Output     OutputConfig     `yaml:"output"`
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/wiki-tsne/config.yaml.
// If neither exists, it writes defaults to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "wiki-tsne", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Wikipedia.Language == "" {
		cfg.Wikipedia.Language = "en"
	}
	if cfg.Wikipedia.UserAgent == "" {
		cfg.Wikipedia.UserAgent = "wiki-tsne/0.1 (https://github.com/sunatthegilddotcom/wiki-tSNE)"
	}
	if ua := os.Getenv("WIKI_TSNE_USER_AGENT"); ua != "" {
		cfg.Wikipedia.UserAgent = ua
	}
	if cfg.Wikipedia.FetchDelayMs == 0 {
		cfg.Wikipedia.FetchDelayMs = 500
	}
	if cfg.Wikipedia.TimeoutSecs == 0 {
		cfg.Wikipedia.TimeoutSecs = 30
	}
	if cfg.Wikipedia.MaxArticles == 0 {
		cfg.Wikipedia.MaxArticles = 100
	}
	if cfg.Vectorizer.MaxFeatures == 0 {
		cfg.Vectorizer.MaxFeatures = 10000
	}
	if cfg.Vectorizer.StopWords == "" {
		cfg.Vectorizer.StopWords = "english"
	}
	if cfg.Reducer.SVDComponents == 0 {
		cfg.Reducer.SVDComponents = 50
	}
	if cfg.Embedding.Perplexity == 0 {
		cfg.Embedding.Perplexity = 30
	}
	if cfg.Embedding.LearningRate == 0 {
		cfg.Embedding.LearningRate = 100
	}
	if cfg.Embedding.MaxIterations == 0 {
		cfg.Embedding.MaxIterations = 1000
	}
	if cfg.Embedding.ConvergencePatience == 0 {
		cfg.Embedding.ConvergencePatience = 50
	}
	if cfg.Embedding.RandomSeed == 0 {
		cfg.Embedding.RandomSeed = 1
	}
	if cfg.Output.Path == "" {
		cfg.Output.Path = "points.json"
	}
}
