// Package config loads the layered configuration the CLI and pipeline
// share: built-in defaults, an optional config file (path or inline JSON),
// and environment variables, merged with spf13/viper the way the sibling
// Alphie tooling in this corpus layers cobra commands over viper-backed
// settings.
package config

import (
	"bytes"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config is the fully-resolved runtime configuration for one docrag
// invocation.
type Config struct {
	BaseDir            string  `mapstructure:"base_dir"`
	Model              string  `mapstructure:"model"`
	EmbeddingModel     string  `mapstructure:"embedding_model"`
	HFKey              string  `mapstructure:"hf_key"`
	HFProxy            string  `mapstructure:"hf_proxy"`
	ModelScopeKey      string  `mapstructure:"modelscope_key"`
	LLMBaseURL         string  `mapstructure:"llm_base_url"`
	FallbackMode       string  `mapstructure:"fallback_mode"`
	MinPageTitles      int     `mapstructure:"min_page_titles"`
	RerankerThreshold  float64 `mapstructure:"reranker_threshold"`
	RequestTimeoutSecs int     `mapstructure:"request_timeout_seconds"`
}

// Defaults returns the built-in configuration defaults.
func Defaults() Config {
	return Config{
		Model:              "qwen-plus",
		EmbeddingModel:     "sentence-transformers/all-MiniLM-L6-v2",
		LLMBaseURL:         "https://api-inference.modelscope.cn/v1",
		FallbackMode:       "parallel",
		MinPageTitles:      2,
		RerankerThreshold:  0.68,
		RequestTimeoutSecs: 60,
	}
}

// Load resolves the final Config by layering, in increasing priority:
// built-in defaults, an optional config file (a filesystem path ending in
// .json/.yaml/.yml, or an inline JSON string passed directly), environment
// variables (HF_KEY, HF_PROXY, MODELSCOPE_KEY), and finally the explicit
// overrides passed by the CLI flags.
func Load(configArg string, overrides Config) (Config, error) {
	v := viper.New()
	v.SetConfigType("json")

	defaults := Defaults()
	v.SetDefault("model", defaults.Model)
	v.SetDefault("embedding_model", defaults.EmbeddingModel)
	v.SetDefault("llm_base_url", defaults.LLMBaseURL)
	v.SetDefault("fallback_mode", defaults.FallbackMode)
	v.SetDefault("min_page_titles", defaults.MinPageTitles)
	v.SetDefault("reranker_threshold", defaults.RerankerThreshold)
	v.SetDefault("request_timeout_seconds", defaults.RequestTimeoutSecs)

	if configArg != "" {
		if looksLikeInlineJSON(configArg) {
			v.SetConfigType("json")
			if err := v.ReadConfig(bytes.NewBufferString(configArg)); err != nil {
				return Config{}, err
			}
		} else {
			v.SetConfigFile(configArg)
			if err := v.ReadInConfig(); err != nil {
				return Config{}, err
			}
		}
	}

	v.SetEnvPrefix("DOCRAG")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	cfg.HFKey = firstNonEmpty(overrides.HFKey, os.Getenv("HF_KEY"), cfg.HFKey)
	cfg.HFProxy = firstNonEmpty(overrides.HFProxy, os.Getenv("HF_PROXY"), cfg.HFProxy)
	cfg.ModelScopeKey = firstNonEmpty(overrides.ModelScopeKey, os.Getenv("MODELSCOPE_KEY"), cfg.ModelScopeKey)
	cfg.BaseDir = firstNonEmpty(overrides.BaseDir, cfg.BaseDir)
	if overrides.Model != "" {
		cfg.Model = overrides.Model
	}
	if overrides.FallbackMode != "" {
		cfg.FallbackMode = overrides.FallbackMode
	}
	if overrides.MinPageTitles != 0 {
		cfg.MinPageTitles = overrides.MinPageTitles
	}
	return cfg, nil
}

func looksLikeInlineJSON(s string) bool {
	trimmed := strings.TrimSpace(s)
	return strings.HasPrefix(trimmed, "{")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
