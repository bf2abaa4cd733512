package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zorro-gridi/doc4llm-sub000/internal/config"
	"github.com/zorro-gridi/doc4llm-sub000/internal/llm"
	"github.com/zorro-gridi/doc4llm-sub000/internal/llmrerank"
	"github.com/zorro-gridi/doc4llm-sub000/internal/optimizer"
	"github.com/zorro-gridi/doc4llm-sub000/internal/pipeline"
	"github.com/zorro-gridi/doc4llm-sub000/internal/rerank"
	"github.com/zorro-gridi/doc4llm-sub000/internal/router"
	"github.com/zorro-gridi/doc4llm-sub000/internal/searcher"
)

var (
	flagBaseDir      string
	flagConfig       string
	flagFallbackMode string
	flagTimeout      int
)

var rootCmd = &cobra.Command{
	Use:   "docrag \"<query>\"",
	Short: "Answer a documentation question against a local crawled corpus",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuery,
}

func init() {
	rootCmd.Flags().StringVar(&flagBaseDir, "base-dir", "", "base directory containing {name}@{version} doc-sets")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "path to a config file, or an inline JSON config string")
	rootCmd.Flags().StringVar(&flagFallbackMode, "fallback-mode", "", "parallel or serial (default parallel)")
	rootCmd.Flags().IntVar(&flagTimeout, "timeout", 0, "request timeout in seconds (default from config)")
	_ = rootCmd.MarkFlagRequired("base-dir")
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig, config.Config{BaseDir: flagBaseDir, FallbackMode: flagFallbackMode})
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logrus.NewEntry(logrus.StandardLogger())

	timeoutSecs := cfg.RequestTimeoutSecs
	if flagTimeout > 0 {
		timeoutSecs = flagTimeout
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(timeoutSecs)*time.Second)
	defer cancel()

	orch, err := buildOrchestrator(cfg, log, args[0])
	if err != nil {
		return fmt.Errorf("building pipeline: %w", err)
	}

	result, err := orch.Run(ctx, args[0])
	if result.Output != "" {
		fmt.Println(result.Output)
	}
	if err != nil {
		return err
	}
	return nil
}

func buildOrchestrator(cfg config.Config, log *logrus.Entry, rawQuery string) (*pipeline.Orchestrator, error) {
	llmClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.ModelScopeKey, log)

	opt := optimizer.New(llmClient, cfg.Model, log)
	rt := router.New(llmClient, cfg.Model, log)
	lr := llmrerank.New(llmClient, cfg.Model, log)

	matcher, err := buildMatcher(cfg, log, rawQuery)
	if err != nil {
		return nil, err
	}
	batchReranker := rerank.NewBatchReranker(matcher)
	batchReranker.MinScoreThreshold = cfg.RerankerThreshold

	searcherCfg := searcher.DefaultConfig()
	if cfg.FallbackMode == string(searcher.FallbackSerial) {
		searcherCfg.FallbackMode = searcher.FallbackSerial
	}
	if cfg.MinPageTitles > 0 {
		searcherCfg.MinPageTitles = cfg.MinPageTitles
	}
	sr := searcher.New(cfg.BaseDir, searcherCfg, batchReranker, log)

	return pipeline.New(cfg.BaseDir, opt, rt, sr, lr, log), nil
}

func buildMatcher(cfg config.Config, log *logrus.Entry, rawQuery string) (rerank.Matcher, error) {
	hasRemoteKeys := cfg.HFKey != "" || cfg.ModelScopeKey != ""
	switch rerank.SelectBackend([]string{rawQuery}, hasRemoteKeys) {
	case rerank.BackendModelScope:
		return rerank.NewModelScopeMatcher(cfg.EmbeddingModel, cfg.ModelScopeKey, log), nil
	case rerank.BackendHF:
		return rerank.NewHFMatcher(cfg.EmbeddingModel, cfg.HFKey, cfg.HFProxy, log)
	default:
		return nil, fmt.Errorf("no remote embedding backend configured: set HF_KEY or MODELSCOPE_KEY")
	}
}
