package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/resume-grader/internal/analysis"
	"github.com/jonathan/resume-grader/internal/config"
	"github.com/jonathan/resume-grader/internal/controller"
	"github.com/jonathan/resume-grader/internal/extract"
	"github.com/jonathan/resume-grader/internal/llm"
	"github.com/jonathan/resume-grader/internal/session"
)

// loadConfig returns the merged configuration: file values (when --config is
// given) over built-in defaults, with CLI flags applied by the caller.
func loadConfig(path string) (config.Config, error) {
	defaults := config.Defaults()
	if path == "" {
		return defaults, nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	merged := cfg.MergeWithDefaults(defaults)
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

// buildEngine creates the Gemini-backed analysis engine. The API key comes
// from the GEMINI_API_KEY environment variable only.
func buildEngine(ctx context.Context, cfg config.Config) (analysis.Engine, func(), error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	modelConfig := llm.DefaultConfig()
	if cfg.ScoreModel != "" {
		modelConfig = modelConfig.WithModel(llm.TierStandard, cfg.ScoreModel)
	}
	if cfg.SummaryModel != "" {
		modelConfig = modelConfig.WithModel(llm.TierAdvanced, cfg.SummaryModel)
	}

	client, err := llm.NewClient(ctx, modelConfig, apiKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	closeFn := func() {
		_ = client.Close()
	}
	return analysis.NewGeminiEngine(client, cfg.Verbose), closeFn, nil
}

// buildController wires the session store, document extractor, and analysis
// engine into a controller.
func buildController(ctx context.Context, cfg config.Config) (*controller.Controller, func(), error) {
	engine, closeFn, err := buildEngine(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	docs := extract.NewDocuments(extract.JobOptions{
		Timeout:    cfg.FetchTimeout(),
		UseBrowser: cfg.UseBrowser,
		Verbose:    cfg.Verbose,
	})
	store := session.NewStore(cfg.SessionTTL())

	ctrl := controller.New(store, docs, engine, controller.Options{
		AnalysisTimeout: cfg.AnalysisTimeout(),
		Verbose:         cfg.Verbose,
	})
	return ctrl, closeFn, nil
}
