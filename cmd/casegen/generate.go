package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/casegen/internal/banner"
	"github.com/CodexForgeBR/casegen/internal/cli"
	"github.com/CodexForgeBR/casegen/internal/config"
	"github.com/CodexForgeBR/casegen/internal/exitcode"
	"github.com/CodexForgeBR/casegen/internal/llm"
	"github.com/CodexForgeBR/casegen/internal/logging"
	"github.com/CodexForgeBR/casegen/internal/metrics"
	"github.com/CodexForgeBR/casegen/internal/pipeline"
	"github.com/CodexForgeBR/casegen/internal/prompt"
	sighandler "github.com/CodexForgeBR/casegen/internal/signal"
)

func newGenerateCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate test cases from documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateGenerateFlags(cmd, cfg); err != nil {
				return err
			}
			return runGenerate(cmd, cfg)
		},
	}
	cli.BindGenerateFlags(cmd, cfg)
	return cmd
}

func runGenerate(cmd *cobra.Command, flagCfg *config.Config) error {
	cfg, err := loadConfig(cmd, flagCfg)
	if err != nil {
		return err
	}

	prompts, err := prompt.Load(cfg.PromptsFile)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	p, err := pipeline.New(ctx, cfg, prompts, metrics.NewRecorder())
	if err != nil {
		return err
	}

	source := cfg.DocPath
	if source == "" {
		source = cfg.Paths.RawDocsDir
	}
	banner.PrintStartupBanner(p.RunID, cfg.LLM.Provider, cfg.LLM.Model, source, modeName(cfg))

	sighandler.SetupSignalHandler(ctx, cancel, func() {
		logging.Warn("Interrupted, stopping in-flight chunks...")
	})

	summary, err := p.Run(ctx, cfg.DocPath)
	if err != nil {
		code := exitCodeFor(ctx, err)
		switch code {
		case exitcode.Interrupted:
			banner.PrintInterruptedBanner(p.RunID)
		case exitcode.NoInput:
			logging.Error(err.Error())
		default:
			banner.PrintFailureBanner(err)
		}
		return &exitError{code: code, err: err}
	}

	banner.PrintSummaryBanner(banner.RunStats{
		Chunks:    len(summary.Chunks),
		Accepted:  summary.Count(metrics.OutcomeAccepted),
		Exhausted: summary.Count(metrics.OutcomeExhausted),
		Skipped:   summary.Count(metrics.OutcomeSkipped),
		Cases:     len(summary.Cases),
		Files:     summary.OutputFiles,
	}, int(summary.Duration.Seconds()))
	return nil
}

// exitCodeFor maps a failed run to its exit code. GenerationFailed is
// reserved for model calls that exhausted their retries.
func exitCodeFor(ctx context.Context, err error) int {
	switch {
	case ctx.Err() != nil || errors.Is(err, context.Canceled):
		return exitcode.Interrupted
	case errors.Is(err, pipeline.ErrNoDocumentContent):
		return exitcode.NoInput
	case errors.Is(err, llm.ErrRetriesExhausted):
		return exitcode.GenerationFailed
	default:
		return exitcode.Error
	}
}

// modeName describes which generation path the run takes.
func modeName(cfg *config.Config) string {
	if !cfg.RAG.Enabled {
		return "single-shot"
	}
	parts := []string{"rag"}
	if cfg.Agentic.Enabled {
		parts = append(parts, fmt.Sprintf("agentic (max %d rounds)", cfg.Agentic.MaxRounds))
	}
	if cfg.RAG.OutputPerChunk {
		parts = append(parts, "per-chunk output")
	}
	return strings.Join(parts, " + ")
}
