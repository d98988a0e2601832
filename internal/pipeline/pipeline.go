// Package pipeline runs one generation: load documents, slice them, produce
// cases per chunk (directly or through the generate-judge loop), normalize
// and persist them, and record a run report.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/CodexForgeBR/casegen/internal/agent"
	"github.com/CodexForgeBR/casegen/internal/cases"
	"github.com/CodexForgeBR/casegen/internal/config"
	"github.com/CodexForgeBR/casegen/internal/llm"
	"github.com/CodexForgeBR/casegen/internal/logging"
	"github.com/CodexForgeBR/casegen/internal/metrics"
	"github.com/CodexForgeBR/casegen/internal/prompt"
	"github.com/CodexForgeBR/casegen/internal/slicer"
	"github.com/CodexForgeBR/casegen/internal/state"
)

// Pipeline holds the collaborators for a run. Orchestrator is nil when the
// generate-judge loop is disabled.
type Pipeline struct {
	Config       *config.Config
	RunID        string
	Generator    agent.CaseGenerator
	Orchestrator *agent.Orchestrator
	Metrics      *metrics.Recorder
	Now          func() time.Time
}

// New builds a pipeline with model clients resolved per module from cfg.
func New(ctx context.Context, cfg *config.Config, prompts *prompt.Set, rec *metrics.Recorder) (*Pipeline, error) {
	if rec == nil {
		rec = metrics.NewRecorder()
	}
	completer := func(module string) (llm.Completer, error) {
		c, settings, err := llm.ForModule(ctx, cfg, module)
		if err != nil {
			return nil, err
		}
		logging.Debug(fmt.Sprintf("Module %s uses %s/%s", module, settings.Provider, settings.Model))
		return rec.Instrument(module, c), nil
	}

	single, err := completer(llm.ModuleCaseGenerator)
	if err != nil {
		return nil, err
	}
	p := &Pipeline{
		Config:    cfg,
		RunID:     uuid.NewString(),
		Generator: agent.NewGenerator(single, prompts.Generation),
		Metrics:   rec,
		Now:       time.Now,
	}

	if cfg.RAG.Enabled && cfg.Agentic.Enabled {
		genLLM, err := completer(llm.ModuleAgentGenerator)
		if err != nil {
			return nil, err
		}
		judgeLLM, err := completer(llm.ModuleAgentJudge)
		if err != nil {
			return nil, err
		}
		p.Orchestrator = agent.NewOrchestrator(
			agent.NewGenerator(genLLM, prompts.AgentGeneration),
			agent.NewJudge(judgeLLM, prompts.AgentJudge),
			cfg.Agentic,
			agent.ModuleAgenticLoop,
		)
		p.Orchestrator.OnRound = func(round int, v agent.Verdict) {
			rec.ObserveRound(round, v.Passed)
		}
	}
	return p, nil
}

// Summary describes a finished run.
type Summary struct {
	RunID       string
	Documents   []string
	Chunks      []state.ChunkRecord
	Cases       []cases.TestCase
	OutputFiles []string
	Duration    time.Duration
}

// Count returns how many chunks finished with outcome.
func (s *Summary) Count(outcome string) int {
	n := 0
	for _, c := range s.Chunks {
		if c.Outcome == outcome {
			n++
		}
	}
	return n
}

// Run generates cases for docPath (or every document in the raw docs dir),
// writes them out and saves the run report. The first model transport
// failure aborts the run.
func (p *Pipeline) Run(ctx context.Context, docPath string) (*Summary, error) {
	start := p.now()
	if p.RunID == "" {
		p.RunID = uuid.NewString()
	}
	if p.Metrics == nil {
		p.Metrics = metrics.NewRecorder()
	}
	report := &state.RunReport{
		SchemaVersion: state.SchemaVersion,
		RunID:         p.RunID,
		StartedAt:     start.Format(time.RFC3339),
		Status:        state.StatusInProgress,
		Provider:      p.Config.LLM.Provider,
		Model:         p.Config.LLM.Model,
		RAG:           p.Config.RAG.Enabled,
		Agentic:       p.Config.RAG.Enabled && p.Orchestrator != nil,
	}

	summary, err := p.run(ctx, docPath, report)
	if summary != nil {
		summary.Duration = p.now().Sub(start)
	}
	p.finish(ctx, report, err)
	return summary, err
}

func (p *Pipeline) run(ctx context.Context, docPath string, report *state.RunReport) (*Summary, error) {
	content, paths, err := LoadDocuments(p.Config.Paths.RawDocsDir, docPath)
	if err != nil {
		return nil, err
	}
	if content == "" {
		return nil, ErrNoDocumentContent
	}
	if docs, err := state.HashDocuments(paths); err != nil {
		logging.Warn(fmt.Sprintf("Failed to hash documents: %v", err))
	} else {
		report.Documents = docs
	}

	globalContext, err := p.globalContext()
	if err != nil {
		return nil, err
	}

	summary := &Summary{RunID: p.RunID, Documents: paths}
	if p.Config.RAG.Enabled {
		logging.Phase(fmt.Sprintf("Slicing %d document(s)", len(paths)))
		results, err := p.generateChunks(ctx, content, globalContext)
		if err != nil {
			return nil, err
		}
		for _, r := range results {
			summary.Chunks = append(summary.Chunks, r.record)
			summary.Cases = append(summary.Cases, r.cases...)
		}
		if p.Config.RAG.OutputPerChunk {
			files, err := p.writeChunkFiles(results)
			summary.OutputFiles = files
			if err != nil {
				return summary, err
			}
		}
		report.Chunks = summary.Chunks
	} else {
		logging.Phase(fmt.Sprintf("Generating from %d document(s)", len(paths)))
		raw, err := p.Generator.Generate(ctx, prompt.WithContext(globalContext, content), "")
		if err != nil {
			return nil, err
		}
		summary.Cases = cases.NormalizeAll(raw)
	}
	p.Metrics.CasesGenerated(len(summary.Cases))

	if !p.Config.RAG.Enabled || !p.Config.RAG.OutputPerChunk {
		name := cases.OutputFilename(paths, docPath, p.now())
		path := filepath.Join(p.Config.Paths.TestCasesDir, name)
		if err := cases.WriteFile(path, summary.Cases); err != nil {
			return summary, err
		}
		logging.Info(fmt.Sprintf("Generated cases saved to %s", path))
		summary.OutputFiles = append(summary.OutputFiles, path)
	}

	report.OutputFiles = summary.OutputFiles
	report.TotalCases = len(summary.Cases)
	return summary, nil
}

func (p *Pipeline) globalContext() (string, error) {
	vars, err := LoadGlobalVars(p.Config.GlobalVars)
	if err != nil {
		return "", err
	}
	return prompt.GlobalContext(vars)
}

// chunkResult is the outcome of one chunk, kept at its index so results
// merge in document order whatever order workers finish in.
type chunkResult struct {
	chunk  slicer.Chunk
	record state.ChunkRecord
	cases  []cases.TestCase
}

func (p *Pipeline) generateChunks(ctx context.Context, content, globalContext string) ([]chunkResult, error) {
	rag := p.Config.RAG
	chunks := slicer.NewDocSlicer(rag.Splitter, rag.HeaderLevels, rag.MaxChunkChars).Slice(content)
	filter := slicer.Filter{
		MinContentLength: rag.MinContentLength,
		IncludeKeywords:  rag.IncludeKeywords,
		ExcludeKeywords:  rag.ExcludeKeywords,
	}
	logging.Info(fmt.Sprintf("Document sliced into %d chunks", len(chunks)))

	workers := rag.Workers
	if workers < 1 {
		workers = 1
	}
	results := make([]chunkResult, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, c := range chunks {
		if strings.TrimSpace(c.Content) == "" || !filter.Keep(c) {
			logging.Info(fmt.Sprintf("Skipping non-interface chunk: %s", c.Title))
			results[i] = chunkResult{chunk: c, record: record(c, metrics.OutcomeSkipped, 0, 0)}
			p.Metrics.ChunkOutcome(metrics.OutcomeSkipped)
			continue
		}
		g.Go(func() error {
			r, err := p.processChunk(gctx, c, globalContext)
			if err != nil {
				return fmt.Errorf("chunk %d (%s): %w", c.Index, c.Title, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (p *Pipeline) processChunk(ctx context.Context, c slicer.Chunk, globalContext string) (chunkResult, error) {
	payload := prompt.WithContext(globalContext, c.Content)

	var (
		raw     []any
		outcome = metrics.OutcomeSingleShot
		rounds  = 1
	)
	if p.Orchestrator != nil {
		res, err := p.Orchestrator.Run(ctx, payload)
		if err != nil {
			return chunkResult{}, err
		}
		raw, rounds = res.Cases, res.Rounds
		outcome = metrics.OutcomeExhausted
		if res.State == agent.StateAccepted {
			outcome = metrics.OutcomeAccepted
		}
	} else {
		var err error
		raw, err = p.Generator.Generate(ctx, payload, "")
		if err != nil {
			return chunkResult{}, err
		}
	}

	normalized := cases.NormalizeAll(raw)
	p.Metrics.ChunkOutcome(outcome)
	logging.Debug(fmt.Sprintf("Chunk %d (%s): %s, %d cases", c.Index, c.Title, outcome, len(normalized)))
	return chunkResult{
		chunk:  c,
		record: record(c, outcome, rounds, len(normalized)),
		cases:  normalized,
	}, nil
}

func record(c slicer.Chunk, outcome string, rounds, n int) state.ChunkRecord {
	return state.ChunkRecord{Index: c.Index, Title: c.Title, Outcome: outcome, Rounds: rounds, Cases: n}
}

// writeChunkFiles writes one file per generated chunk. A name already used
// in this run gets the chunk index appended.
func (p *Pipeline) writeChunkFiles(results []chunkResult) ([]string, error) {
	used := map[string]bool{}
	var files []string
	for _, r := range results {
		if r.record.Outcome == metrics.OutcomeSkipped {
			continue
		}
		name := cases.SafeChunkFilename(r.chunk.Title, r.chunk.Index)
		if used[name] {
			name = fmt.Sprintf("%s_%d_cases.json", strings.TrimSuffix(name, "_cases.json"), r.chunk.Index)
		}
		used[name] = true

		path := filepath.Join(p.Config.Paths.TestCasesDir, name)
		if err := cases.WriteFile(path, r.cases); err != nil {
			return files, err
		}
		logging.Info(fmt.Sprintf("Generated cases saved to %s", path))
		files = append(files, path)
	}
	return files, nil
}

// finish saves the run report and metrics. Failures here are warnings.
func (p *Pipeline) finish(ctx context.Context, report *state.RunReport, runErr error) {
	report.FinishedAt = p.now().Format(time.RFC3339)
	switch {
	case runErr == nil:
		report.Status = state.StatusComplete
	case ctx.Err() != nil || errors.Is(runErr, context.Canceled):
		report.Status = state.StatusInterrupted
		report.Error = runErr.Error()
	default:
		report.Status = state.StatusFailed
		report.Error = runErr.Error()
	}

	if err := state.SaveReport(report, p.Config.Paths.StateDir); err != nil {
		logging.Warn(fmt.Sprintf("Failed to save run report: %v", err))
	}
	if path := p.Config.Paths.MetricsFile; path != "" {
		if err := p.Metrics.WriteTextfile(path); err != nil {
			logging.Warn(fmt.Sprintf("Failed to write metrics: %v", err))
		}
	}
}

func (p *Pipeline) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}
