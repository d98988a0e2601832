package agent

import (
	"context"
	"fmt"

	"github.com/CodexForgeBR/casegen/internal/config"
	"github.com/CodexForgeBR/casegen/internal/logging"
)

// ModuleAgenticLoop is the default module name used to pick max_rounds from
// agentic.max_rounds_by_module.
const ModuleAgenticLoop = "agentic_loop"

// State is a position in the generate-judge state machine.
type State int

const (
	// StateRound means another generate-judge round is due.
	StateRound State = iota
	// StateAccepted means the judge passed the latest cases.
	StateAccepted
	// StateExhausted means the loop stopped without a pass, either because
	// the round budget ran out or fail-fast tripped.
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateRound:
		return "round"
	case StateAccepted:
		return "accepted"
	case StateExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Result is the outcome of one chunk's loop. Cases and Feedback come from
// the last round that ran.
type Result struct {
	Cases    []any
	Feedback string
	Rounds   int
	State    State
}

// RoundHook observes each completed round.
type RoundHook func(round int, v Verdict)

// Orchestrator drives the generate-judge loop for single chunks. It holds no
// per-chunk state and may be shared between goroutines.
type Orchestrator struct {
	Generator CaseGenerator
	Judge     CaseJudge
	MaxRounds int
	FailFast  bool
	OnRound   RoundHook
}

// NewOrchestrator resolves the round budget for module once: an entry in
// cfg.MaxRoundsByModule, then its "default" entry, then cfg.MaxRounds.
// Budgets below one are raised to one.
func NewOrchestrator(gen CaseGenerator, judge CaseJudge, cfg config.Agentic, module string) *Orchestrator {
	if module == "" {
		module = ModuleAgenticLoop
	}
	rounds := config.ResolveModuleInt(module, cfg.MaxRoundsByModule, cfg.MaxRounds)
	if rounds < 1 {
		rounds = 1
	}
	return &Orchestrator{
		Generator: gen,
		Judge:     judge,
		MaxRounds: rounds,
		FailFast:  cfg.FailFast,
	}
}

// Run loops generate then judge over chunk. Each round makes exactly one
// generation call and one judge call. Transport errors stop the loop and are
// returned unchanged in meaning.
func (o *Orchestrator) Run(ctx context.Context, chunk string) (Result, error) {
	var (
		res      = Result{State: StateRound}
		feedback string
	)

	for res.State == StateRound {
		round := res.Rounds + 1
		logging.Info(fmt.Sprintf("Agentic round %d/%d", round, o.MaxRounds))

		cases, err := o.Generator.Generate(ctx, chunk, feedback)
		if err != nil {
			return res, fmt.Errorf("round %d: %w", round, err)
		}
		verdict, err := o.Judge.Review(ctx, chunk, cases)
		if err != nil {
			return res, fmt.Errorf("round %d: %w", round, err)
		}

		res.Cases = cases
		res.Feedback = verdict.Feedback
		res.Rounds = round
		res.State = o.next(round, verdict)

		logging.Info(fmt.Sprintf("Judge feedback (round %d): %s", round, verdict.Feedback))
		if o.OnRound != nil {
			o.OnRound(round, verdict)
		}
		feedback = verdict.Feedback
	}

	return res, nil
}

// next is the transition function out of Round(round).
func (o *Orchestrator) next(round int, v Verdict) State {
	switch {
	case v.Passed:
		return StateAccepted
	case o.FailFast:
		return StateExhausted
	case round >= o.MaxRounds:
		return StateExhausted
	default:
		return StateRound
	}
}
