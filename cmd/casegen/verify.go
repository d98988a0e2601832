package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/casegen/internal/assertion"
	"github.com/CodexForgeBR/casegen/internal/cases"
	"github.com/CodexForgeBR/casegen/internal/cli"
	"github.com/CodexForgeBR/casegen/internal/config"
	"github.com/CodexForgeBR/casegen/internal/exitcode"
	"github.com/CodexForgeBR/casegen/internal/llm"
	"github.com/CodexForgeBR/casegen/internal/logging"
	"github.com/CodexForgeBR/casegen/internal/prompt"
)

func newVerifyCmd(cfg *config.Config) *cobra.Command {
	var opts cli.VerifyOptions
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check an actual response against an expected outcome",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateVerifyFlags(cmd, cfg, &opts); err != nil {
				return err
			}
			finalCfg, err := loadConfig(cmd, cfg)
			if err != nil {
				return err
			}
			return runVerify(cmd, finalCfg, opts)
		},
	}
	cli.BindVerifyFlags(cmd, &opts)
	cmd.Flags().StringVar(&cfg.PromptsFile, "prompts", "", "YAML file overriding the built-in prompts")
	return cmd
}

func runVerify(cmd *cobra.Command, cfg *config.Config, opts cli.VerifyOptions) error {
	tc := cases.TestCase{AssertType: opts.AssertType}
	if opts.NoAI {
		noAI := false
		tc.UseAIAssertion = &noAI
	}
	assertType, useAI := assertion.Strategy(tc, cfg.Execution)

	prompts, err := prompt.Load(cfg.PromptsFile)
	if err != nil {
		return err
	}

	verifier := assertion.NewVerifier(nil, prompts.Judge)
	if assertType != cases.AssertExact && useAI {
		c, settings, err := llm.ForModule(cmd.Context(), cfg, llm.ModuleAIJudge)
		if err != nil {
			return err
		}
		logging.Debug(fmt.Sprintf("Module %s uses %s/%s", llm.ModuleAIJudge, settings.Provider, settings.Model))
		verifier.LLM = c
	}

	ok, err := verifier.Verify(cmd.Context(), opts.Expected, opts.Actual, assertType, useAI)
	if err != nil {
		return err
	}
	if !ok {
		logging.Error(fmt.Sprintf("FAIL (%s): response does not satisfy %q", assertType, opts.Expected))
		return &exitError{code: exitcode.Error}
	}
	logging.Success(fmt.Sprintf("PASS (%s)", assertType))
	return nil
}
