package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/casegen/internal/assertion"
	"github.com/CodexForgeBR/casegen/internal/cases"
	"github.com/CodexForgeBR/casegen/internal/cli"
	"github.com/CodexForgeBR/casegen/internal/config"
	"github.com/CodexForgeBR/casegen/internal/logging"
	"github.com/CodexForgeBR/casegen/internal/state"
)

func newCasesCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "cases",
		Short: "List every generated test case",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidatePersistentFlags(cmd, cfg); err != nil {
				return err
			}
			finalCfg, err := loadConfig(cmd, cfg)
			if err != nil {
				return err
			}
			return listCases(cmd.OutOrStdout(), finalCfg)
		},
	}
}

// listCases prints one row per case found under the test cases dir and
// warns when documents changed since the last generation run.
func listCases(w io.Writer, cfg *config.Config) error {
	sources, err := cases.Collect(cfg.Paths.TestCasesDir)
	if err != nil {
		return err
	}

	if report, err := state.LoadReport(cfg.Paths.StateDir); err == nil {
		for _, path := range state.ChangedDocuments(report) {
			logging.Warn(fmt.Sprintf("%s changed since run %s; its cases may be stale", path, report.RunID))
		}
	} else {
		logging.Debug(fmt.Sprintf("No run report: %v", err))
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"File", "#", "Title", "Method", "URL", "Assert"})
	table.SetAutoWrapText(false)
	total := 0
	for _, src := range sources {
		name := filepath.Base(src.Path)
		for i, tc := range src.Cases {
			assertType, useAI := assertion.Strategy(tc, cfg.Execution)
			if assertType == cases.AssertSemantic && !useAI {
				assertType += " (heuristic)"
			}
			table.Append([]string{name, strconv.Itoa(i + 1), tc.DisplayTitle(), tc.Method, tc.URL, assertType})
			total++
		}
	}
	table.SetFooter([]string{"", "", "", "", "Total", strconv.Itoa(total)})
	table.Render()
	return nil
}
