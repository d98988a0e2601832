// Package banner prints the coloured start and end banners of a casegen run.
//
// All banner functions write to stdout with a colour-coded header and
// separators.
package banner

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/CodexForgeBR/casegen/internal/logging"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold).SprintFunc()
	successColor = color.New(color.FgGreen, color.Bold).SprintFunc()
	errorColor   = color.New(color.FgRed, color.Bold).SprintFunc()
	warnColor    = color.New(color.FgYellow, color.Bold).SprintFunc()
)

const rule = "═══════════════════════════════════════════════════"

// RunStats summarizes a finished generation run.
type RunStats struct {
	Chunks    int
	Accepted  int
	Exhausted int
	Skipped   int
	Cases     int
	Files     []string
}

// PrintStartupBanner displays the run header.
//
// Example output:
//
//	═══════════════════════════════════════════════════
//	  casegen - API test case generator
//	═══════════════════════════════════════════════════
//	  Run:        3f2a...
//	  Provider:   openai
//	  Model:      gpt-4o-mini
//	  Source:     data/raw_docs
//	  Mode:       rag + agentic
//	═══════════════════════════════════════════════════
func PrintStartupBanner(runID, provider, model, source, mode string) {
	sep := headerColor(rule)
	fmt.Println(sep)
	fmt.Println(headerColor("  casegen - API test case generator"))
	fmt.Println(sep)
	fmt.Printf("  Run:        %s\n", runID)
	fmt.Printf("  Provider:   %s\n", provider)
	fmt.Printf("  Model:      %s\n", model)
	fmt.Printf("  Source:     %s\n", source)
	fmt.Printf("  Mode:       %s\n", mode)
	fmt.Println(sep)
}

// PrintSummaryBanner displays what the run produced. Chunk lines are shown
// only when the document was sliced.
func PrintSummaryBanner(stats RunStats, durationSecs int) {
	sep := successColor(rule)
	fmt.Println(sep)
	fmt.Println(successColor(fmt.Sprintf("  ✓ Generated %d test cases", stats.Cases)))
	if stats.Chunks > 0 {
		fmt.Printf("  Chunks:     %d (accepted %d, exhausted %d, skipped %d)\n",
			stats.Chunks, stats.Accepted, stats.Exhausted, stats.Skipped)
	}
	for _, f := range stats.Files {
		fmt.Printf("  Output:     %s\n", f)
	}
	fmt.Printf("  Duration:   %s (%ds)\n", logging.FormatDuration(durationSecs), durationSecs)
	fmt.Println(sep)
}

// PrintFailureBanner displays a fatal generation error.
func PrintFailureBanner(err error) {
	sep := errorColor(rule)
	fmt.Println(sep)
	fmt.Println(errorColor("  ✗ Generation failed"))
	fmt.Println(sep)
	fmt.Printf("  %v\n", err)
	fmt.Println(sep)
}

// PrintInterruptedBanner displays when a run is cancelled by a signal.
func PrintInterruptedBanner(runID string) {
	sep := warnColor(rule)
	fmt.Println(sep)
	fmt.Println(warnColor("  ⚠ Run interrupted"))
	fmt.Printf("  Run:        %s\n", runID)
	fmt.Println("  Cases from this run were not written")
	fmt.Println(sep)
}
