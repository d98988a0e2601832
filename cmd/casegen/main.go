package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/casegen/internal/cli"
	"github.com/CodexForgeBR/casegen/internal/config"
	"github.com/CodexForgeBR/casegen/internal/exitcode"
)

// version vars injected via ldflags at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// exitError carries a specific process exit code out of a RunE. Its error
// has already been reported to the user.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return exitcode.Name(e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the CLI with args and returns the process exit code.
func run(args []string) int {
	root := newRootCmd()
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return exitcode.Success
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintln(os.Stderr, err)
	return exitcode.Error
}

func newRootCmd() *cobra.Command {
	cfg := config.NewDefaultConfig()

	root := &cobra.Command{
		Use:           "casegen",
		Short:         "Generate API test cases from documentation with an LLM",
		Long:          "casegen slices API documentation, asks a model for JSON test cases, optionally reviews them with a judge model, and writes normalized case files.",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cli.BindPersistentFlags(root, cfg)
	cli.SetCustomHelp(root)

	root.AddCommand(
		newGenerateCmd(cfg),
		newCasesCmd(cfg),
		newVerifyCmd(cfg),
	)
	return root
}
