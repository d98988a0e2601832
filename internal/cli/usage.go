package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const helpTemplate = `casegen - Turn API documentation into executable test cases with an LLM

USAGE
  casegen <command> [flags]

COMMANDS
  generate                               Generate test cases from documents
  cases                                  List every generated test case
  verify                                 Check an actual response against an expected outcome

GLOBAL FLAGS
  --config <path>                        YAML settings file (default: config/settings.yaml)
  --env-file <path>                      Dotenv file loaded before CASEGEN_* variables (default: .env)
  -v, --verbose                          Enable debug logging

GENERATE FLAGS
  Input:
    --doc <path>                         Generate from this document only
    --prompts <path>                     YAML file overriding the built-in prompts

  Model:
    --provider <openai|gemini|ollama>    Model provider (default: openai)
    --model <name>                       Model name (default: gpt-4o-mini)

  Slicing:
    --rag / --no-rag                     Slice documents by heading and generate per chunk
    --output-per-chunk                   Write one case file per chunk
    --workers <int>                      Chunks processed in parallel (default: 1)

  Generate-judge loop:
    --agentic / --no-agentic             Review each chunk's cases and regenerate on failure
    --max-rounds <int>                   Default round budget (default: 2)
    --fail-fast                          Stop a chunk's loop at the first failed review

VERIFY FLAGS
    --expected <text>                    Expected outcome text (required)
    --actual <text>                      Actual response body (required)
    --assert-type <type>                 exact_match or semantic_match
    --no-ai                              Use the heuristic instead of a model

ENVIRONMENT
  CASEGEN_LLM_PROVIDER, CASEGEN_LLM_MODEL, CASEGEN_LLM_API_KEY, CASEGEN_MAX_ROUNDS, ...
  OPENAI_API_KEY / GEMINI_API_KEY are used when no API key is configured.

EXIT CODES
  0   Success              Cases generated, or verification passed
  1   Error                Invalid arguments, misconfiguration, or verification failed
  2   NoInput              No document content found
  3   GenerationFailed     A model call failed after all retries
  130 Interrupted          SIGINT or SIGTERM received

EXAMPLES
  # Generate from every document in data/raw_docs
  casegen generate

  # Slice one document and review each chunk's cases up to three times
  casegen generate --doc docs/login.md --rag --agentic --max-rounds 3

  # Check a response without calling a model
  casegen verify --expected "成功：登录成功" --actual '{"msg":"登录成功"}' --no-ai
`

// SetCustomHelp replaces the root command's help text. Subcommands keep
// cobra's generated help.
func SetCustomHelp(cmd *cobra.Command) {
	defaultHelp := cmd.HelpFunc()
	cmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		if c != cmd {
			defaultHelp(c, args)
			return
		}
		fmt.Fprint(c.OutOrStdout(), helpTemplate)
	})
}
