// Package exitcode defines named exit codes for the casegen CLI.
//
// Each code maps a specific termination condition to a numeric value
// recognized by shell scripts and CI pipelines.
package exitcode

const (
	Success          = 0   // Cases generated (or command completed)
	Error            = 1   // Invalid args, unreadable config, failed assertion
	NoInput          = 2   // No document content to generate from
	GenerationFailed = 3   // Model transport exhausted its retries
	Interrupted      = 130 // SIGINT/SIGTERM received
)

// Name returns the human-readable name for the given exit code.
// Unknown codes return "unknown".
func Name(code int) string {
	switch code {
	case Success:
		return "Success"
	case Error:
		return "Error"
	case NoInput:
		return "NoInput"
	case GenerationFailed:
		return "GenerationFailed"
	case Interrupted:
		return "Interrupted"
	default:
		return "unknown"
	}
}
