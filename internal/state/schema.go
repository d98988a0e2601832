package state

// RunReport is the persisted summary of the last generation run.
// Written to <state_dir>/last-run.json. Judge feedback is never stored.
type RunReport struct {
	SchemaVersion int              `json:"schema_version"`
	RunID         string           `json:"run_id"`
	StartedAt     string           `json:"started_at"`
	FinishedAt    string           `json:"finished_at"`
	Status        string           `json:"status"`
	Provider      string           `json:"provider"`
	Model         string           `json:"model"`
	RAG           bool             `json:"rag"`
	Agentic       bool             `json:"agentic"`
	Documents     []DocumentRecord `json:"documents"`
	Chunks        []ChunkRecord    `json:"chunks"`
	OutputFiles   []string         `json:"output_files"`
	TotalCases    int              `json:"total_cases"`
	Error         string           `json:"error,omitempty"`
}

// DocumentRecord identifies one input document by content hash.
type DocumentRecord struct {
	Path   string `json:"path"`
	SHA256 string `json:"sha256"`
}

// ChunkRecord is the outcome of one chunk.
type ChunkRecord struct {
	Index   int    `json:"index"`
	Title   string `json:"title"`
	Outcome string `json:"outcome"`
	Rounds  int    `json:"rounds"`
	Cases   int    `json:"cases"`
}

// SchemaVersion is the current RunReport layout.
const SchemaVersion = 1

// Status constants
const (
	StatusInProgress  = "IN_PROGRESS"
	StatusComplete    = "COMPLETE"
	StatusFailed      = "FAILED"
	StatusInterrupted = "INTERRUPTED"
)
