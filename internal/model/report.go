package model

import "time"

// Report is the complete result of one generation run: the parsed
// requirements, the generated test cases, and the manifest of lines that
// were skipped or classified with low confidence. No requirement silently
// disappears: every surviving input line lands either in Requirements or
// in Skipped.
type Report struct {
	RunID       string    `json:"run_id"`
	Source      string    `json:"source"` // input path, or "-" for stdin
	GeneratedAt time.Time `json:"generated_at"`

	Requirements []Requirement `json:"requirements"`
	TestCases    []TestCase    `json:"test_cases"`

	Skipped       []SkippedLine       `json:"skipped,omitempty"`
	Warnings      []LineWarning       `json:"warnings,omitempty"`
	LowConfidence []LowConfidenceLine `json:"low_confidence,omitempty"`

	Stats Stats `json:"stats"`

	// Review is the optional LLM plan review. It is produced after
	// generation and never feeds back into it.
	Review *Review `json:"review,omitempty"`
}

// Review is an advisory LLM assessment of the generated plan
type Review struct {
	Enabled     bool      `json:"enabled"`
	Provider    string    `json:"provider"`
	Model       string    `json:"model"`
	Summary     string    `json:"summary"`
	TokensUsed  int       `json:"tokens_used,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

// SkippedLine records an input line that produced no requirement.
// The raw text is preserved so the manifest can be audited.
type SkippedLine struct {
	ID      int    `json:"id"`
	RawText string `json:"raw_text"`
	Reason  string `json:"reason"`
}

// LineWarning records a cosmetic defect on a line that was still processed,
// such as a missing terminal full stop
type LineWarning struct {
	ID      int    `json:"id"`
	RawText string `json:"raw_text"`
	Reason  string `json:"reason"`
}

// LowConfidenceLine records a line whose modality was classified by the
// prescriptive default rather than a recognized modal phrase.
type LowConfidenceLine struct {
	ID         int     `json:"id"`
	ModalSpan  string  `json:"modal_span,omitempty"`
	Confidence float64 `json:"confidence"`
}

// Stats summarizes plan health with transparent inputs
type Stats struct {
	Lines        int            `json:"lines"`         // surviving input lines
	Parsed       int            `json:"parsed"`        // lines that became requirements
	Coverage     float64        `json:"coverage"`      // parsed / lines
	Confidence   string         `json:"confidence"`    // "low", "medium", "high"
	ByPriority   map[string]int `json:"by_priority"`   // MoSCoW distribution
	ByKind       map[string]int `json:"by_kind"`       // test kind distribution
	NetworkNodes int            `json:"network_nodes"` // entities in the semantic network
}
