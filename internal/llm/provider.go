package llm

import (
	"context"
	"fmt"

	"github.com/ppiankov/attest/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Review generates an advisory assessment of a test plan
	Review(ctx context.Context, req ReviewRequest) (*ReviewResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// ReviewRequest contains the input for a plan review
type ReviewRequest struct {
	// Report is the finished generation report to review
	Report model.Report

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// ReviewResponse contains the LLM's review output
type ReviewResponse struct {
	// Summary is the generated review text
	Summary string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Timeout:   30,
		MaxTokens: 1000,
	}
}

const reviewSystemPrompt = "You are a requirements analyst reviewing a generated acceptance-test plan. You advise on plan quality; you never rewrite requirements or invent new ones."

// BuildPrompt constructs the default review prompt from the report.
// The review is advisory only: it must comment on the plan that exists,
// not propose new test cases.
func BuildPrompt(report model.Report) string {
	prompt := fmt.Sprintf(`You are reviewing an automatically generated acceptance-test plan. The generator parsed prescriptive requirement sentences, classified their MoSCoW priority, and rendered Given/When/Then test cases.

RULES:
1. Comment only on requirements and test cases listed below. Do not invent new ones.
2. Focus on coverage gaps, ambiguous wording, and skipped lines a human should revisit.
3. If the plan looks sound, say so briefly.

Plan Summary:
- Source: %s
- Requirements parsed: %d of %d lines (coverage %.0f%%)
- Test cases generated: %d
- Classification confidence: %s
- Skipped lines: %d
- Low-confidence classifications: %d

Priority distribution:
`, report.Source, report.Stats.Parsed, report.Stats.Lines, report.Stats.Coverage*100,
		len(report.TestCases), report.Stats.Confidence, len(report.Skipped), len(report.LowConfidence))

	for _, p := range []string{"MUST", "SHOULD", "COULD", "WONT"} {
		if n := report.Stats.ByPriority[p]; n > 0 {
			prompt += fmt.Sprintf("- %s: %d\n", p, n)
		}
	}

	if len(report.Skipped) > 0 {
		prompt += "\nSkipped lines:\n"
		for i, sk := range report.Skipped {
			if i >= 20 {
				prompt += fmt.Sprintf("... and %d more\n", len(report.Skipped)-20)
				break
			}
			prompt += fmt.Sprintf("- line %d (%s): %s\n", sk.ID, sk.Reason, sk.RawText)
		}
	}

	if len(report.LowConfidence) > 0 {
		prompt += "\nLow-confidence classifications:\n"
		for i, lc := range report.LowConfidence {
			if i >= 20 {
				prompt += fmt.Sprintf("... and %d more\n", len(report.LowConfidence)-20)
				break
			}
			prompt += fmt.Sprintf("- line %d: modal span %q, confidence %.2f\n", lc.ID, lc.ModalSpan, lc.Confidence)
		}
	}

	prompt += "\nProvide a 3-5 sentence review of plan quality and what a human should check first."

	return prompt
}
