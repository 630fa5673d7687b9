package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/attest/internal/model"
)

// Reviewer wraps a Provider and produces advisory plan reviews. The review
// runs after generation and scoring; its output is attached to the report
// but never changes requirements, test cases or statistics.
type Reviewer struct {
	provider Provider
	config   Config
}

// NewReviewer creates a reviewer, or a disabled one when no provider is
// configured
func NewReviewer(config Config) (*Reviewer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Reviewer{provider: provider, config: config}, nil
}

// IsEnabled reports whether a provider is configured
func (r *Reviewer) IsEnabled() bool {
	return r != nil && r.provider != nil
}

// ReviewPlan generates the advisory review for a finished report
func (r *Reviewer) ReviewPlan(ctx context.Context, report model.Report) (*model.Review, error) {
	if !r.IsEnabled() {
		return nil, nil
	}

	if !r.provider.IsAvailable(ctx) {
		return nil, fmt.Errorf("LLM provider %s is not available", r.provider.Name())
	}

	resp, err := r.provider.Review(ctx, ReviewRequest{
		Report:    report,
		Model:     r.config.Model,
		MaxTokens: r.config.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	return &model.Review{
		Enabled:     true,
		Provider:    r.provider.Name(),
		Model:       resp.Model,
		Summary:     resp.Summary,
		TokensUsed:  resp.TokensUsed,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// RenderReviewMarkdown renders the review as a standalone markdown
// document, clearly marked as generated content
func RenderReviewMarkdown(review *model.Review) string {
	if review == nil || !review.Enabled {
		return ""
	}

	var b strings.Builder
	b.WriteString("# Plan Review\n\n")
	b.WriteString("> GENERATED CONTENT - advisory only, verify against the requirements.\n\n")
	fmt.Fprintf(&b, "- Provider: %s\n", review.Provider)
	fmt.Fprintf(&b, "- Model: %s\n", review.Model)
	if review.TokensUsed > 0 {
		fmt.Fprintf(&b, "- Tokens used: %d\n", review.TokensUsed)
	}
	fmt.Fprintf(&b, "- Generated: %s\n\n", review.GeneratedAt.Format(time.RFC3339))
	b.WriteString(review.Summary)
	b.WriteString("\n")
	return b.String()
}
