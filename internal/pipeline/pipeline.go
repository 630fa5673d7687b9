package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ppiankov/attest/internal/annotate"
	"github.com/ppiankov/attest/internal/extract"
	"github.com/ppiankov/attest/internal/generate"
	"github.com/ppiankov/attest/internal/llm"
	"github.com/ppiankov/attest/internal/model"
	"github.com/ppiankov/attest/internal/network"
	"github.com/ppiankov/attest/internal/score"
	"github.com/ppiankov/attest/internal/validate"
)

// Pipeline orchestrates the complete generation process: normalize,
// extract concurrently, build the semantic network, generate test cases,
// score, validate, and optionally request an LLM plan review.
type Pipeline struct {
	extractor *extract.Extractor
	reviewer  *llm.Reviewer // optional (nil if disabled)
	renderer  *Renderer
	config    *model.Config
}

// New creates a pipeline with the given configuration
func New(cfg *model.Config) (*Pipeline, error) {
	annotator, err := annotate.New(cfg.Annotator, cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("create annotator: %w", err)
	}

	var reviewer *llm.Reviewer
	if cfg.LLM.Provider != "" {
		r, err := llm.NewReviewer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			reviewer = r
		}
	}

	return &Pipeline{
		extractor: extract.New(annotator),
		reviewer:  reviewer,
		renderer:  NewRenderer(cfg.Output.IncludeMatrix),
		config:    cfg,
	}, nil
}

// Run generates a complete report from plain-text requirement input
func (p *Pipeline) Run(ctx context.Context, source, input string) (*model.Report, error) {
	lines, skipped, warnings := Normalize(input)
	return p.generate(ctx, source, lines, skipped, warnings)
}

// RunHTML generates a report from an HTML document whose list items hold
// the requirements
func (p *Pipeline) RunHTML(ctx context.Context, source, content string) (*model.Report, error) {
	lines, skipped, warnings, err := LinesFromHTML(content)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}
	return p.generate(ctx, source, lines, skipped, warnings)
}

// RunFile generates a report from a requirements file, choosing the HTML
// path for .html/.htm inputs
func (p *Pipeline) RunFile(ctx context.Context, path string) (*model.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return p.RunHTML(ctx, path, string(data))
	default:
		return p.Run(ctx, path, string(data))
	}
}

type lineResult struct {
	req *model.Requirement
	mod extract.Modality
	err error
}

func (p *Pipeline) generate(ctx context.Context, source string, lines []Line, skipped []model.SkippedLine, warnings []model.LineWarning) (*model.Report, error) {
	// 1. Extract concurrently; results are index-addressed so input order
	// survives regardless of completion order.
	results := make([]lineResult, len(lines))
	workers := p.config.Concurrency.ExtractWorkers
	if workers <= 0 {
		workers = 4
	}
	semaphore := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, line := range lines {
		wg.Add(1)
		go func(idx int, ln Line) {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				results[idx].err = err
				return
			}
			select {
			case <-ctx.Done():
				results[idx].err = ctx.Err()
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			req, mod, err := p.extractor.Extract(ctx, ln.ID, ln.Text)
			results[idx] = lineResult{req: req, mod: mod, err: err}
		}(i, line)
	}
	wg.Wait()

	// 2. Replay in input order: unparseable lines join the skip manifest,
	// low-confidence classifications join the review manifest.
	var reqs []*model.Requirement
	var confidences []float64
	var lowConfidence []model.LowConfidenceLine

	for i, res := range results {
		if res.err != nil {
			if u := extract.AsUnparseable(res.err); u != nil {
				skipped = append(skipped, model.SkippedLine{ID: u.LineID, RawText: u.RawText, Reason: u.Reason})
				continue
			}
			return nil, fmt.Errorf("extract line %d: %w", lines[i].ID, res.err)
		}
		reqs = append(reqs, res.req)
		confidences = append(confidences, res.mod.Confidence)
		if res.mod.Confidence < p.config.Modality.ConfidenceThreshold {
			lowConfidence = append(lowConfidence, model.LowConfidenceLine{
				ID:         res.req.ID,
				ModalSpan:  res.mod.Span,
				Confidence: res.mod.Confidence,
			})
		}
	}
	sort.Slice(skipped, func(i, j int) bool { return skipped[i].ID < skipped[j].ID })

	// 3. Build the semantic network, single-writer, in requirement order
	builder := network.NewBuilder()
	for _, req := range reqs {
		builder.Add(req)
	}
	net := builder.Network()

	// 4. Generate test cases
	cases := generate.New(net).Generate(reqs)

	requirements := make([]model.Requirement, len(reqs))
	for i, req := range reqs {
		requirements[i] = *req
	}

	report := &model.Report{
		RunID:         uuid.New().String(),
		Source:        source,
		GeneratedAt:   time.Now().UTC(),
		Requirements:  requirements,
		TestCases:     cases,
		Skipped:       skipped,
		Warnings:      warnings,
		LowConfidence: lowConfidence,
	}

	// 5. Score and validate
	report.Stats = score.Compute(len(lines)+countRejected(skipped, lines), reqs, confidences, cases, net.Len())
	if err := validate.Report(report); err != nil {
		return nil, fmt.Errorf("report validation: %w", err)
	}

	// 6. Optional LLM review (AFTER validation, never affects generation)
	if p.reviewer.IsEnabled() {
		review, err := p.reviewer.ReviewPlan(ctx, *report)
		if err != nil {
			// Advisory only, so warn instead of failing the run
			fmt.Fprintf(os.Stderr, "Warning: plan review failed: %v\n", err)
		} else if review != nil {
			report.Review = review
		}
	}

	return report, nil
}

// countRejected counts the skip entries whose IDs never reached extraction,
// so the line total covers both extraction inputs and normalizer rejects
func countRejected(skipped []model.SkippedLine, lines []Line) int {
	extracted := make(map[int]bool, len(lines))
	for _, ln := range lines {
		extracted[ln.ID] = true
	}
	n := 0
	for _, sk := range skipped {
		if !extracted[sk.ID] {
			n++
		}
	}
	return n
}

// RenderReport renders the report to the configured outputs
func (p *Pipeline) RenderReport(report *model.Report, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	// Review goes to its own file so generated prose never mixes with the plan
	if report.Review != nil && report.Review.Enabled && mdPath != "" {
		reviewPath := strings.TrimSuffix(mdPath, ".md") + ".review.md"
		if err := p.renderer.RenderReviewFile(llm.RenderReviewMarkdown(report.Review), reviewPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to write plan review: %v\n", err)
		} else if verbose {
			fmt.Printf("✓ Wrote Plan Review: %s\n", reviewPath)
		}
	}

	p.renderer.RenderSummary(report)
	return nil
}
