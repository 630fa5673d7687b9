package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/attest/internal/model"
	"github.com/ppiankov/attest/internal/pipeline"
)

var (
	outJSON     string
	outMD       string
	genTimeout  time.Duration
	annBackend  string
	annURL      string
	noCache     bool
	cacheDir    string
	workers     int
	threshold   float64
	noMatrix    bool
	printTests  bool
	htmlInput   bool
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate <file>",
	Short: "Generate acceptance tests from a requirements file",
	Long: `Generate parses a requirements file to:
- Normalize input lines and skip unusable ones with a recorded reason
- Classify each requirement's MoSCoW priority and polarity
- Extract actors, actions, targets, attributes and measurable constraints
- Build a semantic network of the entities the requirements mention
- Render Given/When/Then test cases with a traceability matrix

Pass "-" to read requirements from stdin. Files ending in .html or .htm
are treated as HTML requirement lists (one requirement per list item).

Example:
  attest generate requirements.txt
  attest generate requirements.txt --json plan.json --md plan.md
  attest generate spec.html --md plan.md
  cat reqs.txt | attest generate - --llm-provider openai`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	// Output flags
	generateCmd.Flags().StringVar(&outJSON, "json", "plan.json", "output JSON path")
	generateCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	generateCmd.Flags().BoolVar(&noMatrix, "no-matrix", false, "omit the traceability matrix from Markdown")
	generateCmd.Flags().BoolVar(&printTests, "print-tests", false, "print the generated test cases as a console table")

	// Extraction flags
	generateCmd.Flags().DurationVar(&genTimeout, "timeout", 2*time.Minute, "overall generation timeout")
	generateCmd.Flags().StringVar(&annBackend, "annotator", "", "annotator backend (rules, remote)")
	generateCmd.Flags().StringVar(&annURL, "annotator-url", "", "remote annotator base URL")
	generateCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable annotation cache")
	generateCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "annotation cache directory (enables disk cache)")
	generateCmd.Flags().IntVar(&workers, "workers", 0, "extraction workers (default from config)")
	generateCmd.Flags().Float64Var(&threshold, "confidence-threshold", 0, "modality confidence below which lines are flagged for review")
	generateCmd.Flags().BoolVar(&htmlInput, "html", false, "treat input as HTML regardless of extension")

	// LLM flags
	generateCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM plan review")
	generateCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	generateCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), genTimeout)
	defer cancel()

	cfg := baseConfig()
	if annBackend != "" {
		cfg.Annotator.Backend = annBackend
	}
	if annURL != "" {
		cfg.Annotator.BaseURL = annURL
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if cacheDir != "" {
		cfg.Cache.Dir = cacheDir
	}
	if workers > 0 {
		cfg.Concurrency.ExtractWorkers = workers
	}
	if threshold > 0 {
		cfg.Modality.ConfidenceThreshold = threshold
	}
	cfg.Output.IncludeMatrix = !noMatrix

	if llmEnabled {
		if err := applyLLMConfig(cfg, llmProvider, llmModel); err != nil {
			return err
		}
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Generating from: %s\n", input)
		fmt.Fprintf(os.Stderr, "Annotator: %s\n", cfg.Annotator.Backend)
		fmt.Fprintf(os.Stderr, "Workers: %d\n", cfg.Concurrency.ExtractWorkers)
		fmt.Fprintln(os.Stderr)
	}

	report, err := runInput(ctx, p, input)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Parsed %d requirements\n", len(report.Requirements))
		fmt.Fprintf(os.Stderr, "✓ Generated %d test cases\n", len(report.TestCases))
		fmt.Fprintf(os.Stderr, "✓ Network holds %d entities\n", report.Stats.NetworkNodes)
		if report.Review != nil && report.Review.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Plan review by %s/%s\n", report.Review.Provider, report.Review.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	if printTests {
		pipeline.NewRenderer(false).RenderTestTable(report)
	}

	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

func runInput(ctx context.Context, p *pipeline.Pipeline, input string) (*model.Report, error) {
	if input == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		if htmlInput {
			return p.RunHTML(ctx, "-", string(data))
		}
		return p.Run(ctx, "-", string(data))
	}
	if htmlInput {
		data, err := os.ReadFile(input)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", input, err)
		}
		return p.RunHTML(ctx, input, string(data))
	}
	return p.RunFile(ctx, input)
}
