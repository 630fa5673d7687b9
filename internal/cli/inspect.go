package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/attest/internal/annotate"
	"github.com/ppiankov/attest/internal/model"
	"github.com/ppiankov/attest/internal/network"
	"github.com/ppiankov/attest/internal/pipeline"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show the semantic network extracted from a requirements file",
	Long: `Inspect parses a requirements file and prints the semantic network
instead of generating test cases: every entity the requirements mention,
its containment, and the facts asserted about it with the requirement
line each fact came from.

With --sentence, inspect annotates a single sentence instead and prints
its tokens, part-of-speech tags and dependency edges.

Examples:
  attest inspect requirements.txt
  attest inspect --sentence "The GUI must display a product."`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

var inspectSentence string

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().DurationVar(&genTimeout, "timeout", 2*time.Minute, "overall timeout")
	inspectCmd.Flags().StringVar(&annBackend, "annotator", "", "annotator backend (rules, remote)")
	inspectCmd.Flags().StringVar(&annURL, "annotator-url", "", "remote annotator base URL")
	inspectCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable annotation cache")
	inspectCmd.Flags().StringVar(&inspectSentence, "sentence", "", "annotate one sentence and print its tokens and dependencies")
}

func runInspect(cmd *cobra.Command, args []string) error {
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

	if inspectSentence != "" {
		return inspectAnnotation(ctx, cfg, inspectSentence)
	}
	if len(args) != 1 {
		return fmt.Errorf("requires a requirements file or --sentence")
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	report, err := p.RunFile(ctx, args[0])
	if err != nil {
		return fmt.Errorf("inspect failed: %w", err)
	}

	// Rebuild the network from the parsed requirements; the pipeline did
	// the same walk during generation, so this is deterministic.
	builder := network.NewBuilder()
	for i := range report.Requirements {
		builder.Add(&report.Requirements[i])
	}
	printNetwork(builder.Network(), report)

	return nil
}

// inspectAnnotation prints one sentence's annotation: the token table and
// the dependency edges, for debugging the annotator backend
func inspectAnnotation(ctx context.Context, cfg *model.Config, sentence string) error {
	annotator, err := annotate.New(cfg.Annotator, cfg.Cache)
	if err != nil {
		return fmt.Errorf("create annotator: %w", err)
	}

	s, err := annotator.Annotate(ctx, sentence)
	if err != nil {
		return fmt.Errorf("annotate: %w", err)
	}

	fmt.Printf("Sentence: %s\n\n", s.Text)
	fmt.Println("Idx  Token           POS      Lemma")
	for _, t := range s.Tokens {
		fmt.Printf("%-4d %-15s %-8s %s\n", t.Index, t.Text, t.POS, t.Lemma)
	}

	fmt.Println("\nDependencies:")
	for _, d := range s.Dependencies {
		fmt.Printf("  %-10s %s <- %s\n", d.Relation, s.Tokens[d.Head].Text, s.Tokens[d.Child].Text)
	}
	return nil
}

func printNetwork(net *network.Network, report *model.Report) {
	fmt.Printf("Source: %s\n", report.Source)
	fmt.Printf("Entities: %d\n\n", net.Len())

	for _, node := range net.Nodes() {
		if node.ContainedBy != "" {
			fmt.Printf("%s (part of %s)\n", node.Name, node.ContainedBy)
		} else {
			fmt.Printf("%s\n", node.Name)
		}
		for _, fact := range node.Facts {
			var parts []string
			parts = append(parts, fact.Action)
			if fact.Target != "" {
				parts = append(parts, fact.Target)
			}
			if fact.Negated {
				parts = append(parts, "(negated)")
			}
			if len(fact.Attributes) > 0 {
				parts = append(parts, "["+strings.Join(fact.Attributes, ", ")+"]")
			}
			for _, c := range fact.Constraints {
				parts = append(parts, constraintSummary(c))
			}
			fmt.Printf("  R%d: %s\n", fact.RequirementID, strings.Join(parts, " "))
		}
		fmt.Println()
	}

	if len(report.Skipped) > 0 {
		fmt.Printf("Skipped %d lines:\n", len(report.Skipped))
		for _, sk := range report.Skipped {
			fmt.Printf("  line %d: %s\n", sk.ID, sk.Reason)
		}
	}
}

func constraintSummary(c model.Constraint) string {
	switch c.Kind {
	case model.ConstraintRange:
		return fmt.Sprintf("{%g..%g %s}", *c.Low, *c.High, c.Unit)
	case model.ConstraintUpperBound:
		return fmt.Sprintf("{<=%g %s}", *c.High, c.Unit)
	case model.ConstraintLowerBound:
		return fmt.Sprintf("{>=%g %s}", *c.Low, c.Unit)
	default:
		return fmt.Sprintf("{=%g %s}", *c.Low, c.Unit)
	}
}
