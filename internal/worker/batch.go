package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/attest/internal/model"
)

// Generator defines the interface for generating a report from one
// requirements file
type Generator interface {
	RunFile(ctx context.Context, path string) (*model.Report, error)
}

// FileJob generates a test plan for a single requirements file
type FileJob struct {
	Path      string
	Generator Generator
}

// Execute runs the generation job
func (j *FileJob) Execute(ctx context.Context) Result {
	report, err := j.Generator.RunFile(ctx, j.Path)
	return &FileResult{
		Path:   j.Path,
		Report: report,
		Error:  err,
	}
}

// FileResult is the outcome of one file's generation
type FileResult struct {
	Path   string
	Report *model.Report
	Error  error
}

// GetError returns the error from the generation
func (r *FileResult) GetError() error {
	return r.Error
}

// BatchProcessor generates test plans for multiple requirements files
// concurrently
type BatchProcessor struct {
	generator   Generator
	concurrency int
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(generator Generator, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		generator:   generator,
		concurrency: concurrency,
	}
}

// ProcessFiles generates reports for the given files concurrently
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*FileResult {
	if len(paths) == 0 {
		return []*FileResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&FileJob{
			Path:      path,
			Generator: b.generator,
		})
	}

	results := pool.Wait()

	fileResults := make([]*FileResult, len(results))
	for i, result := range results {
		fileResults[i] = result.(*FileResult)
	}

	return fileResults
}

// ProcessList reads file paths from a list file and processes them
// concurrently
func (b *BatchProcessor) ProcessList(ctx context.Context, listPath string) ([]*FileResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read file list: %w", err)
	}

	return b.ProcessFiles(ctx, paths), nil
}

// ReadPathsFromFile reads file paths from a list file (one per line)
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
