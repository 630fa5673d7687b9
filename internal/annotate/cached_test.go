package annotate

import (
	"context"
	"testing"
	"time"

	"github.com/ppiankov/attest/internal/cache"
)

// countingAnnotator wraps the rule annotator and counts delegations
type countingAnnotator struct {
	inner Annotator
	calls int
}

func (c *countingAnnotator) Annotate(ctx context.Context, sentence string) (*Sentence, error) {
	c.calls++
	return c.inner.Annotate(ctx, sentence)
}

func TestCachedAnnotator_Memoizes(t *testing.T) {
	counting := &countingAnnotator{inner: NewRuleAnnotator()}
	cached := NewCachedAnnotator(counting, cache.NewMemoryCache(time.Minute, 5*time.Minute))

	sentence := "The GUI must display a product."

	first, err := cached.Annotate(context.Background(), sentence)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	second, err := cached.Annotate(context.Background(), sentence)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if counting.calls != 1 {
		t.Errorf("Expected 1 delegation, got %d", counting.calls)
	}
	if len(first.Tokens) != len(second.Tokens) {
		t.Errorf("Cached annotation differs: %d vs %d tokens", len(first.Tokens), len(second.Tokens))
	}
}

func TestCachedAnnotator_DistinctSentences(t *testing.T) {
	counting := &countingAnnotator{inner: NewRuleAnnotator()}
	cached := NewCachedAnnotator(counting, cache.NewMemoryCache(time.Minute, 5*time.Minute))

	if _, err := cached.Annotate(context.Background(), "The GUI must display a product."); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := cached.Annotate(context.Background(), "The footer must display a date."); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if counting.calls != 2 {
		t.Errorf("Expected 2 delegations, got %d", counting.calls)
	}
}

func TestCachedAnnotator_CorruptEntry(t *testing.T) {
	store := cache.NewMemoryCache(time.Minute, 5*time.Minute)
	counting := &countingAnnotator{inner: NewRuleAnnotator()}
	cached := NewCachedAnnotator(counting, store)

	sentence := "The GUI must display a product."
	_ = store.Set(cache.Key(sentence), []byte("not json"), 0)

	s, err := cached.Annotate(context.Background(), sentence)
	if err != nil {
		t.Fatalf("Expected corrupt entry to be replaced, got %v", err)
	}
	if counting.calls != 1 {
		t.Errorf("Expected re-annotation after corrupt entry, got %d calls", counting.calls)
	}
	if len(s.Tokens) == 0 {
		t.Error("Expected tokens from re-annotation")
	}
}
