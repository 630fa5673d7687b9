package annotate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ppiankov/attest/internal/cache"
)

// CachedAnnotator memoizes annotations. Annotation is the only operation in
// the pipeline with non-trivial latency, and annotators are deterministic
// per sentence, so cached results are always valid until they expire.
type CachedAnnotator struct {
	inner Annotator
	store cache.Cache
}

// NewCachedAnnotator wraps an annotator with a cache layer
func NewCachedAnnotator(inner Annotator, store cache.Cache) *CachedAnnotator {
	return &CachedAnnotator{
		inner: inner,
		store: store,
	}
}

// Annotate returns the cached annotation when present, otherwise delegates
// and stores the result
func (c *CachedAnnotator) Annotate(ctx context.Context, sentence string) (*Sentence, error) {
	key := cache.Key(sentence)

	if data, found := c.store.Get(key); found {
		var cached Sentence
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
		// Corrupt entry: drop it and re-annotate.
		_ = c.store.Delete(key)
	}

	annotated, err := c.inner.Annotate(ctx, sentence)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(annotated)
	if err != nil {
		return nil, fmt.Errorf("marshal annotation: %w", err)
	}
	_ = c.store.Set(key, data, 0)

	return annotated, nil
}
