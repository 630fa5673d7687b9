package cache

import (
	"bytes"
	"os"
	"testing"
	"time"
)

func TestKey_DistinctSentences(t *testing.T) {
	k1 := Key("The GUI must display a product.")
	k2 := Key("The GUI must display a page.")

	if k1 == k2 {
		t.Error("Expected distinct keys for distinct sentences")
	}
	if k1 != Key("The GUI must display a product.") {
		t.Error("Expected stable key for the same sentence")
	}
}

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, 5*time.Minute)

	if err := c.Set("k", []byte("value"), 0); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	got, found := c.Get("k")
	if !found {
		t.Fatal("Expected hit after Set")
	}
	if !bytes.Equal(got, []byte("value")) {
		t.Errorf("Expected 'value', got %q", got)
	}

	if _, found := c.Get("missing"); found {
		t.Error("Expected miss for unknown key")
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	c := NewMemoryCache(time.Minute, 5*time.Minute)

	_ = c.Set("k", []byte("value"), 0)
	if err := c.Delete("k"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("Expected miss after Delete")
	}
}

func TestDiskCache_SetGet(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)

	if err := c.Set(Key("sentence"), []byte("annotation"), 0); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	got, found := c.Get(Key("sentence"))
	if !found {
		t.Fatal("Expected hit after Set")
	}
	if !bytes.Equal(got, []byte("annotation")) {
		t.Errorf("Expected 'annotation', got %q", got)
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)

	if err := c.Set("k", []byte("value"), -time.Second); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("Expected expired entry to miss")
	}
}

func TestDiskCache_SweepsExpiredOnOpen(t *testing.T) {
	dir := t.TempDir()

	first := NewDiskCache(dir, time.Hour)
	if err := first.Set("stale", []byte("old annotation"), -time.Second); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := first.Set("fresh", []byte("current annotation"), time.Hour); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	second := NewDiskCache(dir, time.Hour)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Expected readable cache dir, got %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected sweep to leave 1 file, got %d", len(entries))
	}
	if _, found := second.Get("fresh"); !found {
		t.Error("Expected fresh entry to survive the sweep")
	}
}

func TestDiskCache_RejectsUnknownSchema(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	// An entry written by a build with a different serialization layout
	// must read as a miss, not as garbage.
	payload := []byte(`{"schema":99,"annotation":"bm9wZQ==","expires_at":"2099-01-01T00:00:00Z"}`)
	if err := os.WriteFile(c.path("k"), payload, 0644); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, found := c.Get("k"); found {
		t.Error("Expected miss for unknown schema")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("Expected mismatched entry to be removed")
	}
}

func TestDiskCache_Clear(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)

	_ = c.Set("k1", []byte("v1"), 0)
	_ = c.Set("k2", []byte("v2"), 0)
	if err := c.Clear(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, found := c.Get("k1"); found {
		t.Error("Expected miss after Clear")
	}
}

func TestLayeredCache_DiskPromotion(t *testing.T) {
	dir := t.TempDir()

	// Seed disk through a first layered cache
	first := NewLayeredCache(time.Minute, dir, time.Hour)
	if err := first.Set("k", []byte("value"), 0); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// A fresh layered cache has cold memory but warm disk
	second := NewLayeredCache(time.Minute, dir, time.Hour)
	got, found := second.Get("k")
	if !found {
		t.Fatal("Expected disk hit through fresh layered cache")
	}
	if !bytes.Equal(got, []byte("value")) {
		t.Errorf("Expected 'value', got %q", got)
	}
}

func TestLayeredCache_Delete(t *testing.T) {
	c := NewLayeredCache(time.Minute, t.TempDir(), time.Hour)

	_ = c.Set("k", []byte("value"), 0)
	_ = c.Delete("k")
	if _, found := c.Get("k"); found {
		t.Error("Expected miss after Delete")
	}
}
