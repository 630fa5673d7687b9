package annotate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRemoteAnnotator_Annotate(t *testing.T) {
	var gotSentence string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/annotate" {
			t.Errorf("Expected path /annotate, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}

		var req annotateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		gotSentence = req.Sentence

		resp := Sentence{
			Text: req.Sentence,
			Tokens: []Token{
				{Index: 0, Text: "the", Lemma: "the", POS: POSDet},
				{Index: 1, Text: "gui", Lemma: "gui", POS: POSNoun},
				{Index: 2, Text: "must", Lemma: "must", POS: POSAux},
				{Index: 3, Text: "load", Lemma: "load", POS: POSVerb},
			},
			Dependencies: []Dependency{
				{Head: 3, Child: 3, Relation: DepRoot},
				{Head: 3, Child: 1, Relation: DepNsubj},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	annotator := NewRemoteAnnotator(server.URL, 5*time.Second, 100, 10)
	s, err := annotator.Annotate(context.Background(), "The GUI must load.")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if gotSentence != "The GUI must load." {
		t.Errorf("Expected sentence to be forwarded, got %q", gotSentence)
	}
	if len(s.Tokens) != 4 {
		t.Fatalf("Expected 4 tokens, got %d", len(s.Tokens))
	}
	if root := s.Root(); root != 3 {
		t.Errorf("Expected root index 3, got %d", root)
	}
}

func TestRemoteAnnotator_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	annotator := NewRemoteAnnotator(server.URL, 5*time.Second, 100, 10)
	if _, err := annotator.Annotate(context.Background(), "The GUI must load."); err == nil {
		t.Fatal("Expected error on 503 response")
	}
}

func TestRemoteAnnotator_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer server.Close()

	annotator := NewRemoteAnnotator(server.URL, 5*time.Second, 100, 10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := annotator.Annotate(ctx, "The GUI must load."); err == nil {
		t.Fatal("Expected error on cancelled context")
	}
}
