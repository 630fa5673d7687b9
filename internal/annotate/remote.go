package annotate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const remoteMaxBodyBytes = 4 << 20

// RemoteAnnotator calls an external annotation service (a POS/dependency
// parser exposed over HTTP, such as a spaCy server). Requests are rate
// limited so a shared service is not flooded during batch runs. The service
// is required to be deterministic per sentence; this client adds no retry
// of its own, a failed annotation surfaces as a line-scoped error.
type RemoteAnnotator struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewRemoteAnnotator creates a rate-limited client for an annotation service
func NewRemoteAnnotator(baseURL string, timeout time.Duration, requestsPerSecond float64, burst int) *RemoteAnnotator {
	if burst <= 0 {
		burst = 5
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 10
	}

	return &RemoteAnnotator{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

type annotateRequest struct {
	Sentence string `json:"sentence"`
}

// Annotate posts the sentence to the service and decodes the annotation
func (r *RemoteAnnotator) Annotate(ctx context.Context, sentence string) (*Sentence, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	payload, err := json.Marshal(annotateRequest{Sentence: sentence})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/annotate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("annotate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, remoteMaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var annotated Sentence
	if err := json.Unmarshal(body, &annotated); err != nil {
		return nil, fmt.Errorf("decode annotation: %w", err)
	}

	if annotated.Text == "" {
		annotated.Text = sentence
	}
	return &annotated, nil
}
