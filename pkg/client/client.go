package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a conforming requestor for the export coordinator API
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	MaxRetries int
	RetryDelay time.Duration
}

// New builds a client with sensible defaults. Exports of large tables can
// run for minutes, hence the generous timeout.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 5 * time.Minute},
		MaxRetries: 3,
		RetryDelay: 500 * time.Millisecond,
	}
}

// envelope is the common response wrapper. Failure is signalled by the
// status field, never inferred from the HTTP status alone.
type envelope struct {
	Status             string              `json:"status"`
	Message            string              `json:"message"`
	TotalRecords       int                 `json:"total_records"`
	Estimates          CountEstimate       `json:"estimates"`
	PreviewData        []map[string]any    `json:"preview_data"`
	ExportStrategy     string              `json:"export_strategy"`
	Data               json.RawMessage     `json:"data"`
	PerformanceMetrics *PerformanceMetrics `json:"performance_metrics"`
}

// Count asks the coordinator how many records match the filters
func (c *Client) Count(ctx context.Context, exportType string, filters FilterSet) (CountResult, error) {
	env, err := c.postJSON(ctx, "/export/count", map[string]any{
		"export_type": exportType,
		"filters":     filters,
	})
	if err != nil {
		return CountResult{}, err
	}
	return CountResult{TotalRecords: env.TotalRecords, Estimates: env.Estimates}, nil
}

// Preview fetches a bounded sample in the full export's row shape
func (c *Client) Preview(ctx context.Context, exportType, template string, filters FilterSet) ([]map[string]any, error) {
	env, err := c.postJSON(ctx, "/export/preview", map[string]any{
		"export_type": exportType,
		"template":    template,
		"filters":     filters,
	})
	if err != nil {
		return nil, err
	}
	return env.PreviewData, nil
}

// Export runs an export and returns the strategy-tagged result
func (c *Client) Export(ctx context.Context, req ExportRequest) (ExportResult, error) {
	if req.ExportType == "" {
		return ExportResult{}, &ValidationError{Message: "export_type is required"}
	}
	env, err := c.postJSON(ctx, "/export/"+req.ExportType, req)
	if err != nil {
		return ExportResult{}, err
	}

	metrics := PerformanceMetrics{}
	if env.PerformanceMetrics != nil {
		metrics = *env.PerformanceMetrics
	}
	return parseExportResult(env.ExportStrategy, env.Data, metrics)
}

// ExportPlanned counts first, derives template and chunking from the
// estimate, then runs the export with the planned configuration.
func (c *Client) ExportPlanned(ctx context.Context, exportType string, filters FilterSet) (ExportResult, error) {
	count, err := c.Count(ctx, exportType, filters)
	if err != nil {
		return ExportResult{}, err
	}

	plan := PlanExport(count.Estimates)
	return c.Export(ctx, ExportRequest{
		ExportType:    exportType,
		Template:      plan.Template,
		Filters:       filters,
		ChunkSize:     plan.ChunkSize,
		ForceChunking: plan.ForceChunking,
	})
}

// Download fetches artifact bytes for a completed export into w. The fetch
// is idempotent server-side, so repeating it yields identical content.
func (c *Client) Download(ctx context.Context, exportID string, w io.Writer) (int64, error) {
	if exportID == "" {
		return 0, &ValidationError{Message: "export id is required"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/exports/download/"+exportID, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.doWithRetry(req, nil)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		return 0, c.errorFromResponse(resp.StatusCode, body)
	}

	written, err := io.Copy(w, resp.Body)
	if err != nil {
		return written, &TransientError{Message: "download interrupted", Err: err}
	}
	return written, nil
}

// postJSON sends a JSON request and decodes the envelope, retrying
// transient failures with exponential backoff.
func (c *Client) postJSON(ctx context.Context, path string, body any) (*envelope, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.doWithRetry(req, payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransientError{Message: "failed to read response", Err: err}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Status == "" {
		return nil, c.errorFromResponse(resp.StatusCode, raw)
	}
	if env.Status != "success" {
		return nil, c.typedError(resp.StatusCode, env.Message)
	}
	return &env, nil
}

// doWithRetry performs the request, retrying network errors and malformed
// 5xx responses. Terminal error envelopes are never retried.
func (c *Client) doWithRetry(req *http.Request, body []byte) (*http.Response, error) {
	delay := c.RetryDelay
	var lastErr error

	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-req.Context().Done():
				return nil, &TransientError{Message: "request cancelled", Err: req.Context().Err()}
			case <-time.After(delay):
			}
			delay *= 2
		}

		if body != nil {
			req.Body = io.NopCloser(bytes.NewReader(body))
			req.ContentLength = int64(len(body))
		}

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		// 5xx with no parseable envelope is transient; anything else is
		// handed back for envelope inspection.
		if resp.StatusCode >= 500 {
			raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
			resp.Body.Close()
			var env envelope
			if json.Unmarshal(raw, &env) == nil && env.Status == "error" {
				return nil, c.typedError(resp.StatusCode, env.Message)
			}
			lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
			continue
		}

		return resp, nil
	}

	return nil, &TransientError{Message: "retries exhausted", Err: lastErr}
}

func (c *Client) errorFromResponse(httpStatus int, raw []byte) error {
	var env envelope
	if json.Unmarshal(raw, &env) == nil && env.Status == "error" {
		return c.typedError(httpStatus, env.Message)
	}
	if httpStatus >= 500 {
		return &TransientError{Message: fmt.Sprintf("malformed response (HTTP %d)", httpStatus)}
	}
	return &CoordinatorError{Message: fmt.Sprintf("malformed response (HTTP %d)", httpStatus)}
}

// typedError maps a terminal error envelope to the error taxonomy
func (c *Client) typedError(httpStatus int, message string) error {
	switch {
	case httpStatus == http.StatusNotFound:
		return &NotFoundError{Message: message}
	case httpStatus >= 400 && httpStatus < 500:
		return &ValidationError{Message: message}
	default:
		return &CoordinatorError{Message: message}
	}
}
