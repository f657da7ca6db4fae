package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/finova-data/finova-client/pkg/models/api"
)

// Analyze uploads a dataset for profiling and scoring. The body is
// multipart (field "file"), so the request builder sets no structured
// content type of its own; the multipart writer's type, boundary included,
// is passed through instead. Credential injection and 401 handling work
// exactly as for JSON calls.
func (c *Client) Analyze(ctx context.Context, filename string, file io.Reader, includeExplanation bool) (*api.AnalysisResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create multipart field: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", filename, err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	path := "/analyze/"
	if includeExplanation {
		path += "?explain=1"
	}

	var result api.AnalysisResult
	err = c.do(ctx, path, requestOptions{
		method:      http.MethodPost,
		body:        &buf,
		multipart:   true,
		contentType: writer.FormDataContentType(),
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// History lists past analyses, newest first. An account with no analyses
// yields an empty slice, never nil: the UI boundary relies on an empty
// sequence rather than an absence.
func (c *Client) History(ctx context.Context) ([]api.HistoryEntry, error) {
	var entries []api.HistoryEntry
	err := c.do(ctx, "/history/", requestOptions{method: http.MethodGet}, &entries)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []api.HistoryEntry{}
	}
	return entries, nil
}

// HistoryDetail fetches one stored analysis record.
func (c *Client) HistoryDetail(ctx context.Context, id int) (*api.HistoryDetail, error) {
	var detail api.HistoryDetail
	err := c.do(ctx, fmt.Sprintf("/history/%d/", id), requestOptions{method: http.MethodGet}, &detail)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// Trend reports score movement across the stored history.
func (c *Client) Trend(ctx context.Context) (*api.TrendReport, error) {
	var report api.TrendReport
	err := c.do(ctx, "/trend/", requestOptions{method: http.MethodGet}, &report)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// Health checks the remote engine, including whether its ontology loaded.
func (c *Client) Health(ctx context.Context) (*api.HealthStatus, error) {
	var status api.HealthStatus
	err := c.do(ctx, "/health/", requestOptions{method: http.MethodGet}, &status)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// Chat sends a follow-up question, echoing back the opaque context bundle
// from a prior analysis when one is available.
func (c *Client) Chat(ctx context.Context, message string, contextBundle map[string]interface{}) (*api.ChatResponse, error) {
	var resp api.ChatResponse
	err := c.do(ctx, "/chat/", requestOptions{
		method:   http.MethodPost,
		jsonBody: api.ChatRequest{Message: message, Context: contextBundle},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
