// Package backend is the HTTP client for the document insight service. Only
// the request/response contract lives here; retrieval orchestration and
// validation happen in the callers.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"pdf-insight-workspace/internal/dto"
)

type Client struct {
	BaseURL string
	Client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// ListDocuments fetches the corpus catalog.
func (c *Client) ListDocuments(ctx context.Context) ([]dto.DocumentInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/documents", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var docs []dto.DocumentInfo
	if err := c.do(req, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// GetDocument fetches one document's metadata plus all of its sections.
func (c *Client) GetDocument(ctx context.Context, documentID string) (*dto.DocumentDetail, error) {
	endpoint := fmt.Sprintf("%s/documents/%s", c.BaseURL, url.PathEscape(documentID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var detail dto.DocumentDetail
	if err := c.do(req, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// DocumentPDFURL returns the URL the viewer renders a document from.
func (c *Client) DocumentPDFURL(documentID string) string {
	return fmt.Sprintf("%s/documents/%s/pdf", c.BaseURL, url.PathEscape(documentID))
}

// AudioFileURL resolves the relative audio path from an audio response
// against the backend base URL.
func (c *Client) AudioFileURL(relativePath string) string {
	if strings.HasPrefix(relativePath, "/") {
		return c.BaseURL + relativePath
	}
	return c.BaseURL + "/" + relativePath
}

// EmbedAPIClientID fetches the viewer embedding credential.
func (c *Client) EmbedAPIClientID(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/pdf-embed-api", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp dto.EmbedAPIResponse
	if err := c.do(req, &resp); err != nil {
		return "", err
	}
	return resp.ClientID, nil
}

// UploadFile is one file in a batch upload.
type UploadFile struct {
	Name   string
	Reader io.Reader
}

// BatchUpload sends files as a multipart request, one part per file under the
// field name "files".
func (c *Client) BatchUpload(ctx context.Context, files []UploadFile) (*dto.BatchUploadResponse, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := writer.CreateFormFile("files", f.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return nil, fmt.Errorf("failed to write file %s: %w", f.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/batch-upload", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var resp dto.BatchUploadResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ConnectDots runs a semantic search. The request is form-encoded; context is
// omitted entirely when blank so the backend searches on the selection alone.
func (c *Client) ConnectDots(ctx context.Context, reqBody dto.ConnectDotsRequest) (*dto.ConnectDotsResponse, error) {
	form := url.Values{}
	form.Set("selected_text", reqBody.SelectedText)
	if strings.TrimSpace(reqBody.Context) != "" {
		form.Set("context", reqBody.Context)
	}
	form.Set("max_results", strconv.Itoa(reqBody.MaxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/connect-dots", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	var resp dto.ConnectDotsResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GenerateInsights asks for a textual insight over the grounding sections.
func (c *Client) GenerateInsights(ctx context.Context, reqBody dto.InsightRequest) (*dto.InsightResponse, error) {
	var resp dto.InsightResponse
	if err := c.postJSON(ctx, "/insights", reqBody, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GenerateAudio asks for a synthesized audio overview.
func (c *Client) GenerateAudio(ctx context.Context, reqBody dto.AudioRequest) (*dto.AudioResponse, error) {
	var resp dto.AudioResponse
	if err := c.postJSON(ctx, "/audio-overview", reqBody, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload interface{}, out interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

// do executes a request and decodes the JSON body into out. Non-2xx statuses
// become a generic error carrying the status and raw body text; the body is
// never parsed for structured error detail.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("backend error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
