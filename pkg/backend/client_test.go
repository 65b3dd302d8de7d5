package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pdf-insight-workspace/internal/dto"

	"github.com/stretchr/testify/assert"
)

func newTestClient(url string) *Client {
	return NewClient(url, 5*time.Second)
}

func TestListDocuments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/documents", r.URL.Path)
		io.WriteString(w, `[{"id":"doc-1","filename":"a.pdf","total_sections":12}]`)
	}))
	defer server.Close()

	docs, err := newTestClient(server.URL).ListDocuments(context.Background())

	assert.NoError(t, err)
	if assert.Len(t, docs, 1) {
		assert.Equal(t, "doc-1", docs[0].ID)
		assert.Equal(t, 12, docs[0].TotalSections)
	}
}

func TestGetDocumentEscapesID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/documents/doc%2F1", r.URL.EscapedPath())
		io.WriteString(w, `{"document":{"id":"doc/1"},"sections":[{"id":"s1","page_number":0}]}`)
	}))
	defer server.Close()

	detail, err := newTestClient(server.URL).GetDocument(context.Background(), "doc/1")

	assert.NoError(t, err)
	assert.Equal(t, "doc/1", detail.Document.ID)
	assert.Len(t, detail.Sections, 1)
}

func TestBatchUploadMultipartFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/batch-upload", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(1<<20))

		files := r.MultipartForm.File["files"]
		if assert.Len(t, files, 2, "every file goes under the same field name") {
			assert.Equal(t, "a.pdf", files[0].Filename)
			assert.Equal(t, "b.pdf", files[1].Filename)

			f, err := files[1].Open()
			assert.NoError(t, err)
			content, _ := io.ReadAll(f)
			f.Close()
			assert.Equal(t, "second file", string(content))
		}

		json.NewEncoder(w).Encode(dto.BatchUploadResponse{TotalFiles: 2, SuccessfulUploads: 2})
	}))
	defer server.Close()

	resp, err := newTestClient(server.URL).BatchUpload(context.Background(), []UploadFile{
		{Name: "a.pdf", Reader: strings.NewReader("first file")},
		{Name: "b.pdf", Reader: strings.NewReader("second file")},
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, resp.SuccessfulUploads)
}

func TestConnectDotsFormEncoding(t *testing.T) {
	tests := []struct {
		name        string
		contextText string
		wantContext bool
	}{
		{name: "context present", contextText: "nearby snippets", wantContext: true},
		{name: "blank context omitted", contextText: "   ", wantContext: false},
		{name: "empty context omitted", contextText: "", wantContext: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
				assert.NoError(t, r.ParseForm())
				assert.Equal(t, "selected", r.PostForm.Get("selected_text"))
				assert.Equal(t, "5", r.PostForm.Get("max_results"))
				_, hasContext := r.PostForm["context"]
				assert.Equal(t, tt.wantContext, hasContext)
				io.WriteString(w, `{"query":"selected","processing_time":0.4,"results":[]}`)
			}))
			defer server.Close()

			resp, err := newTestClient(server.URL).ConnectDots(context.Background(), dto.ConnectDotsRequest{
				SelectedText: "selected",
				Context:      tt.contextText,
				MaxResults:   5,
			})

			assert.NoError(t, err)
			assert.Equal(t, "selected", resp.Query)
		})
	}
}

func TestGenerateInsightsPostsJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/insights", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req dto.InsightRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "takeaways", req.InsightType)
		assert.Equal(t, []string{"s1", "s2"}, req.RelatedSections)

		json.NewEncoder(w).Encode(dto.InsightResponse{Insights: "generated", RelatedSectionsCount: 2})
	}))
	defer server.Close()

	resp, err := newTestClient(server.URL).GenerateInsights(context.Background(), dto.InsightRequest{
		SelectedText:    "selected",
		InsightType:     "takeaways",
		RelatedSections: []string{"s1", "s2"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "generated", resp.Insights)
}

func TestNonSuccessStatusBecomesError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "document not found", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GetDocument(context.Background(), "missing")

	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "status 404")
		assert.Contains(t, err.Error(), "document not found")
	}
}

func TestURLHelpers(t *testing.T) {
	c := NewClient("http://backend/", time.Second)

	assert.Equal(t, "http://backend", c.BaseURL, "trailing slash trimmed")
	assert.Equal(t, "http://backend/documents/doc-1/pdf", c.DocumentPDFURL("doc-1"))
	assert.Equal(t, "http://backend/audio/1.mp3", c.AudioFileURL("/audio/1.mp3"))
	assert.Equal(t, "http://backend/audio/1.mp3", c.AudioFileURL("audio/1.mp3"))
}
