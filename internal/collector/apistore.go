package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/linkstash/linkstash-backend/internal/models"
)

// APIStore is the HTTP implementation of Store, speaking to the Linkstash
// backend API. It is the process-wide connection handle: construct one and
// share it across controllers.
type APIStore struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewAPIStore creates a Store backed by the API at baseURL. The apiKey is
// optional; when set it is sent as a bearer token.
func NewAPIStore(baseURL, apiKey string) *APIStore {
	return &APIStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{},
	}
}

// envelope mirrors the API's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

func (s *APIStore) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}
	return req, nil
}

// do executes the request and decodes the response envelope into out.
// A nil out discards the payload.
func (s *APIStore) do(req *http.Request, out interface{}) error {
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		if env.Error != "" {
			return fmt.Errorf("%s (%s)", env.Error, env.Code)
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

func (s *APIStore) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := s.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return s.do(req, out)
}

func (s *APIStore) sendJSON(ctx context.Context, method, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := s.newRequest(ctx, method, path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return s.do(req, out)
}

// ListLinks fetches every saved link, newest first.
func (s *APIStore) ListLinks(ctx context.Context) ([]models.Link, error) {
	var links []models.Link
	if err := s.getJSON(ctx, "/api/links", &links); err != nil {
		return nil, &StoreError{Op: "ListLinks", Err: err}
	}
	return links, nil
}

// CreateLink saves a new link. An empty gradient lets the server pick one.
func (s *APIStore) CreateLink(ctx context.Context, title, url, gradient string) (*models.Link, error) {
	payload := map[string]interface{}{
		"title":    title,
		"url":      url,
		"gradient": gradient,
	}
	var link models.Link
	if err := s.sendJSON(ctx, http.MethodPost, "/api/links", payload, &link); err != nil {
		return nil, &StoreError{Op: "CreateLink", Err: err}
	}
	return &link, nil
}

// UpdateLink replaces the editable fields of an existing link.
func (s *APIStore) UpdateLink(ctx context.Context, id uint, fields LinkFields) (*models.Link, error) {
	payload := map[string]interface{}{
		"title": fields.Title,
		"url":   fields.URL,
	}
	var link models.Link
	if err := s.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/api/links/%d", id), payload, &link); err != nil {
		return nil, &StoreError{Op: "UpdateLink", Err: err}
	}
	return &link, nil
}

// ListFiles fetches the file records attached to a link, newest first.
func (s *APIStore) ListFiles(ctx context.Context, linkID uint) ([]models.File, error) {
	var files []models.File
	if err := s.getJSON(ctx, fmt.Sprintf("/api/links/%d/files", linkID), &files); err != nil {
		return nil, &StoreError{Op: "ListFiles", Err: err}
	}
	return files, nil
}

// CountFiles fetches the number of file records attached to a link.
func (s *APIStore) CountFiles(ctx context.Context, linkID uint) (int64, error) {
	var out struct {
		Count int64 `json:"count"`
	}
	if err := s.getJSON(ctx, fmt.Sprintf("/api/links/%d/files/count", linkID), &out); err != nil {
		return 0, &StoreError{Op: "CountFiles", Err: err}
	}
	return out.Count, nil
}

// UploadObject stores the raw content under a fresh key scoped to the link
// and returns the key and its public URL. The metadata row is recorded
// separately via CreateFileRecord.
func (s *APIStore) UploadObject(ctx context.Context, linkID uint, name, contentType string, content io.Reader) (string, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return "", "", &StoreError{Op: "UploadObject", Err: err}
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", "", &StoreError{Op: "UploadObject", Err: err}
	}
	if err := writer.Close(); err != nil {
		return "", "", &StoreError{Op: "UploadObject", Err: err}
	}

	req, err := s.newRequest(ctx, http.MethodPost, fmt.Sprintf("/api/links/%d/objects", linkID), &buf)
	if err != nil {
		return "", "", &StoreError{Op: "UploadObject", Err: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var out struct {
		Key string `json:"key"`
		URL string `json:"url"`
	}
	if err := s.do(req, &out); err != nil {
		return "", "", &StoreError{Op: "UploadObject", Err: err}
	}
	return out.Key, out.URL, nil
}

// CreateFileRecord records the metadata row for an already-stored object.
func (s *APIStore) CreateFileRecord(ctx context.Context, file *models.File) (*models.File, error) {
	payload := map[string]interface{}{
		"link_id":     file.LinkID,
		"name":        file.Name,
		"url":         file.URL,
		"type":        file.Type,
		"storage_key": file.StorageKey,
		"size_bytes":  file.SizeBytes,
	}
	var created models.File
	if err := s.sendJSON(ctx, http.MethodPost, "/api/files", payload, &created); err != nil {
		return nil, &StoreError{Op: "CreateFileRecord", Err: err}
	}
	return &created, nil
}

// DeleteFile removes a file's metadata row. The stored object is left
// behind, matching the server's delete semantics.
func (s *APIStore) DeleteFile(ctx context.Context, id uint) error {
	req, err := s.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/files/%d", id), nil)
	if err != nil {
		return &StoreError{Op: "DeleteFile", Err: err}
	}
	if err := s.do(req, nil); err != nil {
		return &StoreError{Op: "DeleteFile", Err: err}
	}
	return nil
}
