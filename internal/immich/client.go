// Copyright (c) 2026 Shareframe. All rights reserved.
// Author: minh.anle.dev@gmail.com

/*
Package immich is a typed client for the subset of the Immich REST API that
Shareframe uses: album creation, asset upload, and album membership.

# Architecture

Each method maps 1:1 to one REST call and performs no retries — failures
propagate to the caller as-is, who decides whether to isolate (per-file
upload errors), swallow (album bookkeeping), or surface them. Every request
carries the server API key in the x-api-key header; guests never hold
backend credentials.

All calls share a 60 second client timeout on top of whatever deadline the
request context carries.
*/
package immich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/minhanle/shareframe/internal/platform/constants"
)

// deviceID identifies Shareframe as the uploading "device" to the backend.
const deviceID = "web-uploader"

// errorBodyLimit caps how much of an upstream error body is kept for logging.
const errorBodyLimit = 4096

// APIError is a non-2xx answer from the media backend.
//
// The body is retained for server-side logging only; handlers must never
// relay it to browsers.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("immich: %s %s returned %d", e.Method, e.Path, e.StatusCode)
}

// Client is a typed wrapper over the Immich album/asset endpoints.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *slog.Logger
}

// NewClient constructs a [Client] for the backend at baseURL.
func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: constants.MediaBackendTimeout},
		log:     logger,
	}
}

// # Albums

// CreateAlbum creates a new album (POST /api/albums).
func (c *Client) CreateAlbum(ctx context.Context, request CreateAlbumRequest) (*Album, error) {
	var album Album
	if err := c.doJSON(ctx, http.MethodPost, "/api/albums", nil, request, &album); err != nil {
		return nil, err
	}
	return &album, nil
}

// ListAlbums fetches all albums visible to the configured API key
// (GET /api/albums).
func (c *Client) ListAlbums(ctx context.Context) ([]Album, error) {
	var albums []Album
	if err := c.doJSON(ctx, http.MethodGet, "/api/albums", nil, nil, &albums); err != nil {
		return nil, err
	}
	return albums, nil
}

// GetAlbum fetches one album by id (GET /api/albums/{id}).
func (c *Client) GetAlbum(ctx context.Context, albumID string, options GetAlbumOptions) (*Album, error) {
	query := url.Values{}
	if options.Key != "" {
		query.Set("key", options.Key)
	}
	if options.Slug != "" {
		query.Set("slug", options.Slug)
	}
	if options.WithoutAssets {
		query.Set("withoutAssets", "true")
	}

	var album Album
	path := "/api/albums/" + url.PathEscape(albumID)
	if err := c.doJSON(ctx, http.MethodGet, path, query, nil, &album); err != nil {
		return nil, err
	}
	return &album, nil
}

// AddAssetsToAlbum attaches assets to an album (PUT /api/albums/{id}/assets).
// The result carries one entry per asset id, in request order.
func (c *Client) AddAssetsToAlbum(ctx context.Context, albumID string, assetIDs []string, options AlbumAccessOptions) ([]BulkIDResult, error) {
	query := url.Values{}
	if options.Key != "" {
		query.Set("key", options.Key)
	}
	if options.Slug != "" {
		query.Set("slug", options.Slug)
	}

	var results []BulkIDResult
	path := "/api/albums/" + url.PathEscape(albumID) + "/assets"
	body := map[string][]string{"ids": assetIDs}
	if err := c.doJSON(ctx, http.MethodPut, path, query, body, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// RemoveAssetsFromAlbum detaches assets from an album
// (DELETE /api/albums/{id}/assets).
//
// The DELETE carries a JSON body — the backend expects the id list there,
// not in the query or path.
func (c *Client) RemoveAssetsFromAlbum(ctx context.Context, albumID string, assetIDs []string) ([]BulkIDResult, error) {
	var results []BulkIDResult
	path := "/api/albums/" + url.PathEscape(albumID) + "/assets"
	body := map[string][]string{"ids": assetIDs}
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, body, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// # Assets

// UploadAsset streams one file to the backend (multipart POST /api/assets).
//
// The file is streamed through an io.Pipe so a 100MB video never sits fully
// in memory. The returned status ("created", "replaced", "duplicate") is the
// backend's own classification and is relayed untouched.
func (c *Client) UploadAsset(ctx context.Context, request UploadAssetRequest) (*UploadAssetResult, error) {
	file, err := os.Open(request.FilePath)
	if err != nil {
		return nil, fmt.Errorf("immich: open upload file: %w", err)
	}
	defer file.Close()

	pipeReader, pipeWriter := io.Pipe()
	form := multipart.NewWriter(pipeWriter)

	go func() {
		err := writeUploadForm(form, file, request)
		pipeWriter.CloseWithError(err)
	}()

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/assets", pipeReader)
	if err != nil {
		return nil, fmt.Errorf("immich: build upload request: %w", err)
	}
	c.setHeaders(httpRequest)
	httpRequest.Header.Set("Content-Type", form.FormDataContentType())

	response, err := c.http.Do(httpRequest)
	if err != nil {
		return nil, fmt.Errorf("immich: upload asset: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, c.apiError(http.MethodPost, "/api/assets", response)
	}

	var result UploadAssetResult
	if err := json.NewDecoder(response.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("immich: decode upload response: %w", err)
	}
	return &result, nil
}

// writeUploadForm emits the multipart body: the file stream first, then the
// device metadata fields the backend requires.
func writeUploadForm(form *multipart.Writer, file *os.File, request UploadAssetRequest) error {
	part, err := form.CreateFormFile("assetData", request.OriginalFilename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return err
	}

	fields := [][2]string{
		{"deviceAssetId", request.DeviceAssetID},
		{"deviceId", request.DeviceID},
		{"fileCreatedAt", request.FileCreatedAt.UTC().Format(time.RFC3339)},
		{"fileModifiedAt", request.FileModifiedAt.UTC().Format(time.RFC3339)},
		{"isFavorite", strconv.FormatBool(request.IsFavorite)},
	}
	if request.Duration != "" {
		fields = append(fields, [2]string{"duration", request.Duration})
	}
	if request.Visibility != "" {
		fields = append(fields, [2]string{"visibility", request.Visibility})
	}

	for _, field := range fields {
		if err := form.WriteField(field[0], field[1]); err != nil {
			return err
		}
	}

	return form.Close()
}

// # Device Identity

// GenerateDeviceAssetID produces a collision-resistant-enough identifier for
// one logical upload, letting the backend deduplicate retried uploads.
func (c *Client) GenerateDeviceAssetID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("web-upload-%d-%s", time.Now().UnixMilli(), suffix)
}

// DeviceID returns the fixed device identifier for this service.
func (c *Client) DeviceID() string {
	return deviceID
}

// # Transport Plumbing

// doJSON executes one JSON round trip against the backend.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("immich: encode %s %s body: %w", method, path, err)
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("immich: build %s %s request: %w", method, path, err)
	}
	c.setHeaders(request)
	if in != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.http.Do(request)
	if err != nil {
		return fmt.Errorf("immich: %s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return c.apiError(method, path, response)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("immich: decode %s %s response: %w", method, path, err)
	}
	return nil
}

// setHeaders stamps the authentication and accept headers on every request.
func (c *Client) setHeaders(request *http.Request) {
	request.Header.Set("x-api-key", c.apiKey)
	request.Header.Set("Accept", "application/json")
}

// apiError drains a bounded amount of the upstream error body for logging
// and wraps the response as an [*APIError].
func (c *Client) apiError(method, path string, response *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(response.Body, errorBodyLimit))

	apiErr := &APIError{
		StatusCode: response.StatusCode,
		Method:     method,
		Path:       path,
		Body:       string(body),
	}

	c.log.Error("immich_request_failed",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", response.StatusCode),
		slog.String("body", apiErr.Body),
	)

	return apiErr
}
