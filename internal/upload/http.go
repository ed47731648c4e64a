// Copyright (c) 2026 Shareframe. All rights reserved.
// Author: minh.anle.dev@gmail.com

/*
Package upload orchestrates one photo/video upload batch end to end.

One POST /api/upload request runs through a fixed gate order — session,
CSRF, per-session rate limit, payload shape — then creates the target album,
pushes each file to the media backend sequentially, attaches the successful
assets to the album, and records the album against the session cookie.

# Failure Isolation

Per-file failures are recorded in the results list and never abort the
batch. Once the album exists and files have reached the backend, the
"files are safely stored" guarantee is met: a failed album attach or a
failed session update is logged and swallowed rather than failing the
response. Album creation failure, by contrast, aborts the whole batch —
there is nothing to attach uploads to.
*/
package upload

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/minhanle/shareframe/internal/auth"
	"github.com/minhanle/shareframe/internal/immich"
	"github.com/minhanle/shareframe/internal/platform/apperr"
	"github.com/minhanle/shareframe/internal/platform/constants"
	"github.com/minhanle/shareframe/internal/platform/ctxutil"
	"github.com/minhanle/shareframe/internal/platform/ratelimit"
	"github.com/minhanle/shareframe/internal/platform/respond"
	"github.com/minhanle/shareframe/internal/platform/validate"
	"github.com/minhanle/shareframe/pkg/safename"
)

// # Definitions & Constructors

// Handler implements the upload endpoint.
type Handler struct {
	sessions *auth.Manager
	csrf     *auth.CSRFGuard
	limiter  *ratelimit.Limiter
	media    *immich.Client

	// tempDir is where incoming files are materialized before the backend
	// push. Defaults to os.TempDir().
	tempDir string
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(sessions *auth.Manager, csrf *auth.CSRFGuard, limiter *ratelimit.Limiter, media *immich.Client) *Handler {
	return &Handler{
		sessions: sessions,
		csrf:     csrf,
		limiter:  limiter,
		media:    media,
		tempDir:  os.TempDir(),
	}
}

// Routes returns a [chi.Router] with the upload endpoint.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.upload)
	return router
}

/*
Upload processes one multipart upload batch.

POST /api/upload

Gate order: session presence (401) → CSRF header presence and validity
(403) → per-session rate limit, 1 batch per minute (429 with X-RateLimit-*
headers) → payload shape (400: album name required, at least one file, at
most 100 files).

Request:
  - Multipart form: albumName (field), photos (one part per file)
  - Header: X-CSRF-Token

Response:
  - 200: Response (aggregated result; per-file outcomes preserve input order)
  - 401: authenticationRequired
  - 403: csrfTokenRequired | invalidCsrfToken
  - 429: rateLimited
  - 500: uploadFailed when the album itself cannot be created
*/
func (handler *Handler) upload(writer http.ResponseWriter, request *http.Request) {
	log := ctxutil.GetLogger(request.Context())

	// ── Gate 1: session ────────────────────────────────────────────────────
	session, err := handler.sessions.FromRequest(request)
	if err != nil {
		respond.Error(writer, request, apperr.Unauthorized(
			"authenticationRequired", "Authentication required"))
		return
	}

	// ── Gate 2: CSRF ───────────────────────────────────────────────────────
	csrfToken := request.Header.Get(constants.HeaderCSRFToken)
	if csrfToken == "" {
		respond.Error(writer, request, apperr.Forbidden(
			"csrfTokenRequired", "CSRF token required"))
		return
	}
	if err := handler.csrf.Verify(csrfToken, session.SessionID); err != nil {
		respond.Error(writer, request, apperr.Forbidden(
			"invalidCsrfToken", "Invalid CSRF token"))
		return
	}

	// ── Gate 3: per-session rate limit ─────────────────────────────────────
	result := handler.limiter.Check(
		"upload-"+session.SessionID,
		constants.UploadRateLimitMax,
		constants.UploadRateLimitWindow,
	)
	ratelimit.SetHeaders(writer, result)
	if !result.Allowed {
		respond.Error(writer, request, apperr.RateLimited(
			"Please wait before starting another upload."))
		return
	}

	// ── Gate 4: payload shape ──────────────────────────────────────────────
	if err := request.ParseMultipartForm(constants.MultipartMemoryBytes); err != nil {
		respond.Error(writer, request, apperr.BadRequest(
			"invalidUploadForm", "Could not parse the upload form"))
		return
	}
	defer func() {
		if err := request.MultipartForm.RemoveAll(); err != nil {
			log.Warn("multipart_cleanup_failed", slog.Any("error", err))
		}
	}()

	albumName := strings.TrimSpace(request.FormValue(constants.FormFieldAlbumName))
	files := request.MultipartForm.File[constants.FormFieldPhotos]

	validator := &validate.Validator{}
	validator.Required(constants.FormFieldAlbumName, albumName).
		Custom(constants.FormFieldPhotos, len(files) == 0, "At least one file is required").
		Custom(constants.FormFieldPhotos, len(files) > constants.MaxFilesPerBatch,
			fmt.Sprintf("At most %d files per upload", constants.MaxFilesPerBatch))

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── Create the album; failure here aborts the whole batch ─────────────
	album, err := handler.media.CreateAlbum(request.Context(), immich.CreateAlbumRequest{
		AlbumName:   albumName,
		Description: "Shared by " + session.UserName,
	})
	if err != nil {
		respond.Error(writer, request, apperr.Upstream("uploadFailed", err))
		return
	}

	log.Info("upload_batch_started",
		slog.String("album_id", album.ID),
		slog.String("album_name", albumName),
		slog.Int("file_count", len(files)),
	)

	// ── Upload files sequentially, preserving input order in the results ──
	results := make([]FileResult, 0, len(files))
	assetIDs := make([]string, 0, len(files))

	for _, fileHeader := range files {
		filename := fileHeader.Filename

		if code := validateFile(fileHeader); code != "" {
			results = append(results, FileResult{
				Success:  false,
				Filename: filename,
				Error:    code,
			})
			continue
		}

		assetID, err := handler.uploadOne(request.Context(), log, fileHeader)
		if err != nil {
			log.Error("file_upload_failed",
				slog.String("filename", filename),
				slog.Any("error", err),
			)
			results = append(results, FileResult{
				Success:  false,
				Filename: filename,
				Error:    CodeUploadFailed,
			})
			continue
		}

		assetIDs = append(assetIDs, assetID)
		results = append(results, FileResult{
			Success:  true,
			Filename: filename,
			AssetID:  assetID,
		})
	}

	// ── Attach successful assets; failure is logged and swallowed ─────────
	// The files are already safely stored by the backend at this point.
	if len(assetIDs) > 0 {
		if _, err := handler.media.AddAssetsToAlbum(request.Context(), album.ID, assetIDs, immich.AlbumAccessOptions{}); err != nil {
			log.Error("album_attach_failed",
				slog.String("album_id", album.ID),
				slog.Int("asset_count", len(assetIDs)),
				slog.Any("error", err),
			)
		}
	}

	// ── Record the album against the session; same swallow policy ─────────
	if err := handler.sessions.AppendAlbum(writer, request, session.SessionID, album.ID); err != nil {
		log.Error("session_album_update_failed",
			slog.String("album_id", album.ID),
			slog.Any("error", err),
		)
	}

	log.Info("upload_batch_finished",
		slog.String("album_id", album.ID),
		slog.Int("uploaded", len(assetIDs)),
		slog.Int("total", len(files)),
	)

	respond.OK(writer, Response{
		Success:       true,
		AlbumID:       album.ID,
		AlbumName:     albumName,
		UploadedCount: len(assetIDs),
		TotalCount:    len(files),
		Results:       results,
	})
}

// uploadOne materializes one validated file to a temporary path, pushes it to
// the media backend, and always removes the temporary file afterward —
// success or failure. A deletion failure is logged, never surfaced.
func (handler *Handler) uploadOne(ctx context.Context, log *slog.Logger, fileHeader *multipart.FileHeader) (string, error) {
	tempPath := filepath.Join(handler.tempDir, fmt.Sprintf("%d-%s",
		time.Now().UnixNano(), safename.Sanitize(fileHeader.Filename)))

	if err := writeTempFile(fileHeader, tempPath); err != nil {
		return "", fmt.Errorf("upload: write temp file: %w", err)
	}
	defer func() {
		if err := os.Remove(tempPath); err != nil {
			log.Warn("temp_file_cleanup_failed",
				slog.String("path", tempPath),
				slog.Any("error", err),
			)
		}
	}()

	now := time.Now().UTC()
	asset, err := handler.media.UploadAsset(ctx, immich.UploadAssetRequest{
		FilePath:         tempPath,
		OriginalFilename: fileHeader.Filename,
		DeviceAssetID:    handler.media.GenerateDeviceAssetID(),
		DeviceID:         handler.media.DeviceID(),
		FileCreatedAt:    now,
		FileModifiedAt:   now,
	})
	if err != nil {
		return "", err
	}

	log.Debug("asset_uploaded",
		slog.String("asset_id", asset.ID),
		slog.String("status", asset.Status),
	)

	return asset.ID, nil
}

// writeTempFile copies the multipart part to tempPath.
func writeTempFile(fileHeader *multipart.FileHeader, tempPath string) error {
	source, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer source.Close()

	destination, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return err
	}

	if _, err := io.Copy(destination, source); err != nil {
		destination.Close()
		return err
	}
	return destination.Close()
}
