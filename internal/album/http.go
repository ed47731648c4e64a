// Copyright (c) 2026 Shareframe. All rights reserved.
// Author: minh.anle.dev@gmail.com

/*
Package album proxies album-management calls to the media backend.

These routes are authenticated by the server-side API key the [immich.Client]
carries, not by a guest session: they exist for the album-view screens, which
address albums the backend already knows about. The handlers translate
browser requests 1:1 into backend calls and relay typed results; upstream
error bodies never reach the browser.
*/
package album

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/minhanle/shareframe/internal/immich"
	"github.com/minhanle/shareframe/internal/platform/apperr"
	requestutil "github.com/minhanle/shareframe/internal/platform/request"
	"github.com/minhanle/shareframe/internal/platform/respond"
	"github.com/minhanle/shareframe/internal/platform/validate"
)

// Handler implements the album proxy endpoints.
type Handler struct {
	media *immich.Client
}

// NewHandler constructs a new [Handler].
func NewHandler(media *immich.Client) *Handler {
	return &Handler{media: media}
}

// Routes returns a [chi.Router] configured with the album routes.
//
// # Endpoints
//   - GET    /           : List albums.
//   - GET    /{id}        : Fetch one album (forwards key/slug/withoutAssets).
//   - PUT    /{id}/assets : Add assets to an album.
//   - DELETE /{id}/assets : Remove assets from an album.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)
	router.Put("/{id}/assets", handler.addAssets)
	router.Delete("/{id}/assets", handler.removeAssets)

	return router
}

// # Request Payloads

type assetIDsRequest struct {
	AssetIDs []string `json:"assetIds"`
}

/*
List returns all albums visible to the configured API key.

GET /api/albums

Response:
  - 200: []immich.Album
  - 500: albumsFetchFailed
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	albums, err := handler.media.ListAlbums(request.Context())
	if err != nil {
		respond.Error(writer, request, apperr.Upstream("albumsFetchFailed", err))
		return
	}

	respond.OK(writer, albums)
}

/*
Get fetches one album by id.

GET /api/albums/{id}

Query parameters key, slug, and withoutAssets are forwarded to the backend
for shared-link access and asset-list suppression.

Response:
  - 200: immich.Album
  - 400: validationError: Malformed album id
  - 500: albumFetchFailed
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	albumID := requestutil.Param(request, "id")

	validator := &validate.Validator{}
	if err := validator.UUID("id", albumID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	query := request.URL.Query()
	album, err := handler.media.GetAlbum(request.Context(), albumID, immich.GetAlbumOptions{
		Key:           query.Get("key"),
		Slug:          query.Get("slug"),
		WithoutAssets: query.Get("withoutAssets") == "true",
	})
	if err != nil {
		respond.Error(writer, request, apperr.Upstream("albumFetchFailed", err))
		return
	}

	respond.OK(writer, album)
}

/*
AddAssets attaches assets to an album.

PUT /api/albums/{id}/assets

Request:
  - Body: {assetIds: string[]} (required, non-empty)

Response:
  - 200: {success, albumId, addedAssets, results}
  - 400: validationError: Missing or empty assetIds
  - 500: albumUpdateFailed
*/
func (handler *Handler) addAssets(writer http.ResponseWriter, request *http.Request) {
	albumID := requestutil.Param(request, "id")

	var input assetIDsRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.UUID("id", albumID).
		Custom("assetIds", len(input.AssetIDs) == 0, "assetIds array is required")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	query := request.URL.Query()
	results, err := handler.media.AddAssetsToAlbum(request.Context(), albumID, input.AssetIDs, immich.AlbumAccessOptions{
		Key:  query.Get("key"),
		Slug: query.Get("slug"),
	})
	if err != nil {
		respond.Error(writer, request, apperr.Upstream("albumUpdateFailed", err))
		return
	}

	respond.OK(writer, map[string]any{
		"success":     true,
		"albumId":     albumID,
		"addedAssets": len(input.AssetIDs),
		"results":     results,
	})
}

/*
RemoveAssets detaches assets from an album.

DELETE /api/albums/{id}/assets

Request:
  - Body: {assetIds: string[]} (required, non-empty)

Response:
  - 200: {success, albumId, removedAssets, results}
  - 400: validationError: Missing or empty assetIds
  - 500: albumUpdateFailed
*/
func (handler *Handler) removeAssets(writer http.ResponseWriter, request *http.Request) {
	albumID := requestutil.Param(request, "id")

	var input assetIDsRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.UUID("id", albumID).
		Custom("assetIds", len(input.AssetIDs) == 0, "assetIds array is required")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	results, err := handler.media.RemoveAssetsFromAlbum(request.Context(), albumID, input.AssetIDs)
	if err != nil {
		respond.Error(writer, request, apperr.Upstream("albumUpdateFailed", err))
		return
	}

	respond.OK(writer, map[string]any{
		"success":       true,
		"albumId":       albumID,
		"removedAssets": len(input.AssetIDs),
		"results":       results,
	})
}
