// Copyright (c) 2026 Shareframe. All rights reserved.
// Author: minh.anle.dev@gmail.com

package album_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhanle/shareframe/internal/album"
	"github.com/minhanle/shareframe/internal/immich"
)

const validAlbumID = "9f4c2f3a-1b2c-4d5e-8f90-112233445566"

// newAlbumRouter wires the handler against a scripted backend.
func newAlbumRouter(t *testing.T, backend http.HandlerFunc) http.Handler {
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	media := immich.NewClient(server.URL, "test-api-key", logger)

	return album.NewHandler(media).Routes()
}

/*
TestAlbums_List relays the backend's album list untouched.
*/
func TestAlbums_List(t *testing.T) {
	router := newAlbumRouter(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodGet, request.Method)
		assert.Equal(t, "/api/albums", request.URL.Path)
		_ = json.NewEncoder(writer).Encode([]immich.Album{
			{ID: validAlbumID, AlbumName: "Summer 2026", AssetCount: 12},
		})
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var albums []immich.Album
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &albums))
	require.Len(t, albums, 1)
	assert.Equal(t, "Summer 2026", albums[0].AlbumName)
	assert.Equal(t, 12, albums[0].AssetCount)
}

/*
TestAlbums_Get validates the id before calling out and forwards shared-link
query parameters.
*/
func TestAlbums_Get(t *testing.T) {
	t.Run("malformed_id", func(t *testing.T) {
		router := newAlbumRouter(t, func(writer http.ResponseWriter, request *http.Request) {
			t.Error("backend must not be called for a malformed id")
		})

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/not-a-uuid", nil))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("forwards_query", func(t *testing.T) {
		router := newAlbumRouter(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/albums/"+validAlbumID, request.URL.Path)
			assert.Equal(t, "share-key", request.URL.Query().Get("key"))
			assert.Equal(t, "true", request.URL.Query().Get("withoutAssets"))
			_ = json.NewEncoder(writer).Encode(immich.Album{ID: validAlbumID})
		})

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet,
			"/"+validAlbumID+"?key=share-key&withoutAssets=true", nil))

		require.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("backend_failure", func(t *testing.T) {
		router := newAlbumRouter(t, func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusBadGateway)
		})

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/"+validAlbumID, nil))

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)

		var envelope struct {
			Code string `json:"code"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.Equal(t, "albumFetchFailed", envelope.Code)
	})
}

/*
TestAlbums_AddAssets covers id-list validation and the aggregated response.
*/
func TestAlbums_AddAssets(t *testing.T) {
	t.Run("empty_asset_list", func(t *testing.T) {
		router := newAlbumRouter(t, func(writer http.ResponseWriter, request *http.Request) {
			t.Error("backend must not be called without asset ids")
		})

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPut,
			"/"+validAlbumID+"/assets", strings.NewReader(`{"assetIds":[]}`)))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("success", func(t *testing.T) {
		router := newAlbumRouter(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodPut, request.Method)
			_ = json.NewEncoder(writer).Encode([]immich.BulkIDResult{
				{ID: "asset-1", Success: true},
			})
		})

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPut,
			"/"+validAlbumID+"/assets", strings.NewReader(`{"assetIds":["asset-1"]}`)))

		require.Equal(t, http.StatusOK, recorder.Code)

		var response map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, true, response["success"])
		assert.Equal(t, validAlbumID, response["albumId"])
		assert.Equal(t, float64(1), response["addedAssets"])
	})
}

/*
TestAlbums_RemoveAssets checks the removal path reaches the backend as a
DELETE with the id list.
*/
func TestAlbums_RemoveAssets(t *testing.T) {
	router := newAlbumRouter(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodDelete, request.Method)

		var body map[string][]string
		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, []string{"asset-1", "asset-2"}, body["ids"])

		_ = json.NewEncoder(writer).Encode([]immich.BulkIDResult{
			{ID: "asset-1", Success: true},
			{ID: "asset-2", Success: true},
		})
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete,
		"/"+validAlbumID+"/assets", strings.NewReader(`{"assetIds":["asset-1","asset-2"]}`)))

	require.Equal(t, http.StatusOK, recorder.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, float64(2), response["removedAssets"])
}
