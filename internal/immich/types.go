// Copyright (c) 2026 Shareframe. All rights reserved.
// Author: minh.anle.dev@gmail.com

package immich

import "time"

// # Album Resources

// User identifies an Immich account referenced by album metadata.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	AvatarColor string `json:"avatarColor"`
}

// AlbumUser is one account an album is shared with, and its role.
type AlbumUser struct {
	Role string `json:"role"`
	User User   `json:"user"`
}

// Asset is one photo or video stored by Immich.
//
// Timestamps stay as the wire strings — Shareframe relays them untouched and
// never does date arithmetic on backend-owned data.
type Asset struct {
	ID               string         `json:"id"`
	DeviceAssetID    string         `json:"deviceAssetId"`
	Type             string         `json:"type"`
	OriginalFileName string         `json:"originalFileName"`
	Resized          bool           `json:"resized"`
	Thumbhash        string         `json:"thumbhash,omitempty"`
	FileCreatedAt    string         `json:"fileCreatedAt"`
	FileModifiedAt   string         `json:"fileModifiedAt"`
	UpdatedAt        string         `json:"updatedAt"`
	IsFavorite       bool           `json:"isFavorite"`
	IsArchived       bool           `json:"isArchived"`
	Duration         string         `json:"duration,omitempty"`
	LivePhotoVideoID string         `json:"livePhotoVideoId,omitempty"`
	ExifInfo         map[string]any `json:"exifInfo,omitempty"`
	Checksum         string         `json:"checksum"`
}

// Album is a named collection of assets owned by the media backend.
// Shareframe only ever references albums by id.
type Album struct {
	ID                    string      `json:"id"`
	AlbumName             string      `json:"albumName"`
	Description           string      `json:"description"`
	CreatedAt             string      `json:"createdAt"`
	UpdatedAt             string      `json:"updatedAt"`
	AlbumThumbnailAssetID string      `json:"albumThumbnailAssetId,omitempty"`
	Shared                bool        `json:"shared"`
	HasSharedLink         bool        `json:"hasSharedLink"`
	StartDate             string      `json:"startDate,omitempty"`
	EndDate               string      `json:"endDate,omitempty"`
	AssetCount            int         `json:"assetCount"`
	Owner                 User        `json:"owner"`
	AlbumUsers            []AlbumUser `json:"albumUsers"`
	Assets                []Asset     `json:"assets"`
}

// # Request / Response Payloads

// CreateAlbumRequest is the payload for POST /api/albums.
type CreateAlbumRequest struct {
	AlbumName   string           `json:"albumName"`
	Description string           `json:"description,omitempty"`
	AssetIDs    []string         `json:"assetIds,omitempty"`
	AlbumUsers  []AlbumUserShare `json:"albumUsers,omitempty"`
}

// AlbumUserShare requests sharing a new album with an existing account.
type AlbumUserShare struct {
	// Role is either "editor" or "viewer".
	Role   string `json:"role"`
	UserID string `json:"userId"`
}

// UploadAssetRequest describes one multipart asset upload (POST /api/assets).
type UploadAssetRequest struct {
	// FilePath is the local temporary file to stream to the backend.
	FilePath string

	// OriginalFilename is the name the guest's browser declared.
	OriginalFilename string

	// DeviceAssetID plus DeviceID let the backend deduplicate retried uploads
	// from the same logical device.
	DeviceAssetID string
	DeviceID      string

	FileCreatedAt  time.Time
	FileModifiedAt time.Time

	// Optional fields; zero values are omitted from the form.
	IsFavorite bool
	Duration   string
	Visibility string
}

// UploadAssetResult is the backend's answer to an asset upload.
//
// Status is "created", "replaced", or "duplicate" (content-checksum match);
// the client relays it verbatim and never special-cases any value.
type UploadAssetResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// GetAlbumOptions carries the optional query parameters of GET /api/albums/{id}.
type GetAlbumOptions struct {
	// Key and Slug grant shared-link access.
	Key  string
	Slug string

	// WithoutAssets suppresses the album's asset list in the response.
	WithoutAssets bool
}

// AlbumAccessOptions carries shared-link access parameters for asset updates.
type AlbumAccessOptions struct {
	Key  string
	Slug string
}

// BulkIDResult is the per-asset outcome of an album add/remove call.
type BulkIDResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
