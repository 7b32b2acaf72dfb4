package models

import "strings"

// MediaKind is the client-side classification of a pending media file.
// It drives preview rendering only and is never transmitted.
type MediaKind string

// Media kinds
const (
	MediaImage   MediaKind = "image"
	MediaVideo   MediaKind = "video"
	MediaAudio   MediaKind = "audio"
	MediaUnknown MediaKind = "unknown"
)

// KindOf classifies a declared content type
func KindOf(contentType string) MediaKind {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return MediaImage
	case strings.HasPrefix(contentType, "video/"):
		return MediaVideo
	case strings.HasPrefix(contentType, "audio/"):
		return MediaAudio
	}
	return MediaUnknown
}

// PendingAsset is a user-selected media file held client-side until the
// report it belongs to is submitted
type PendingAsset struct {
	Name        string
	ContentType string
	Kind        MediaKind
	Size        int64
	Preview     string // data URI, set once derivation finishes
	Data        []byte
}

// FormPart is one binary part of a multipart submission
type FormPart struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}
