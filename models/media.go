package models

import "time"

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

func (t MediaType) Valid() bool {
	return t == MediaImage || t == MediaVideo
}

type MediaContent struct {
	ID         int       `json:"id" db:"id"`
	Title      string    `json:"title" db:"title"`
	Type       MediaType `json:"type" db:"type"`
	UploadedAt time.Time `json:"uploaded_at" db:"uploaded_at"`

	FileKey string  `json:"-" db:"file_key"`
	FileURL *string `json:"file_url,omitempty" db:"-"`
}

type ContactInfo struct {
	ID       int    `json:"id" db:"id"`
	Platform string `json:"platform" db:"platform"`
	Link     string `json:"link" db:"link"`
}
