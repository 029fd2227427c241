package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path"
	"strings"
)

// AttachmentKind selects the accepted extension set for an upload.
type AttachmentKind string

const (
	AttachmentDocument AttachmentKind = "document"
	AttachmentImage    AttachmentKind = "image"
	AttachmentVideo    AttachmentKind = "video"
)

var attachmentExtensions = map[AttachmentKind]map[string]bool{
	AttachmentDocument: {".pdf": true, ".doc": true, ".docx": true},
	AttachmentImage:    {".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true},
	AttachmentVideo:    {".mp4": true, ".webm": true, ".mov": true},
}

// ValidateAttachment checks the filename extension against the accepted set
// for the kind. Both the catalog services and the upload handlers consult
// this one function, so the two enforcement sites cannot drift.
func ValidateAttachment(kind AttachmentKind, filename string) error {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" || !attachmentExtensions[kind][ext] {
		return fmt.Errorf("%w: %q is not a recognized %s", ErrInvalidFileFormat, filename, kind)
	}
	return nil
}

// storageKey builds a collision-resistant object key under the given prefix,
// preserving the original extension.
func storageKey(prefix, filename string) string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		// rand.Read only fails when the OS entropy source is broken.
		buf = []byte(filename)
	}
	return fmt.Sprintf("%s/%s%s", prefix, hex.EncodeToString(buf), strings.ToLower(path.Ext(filename)))
}
