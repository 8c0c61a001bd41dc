// Package upload validates profile photo uploads. The decision is made on
// the actual file bytes, never on the client-declared content type, and the
// stored name is random so files cannot be guessed or overwritten.
package upload

import (
	"io"
	"mime/multipart"
	"path"

	"github.com/gabriel-vasile/mimetype"

	"accountportal/internal/platform/storage"
	"accountportal/pkg/utils"
)

// Error is a photo upload failure: transfer error, size, type, or a
// storage problem. Message is safe to show to the user.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Canonical extension per accepted sniffed type.
var extByType = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

type Guard struct {
	store    storage.StorageService
	dir      string
	maxBytes int64
}

func NewGuard(store storage.StorageService, dir string, maxBytes int64) *Guard {
	return &Guard{store: store, dir: dir, maxBytes: maxBytes}
}

// Process validates and stores an uploaded photo, returning the relative
// reference to persist on the user record. A nil header means no file was
// submitted, which is valid: the upload is optional and the reference is
// empty.
func (g *Guard) Process(file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", nil
	}

	if file.Size > g.maxBytes {
		return "", &Error{Message: "Image too large (max 2MB)."}
	}

	f, err := file.Open()
	if err != nil {
		return "", &Error{Message: "Upload failed.", Err: err}
	}
	defer f.Close()

	// The declared size is not trusted either; read one byte past the cap
	// to catch a larger body.
	data, err := io.ReadAll(io.LimitReader(f, g.maxBytes+1))
	if err != nil {
		return "", &Error{Message: "Upload failed.", Err: err}
	}
	if int64(len(data)) > g.maxBytes {
		return "", &Error{Message: "Image too large (max 2MB)."}
	}

	ext, ok := extByType[mimetype.Detect(data).String()]
	if !ok {
		return "", &Error{Message: "Invalid image type."}
	}

	name, err := utils.GenerateRandomHex(16)
	if err != nil {
		return "", &Error{Message: "Failed to save image.", Err: err}
	}

	ref := path.Join(g.dir, name+"."+ext)
	if err := g.store.Save(ref, data); err != nil {
		return "", &Error{Message: "Failed to save image.", Err: err}
	}

	return ref, nil
}
