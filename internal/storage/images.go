package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// MaxImageSize is the largest accepted upload.
const MaxImageSize = 5 << 20

var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrTooLarge        = errors.New("image too large")
	ErrBadFolder       = errors.New("unknown image folder")
	ErrBadKey          = errors.New("invalid object key")
	ErrObjectNotFound  = errors.New("object not found")
)

// Folders are the page sections that own uploaded images.
var Folders = []string{"hero", "about"}

var imageExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Object describes a stored blob.
type Object struct {
	ContentType string
	Size        int64
}

// Backend is implemented by MinIOStorage and MemoryStorage.
type Backend interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	DownloadFile(ctx context.Context, key string) (io.ReadCloser, Object, error)
	RemoveFile(ctx context.Context, key string) error
}

// Image is the result of an upload.
type Image struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// Images applies the upload policy on top of a Backend.
type Images struct {
	backend Backend
	newID   func() string
}

func NewImages(b Backend) *Images {
	return &Images{backend: b, newID: uuid.NewString}
}

// Upload sniffs r, rejects anything that is not a small jpeg/png/webp/gif and
// stores it under images/<folder>/<id><ext>.
func (i *Images) Upload(ctx context.Context, folder string, r io.Reader) (*Image, error) {
	if !knownFolder(folder) {
		return nil, fmt.Errorf("%w: %q", ErrBadFolder, folder)
	}
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxImageSize {
		return nil, ErrTooLarge
	}
	ct, ext, ok := sniff(data)
	if !ok {
		return nil, ErrUnsupportedType
	}
	key := "images/" + folder + "/" + i.newID() + ext
	if err := i.backend.UploadFile(ctx, key, bytes.NewReader(data), int64(len(data)), ct); err != nil {
		return nil, fmt.Errorf("upload %s: %w", key, err)
	}
	return &Image{Key: key, URL: "/media/" + key, ContentType: ct, Size: int64(len(data))}, nil
}

// Open streams a stored image. The caller closes the reader.
func (i *Images) Open(ctx context.Context, key string) (io.ReadCloser, Object, error) {
	if !validKey(key) {
		return nil, Object{}, ErrBadKey
	}
	return i.backend.DownloadFile(ctx, key)
}

// Delete removes key; removing an absent key succeeds.
func (i *Images) Delete(ctx context.Context, key string) error {
	if !validKey(key) {
		return ErrBadKey
	}
	err := i.backend.RemoveFile(ctx, key)
	if errors.Is(err, ErrObjectNotFound) {
		return nil
	}
	return err
}

func sniff(data []byte) (contentType, ext string, ok bool) {
	m := mimetype.Detect(data)
	for ct, e := range imageExt {
		if m.Is(ct) {
			return ct, e, true
		}
	}
	return "", "", false
}

func knownFolder(f string) bool {
	for _, k := range Folders {
		if f == k {
			return true
		}
	}
	return false
}

func validKey(key string) bool {
	return strings.HasPrefix(key, "images/") && !strings.Contains(key, "..") && !strings.HasSuffix(key, "/")
}
