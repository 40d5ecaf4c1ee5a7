package storage

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func TestImages_UploadOpenDelete(t *testing.T) {
	mem := NewMemoryStorage()
	imgs := NewImages(mem)
	imgs.newID = func() string { return "fixed" }
	ctx := context.Background()

	img, err := imgs.Upload(ctx, "hero", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	require.Equal(t, "images/hero/fixed.png", img.Key)
	require.Equal(t, "/media/images/hero/fixed.png", img.URL)
	require.Equal(t, "image/png", img.ContentType)
	require.Equal(t, int64(len(pngHeader)), img.Size)

	rc, obj, err := imgs.Open(ctx, img.Key)
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	rc.Close()
	require.Equal(t, pngHeader, body)
	require.Equal(t, "image/png", obj.ContentType)

	require.NoError(t, imgs.Delete(ctx, img.Key))
	require.NoError(t, imgs.Delete(ctx, img.Key))
	require.Equal(t, 0, mem.Len())

	_, _, err = imgs.Open(ctx, img.Key)
	require.ErrorIs(t, err, ErrObjectNotFound)
}

func TestImages_Gif(t *testing.T) {
	imgs := NewImages(NewMemoryStorage())
	img, err := imgs.Upload(context.Background(), "about", strings.NewReader("GIF89a\x01\x00\x01\x00\x00\x00\x00;"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(img.Key, "images/about/"))
	require.True(t, strings.HasSuffix(img.Key, ".gif"))
}

func TestImages_Rejects(t *testing.T) {
	mem := NewMemoryStorage()
	imgs := NewImages(mem)
	ctx := context.Background()

	_, err := imgs.Upload(ctx, "hero", strings.NewReader("%PDF-1.4 not an image"))
	require.ErrorIs(t, err, ErrUnsupportedType)

	_, err = imgs.Upload(ctx, "footer", bytes.NewReader(pngHeader))
	require.ErrorIs(t, err, ErrBadFolder)

	big := append(append([]byte{}, pngHeader...), make([]byte, MaxImageSize)...)
	_, err = imgs.Upload(ctx, "hero", bytes.NewReader(big))
	require.ErrorIs(t, err, ErrTooLarge)

	require.Equal(t, 0, mem.Len())

	require.ErrorIs(t, imgs.Delete(ctx, "secrets/x"), ErrBadKey)
	_, _, err = imgs.Open(ctx, "images/../etc/passwd")
	require.ErrorIs(t, err, ErrBadKey)
}
