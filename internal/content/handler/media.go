package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/storage"
	"github.com/lawfolio/lawfolio/backend/site-service/pkg/logger"
)

func (h *handler) storageReady(c *gin.Context) bool {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage not configured"})
		return false
	}
	return true
}

func (h *handler) failStorage(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrUnsupportedType), errors.Is(err, storage.ErrBadFolder), errors.Is(err, storage.ErrBadKey):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrObjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		logger.Errorf("image storage: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": h.svc.Validator().Message()})
	}
}

// upload stores the multipart "file" under the section named by "folder".
func (h *handler) upload(c *gin.Context) {
	if !h.storageReady(c) {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	if fh.Size > storage.MaxImageSize {
		h.failStorage(c, storage.ErrTooLarge)
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}
	defer f.Close()

	img, err := h.images.Upload(c.Request.Context(), c.PostForm("folder"), f)
	if err != nil {
		h.failStorage(c, err)
		return
	}
	logger.Infof("uploaded %s (%d bytes)", img.Key, img.Size)
	c.JSON(http.StatusCreated, img)
}

func (h *handler) deleteUpload(c *gin.Context) {
	if !h.storageReady(c) {
		return
	}
	if err := h.images.Delete(c.Request.Context(), strings.TrimPrefix(c.Param("key"), "/")); err != nil {
		h.failStorage(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) media(c *gin.Context) {
	if !h.storageReady(c) {
		return
	}
	rc, obj, err := h.images.Open(c.Request.Context(), strings.TrimPrefix(c.Param("key"), "/"))
	if err != nil {
		h.failStorage(c, err)
		return
	}
	defer rc.Close()
	c.Header("Cache-Control", "public, max-age=86400")
	if obj.Size > 0 {
		c.Header("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	c.Header("Content-Type", obj.ContentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		logger.Warnf("stream media: %v", err)
	}
}
