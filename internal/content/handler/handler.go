package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/content"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/content/service"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/storage"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/validate"
	"github.com/lawfolio/lawfolio/backend/site-service/pkg/logger"
)

// MaxMessageBody caps the size of a contact form submission.
const MaxMessageBody = 64 << 10

type handler struct {
	svc    *service.Service
	images *storage.Images // nil when MinIO is not configured
}

// RegisterSiteRoutes mounts the public read endpoints, the contact form and
// media streaming. limit runs in front of the contact form only.
func RegisterSiteRoutes(r gin.IRoutes, svc *service.Service, images *storage.Images, limit ...gin.HandlerFunc) {
	h := &handler{svc: svc, images: images}
	r.GET("/api/site", h.site)
	r.GET("/api/content/:key", h.getContent)
	r.GET("/api/services", h.listServices)
	r.POST("/api/messages", append(limit, h.createMessage)...)
	r.GET("/api/contact/vcard", h.vcard)
	r.GET("/media/*key", h.media)
}

// RegisterAdminRoutes mounts the editor endpoints on r, which the caller
// protects with authentication.
func RegisterAdminRoutes(r gin.IRoutes, svc *service.Service, images *storage.Images) {
	h := &handler{svc: svc, images: images}
	r.GET("/dashboard", h.dashboard)
	r.PUT("/content/:key", h.saveContent)
	r.PATCH("/content/:key", h.patchContent)
	r.GET("/services", h.listServices)
	r.POST("/services", h.createService)
	r.PATCH("/services/:id", h.updateService)
	r.DELETE("/services/:id", h.deleteService)
	r.GET("/messages", h.listMessages)
	r.DELETE("/messages/:id", h.deleteMessage)
	r.POST("/uploads", h.upload)
	r.DELETE("/uploads/*key", h.deleteUpload)
}

// fail renders err with the status the content contract assigns to it.
func (h *handler) fail(c *gin.Context, err error) {
	var ve *validate.ValidationError
	var se *content.StoreError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": ve.Fields})
	case errors.Is(err, content.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.As(err, &se):
		c.JSON(http.StatusBadGateway, gin.H{"error": h.svc.Validator().Message()})
	default:
		logger.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.svc.Validator().Message()})
	}
}

func (h *handler) site(c *gin.Context) {
	s, err := h.svc.Site(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *handler) getContent(c *gin.Context) {
	key, err := content.ParseKey(c.Param("key"))
	if err != nil {
		h.fail(c, err)
		return
	}
	doc, err := h.svc.Typed(c.Request.Context(), key)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *handler) saveContent(c *gin.Context) {
	key, err := content.ParseKey(c.Param("key"))
	if err != nil {
		h.fail(c, err)
		return
	}
	doc, err := bindTyped(c, key)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.svc.Save(c.Request.Context(), doc); err != nil {
		h.fail(c, err)
		return
	}
	h.respondContent(c, key)
}

func (h *handler) patchContent(c *gin.Context) {
	key, err := content.ParseKey(c.Param("key"))
	if err != nil {
		h.fail(c, err)
		return
	}
	var fields content.Fields
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}
	if err := h.svc.PatchContent(c.Request.Context(), key, fields); err != nil {
		h.fail(c, err)
		return
	}
	h.respondContent(c, key)
}

func (h *handler) respondContent(c *gin.Context, key content.Key) {
	doc, err := h.svc.Typed(c.Request.Context(), key)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func bindTyped(c *gin.Context, key content.Key) (content.Typed, error) {
	switch key {
	case content.KeyHero:
		var d content.HeroDocument
		err := c.ShouldBindJSON(&d)
		return d, err
	case content.KeyAbout:
		var d content.AboutDocument
		err := c.ShouldBindJSON(&d)
		return d, err
	default:
		var d content.ContactDocument
		err := c.ShouldBindJSON(&d)
		return d, err
	}
}

func (h *handler) listServices(c *gin.Context) {
	list, err := h.svc.ListServices(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handler) createService(c *gin.Context) {
	var in content.ServiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	id, err := h.svc.AddService(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *handler) updateService(c *gin.Context) {
	var patch content.ServicePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if patch.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}
	id := c.Param("id")
	if err := h.svc.UpdateService(c.Request.Context(), id, patch); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *handler) deleteService(c *gin.Context) {
	if err := h.svc.DeleteService(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) createMessage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxMessageBody)
	var in content.MessageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "message too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	id, err := h.svc.AddMessage(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *handler) listMessages(c *gin.Context) {
	list, err := h.svc.ListMessages(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handler) deleteMessage(c *gin.Context) {
	if err := h.svc.DeleteMessage(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) dashboard(c *gin.Context) {
	stats, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *handler) vcard(c *gin.Context) {
	card, err := h.svc.ContactVCard(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="contact.vcf"`)
	c.Data(http.StatusOK, "text/vcard; charset=utf-8", []byte(card))
}
