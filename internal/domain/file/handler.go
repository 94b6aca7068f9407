package file

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"godrive/internal/pkg/format"
)

// Handler exposes the file collection over HTTP. Mutations answer with the
// updated record where one exists; the websocket hub pushes the refreshed
// collection to every open tab regardless.
type Handler struct {
	service *Service
	hub     *Hub
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

// List returns the visible subset for ?view= and ?search=.
func (h *Handler) List(c *gin.Context) {
	ownerID := mustUserID(c)
	if ownerID == 0 {
		return
	}

	view := ParseView(c.Query("view"))
	files, err := h.service.List(c.Request.Context(), ownerID, c.Query("search"), view)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to list files"})
		return
	}

	items := make([]gin.H, 0, len(files))
	for _, f := range files {
		items = append(items, fileJSON(f))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": items})
}

// Upload accepts one multipart file and stores it.
func (h *Handler) Upload(c *gin.Context) {
	ownerID := mustUserID(c)
	if ownerID == 0 {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "no file provided"})
		return
	}

	f, err := h.service.Upload(c.Request.Context(), ownerID, fh)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyFile):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		case errors.Is(err, ErrFileTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"success": false, "error": err.Error()})
		case errors.Is(err, ErrQuotaExceeded):
			c.JSON(http.StatusInsufficientStorage, gin.H{"success": false, "error": err.Error()})
		case errors.Is(err, ErrUploadInFlight):
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "upload failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": fileJSON(f)})
}

// Rename sets a new display name.
func (h *Handler) Rename(c *gin.Context) {
	ownerID := mustUserID(c)
	if ownerID == 0 {
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	f, err := h.service.Rename(c.Request.Context(), ownerID, c.Param("id"), req.Name)
	if err != nil {
		h.writeMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": fileJSON(f)})
}

// ToggleStar flips the star flag.
func (h *Handler) ToggleStar(c *gin.Context) {
	ownerID := mustUserID(c)
	if ownerID == 0 {
		return
	}

	f, err := h.service.ToggleStar(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		h.writeMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": fileJSON(f)})
}

// Trash soft-deletes the file.
func (h *Handler) Trash(c *gin.Context) {
	ownerID := mustUserID(c)
	if ownerID == 0 {
		return
	}

	if err := h.service.SoftDelete(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		h.writeMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "moved to trash"})
}

// Restore takes the file back out of the trash.
func (h *Handler) Restore(c *gin.Context) {
	ownerID := mustUserID(c)
	if ownerID == 0 {
		return
	}

	if err := h.service.Restore(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		h.writeMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "restored"})
}

// Delete permanently removes record and blob. ?view=trash is required; the
// client states which view the user acted from.
func (h *Handler) Delete(c *gin.Context) {
	ownerID := mustUserID(c)
	if ownerID == 0 {
		return
	}

	view := ParseView(c.Query("view"))
	if err := h.service.HardDelete(c.Request.Context(), ownerID, c.Param("id"), view); err != nil {
		h.writeMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "deleted forever"})
}

// Storage reports quota consumption.
func (h *Handler) Storage(c *gin.Context) {
	ownerID := mustUserID(c)
	if ownerID == 0 {
		return
	}

	usage, err := h.service.Quota(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to compute storage usage"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"used_bytes":   usage.UsedBytes,
		"quota_bytes":  usage.QuotaBytes,
		"used_percent": usage.UsedPercent,
		"used_human":   format.Bytes(usage.UsedBytes),
		"quota_human":  format.Bytes(usage.QuotaBytes),
	}})
}

// ServeWS upgrades the connection and hands it to the hub.
func (h *Handler) ServeWS(c *gin.Context) {
	ownerID := mustUserID(c)
	if ownerID == 0 {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	h.hub.ServeWS(conn, ownerID)
}

func (h *Handler) writeMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, ErrEmptyName):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, ErrNotTrashed):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "operation failed"})
	}
}

func fileJSON(f *File) gin.H {
	return gin.H{
		"id":           f.ID,
		"name":         f.Name,
		"size_bytes":   f.SizeBytes,
		"size_human":   format.Bytes(f.SizeBytes),
		"mime_type":    f.MimeType,
		"category":     f.Category(),
		"download_url": f.DownloadURL,
		"starred":      f.Starred,
		"trashed":      f.Trashed,
		"uploaded_at":  f.UploadedAt,
		"uploaded_on":  format.Date(f.UploadedAt),
	}
}

func mustUserID(c *gin.Context) int64 {
	id, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
		return 0
	}
	switch v := id.(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	}
	c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid user id"})
	return 0
}
