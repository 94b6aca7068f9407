package file

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the file routes under the protected group.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	files := r.Group("/files")
	{
		files.GET("", h.List)
		files.POST("", h.Upload)
		files.GET("/storage", h.Storage)
		files.PATCH("/:id", h.Rename)
		files.POST("/:id/star", h.ToggleStar)
		files.POST("/:id/trash", h.Trash)
		files.POST("/:id/restore", h.Restore)
		files.DELETE("/:id", h.Delete)
	}
	r.GET("/ws", h.ServeWS)
}
