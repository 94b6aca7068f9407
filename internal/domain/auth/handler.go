package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"godrive/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(c *gin.Context) {
	var creds Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}

	user, token, err := h.service.Register(c.Request.Context(), creds)
	if err != nil {
		h.writeAuthError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"user": user, "token": token})
}

func (h *Handler) Login(c *gin.Context) {
	var creds Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), creds)
	if err != nil {
		h.writeAuthError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user, "token": token})
}

func (h *Handler) Me(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	user, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "user not found")
		return
	}

	response.Success(c, http.StatusOK, user)
}

// writeAuthError maps known causes to fixed friendly messages; unknown causes
// fall back to the raw error text.
func (h *Handler) writeAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNoAccount):
		response.Error(c, http.StatusNotFound, "NO_ACCOUNT", "No account found for this email.")
	case errors.Is(err, ErrWrongPassword):
		response.Error(c, http.StatusUnauthorized, "WRONG_PASSWORD", "Incorrect password.")
	case errors.Is(err, ErrEmailInUse):
		response.Error(c, http.StatusConflict, "EMAIL_IN_USE", "Email already in use.")
	case errors.Is(err, ErrInvalidEmail):
		response.Error(c, http.StatusBadRequest, "INVALID_EMAIL", "Invalid email address.")
	case errors.Is(err, ErrWeakPassword):
		response.Error(c, http.StatusBadRequest, "WEAK_PASSWORD", "Password is too weak (min 6 characters).")
	default:
		response.Error(c, http.StatusInternalServerError, "AUTH_FAILED", err.Error())
	}
}
