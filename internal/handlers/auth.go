package handlers

import (
	"errors"
	"net/http"

	"github.com/lewis-Dimun/green-fashion-score/internal/models"
	"github.com/lewis-Dimun/green-fashion-score/internal/repository"
	"github.com/lewis-Dimun/green-fashion-score/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SessionUserKey is the session field holding the logged-in user's id.
const SessionUserKey = "userID"

type AuthHandler struct {
	log   *zap.Logger
	users *repository.UserRepo
}

func NewAuthHandler(log *zap.Logger, users *repository.UserRepo) *AuthHandler {
	return &AuthHandler{log: log, users: users}
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "Invalid payload")
		return
	}

	if !utils.IsValidEmail(req.Email) {
		jsonError(c, http.StatusBadRequest, "Invalid email address")
		return
	}
	if !utils.IsComplexPassword(req.Password) {
		jsonError(c, http.StatusBadRequest, "Password must be at least 8 characters and mix upper, lower, digit and symbol")
		return
	}

	if _, err := h.users.GetByEmail(c.Request.Context(), req.Email); err == nil {
		jsonError(c, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		h.log.Error("Failed to check existing user", zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to register")
		return
	}

	user, err := h.users.Create(c.Request.Context(), req.Email, req.Password, req.Name, models.RoleUser)
	if err != nil {
		h.log.Error("Failed to create user", zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to register")
		return
	}

	c.JSON(http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "Invalid payload")
		return
	}

	user, err := h.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil || !user.CheckPassword(req.Password) {
		jsonError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	session := sessions.Default(c)
	session.Set(SessionUserKey, user.ID)
	if err := session.Save(); err != nil {
		h.log.Error("Failed to save session", zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to login")
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		h.log.Error("Failed to clear session", zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to logout")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
