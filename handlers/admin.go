package handlers

import (
	"net/http"
	"time"

	"outreach/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const adminRole = "admin"

// AdminHandler issues admin tokens.
type AdminHandler struct {
	PasswordHash string
	Secret       []byte
	TokenTTL     time.Duration
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(passwordHash string, secret []byte) *AdminHandler {
	return &AdminHandler{
		PasswordHash: passwordHash,
		Secret:       secret,
		TokenTTL:     12 * time.Hour,
	}
}

type adminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// LoginHandler checks the admin password and returns a signed token.
func (h *AdminHandler) LoginHandler(c *gin.Context) {
	logger := getLogger(c)

	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Password is required", err.Error())
		return
	}
	if h.PasswordHash == "" || len(h.Secret) == 0 {
		utils.JSONError(c, http.StatusServiceUnavailable, "Admin login is not configured", "")
		return
	}
	if err := utils.CheckPassword(h.PasswordHash, req.Password); err != nil {
		logger.Warn("Admin login failed", zap.String("ip", c.ClientIP()))
		utils.JSONError(c, http.StatusUnauthorized, "Invalid credentials", "")
		return
	}

	token, err := utils.GenerateToken(h.Secret, adminRole, adminRole, h.TokenTTL)
	if err != nil {
		logger.Error("Failed to sign admin token", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to issue token", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresAt": time.Now().Add(h.TokenTTL).UTC(),
	})
}
