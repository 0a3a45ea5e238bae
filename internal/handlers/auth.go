package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/DennisRussell0/cereal-api/internal/auth"
	"github.com/DennisRussell0/cereal-api/internal/dto"
	"github.com/DennisRussell0/cereal-api/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles login and logout.
type AuthHandler struct {
	sessions     auth.Store
	userSvc      *service.UserService
	ttl          time.Duration
	secureCookie bool
}

// NewAuthHandler returns a new AuthHandler. ttl sets the cookie lifetime and should match the store's.
func NewAuthHandler(sessions auth.Store, userSvc *service.UserService, ttl time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{sessions: sessions, userSvc: userSvc, ttl: ttl, secureCookie: secureCookie}
}

// Login godoc
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.userSvc.ValidateCredentials(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	sessionID, err := h.sessions.Create(c.Request.Context(), user.ID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookieName, sessionID, int(h.ttl.Seconds()), "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, dto.LoginResponse{
		Message: "Login successful",
		User:    dto.UserResponse{ID: user.ID, Username: user.Username},
	})
}

// Logout godoc
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.MessageResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if sessionID := auth.SessionIDFromContext(c); sessionID != "" {
		if err := h.sessions.Delete(c.Request.Context(), sessionID); err != nil {
			// The session is still live; the client must not drop its cookie.
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
			return
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookieName, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logout successful"})
}
