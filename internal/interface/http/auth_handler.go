package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stayhub/stayhub/internal/application"
	"github.com/stayhub/stayhub/internal/domain/entity"
	"github.com/stayhub/stayhub/pkg/helpers"
	"github.com/stayhub/stayhub/pkg/response"
)

type AuthHandler struct {
	svc     *application.Facade
	cookies *helpers.Manager
	log     *logrus.Logger
}

func NewAuthHandler(svc *application.Facade, cookies *helpers.Manager, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, cookies: cookies, log: log}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	User      *entity.User `json:"user"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// Login authenticates the credential and sets the auth cookie pair.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	u, pair, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	h.cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, loginResponse{User: u, ExpiresAt: pair.AccessTokenExpiry}, "login successful")
}

// Refresh rotates the token pair using the refresh cookie.
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, err := c.Cookie("refresh_token")
	if err != nil || token == "" {
		response.Error(c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, _, err := h.svc.Refresh(c.Request.Context(), token)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	h.cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{"expires_at": pair.AccessTokenExpiry}, "token refreshed")
}

// Logout drops the session and clears the cookies. Requires auth.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.svc.Logout(c.Request.Context(), c.GetString("userID"))
	h.cookies.Clear(c)
	response.Success[any](c, http.StatusOK, nil, "logged out")
}
