package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/middleware"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/service"
)

// AuthHandler serves login, token refresh and the current profile.
type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login authenticates by email and password.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "parámetros inválidos: "+err.Error())
		return
	}

	pair, profile, err := h.svc.Login(c.Request.Context(), &req)
	if err != nil {
		Unauthorized(c, err.Error())
		return
	}

	Success(c, gin.H{
		"tokens":  pair,
		"profile": profile,
	})
}

// Refresh exchanges a refresh token for a new pair.
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "parámetros inválidos: "+err.Error())
		return
	}

	pair, err := h.svc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		Unauthorized(c, "sesión expirada, inicia sesión de nuevo")
		return
	}
	Success(c, pair)
}

// Me returns the authenticated profile.
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	profile, err := h.svc.Me(c.Request.Context(), GetUserID(c))
	if err != nil {
		NotFound(c, "perfil no encontrado")
		return
	}
	Success(c, profile)
}

// Logout revokes the refresh session tied to the current access token.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if raw, exists := c.Get("claims"); exists {
		if claims, ok := raw.(*middleware.JWTClaims); ok && claims.ID != "" {
			if err := h.svc.Logout(c.Request.Context(), claims.ID); err != nil {
				InternalError(c, err.Error())
				return
			}
		}
	}
	Success(c, nil)
}
