package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/admins"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/config"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/sessions"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/tokens"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/validate"
	"github.com/lawfolio/lawfolio/backend/site-service/pkg/logger"
	"github.com/lawfolio/lawfolio/backend/site-service/pkg/metrics"
	"github.com/lawfolio/lawfolio/backend/site-service/pkg/middleware"
)

// LoginRequest is the admin login form.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// AuthHandler holds dependencies
type AuthHandler struct {
	cfg         *config.Config
	adminsSvc   *admins.Service
	sessionsSvc *sessions.Service
	v           *validate.Validator
	verifier    middleware.Verifier
}

// NewAuthHandler wires the login flow. ver is the chain AuthMiddleware uses;
// logout only revokes bearer tokens it accepts.
func NewAuthHandler(cfg *config.Config, a *admins.Service, s *sessions.Service, v *validate.Validator, ver middleware.Verifier) *AuthHandler {
	return &AuthHandler{cfg: cfg, adminsSvc: a, sessionsSvc: s, v: v, verifier: ver}
}

// Register routes under /auth
func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	a := rg.Group("/auth")
	a.POST("/login", h.Login)
	a.POST("/refresh", h.Refresh)
	a.POST("/logout", h.Logout)
}

func (h *AuthHandler) accessTTL() time.Duration {
	if h.cfg.JWT.AccessTokenTTL > 0 {
		return h.cfg.JWT.AccessTokenTTL
	}
	return 15 * time.Minute
}

func (h *AuthHandler) refreshTTL() time.Duration {
	if h.cfg.JWT.RefreshTokenTTL > 0 {
		return h.cfg.JWT.RefreshTokenTTL
	}
	return 7 * 24 * time.Hour
}

// Login checks email and password and issues an access token and a refresh session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.v.Struct(req); err != nil {
		metrics.LoginAttempts.WithLabelValues("invalid").Inc()
		renderValidation(c, err)
		return
	}

	a, err := h.adminsSvc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, admins.ErrInvalidCredentials) {
		metrics.LoginAttempts.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		logger.Errorf("admin lookup: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.v.Message()})
		return
	}

	rft, err := h.sessionsSvc.CreateSession(c.Request.Context(), a.ID, h.refreshTTL())
	if err != nil {
		logger.Errorf("failed to create session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}
	access, err := tokens.GenerateAccessToken(h.cfg, a, h.accessTTL())
	if err != nil {
		logger.Errorf("failed to create access token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create access token"})
		return
	}
	metrics.LoginAttempts.WithLabelValues("ok").Inc()
	logger.Infof("admin %s logged in", a.Email)
	c.JSON(http.StatusOK, gin.H{
		"access_token":  access,
		"refresh_token": rft,
		"token_type":    "Bearer",
		"expires_in":    int(h.accessTTL().Seconds()),
		"admin":         a,
	})
}

// Refresh exchanges a valid refresh token for a new access token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refresh_token required"})
		return
	}
	sess, err := h.sessionsSvc.ValidateRefresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		logger.Errorf("refresh lookup: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "validation failed"})
		return
	}
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}
	a, err := h.adminsSvc.GetByID(c.Request.Context(), sess.AdminID)
	if err != nil {
		logger.Errorf("admin lookup: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "admin lookup failed"})
		return
	}
	if a == nil {
		// account removed after the session was issued
		_ = h.sessionsSvc.DeleteRefresh(c.Request.Context(), req.RefreshToken)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}
	access, err := tokens.GenerateAccessToken(h.cfg, a, h.accessTTL())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create access token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": access, "expires_in": int(h.accessTTL().Seconds())})
}

// Logout deletes the refresh session and revokes the bearer token, if any,
// until it would have expired anyway.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if at := middleware.BearerToken(c); at != "" {
		if err := h.revoke(c, at); err != nil {
			logger.Errorf("blacklist access token: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to blacklist access token"})
			return
		}
	}
	if req.RefreshToken != "" {
		if err := h.sessionsSvc.DeleteRefresh(c.Request.Context(), req.RefreshToken); err != nil {
			logger.Errorf("delete session: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove session"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// revoke blacklists at until it expires. Tokens that fail verification are
// never stored.
func (h *AuthHandler) revoke(c *gin.Context, at string) error {
	if h.verifier == nil {
		return nil
	}
	tok, err := h.verifier.Verify(c.Request.Context(), at)
	if err != nil {
		logger.Debugf("logout: bearer token not revoked: %v", err)
		return nil
	}
	exp, err := tokens.ExpiresAt(tok)
	if err != nil {
		return nil
	}
	return sessions.BlacklistAccessToken(c.Request.Context(), at, time.Until(exp))
}

// Me returns the authenticated admin. Tokens from an external identity
// provider have no local account; their claims are returned instead.
func (h *AuthHandler) Me(c *gin.Context) {
	sub := middleware.Subject(c)
	if sub == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	a, err := h.adminsSvc.GetByID(c.Request.Context(), sub)
	if err != nil {
		logger.Errorf("admin lookup: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.v.Message()})
		return
	}
	if a == nil {
		claims := middleware.Claims(c)
		c.JSON(http.StatusOK, gin.H{"id": sub, "email": claims["email"], "name": claims["name"], "external": true})
		return
	}
	c.JSON(http.StatusOK, a)
}

func renderValidation(c *gin.Context, err error) {
	var ve *validate.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": ve.Fields})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
