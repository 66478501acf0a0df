package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"toyshop/internal/domain"
	"toyshop/internal/service"
	"toyshop/internal/transport/http/middleware"
	resp "toyshop/internal/transport/http/response"
)

type CookieOpts struct {
	Name   string
	TTL    time.Duration
	Secure bool // 本地 HTTP 关着，上了 HTTPS 再开
}

type AuthHandler struct {
	Svc           *service.AuthService
	Cookie        CookieOpts
	AdminEmail    string // bootstrap 用的默认管理员
	AdminPassword string
}

func NewAuthHandler(svc *service.AuthService, cookie CookieOpts, adminEmail, adminPassword string) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookie: cookie, AdminEmail: adminEmail, AdminPassword: adminPassword}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login POST /api/auth/login —— 成功时种会话 cookie
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	_ = c.ShouldBindJSON(&req)
	if req.Email == "" || req.Password == "" {
		resp.Err(c, http.StatusBadRequest, "Email and password required")
		return
	}

	token, err := h.Svc.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrValidation) {
			resp.Err(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		resp.FromDomainErr(c, err, "Invalid credentials")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.Cookie.Name, token, int(h.Cookie.TTL.Seconds()), "/", "", h.Cookie.Secure, true)
	resp.OK(c, gin.H{"ok": true})
}

// Logout POST /api/auth/logout —— 清 cookie，无需登录态
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.Cookie.Name, "", -1, "/", "", h.Cookie.Secure, true)
	resp.OK(c, gin.H{"ok": true})
}

// Me GET /api/auth/me —— 把会话里解出来的身份原样返回
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		resp.Err(c, http.StatusUnauthorized, "Not signed in")
		return
	}
	resp.OK(c, gin.H{"user": gin.H{
		"id":    claims.UID,
		"email": claims.Email,
		"role":  claims.Role,
	}})
}

// Bootstrap POST /api/admin/bootstrap —— 没有默认管理员就建一个
func (h *AuthHandler) Bootstrap(c *gin.Context) {
	created, err := h.Svc.Bootstrap(h.AdminEmail, h.AdminPassword)
	if err != nil {
		resp.FromDomainErr(c, err, "bootstrap failed")
		return
	}
	if created {
		resp.OK(c, gin.H{"ok": true, "created": true})
		return
	}
	resp.OK(c, gin.H{"ok": true, "already": true})
}
