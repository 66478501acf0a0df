package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"toyshop/internal/core/auth"
	resp "toyshop/internal/transport/http/response"
)

const KeyClaims = "claims"

// AuthSession 会话门卫：cookie 里取 token，验签后把身份放进请求上下文。
// 没 cookie 和 token 无效分开提示，但过期和被篡改对外不做区分。
func AuthSession(j *auth.JWTer, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			resp.AbortErr(c, http.StatusUnauthorized, "Not signed in")
			return
		}
		claims, err := j.Parse(token)
		if err != nil {
			resp.AbortErr(c, http.StatusUnauthorized, "Invalid session")
			return
		}
		c.Set(KeyClaims, claims)
		c.Next()
	}
}

// ClaimsFrom 取出门卫塞进去的身份；只在挂了 AuthSession 的路由里有值
func ClaimsFrom(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(KeyClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
