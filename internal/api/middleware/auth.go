package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"stackview/internal/pkg/jwt"
	"stackview/internal/pkg/session"
	"stackview/pkg/constants"
	"stackview/pkg/responses"
)

// AuthMiddleware 会话认证中间件
// 验证JWT后解出会话, 把GitHub Token快照放进请求上下文,
// 后续处理不再读取共享的会话状态
func AuthMiddleware(sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 获取Authorization header
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			responses.ErrorWithCode(c, 401, "缺少Authorization Header")
			c.Abort()
			return
		}

		// 检查Bearer前缀
		if !strings.HasPrefix(authHeader, constants.HeaderBearerPrefix) {
			responses.ErrorWithCode(c, 401, "Authorization格式错误")
			c.Abort()
			return
		}

		// 验证Token
		token := strings.TrimPrefix(authHeader, constants.HeaderBearerPrefix)
		claims, err := jwt.ValidateToken(token)
		if err != nil {
			responses.Error(c, err)
			c.Abort()
			return
		}

		if claims.Type != constants.JWTTypeAccess {
			responses.ErrorWithCode(c, 401, "无效的Token类型")
			c.Abort()
			return
		}

		// 解出GitHub Token快照
		githubToken, err := sessions.Token(claims.SessionID)
		if err != nil {
			responses.Error(c, err)
			c.Abort()
			return
		}

		c.Set(constants.JWTContextKey, claims)
		c.Set(constants.GitHubTokenContextKey, githubToken)

		c.Next()
	}
}

// SessionClaims 从请求上下文取会话Claims
func SessionClaims(c *gin.Context) (*jwt.SessionClaims, bool) {
	value, exists := c.Get(constants.JWTContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*jwt.SessionClaims)
	return claims, ok
}

// GitHubToken 从请求上下文取GitHub Token快照
func GitHubToken(c *gin.Context) string {
	return c.GetString(constants.GitHubTokenContextKey)
}
