package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"stackview/internal/pkg/config"
	"stackview/pkg/constants"
	pkgErrors "stackview/pkg/errors"
)

// SessionClaims 会话Claims
type SessionClaims struct {
	SessionID string `json:"session_id"`
	Login     string `json:"login"` // GitHub用户名
	Type      string `json:"type"`
	jwt.RegisteredClaims
}

// GenerateSessionToken 生成会话Token
func GenerateSessionToken(sessionID, login string) (string, error) {
	cfg := config.GlobalConfig.Session

	claims := SessionClaims{
		SessionID: sessionID,
		Login:     login,
		Type:      constants.JWTTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   login,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(cfg.Expire) * time.Second)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ParseToken 解析Token
func ParseToken(tokenString string) (*SessionClaims, error) {
	cfg := config.GlobalConfig.Session

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		// 验证签名方法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	})

	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeUnauthorized, "解析Token失败", err)
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, pkgErrors.ErrInvalidToken
}

// ValidateToken 验证Token有效性
func ValidateToken(tokenString string) (*SessionClaims, error) {
	claims, err := ParseToken(tokenString)
	if err != nil {
		return nil, err
	}

	// 检查是否过期
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, pkgErrors.ErrTokenExpired
	}

	return claims, nil
}
