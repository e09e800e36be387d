package handler

import (
	"github.com/gin-gonic/gin"

	"stackview/internal/api/middleware"
	"stackview/internal/dto"
	"stackview/internal/service"
	"stackview/pkg/responses"
	"stackview/pkg/utils"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// GetAuthorizeURL 获取OAuth授权地址
// @Summary 获取GitHub OAuth授权跳转地址
// @Tags 认证
// @Produce json
// @Success 200 {object} responses.Response{data=dto.AuthorizeURLResponse}
// @Router /api/v1/auth/github/url [get]
func (h *AuthHandler) GetAuthorizeURL(c *gin.Context) {
	responses.Success(c, h.authService.AuthorizeURL())
}

// Callback OAuth回调
// @Summary 用授权码换取会话Token
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body dto.CallbackRequest true "OAuth回调请求"
// @Success 200 {object} responses.Response{data=dto.LoginResponse}
// @Router /api/v1/auth/github/callback [post]
func (h *AuthHandler) Callback(c *gin.Context) {
	var req dto.CallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.authService.ExchangeCallback(c.Request.Context(), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resp)
}

// GetMe 获取当前用户信息
// @Summary 获取当前登录的GitHub用户信息
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.Response{data=dto.UserInfo}
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	claims, ok := middleware.SessionClaims(c)
	if !ok {
		responses.ErrorWithCode(c, 401, "未授权")
		return
	}

	resp, err := h.authService.Me(c.Request.Context(), claims.SessionID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resp)
}

// Logout 注销登录
// @Summary 注销当前会话
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.Response
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if claims, ok := middleware.SessionClaims(c); ok {
		h.authService.Logout(claims.SessionID)
	}

	responses.SuccessWithMessage(c, "已注销", nil)
}
