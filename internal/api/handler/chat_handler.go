package handler

import (
	"github.com/gin-gonic/gin"

	"stackview/internal/dto"
	"stackview/internal/service"
	"stackview/pkg/responses"
	"stackview/pkg/utils"
)

type ChatHandler struct {
	service service.ChatService
}

func NewChatHandler(service service.ChatService) *ChatHandler {
	return &ChatHandler{
		service: service,
	}
}

// Chat 对话
// @Summary 向AI分析服务发送一条针对项目的消息
// @Description 响应中可能携带file_change(单文件修改建议), 由提交接口消费
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ChatRequest true "对话请求"
// @Success 200 {object} responses.Response{data=dto.ChatResponse}
// @Router /api/v1/chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.service.Chat(c.Request.Context(), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resp)
}
