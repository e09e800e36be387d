package handler

import (
	"github.com/gin-gonic/gin"

	"stackview/internal/api/middleware"
	"stackview/internal/dto"
	"stackview/internal/service"
	"stackview/pkg/responses"
	"stackview/pkg/utils"
)

type CommitHandler struct {
	service service.CommitService
}

func NewCommitHandler(service service.CommitService) *CommitHandler {
	return &CommitHandler{
		service: service,
	}
}

// Diff 变更预览
// @Summary 生成逐行对齐的变更预览
// @Description 按下标对齐的朴素diff, 中间插入/删除会让其后所有行标为变化
// @Tags Commit
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.DiffRequest true "变更预览请求"
// @Success 200 {object} responses.Response{data=dto.DiffResponse}
// @Router /api/v1/commit/diff [post]
func (h *CommitHandler) Diff(c *gin.Context) {
	var req dto.DiffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	responses.Success(c, h.service.Diff(&req))
}

// Commit 提交修改
// @Summary 提交单文件修改
// @Description new_branch非空时先从branch创建新分支再提交; 并发修改冲突返回409业务码
// @Tags Commit
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CommitRequest true "提交请求"
// @Success 200 {object} responses.Response{data=dto.CommitResponse}
// @Router /api/v1/commit [post]
func (h *CommitHandler) Commit(c *gin.Context) {
	var req dto.CommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.service.Commit(c.Request.Context(), middleware.GitHubToken(c), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resp)
}

// CreateBranch 创建分支
// @Summary 从已有分支创建新分支
// @Tags Commit
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateBranchRequest true "创建分支请求"
// @Success 200 {object} responses.Response{data=dto.BranchResponse}
// @Router /api/v1/branch [post]
func (h *CommitHandler) CreateBranch(c *gin.Context) {
	var req dto.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.service.CreateBranch(c.Request.Context(), middleware.GitHubToken(c), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resp)
}
