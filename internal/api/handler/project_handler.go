package handler

import (
	"github.com/gin-gonic/gin"

	"stackview/internal/api/middleware"
	"stackview/internal/dto"
	"stackview/internal/service"
	"stackview/pkg/responses"
	"stackview/pkg/utils"
)

type ProjectHandler struct {
	service service.ProjectService
}

func NewProjectHandler(service service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		service: service,
	}
}

// Create 创建项目
// @Summary 创建项目
// @Tags Project
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateProjectRequest true "创建项目请求"
// @Success 200 {object} responses.Response{data=dto.ProjectResponse}
// @Router /api/v1/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.service.Create(&req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resp)
}

// List 获取项目列表
// @Summary 获取项目列表
// @Tags Project
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.Response{data=[]dto.ProjectResponse}
// @Router /api/v1/projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	responses.Success(c, h.service.List())
}

// GetByID 获取项目详情
// @Summary 获取项目详情
// @Tags Project
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目ID"
// @Success 200 {object} responses.Response{data=dto.ProjectResponse}
// @Router /api/v1/projects/{id} [get]
func (h *ProjectHandler) GetByID(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.service.GetByID(param.ID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resp)
}

// Analyze 分析项目仓库
// @Summary 扫描项目仓库根目录的基础设施文件
// @Description 尽力而为: 个别文件读取失败不会让整个请求失败, 失败记录随结果返回
// @Tags Project
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目ID"
// @Success 200 {object} responses.Response{data=dto.AnalyzeResponse}
// @Router /api/v1/projects/{id}/analyze [post]
func (h *ProjectHandler) Analyze(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.service.Analyze(c.Request.Context(), middleware.GitHubToken(c), param.ID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resp)
}

// GetAnalysis 获取资源图
// @Summary 获取最近一次分析推断出的资源图
// @Tags Project
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目ID"
// @Success 200 {object} responses.Response{data=dto.AnalysisGraphResponse}
// @Router /api/v1/projects/{id}/analysis [get]
func (h *ProjectHandler) GetAnalysis(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.service.GetAnalysis(param.ID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resp)
}
