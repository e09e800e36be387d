package handler

import (
	"github.com/gin-gonic/gin"

	"stackview/internal/api/middleware"
	"stackview/internal/dto"
	"stackview/internal/service"
	"stackview/pkg/responses"
	"stackview/pkg/utils"
)

type RepositoryHandler struct {
	service service.RepositoryService
}

func NewRepositoryHandler(service service.RepositoryService) *RepositoryHandler {
	return &RepositoryHandler{
		service: service,
	}
}

// List 获取仓库列表
// @Summary 获取当前用户的仓库列表
// @Description 按最近更新排序, 最多返回100个
// @Tags Repository
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.Response{data=[]dto.RepositoryResponse}
// @Router /api/v1/repositories [get]
func (h *RepositoryHandler) List(c *gin.Context) {
	resp, err := h.service.ListRepositories(c.Request.Context(), middleware.GitHubToken(c))
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resp)
}

// ListBranches 获取分支列表
// @Summary 获取仓库分支列表
// @Tags Repository
// @Produce json
// @Security BearerAuth
// @Param owner query string true "仓库所有者"
// @Param repo query string true "仓库名"
// @Success 200 {object} responses.Response{data=[]dto.BranchResponse}
// @Router /api/v1/repository/branches [get]
func (h *RepositoryHandler) ListBranches(c *gin.Context) {
	var query dto.RepoQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		responses.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.service.ListBranches(c.Request.Context(), middleware.GitHubToken(c), query.Owner, query.Repo)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resp)
}

// ReadFile 读取文件
// @Summary 读取仓库中的单个文件
// @Description 返回的内容已从base64解码为明文
// @Tags Repository
// @Produce json
// @Security BearerAuth
// @Param owner query string true "仓库所有者"
// @Param repo query string true "仓库名"
// @Param path query string true "文件路径"
// @Param ref query string false "分支, 缺省为默认分支"
// @Success 200 {object} responses.Response{data=dto.FileResponse}
// @Router /api/v1/repository/file [get]
func (h *RepositoryHandler) ReadFile(c *gin.Context) {
	var query dto.FileQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		responses.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.service.ReadFile(c.Request.Context(), middleware.GitHubToken(c), &query)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resp)
}

// ListDirectory 列出目录
// @Summary 列出仓库目录项
// @Tags Repository
// @Produce json
// @Security BearerAuth
// @Param owner query string true "仓库所有者"
// @Param repo query string true "仓库名"
// @Param path query string false "目录路径, 空为根目录"
// @Param ref query string false "分支"
// @Success 200 {object} responses.Response{data=[]dto.FileResponse}
// @Router /api/v1/repository/contents [get]
func (h *RepositoryHandler) ListDirectory(c *gin.Context) {
	var query dto.DirectoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		responses.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.service.ListDirectory(c.Request.Context(), middleware.GitHubToken(c), &query)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resp)
}

// Scan 临时扫描仓库
// @Summary 对任意仓库做一次基础设施扫描
// @Description 不要求已创建项目, 结果不保存; 个别文件读取失败随结果返回
// @Tags Repository
// @Produce json
// @Security BearerAuth
// @Param owner query string true "仓库所有者"
// @Param repo query string true "仓库名"
// @Param ref query string false "分支"
// @Success 200 {object} responses.Response{data=dto.AnalyzeResponse}
// @Router /api/v1/repository/scan [get]
func (h *RepositoryHandler) Scan(c *gin.Context) {
	var query dto.ScanQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		responses.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.service.Scan(c.Request.Context(), middleware.GitHubToken(c), &query)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resp)
}
