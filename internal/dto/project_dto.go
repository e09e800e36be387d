package dto

import (
	"stackview/internal/pkg/graph"
	"stackview/internal/pkg/scanner"
)

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	RepoURL      string `json:"repo_url" binding:"required,url"`
	RepoFullName string `json:"repo_full_name" binding:"required"` // owner/name
	Provider     string `json:"provider" binding:"required,oneof=github"`
}

// ProjectResponse 项目信息
type ProjectResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	RepoURL      string `json:"repo_url"`
	RepoFullName string `json:"repo_full_name"`
	Provider     string `json:"provider"`
	Analyzed     bool   `json:"analyzed"` // 是否已有分析结果
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// AnalyzeResponse 分析结果（含扫描过程中的文件级失败）
type AnalyzeResponse struct {
	Analysis   *scanner.Analysis   `json:"analysis"`
	Categories []string            `json:"categories"` // 命中的基础设施类别
	Errors     []scanner.FileError `json:"errors,omitempty"`
}

// AnalysisGraphResponse 资源图
type AnalysisGraphResponse struct {
	Nodes []graph.Node `json:"nodes"`
	Edges []graph.Edge `json:"edges"`
}
