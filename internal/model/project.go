package model

import (
	"strings"
	"time"

	"stackview/internal/pkg/graph"
	"stackview/internal/pkg/scanner"
)

// Project 项目
// 仅驻留内存, 不做持久化, 服务重启后丢失
type Project struct {
	ID           int64
	Name         string
	RepoURL      string
	RepoFullName string // owner/name
	Provider     string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// 最近一次扫描的结果与推断出的资源图
	Analysis *scanner.Result
	Graph    *graph.Graph
}

// Owner 从RepoFullName中取owner部分
func (p *Project) Owner() string {
	owner, _, _ := strings.Cut(p.RepoFullName, "/")
	return owner
}

// RepoName 从RepoFullName中取仓库名部分
func (p *Project) RepoName() string {
	_, name, _ := strings.Cut(p.RepoFullName, "/")
	return name
}
