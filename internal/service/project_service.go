package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"stackview/internal/dto"
	"stackview/internal/model"
	"stackview/internal/pkg/githost"
	"stackview/internal/pkg/graph"
	"stackview/internal/pkg/scanner"
	"stackview/pkg/constants"
	pkgErrors "stackview/pkg/errors"
)

type ProjectService interface {
	Create(req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	List() []*dto.ProjectResponse
	GetByID(id int64) (*dto.ProjectResponse, error)
	// Analyze 用调用方的凭证扫描项目仓库, 结果与资源图存在项目上
	Analyze(ctx context.Context, githubToken string, id int64) (*dto.AnalyzeResponse, error)
	// GetAnalysis 获取最近一次分析推断出的资源图
	GetAnalysis(id int64) (*dto.AnalysisGraphResponse, error)
}

type projectService struct {
	mu       sync.RWMutex
	projects map[int64]*model.Project
	nextID   int64

	apiBaseURL string
	logger     *zap.Logger
}

func NewProjectService(logger *zap.Logger) ProjectService {
	return &projectService{
		projects:   make(map[int64]*model.Project),
		nextID:     1,
		apiBaseURL: constants.GitHubAPIBaseURL,
		logger:     logger,
	}
}

func (s *projectService) Create(req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// 同一仓库只允许创建一个项目
	for _, p := range s.projects {
		if p.RepoFullName == req.RepoFullName {
			return nil, pkgErrors.ErrProjectExists
		}
	}

	now := time.Now()
	project := &model.Project{
		ID:           s.nextID,
		Name:         req.Name,
		RepoURL:      req.RepoURL,
		RepoFullName: req.RepoFullName,
		Provider:     req.Provider,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.projects[project.ID] = project
	s.nextID++

	return toProjectResponse(project), nil
}

func (s *projectService) List() []*dto.ProjectResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := lo.Values(s.projects)
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].ID < projects[j].ID
	})

	return lo.Map(projects, func(p *model.Project, _ int) *dto.ProjectResponse {
		return toProjectResponse(p)
	})
}

func (s *projectService) GetByID(id int64) (*dto.ProjectResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	project, ok := s.projects[id]
	if !ok {
		return nil, pkgErrors.ErrProjectNotFound
	}
	return toProjectResponse(project), nil
}

func (s *projectService) Analyze(ctx context.Context, githubToken string, id int64) (*dto.AnalyzeResponse, error) {
	s.mu.RLock()
	project, ok := s.projects[id]
	s.mu.RUnlock()
	if !ok {
		return nil, pkgErrors.ErrProjectNotFound
	}

	client := githost.NewClient(&githost.ClientConfig{
		BaseURL: s.apiBaseURL,
		Token:   githubToken,
	})

	// 扫描从不抛错, 文件级失败随结果一并返回
	result := scanner.New(client, s.logger).Scan(ctx, project.Owner(), project.RepoName(), "")
	resourceGraph := graph.Build(&result.Analysis)

	s.mu.Lock()
	project.Analysis = result
	project.Graph = resourceGraph
	project.UpdatedAt = time.Now()
	s.mu.Unlock()

	return &dto.AnalyzeResponse{
		Analysis:   &result.Analysis,
		Categories: result.Analysis.Categories(),
		Errors:     result.Errors,
	}, nil
}

func (s *projectService) GetAnalysis(id int64) (*dto.AnalysisGraphResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	project, ok := s.projects[id]
	if !ok {
		return nil, pkgErrors.ErrProjectNotFound
	}
	if project.Graph == nil {
		return nil, pkgErrors.ErrAnalysisNotFound
	}

	return &dto.AnalysisGraphResponse{
		Nodes: project.Graph.Nodes,
		Edges: project.Graph.Edges,
	}, nil
}

func toProjectResponse(p *model.Project) *dto.ProjectResponse {
	return &dto.ProjectResponse{
		ID:           p.ID,
		Name:         p.Name,
		RepoURL:      p.RepoURL,
		RepoFullName: p.RepoFullName,
		Provider:     p.Provider,
		Analyzed:     p.Analysis != nil,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    p.UpdatedAt.Format(time.RFC3339),
	}
}
