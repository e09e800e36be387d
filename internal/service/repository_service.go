package service

import (
	"context"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"stackview/internal/dto"
	"stackview/internal/pkg/githost"
	"stackview/internal/pkg/scanner"
	"stackview/pkg/constants"
)

type RepositoryService interface {
	// ListRepositories 列出当前用户的仓库, 按最近更新排序（最多一页100个）
	ListRepositories(ctx context.Context, githubToken string) ([]*dto.RepositoryResponse, error)
	// ListBranches 列出仓库分支
	ListBranches(ctx context.Context, githubToken, owner, repo string) ([]*dto.BranchResponse, error)
	// ReadFile 读取单个文件（内容已解码为明文）
	ReadFile(ctx context.Context, githubToken string, query *dto.FileQuery) (*dto.FileResponse, error)
	// ListDirectory 列出目录项
	ListDirectory(ctx context.Context, githubToken string, query *dto.DirectoryQuery) ([]*dto.FileResponse, error)
	// Scan 对任意仓库做一次临时扫描, 不要求已创建项目, 结果不落任何状态
	Scan(ctx context.Context, githubToken string, query *dto.ScanQuery) (*dto.AnalyzeResponse, error)
}

type repositoryService struct {
	apiBaseURL string
	logger     *zap.Logger
}

func NewRepositoryService(logger *zap.Logger) RepositoryService {
	return &repositoryService{
		apiBaseURL: constants.GitHubAPIBaseURL,
		logger:     logger,
	}
}

// newClient 每次调用持有Token快照, 避免共享可变凭证状态
func (s *repositoryService) newClient(githubToken string) *githost.Client {
	return githost.NewClient(&githost.ClientConfig{
		BaseURL: s.apiBaseURL,
		Token:   githubToken,
	})
}

func (s *repositoryService) ListRepositories(ctx context.Context, githubToken string) ([]*dto.RepositoryResponse, error) {
	repos, err := s.newClient(githubToken).ListRepositories(ctx)
	if err != nil {
		return nil, err
	}

	// 保持GitHub返回的"最近更新在前"顺序
	return lo.Map(repos, func(r githost.Repository, _ int) *dto.RepositoryResponse {
		return &dto.RepositoryResponse{
			ID:            r.ID,
			Name:          r.Name,
			FullName:      r.FullName,
			Description:   r.Description,
			DefaultBranch: r.DefaultBranch,
			Private:       r.Private,
			HTMLURL:       r.HTMLURL,
			UpdatedAt:     r.UpdatedAt,
		}
	}), nil
}

func (s *repositoryService) ListBranches(ctx context.Context, githubToken, owner, repo string) ([]*dto.BranchResponse, error) {
	branches, err := s.newClient(githubToken).ListBranches(ctx, owner, repo)
	if err != nil {
		return nil, err
	}

	return lo.Map(branches, func(b githost.Branch, _ int) *dto.BranchResponse {
		return &dto.BranchResponse{
			Name: b.Name,
			SHA:  b.SHA,
		}
	}), nil
}

func (s *repositoryService) ReadFile(ctx context.Context, githubToken string, query *dto.FileQuery) (*dto.FileResponse, error) {
	file, err := s.newClient(githubToken).ReadFile(ctx, query.Owner, query.Repo, query.Path, query.Ref)
	if err != nil {
		return nil, err
	}

	return &dto.FileResponse{
		Name:    file.Name,
		Path:    file.Path,
		Type:    file.Type,
		SHA:     file.SHA,
		Content: file.Content,
	}, nil
}

func (s *repositoryService) ListDirectory(ctx context.Context, githubToken string, query *dto.DirectoryQuery) ([]*dto.FileResponse, error) {
	entries, err := s.newClient(githubToken).ListDirectory(ctx, query.Owner, query.Repo, query.Path, query.Ref)
	if err != nil {
		return nil, err
	}

	return lo.Map(entries, func(f githost.File, _ int) *dto.FileResponse {
		return &dto.FileResponse{
			Name: f.Name,
			Path: f.Path,
			Type: f.Type,
			SHA:  f.SHA,
		}
	}), nil
}

func (s *repositoryService) Scan(ctx context.Context, githubToken string, query *dto.ScanQuery) (*dto.AnalyzeResponse, error) {
	result := scanner.New(s.newClient(githubToken), s.logger).Scan(ctx, query.Owner, query.Repo, query.Ref)

	return &dto.AnalyzeResponse{
		Analysis:   &result.Analysis,
		Categories: result.Analysis.Categories(),
		Errors:     result.Errors,
	}, nil
}
