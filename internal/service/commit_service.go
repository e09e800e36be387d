package service

import (
	"context"
	"errors"

	"stackview/internal/dto"
	"stackview/internal/pkg/diffview"
	"stackview/internal/pkg/githost"
	"stackview/pkg/constants"
	pkgErrors "stackview/pkg/errors"
)

type CommitService interface {
	// Diff 生成逐行对齐的变更预览（纯函数, 不访问网络）
	Diff(req *dto.DiffRequest) *dto.DiffResponse
	// Commit 提交单文件修改; NewBranch非空时先建分支再提交
	Commit(ctx context.Context, githubToken string, req *dto.CommitRequest) (*dto.CommitResponse, error)
	// CreateBranch 从已有分支创建新分支
	CreateBranch(ctx context.Context, githubToken string, req *dto.CreateBranchRequest) (*dto.BranchResponse, error)
}

type commitService struct {
	apiBaseURL string
}

func NewCommitService() CommitService {
	return &commitService{
		apiBaseURL: constants.GitHubAPIBaseURL,
	}
}

func (s *commitService) newClient(githubToken string) *githost.Client {
	return githost.NewClient(&githost.ClientConfig{
		BaseURL: s.apiBaseURL,
		Token:   githubToken,
	})
}

func (s *commitService) Diff(req *dto.DiffRequest) *dto.DiffResponse {
	return &dto.DiffResponse{
		Rows: diffview.Render(req.OldContent, req.NewContent),
	}
}

func (s *commitService) Commit(ctx context.Context, githubToken string, req *dto.CommitRequest) (*dto.CommitResponse, error) {
	client := s.newClient(githubToken)

	target := req.Branch
	if req.NewBranch != "" {
		if _, err := client.CreateBranch(ctx, req.Owner, req.Repo, req.NewBranch, req.Branch); err != nil {
			return nil, err
		}
		target = req.NewBranch
	}

	// 提交前重新读取目标分支上的文件, 保证sha来自最近一次读取
	// 文件不存在视为新建, 不带sha
	sha := ""
	current, err := client.ReadFile(ctx, req.Owner, req.Repo, req.Path, target)
	if err != nil {
		var appErr *pkgErrors.AppError
		if !errors.As(err, &appErr) || appErr.Code != pkgErrors.CodeNotFound {
			return nil, err
		}
	} else {
		sha = current.SHA
	}

	result, err := client.WriteFile(ctx, req.Owner, req.Repo, req.Path, req.Content, req.Message, sha, target)
	if err != nil {
		return nil, err
	}

	return &dto.CommitResponse{
		Branch:     target,
		CommitSHA:  result.CommitSHA,
		ContentSHA: result.ContentSHA,
	}, nil
}

func (s *commitService) CreateBranch(ctx context.Context, githubToken string, req *dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	branch, err := s.newClient(githubToken).CreateBranch(ctx, req.Owner, req.Repo, req.Name, req.FromBranch)
	if err != nil {
		return nil, err
	}

	return &dto.BranchResponse{
		Name: branch.Name,
		SHA:  branch.SHA,
	}, nil
}
