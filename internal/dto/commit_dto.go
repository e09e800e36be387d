package dto

import "stackview/internal/pkg/diffview"

// DiffRequest 变更预览请求
type DiffRequest struct {
	OldContent string `json:"old_content"`
	NewContent string `json:"new_content"`
}

// DiffResponse 逐行对齐的变更预览
type DiffResponse struct {
	Rows []diffview.Row `json:"rows"`
}

// CommitRequest 提交单文件修改请求
// NewBranch非空时先从Branch创建新分支, 再提交到新分支
type CommitRequest struct {
	Owner     string `json:"owner" binding:"required"`
	Repo      string `json:"repo" binding:"required"`
	Path      string `json:"path" binding:"required"`
	Content   string `json:"content"`
	Message   string `json:"message" binding:"required,max=200"`
	Branch    string `json:"branch" binding:"required"`
	NewBranch string `json:"new_branch"`
}

// CommitResponse 提交结果
type CommitResponse struct {
	Branch     string `json:"branch"`
	CommitSHA  string `json:"commit_sha"`
	ContentSHA string `json:"content_sha"`
}

// CreateBranchRequest 创建分支请求
type CreateBranchRequest struct {
	Owner      string `json:"owner" binding:"required"`
	Repo       string `json:"repo" binding:"required"`
	Name       string `json:"name" binding:"required"`
	FromBranch string `json:"from_branch" binding:"required"`
}
