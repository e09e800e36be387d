package dto

// RepositoryResponse 仓库信息
type RepositoryResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Description   string `json:"description"`
	DefaultBranch string `json:"default_branch"`
	Private       bool   `json:"private"`
	HTMLURL       string `json:"html_url"`
	UpdatedAt     string `json:"updated_at"`
}

// BranchResponse 分支信息
type BranchResponse struct {
	Name string `json:"name"`
	SHA  string `json:"sha"`
}

// FileQuery 文件读取参数
type FileQuery struct {
	Owner string `form:"owner" binding:"required"`
	Repo  string `form:"repo" binding:"required"`
	Path  string `form:"path" binding:"required"`
	Ref   string `form:"ref"` // 可选, 缺省为默认分支
}

// DirectoryQuery 目录列表参数
type DirectoryQuery struct {
	Owner string `form:"owner" binding:"required"`
	Repo  string `form:"repo" binding:"required"`
	Path  string `form:"path"` // 空字符串表示仓库根目录
	Ref   string `form:"ref"`
}

// FileResponse 文件内容
type FileResponse struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Type    string `json:"type"`
	SHA     string `json:"sha"`
	Content string `json:"content,omitempty"`
}

// ScanQuery 扫描参数
type ScanQuery struct {
	Owner string `form:"owner" binding:"required"`
	Repo  string `form:"repo" binding:"required"`
	Ref   string `form:"ref"`
}
