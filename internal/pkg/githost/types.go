package githost

// User GitHub用户信息
type User struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// Repository 仓库信息
type Repository struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Description   string `json:"description"`
	DefaultBranch string `json:"default_branch"`
	Private       bool   `json:"private"`
	HTMLURL       string `json:"html_url"`
	UpdatedAt     string `json:"updated_at"`
}

// Branch 分支信息
type Branch struct {
	Name string `json:"name"`
	SHA  string `json:"sha"` // 分支头提交hash
}

// File 仓库文件
// 从contents接口读到的Content已解码为明文; 目录列表项的Content为空
type File struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Type     string `json:"type"` // file, dir
	SHA      string `json:"sha"`  // 内容版本标识, 写入时用于乐观并发检查
	Content  string `json:"content,omitempty"`
	Encoding string `json:"encoding,omitempty"`
}

// WriteResult 文件写入结果
type WriteResult struct {
	CommitSHA  string `json:"commit_sha"`
	ContentSHA string `json:"content_sha"`
}
