package githost

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"stackview/pkg/constants"
	pkgErrors "stackview/pkg/errors"
)

// ClientConfig 客户端配置
type ClientConfig struct {
	BaseURL string // GitHub API地址, 默认 https://api.github.com
	Token   string // 访问Token, 构造时快照, 不读取共享状态
}

// Client GitHub内容API客户端
// 每个实例持有构造时刻的Token快照, 会话注销不影响已构造的客户端
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient 创建GitHub客户端
func NewClient(config *ClientConfig) *Client {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = constants.GitHubAPIBaseURL
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   config.Token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetAuthenticatedUser 获取当前认证用户信息
func (c *Client) GetAuthenticatedUser(ctx context.Context) (*User, error) {
	if c.token == "" {
		return nil, pkgErrors.ErrUnauthenticated
	}

	resp, err := c.get(ctx, "/user")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.hostError("获取用户信息失败", resp)
	}

	var user struct {
		ID        int64  `json:"id"`
		Login     string `json:"login"`
		Name      string `json:"name"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}

	return &User{
		ID:        user.ID,
		Login:     user.Login,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
	}, nil
}

// ListRepositories 获取当前用户的仓库列表
// 按最近更新排序, 最多返回一页100个; 超出一页不做分页处理（已知限制）
func (c *Client) ListRepositories(ctx context.Context) ([]Repository, error) {
	if c.token == "" {
		return nil, pkgErrors.ErrUnauthenticated
	}

	resp, err := c.get(ctx, fmt.Sprintf("/user/repos?sort=updated&per_page=%d", constants.RepoListPageSize))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.hostError("获取仓库列表失败", resp)
	}

	var githubRepos []struct {
		ID            int64  `json:"id"`
		Name          string `json:"name"`
		FullName      string `json:"full_name"`
		Description   string `json:"description"`
		DefaultBranch string `json:"default_branch"`
		Private       bool   `json:"private"`
		HTMLURL       string `json:"html_url"`
		UpdatedAt     string `json:"updated_at"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&githubRepos); err != nil {
		return nil, err
	}

	repos := make([]Repository, len(githubRepos))
	for i, r := range githubRepos {
		repos[i] = Repository{
			ID:            r.ID,
			Name:          r.Name,
			FullName:      r.FullName,
			Description:   r.Description,
			DefaultBranch: r.DefaultBranch,
			Private:       r.Private,
			HTMLURL:       r.HTMLURL,
			UpdatedAt:     r.UpdatedAt,
		}
	}

	return repos, nil
}

// ListBranches 获取仓库分支列表
func (c *Client) ListBranches(ctx context.Context, owner, repo string) ([]Branch, error) {
	if c.token == "" {
		return nil, pkgErrors.ErrUnauthenticated
	}

	resp, err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/branches", owner, repo))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.hostError("获取分支列表失败", resp)
	}

	var githubBranches []struct {
		Name   string `json:"name"`
		Commit struct {
			SHA string `json:"sha"`
		} `json:"commit"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&githubBranches); err != nil {
		return nil, err
	}

	branches := make([]Branch, len(githubBranches))
	for i, b := range githubBranches {
		branches[i] = Branch{
			Name: b.Name,
			SHA:  b.Commit.SHA,
		}
	}

	return branches, nil
}

// ReadFile 读取单个文件
// GitHub返回base64编码的内容, 返回前必须解码为明文
func (c *Client) ReadFile(ctx context.Context, owner, repo, path, ref string) (*File, error) {
	if c.token == "" {
		return nil, pkgErrors.ErrUnauthenticated
	}

	resp, err := c.get(ctx, contentsPath(owner, repo, path, ref))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.hostError(fmt.Sprintf("读取文件 %s 失败", path), resp)
	}

	var raw struct {
		Name     string `json:"name"`
		Path     string `json:"path"`
		Type     string `json:"type"`
		SHA      string `json:"sha"`
		Content  string `json:"content"`
		Encoding string `json:"encoding"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}

	content := raw.Content
	if raw.Encoding == "base64" {
		// GitHub在base64内容中插入换行, 解码前去掉
		decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(raw.Content, "\n", ""))
		if err != nil {
			return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, fmt.Sprintf("解码文件 %s 内容失败", path), err)
		}
		content = string(decoded)
	}

	return &File{
		Name:     raw.Name,
		Path:     raw.Path,
		Type:     raw.Type,
		SHA:      raw.SHA,
		Content:  content,
		Encoding: raw.Encoding,
	}, nil
}

// ListDirectory 列出目录项（仅元数据, 不含内容）
func (c *Client) ListDirectory(ctx context.Context, owner, repo, path, ref string) ([]File, error) {
	if c.token == "" {
		return nil, pkgErrors.ErrUnauthenticated
	}

	resp, err := c.get(ctx, contentsPath(owner, repo, path, ref))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.hostError(fmt.Sprintf("列出目录 %s 失败", path), resp)
	}

	var entries []struct {
		Name string `json:"name"`
		Path string `json:"path"`
		Type string `json:"type"`
		SHA  string `json:"sha"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, err
	}

	files := make([]File, len(entries))
	for i, e := range entries {
		files[i] = File{
			Name: e.Name,
			Path: e.Path,
			Type: e.Type,
			SHA:  e.SHA,
		}
	}

	return files, nil
}

// WriteFile 写入文件
// sha必须来自对同一path/branch最近一次读取, 过期sha会被GitHub拒绝（乐观并发）
func (c *Client) WriteFile(ctx context.Context, owner, repo, path, content, message, sha, branch string) (*WriteResult, error) {
	if c.token == "" {
		return nil, pkgErrors.ErrUnauthenticated
	}

	body := map[string]string{
		"message": message,
		"content": base64.StdEncoding.EncodeToString([]byte(content)),
		"branch":  branch,
	}
	if sha != "" {
		body["sha"] = sha
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		c.baseURL+fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, path), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// 409: sha过期, 文件已被并发修改
	if resp.StatusCode == http.StatusConflict {
		return nil, pkgErrors.ErrWriteConflict
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, c.hostError(fmt.Sprintf("写入文件 %s 失败", path), resp)
	}

	var ack struct {
		Content struct {
			SHA string `json:"sha"`
		} `json:"content"`
		Commit struct {
			SHA string `json:"sha"`
		} `json:"commit"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return nil, err
	}

	return &WriteResult{
		CommitSHA:  ack.Commit.SHA,
		ContentSHA: ack.Content.SHA,
	}, nil
}

// CreateBranch 从已有分支创建新分支
// 两次依赖调用: 先解析源分支头提交, 再创建指向该提交的ref
// 非原子操作: 两次调用之间源分支移动时, 新分支指向的是旧提交（已知限制）
func (c *Client) CreateBranch(ctx context.Context, owner, repo, newName, fromBranch string) (*Branch, error) {
	if c.token == "" {
		return nil, pkgErrors.ErrUnauthenticated
	}

	// 第一步: 解析源分支头提交
	resp, err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/git/refs/heads/%s", owner, repo, fromBranch))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.hostError(fmt.Sprintf("解析分支 %s 失败", fromBranch), resp)
	}

	var ref struct {
		Object struct {
			SHA string `json:"sha"`
		} `json:"object"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ref); err != nil {
		return nil, err
	}

	// 第二步: 创建新ref
	payload, err := json.Marshal(map[string]string{
		"ref": "refs/heads/" + newName,
		"sha": ref.Object.SHA,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+fmt.Sprintf("/repos/%s/%s/git/refs", owner, repo), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	createResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer createResp.Body.Close()

	if createResp.StatusCode != http.StatusCreated {
		return nil, c.hostError(fmt.Sprintf("创建分支 %s 失败", newName), createResp)
	}

	return &Branch{
		Name: newName,
		SHA:  ref.Object.SHA,
	}, nil
}

// get 发起GET请求
func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	c.setHeaders(req)

	return c.httpClient.Do(req)
}

// setHeaders 设置认证与版本头
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set(constants.HeaderAuthorization, constants.HeaderBearerPrefix+c.token)
	req.Header.Set("Accept", constants.GitHubAcceptHeader)
	req.Header.Set("X-GitHub-Api-Version", constants.GitHubAPIVersion)
}

// hostError 将非2xx响应转换为携带状态文本的错误
func (c *Client) hostError(message string, resp *http.Response) error {
	code := pkgErrors.CodeHostError
	switch resp.StatusCode {
	case http.StatusNotFound:
		code = pkgErrors.CodeNotFound
	case http.StatusUnauthorized:
		code = pkgErrors.CodeUnauthorized
	}

	body, _ := io.ReadAll(resp.Body)
	return pkgErrors.Wrap(code,
		fmt.Sprintf("%s (状态: %s)", message, resp.Status),
		fmt.Errorf("%s", strings.TrimSpace(string(body))))
}

// contentsPath 拼接contents接口路径, ref可选
func contentsPath(owner, repo, path, ref string) string {
	p := fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, path)
	if ref != "" {
		p += "?ref=" + url.QueryEscape(ref)
	}
	return p
}
