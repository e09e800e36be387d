package githost

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgErrors "stackview/pkg/errors"
)

// newTestClient 指向测试服务器的客户端
func newTestClient(serverURL, token string) *Client {
	return NewClient(&ClientConfig{
		BaseURL: serverURL,
		Token:   token,
	})
}

func TestClient_RequiresToken(t *testing.T) {
	// 无凭证时必须在发起网络请求之前失败
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	c := newTestClient(server.URL, "")
	ctx := context.Background()

	_, err := c.GetAuthenticatedUser(ctx)
	assert.ErrorIs(t, err, pkgErrors.ErrUnauthenticated)
	_, err = c.ListRepositories(ctx)
	assert.ErrorIs(t, err, pkgErrors.ErrUnauthenticated)
	_, err = c.ListBranches(ctx, "o", "r")
	assert.ErrorIs(t, err, pkgErrors.ErrUnauthenticated)
	_, err = c.ReadFile(ctx, "o", "r", "README.md", "")
	assert.ErrorIs(t, err, pkgErrors.ErrUnauthenticated)
	_, err = c.ListDirectory(ctx, "o", "r", "", "")
	assert.ErrorIs(t, err, pkgErrors.ErrUnauthenticated)
	_, err = c.WriteFile(ctx, "o", "r", "a.txt", "x", "msg", "", "main")
	assert.ErrorIs(t, err, pkgErrors.ErrUnauthenticated)
	_, err = c.CreateBranch(ctx, "o", "r", "new", "main")
	assert.ErrorIs(t, err, pkgErrors.ErrUnauthenticated)

	assert.Equal(t, int32(0), atomic.LoadInt32(&calls), "无凭证的调用不应产生任何网络请求")
}

func TestClient_SetsAuthHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
		assert.Equal(t, "2022-11-28", r.Header.Get("X-GitHub-Api-Version"))
		_, _ = w.Write([]byte(`{"id":1,"login":"octocat"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, "test-token")
	user, err := c.GetAuthenticatedUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "octocat", user.Login)
}

func TestClient_ListRepositories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/repos", r.URL.Path)
		assert.Equal(t, "updated", r.URL.Query().Get("sort"))
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		_, _ = w.Write([]byte(`[{"id":1,"name":"infra","full_name":"octocat/infra","default_branch":"main","private":true}]`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, "token")
	repos, err := c.ListRepositories(context.Background())
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, "octocat/infra", repos[0].FullName)
	assert.Equal(t, "main", repos[0].DefaultBranch)
	assert.True(t, repos[0].Private)
}

func TestClient_ReadFile_DecodesBase64(t *testing.T) {
	// GitHub会在base64内容中插入换行, 解码必须能处理
	encoded := base64.StdEncoding.EncodeToString([]byte("services:\n  web:\n    image: nginx\n"))
	wrapped := encoded[:20] + "\n" + encoded[20:] + "\n"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octocat/infra/contents/docker-compose.yml", r.URL.Path)
		assert.Equal(t, "main", r.URL.Query().Get("ref"))
		resp := map[string]string{
			"name":     "docker-compose.yml",
			"path":     "docker-compose.yml",
			"type":     "file",
			"sha":      "abc123",
			"content":  wrapped,
			"encoding": "base64",
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	c := newTestClient(server.URL, "token")
	file, err := c.ReadFile(context.Background(), "octocat", "infra", "docker-compose.yml", "main")
	require.NoError(t, err)
	assert.Equal(t, "services:\n  web:\n    image: nginx\n", file.Content)
	assert.Equal(t, "abc123", file.SHA)
}

func TestClient_ReadFile_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, "token")
	_, err := c.ReadFile(context.Background(), "o", "r", "missing.txt", "")
	require.Error(t, err)

	var appErr *pkgErrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, pkgErrors.CodeNotFound, appErr.Code)
}

func TestClient_WriteFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/repos/o/r/contents/deploy/app.yaml", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		// 写入内容必须base64编码
		decoded, err := base64.StdEncoding.DecodeString(body["content"])
		require.NoError(t, err)
		assert.Equal(t, "replicas: 3\n", string(decoded))
		assert.Equal(t, "update replicas", body["message"])
		assert.Equal(t, "main", body["branch"])
		assert.Equal(t, "oldsha", body["sha"])

		_, _ = w.Write([]byte(`{"content":{"sha":"newsha"},"commit":{"sha":"commitsha"}}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, "token")
	result, err := c.WriteFile(context.Background(), "o", "r", "deploy/app.yaml", "replicas: 3\n", "update replicas", "oldsha", "main")
	require.NoError(t, err)
	assert.Equal(t, "commitsha", result.CommitSHA)
	assert.Equal(t, "newsha", result.ContentSHA)
}

func TestClient_WriteFile_OmitsEmptySHA(t *testing.T) {
	// 新建文件不带sha字段
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, hasSHA := body["sha"]
		assert.False(t, hasSHA, "新建文件的请求体不应包含sha")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"content":{"sha":"s"},"commit":{"sha":"c"}}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, "token")
	_, err := c.WriteFile(context.Background(), "o", "r", "new.txt", "hi", "add", "", "main")
	require.NoError(t, err)
}

func TestClient_WriteFile_Conflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer server.Close()

	c := newTestClient(server.URL, "token")
	_, err := c.WriteFile(context.Background(), "o", "r", "a.txt", "x", "m", "stale", "main")
	assert.ErrorIs(t, err, pkgErrors.ErrWriteConflict)
}

func TestClient_CreateBranch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/repos/o/r/git/refs/heads/main":
			_, _ = w.Write([]byte(`{"object":{"sha":"headsha"}}`))
		case r.Method == http.MethodPost && r.URL.Path == "/repos/o/r/git/refs":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "refs/heads/feature", body["ref"])
			assert.Equal(t, "headsha", body["sha"])
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{}`))
		default:
			t.Errorf("未预期的请求: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	c := newTestClient(server.URL, "token")
	branch, err := c.CreateBranch(context.Background(), "o", "r", "feature", "main")
	require.NoError(t, err)
	assert.Equal(t, "feature", branch.Name)
	assert.Equal(t, "headsha", branch.SHA)
}

func TestClient_CreateBranch_SourceMissing(t *testing.T) {
	// 源分支解析失败时不应发起第二步创建请求
	var posts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			atomic.AddInt32(&posts, 1)
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := newTestClient(server.URL, "token")
	_, err := c.CreateBranch(context.Background(), "o", "r", "feature", "ghost")
	require.Error(t, err)

	var appErr *pkgErrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, pkgErrors.CodeNotFound, appErr.Code)
	assert.Equal(t, int32(0), atomic.LoadInt32(&posts))
}
