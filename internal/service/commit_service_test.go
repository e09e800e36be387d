package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stackview/internal/dto"
	pkgErrors "stackview/pkg/errors"
)

func newCommitService(serverURL string) *commitService {
	svc := NewCommitService().(*commitService)
	svc.apiBaseURL = serverURL
	return svc
}

func TestCommitService_Diff(t *testing.T) {
	svc := NewCommitService()

	resp := svc.Diff(&dto.DiffRequest{OldContent: "a\nb", NewContent: "a\nc\nd"})
	require.Len(t, resp.Rows, 3)
	assert.False(t, resp.Rows[0].Changed)
	assert.True(t, resp.Rows[1].Changed)
	assert.Equal(t, "", resp.Rows[2].Old)
	assert.Equal(t, "d", resp.Rows[2].New)
}

func TestCommitService_CommitExistingFile(t *testing.T) {
	// 提交前重新读取文件取最新sha
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/repos/o/r/contents/app.yaml":
			assert.Equal(t, "main", r.URL.Query().Get("ref"))
			content := base64.StdEncoding.EncodeToString([]byte("replicas: 1\n"))
			_, _ = w.Write([]byte(`{"name":"app.yaml","path":"app.yaml","type":"file","sha":"freshsha","content":"` + content + `","encoding":"base64"}`))
		case r.Method == http.MethodPut && r.URL.Path == "/repos/o/r/contents/app.yaml":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "freshsha", body["sha"])
			assert.Equal(t, "main", body["branch"])
			_, _ = w.Write([]byte(`{"content":{"sha":"newsha"},"commit":{"sha":"commitsha"}}`))
		default:
			t.Errorf("未预期的请求: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	svc := newCommitService(server.URL)
	resp, err := svc.Commit(context.Background(), "token", &dto.CommitRequest{
		Owner:   "o",
		Repo:    "r",
		Path:    "app.yaml",
		Content: "replicas: 3\n",
		Message: "scale up",
		Branch:  "main",
	})
	require.NoError(t, err)
	assert.Equal(t, "main", resp.Branch)
	assert.Equal(t, "commitsha", resp.CommitSHA)
	assert.Equal(t, "newsha", resp.ContentSHA)
}

func TestCommitService_CommitNewFile(t *testing.T) {
	// 目标文件不存在时视为新建, 写入请求不带sha
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			_, hasSHA := body["sha"]
			assert.False(t, hasSHA)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"content":{"sha":"s"},"commit":{"sha":"c"}}`))
		}
	}))
	defer server.Close()

	svc := newCommitService(server.URL)
	resp, err := svc.Commit(context.Background(), "token", &dto.CommitRequest{
		Owner:   "o",
		Repo:    "r",
		Path:    "new.yaml",
		Content: "x",
		Message: "add",
		Branch:  "main",
	})
	require.NoError(t, err)
	assert.Equal(t, "c", resp.CommitSHA)
}

func TestCommitService_CommitToNewBranch(t *testing.T) {
	// NewBranch非空: 先建分支, 读取与写入都落在新分支
	var sawCreateRef bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/repos/o/r/git/refs/heads/main":
			_, _ = w.Write([]byte(`{"object":{"sha":"headsha"}}`))
		case r.Method == http.MethodPost && r.URL.Path == "/repos/o/r/git/refs":
			sawCreateRef = true
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{}`))
		case r.Method == http.MethodGet && r.URL.Path == "/repos/o/r/contents/app.yaml":
			assert.Equal(t, "feature", r.URL.Query().Get("ref"))
			w.WriteHeader(http.StatusNotFound)
		case r.Method == http.MethodPut && r.URL.Path == "/repos/o/r/contents/app.yaml":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "feature", body["branch"])
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"content":{"sha":"s"},"commit":{"sha":"c"}}`))
		default:
			t.Errorf("未预期的请求: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	svc := newCommitService(server.URL)
	resp, err := svc.Commit(context.Background(), "token", &dto.CommitRequest{
		Owner:     "o",
		Repo:      "r",
		Path:      "app.yaml",
		Content:   "x",
		Message:   "add",
		Branch:    "main",
		NewBranch: "feature",
	})
	require.NoError(t, err)
	assert.True(t, sawCreateRef)
	assert.Equal(t, "feature", resp.Branch)
}

func TestCommitService_CommitConflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			content := base64.StdEncoding.EncodeToString([]byte("old"))
			_, _ = w.Write([]byte(`{"name":"a.txt","path":"a.txt","type":"file","sha":"stale","content":"` + content + `","encoding":"base64"}`))
		case http.MethodPut:
			w.WriteHeader(http.StatusConflict)
		}
	}))
	defer server.Close()

	svc := newCommitService(server.URL)
	_, err := svc.Commit(context.Background(), "token", &dto.CommitRequest{
		Owner:   "o",
		Repo:    "r",
		Path:    "a.txt",
		Content: "new",
		Message: "m",
		Branch:  "main",
	})
	assert.ErrorIs(t, err, pkgErrors.ErrWriteConflict)
}

func TestCommitService_CreateBranch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`{"object":{"sha":"headsha"}}`))
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{}`))
		}
	}))
	defer server.Close()

	svc := newCommitService(server.URL)
	resp, err := svc.CreateBranch(context.Background(), "token", &dto.CreateBranchRequest{
		Owner:      "o",
		Repo:       "r",
		Name:       "feature",
		FromBranch: "main",
	})
	require.NoError(t, err)
	assert.Equal(t, "feature", resp.Name)
	assert.Equal(t, "headsha", resp.SHA)
}
