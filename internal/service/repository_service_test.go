package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stackview/internal/dto"
	pkgErrors "stackview/pkg/errors"
)

func newRepositoryService(serverURL string) *repositoryService {
	svc := NewRepositoryService(zap.NewNop()).(*repositoryService)
	svc.apiBaseURL = serverURL
	return svc
}

func TestRepositoryService_ListRepositories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":2,"name":"recent","full_name":"octocat/recent","default_branch":"main"},
			{"id":1,"name":"older","full_name":"octocat/older","default_branch":"master"}
		]`))
	}))
	defer server.Close()

	svc := newRepositoryService(server.URL)
	repos, err := svc.ListRepositories(context.Background(), "token")
	require.NoError(t, err)
	require.Len(t, repos, 2)
	// 保持"最近更新在前"的上游顺序
	assert.Equal(t, "octocat/recent", repos[0].FullName)
	assert.Equal(t, "octocat/older", repos[1].FullName)
}

func TestRepositoryService_ReadFileWithoutToken(t *testing.T) {
	svc := newRepositoryService("http://127.0.0.1:0")

	_, err := svc.ReadFile(context.Background(), "", &dto.FileQuery{
		Owner: "o", Repo: "r", Path: "README.md",
	})
	assert.ErrorIs(t, err, pkgErrors.ErrUnauthenticated)
}

func TestRepositoryService_Scan(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/o/r/contents/":
			_, _ = w.Write([]byte(`[
				{"name":"main.tf","path":"main.tf","type":"file"},
				{"name":"k8s-manifests","path":"k8s-manifests","type":"dir"}
			]`))
		case "/repos/o/r/contents/main.tf":
			_, _ = w.Write([]byte(`{"name":"main.tf","path":"main.tf","type":"file","content":"resource {}","encoding":""}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	svc := newRepositoryService(server.URL)
	resp, err := svc.Scan(context.Background(), "token", &dto.ScanQuery{Owner: "o", Repo: "r"})
	require.NoError(t, err)
	assert.True(t, resp.Analysis.HasTerraform)
	assert.True(t, resp.Analysis.HasOrchestration)
	assert.Empty(t, resp.Analysis.OrchestrationFiles, "目录只标记不抓取")
	assert.Equal(t, []string{"terraform", "orchestration"}, resp.Categories)
	assert.Empty(t, resp.Errors)
}
