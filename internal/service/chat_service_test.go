package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stackview/internal/dto"
	"stackview/internal/pkg/config"
	pkgErrors "stackview/pkg/errors"
)

func TestChatService_DisabledWithoutEndpoint(t *testing.T) {
	svc := NewChatService(&config.ChatConfig{})

	_, err := svc.Chat(context.Background(), &dto.ChatRequest{ProjectID: 1, Message: "hi"})
	assert.ErrorIs(t, err, pkgErrors.ErrChatUnavailable)
}

func TestChatService_ForwardsRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(7), body["project_id"])
		assert.Equal(t, "扩容web服务", body["message"])

		resp := dto.ChatResponse{
			Response: "建议将replicas调整为3",
			FileChange: &dto.PendingFileChange{
				Path:       "docker-compose.yml",
				OldContent: "replicas: 1",
				NewContent: "replicas: 3",
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	svc := NewChatService(&config.ChatConfig{Endpoint: server.URL, Timeout: 5})
	resp, err := svc.Chat(context.Background(), &dto.ChatRequest{ProjectID: 7, Message: "扩容web服务"})
	require.NoError(t, err)
	assert.Equal(t, "建议将replicas调整为3", resp.Response)
	require.NotNil(t, resp.FileChange)
	assert.Equal(t, "docker-compose.yml", resp.FileChange.Path)
}

func TestChatService_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	svc := NewChatService(&config.ChatConfig{Endpoint: server.URL})
	_, err := svc.Chat(context.Background(), &dto.ChatRequest{ProjectID: 1, Message: "hi"})
	require.Error(t, err)

	appErr := &pkgErrors.AppError{}
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgErrors.CodeHostError, appErr.Code)
}
