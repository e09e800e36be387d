package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"stackview/internal/dto"
	"stackview/internal/pkg/config"
	"stackview/internal/pkg/githost"
	"stackview/internal/pkg/jwt"
	"stackview/internal/pkg/session"
	"stackview/pkg/constants"
	pkgErrors "stackview/pkg/errors"
)

type AuthService interface {
	// AuthorizeURL 构造GitHub OAuth授权跳转地址
	AuthorizeURL() *dto.AuthorizeURLResponse
	// ExchangeCallback 用授权码换取Token并建立会话
	ExchangeCallback(ctx context.Context, req *dto.CallbackRequest) (*dto.LoginResponse, error)
	// Me 获取会话对应的用户信息
	Me(ctx context.Context, sessionID string) (*dto.UserInfo, error)
	// Logout 注销会话
	Logout(sessionID string)
}

type authService struct {
	cfg      *config.OAuthConfig
	sessions *session.Store

	// 测试时可覆盖
	oauthBaseURL string
	apiBaseURL   string
	httpClient   *http.Client
}

func NewAuthService(cfg *config.OAuthConfig, sessions *session.Store) AuthService {
	oauthBaseURL := cfg.BaseURL
	if oauthBaseURL == "" {
		oauthBaseURL = constants.GitHubOAuthBaseURL
	}

	return &authService{
		cfg:          cfg,
		sessions:     sessions,
		oauthBaseURL: oauthBaseURL,
		apiBaseURL:   constants.GitHubAPIBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *authService) AuthorizeURL() *dto.AuthorizeURLResponse {
	query := url.Values{}
	query.Set("client_id", s.cfg.ClientID)
	query.Set("redirect_uri", s.cfg.RedirectURI)
	query.Set("scope", constants.GitHubOAuthScope)

	return &dto.AuthorizeURLResponse{
		URL: fmt.Sprintf("%s/authorize?%s", s.oauthBaseURL, query.Encode()),
	}
}

func (s *authService) ExchangeCallback(ctx context.Context, req *dto.CallbackRequest) (*dto.LoginResponse, error) {
	// 授权码换Token
	payload, err := json.Marshal(map[string]string{
		"client_id":     s.cfg.ClientID,
		"client_secret": s.cfg.ClientSecret,
		"code":          req.Code,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.oauthBaseURL+"/access_token", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgErrors.ErrOAuthExchangeFail.WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, pkgErrors.ErrOAuthExchangeFail.WithCause(fmt.Errorf("状态: %s", resp.Status))
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		Error       string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, err
	}
	if tokenResp.AccessToken == "" {
		return nil, pkgErrors.ErrOAuthExchangeFail.WithCause(fmt.Errorf("github: %s", tokenResp.Error))
	}

	// 用新Token拉取用户信息
	client := githost.NewClient(&githost.ClientConfig{
		BaseURL: s.apiBaseURL,
		Token:   tokenResp.AccessToken,
	})
	user, err := client.GetAuthenticatedUser(ctx)
	if err != nil {
		return nil, err
	}

	// 建立会话, Token加密后驻留内存
	sessionID, err := s.sessions.Create(user.Login, user.ID, tokenResp.AccessToken)
	if err != nil {
		return nil, err
	}

	token, err := jwt.GenerateSessionToken(sessionID, user.Login)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "签发会话Token失败", err)
	}

	return &dto.LoginResponse{
		Token: token,
		User: &dto.UserInfo{
			ID:        user.ID,
			Login:     user.Login,
			Name:      user.Name,
			AvatarURL: user.AvatarURL,
		},
	}, nil
}

func (s *authService) Me(ctx context.Context, sessionID string) (*dto.UserInfo, error) {
	githubToken, err := s.sessions.Token(sessionID)
	if err != nil {
		return nil, err
	}

	client := githost.NewClient(&githost.ClientConfig{
		BaseURL: s.apiBaseURL,
		Token:   githubToken,
	})
	user, err := client.GetAuthenticatedUser(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.UserInfo{
		ID:        user.ID,
		Login:     user.Login,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
	}, nil
}

func (s *authService) Logout(sessionID string) {
	s.sessions.Delete(sessionID)
}
