package dto

// AuthorizeURLResponse OAuth授权跳转地址
type AuthorizeURLResponse struct {
	URL string `json:"url"`
}

// CallbackRequest OAuth回调请求
type CallbackRequest struct {
	Code string `json:"code" binding:"required"`
}

// UserInfo GitHub用户信息
type UserInfo struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token string    `json:"token"` // 会话JWT, 后续请求放在Authorization头
	User  *UserInfo `json:"user"`
}
