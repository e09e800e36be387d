package constants

// Git 提供者
const (
	ProviderGitHub = "github"
)

// GitHub API
const (
	GitHubAPIBaseURL   = "https://api.github.com"
	GitHubOAuthBaseURL = "https://github.com/login/oauth"
	GitHubAPIVersion   = "2022-11-28"
	GitHubAcceptHeader = "application/vnd.github+json"
	GitHubOAuthScope   = "repo,user"

	// 单页最大仓库数, 超出部分不做分页处理（已知限制）
	RepoListPageSize = 100
)

// 基础设施文件类别
const (
	InfraCategoryCompose       = "compose"
	InfraCategoryDockerfile    = "dockerfile"
	InfraCategoryTerraform     = "terraform"
	InfraCategoryOrchestration = "orchestration"
)

// 资源图节点类型
const (
	NodeTypeService       = "service"
	NodeTypeBuild         = "build"
	NodeTypeProvisioning  = "provisioning"
	NodeTypeOrchestration = "orchestration"
)

// JWT 相关
const (
	JWTContextKey         = "jwt_session"
	GitHubTokenContextKey = "github_token"
	JWTTypeAccess         = "access"
)

// HTTP Header
const (
	HeaderAuthorization = "Authorization"
	HeaderBearerPrefix  = "Bearer "
)
