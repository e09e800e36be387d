package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"stackview/internal/api/handler"
	"stackview/internal/api/middleware"
	"stackview/internal/pkg/config"
	"stackview/internal/pkg/session"
	"stackview/internal/service"
)

// Setup 设置路由
func Setup(cfg *config.Config, sessions *session.Store, logger *zap.Logger) *gin.Engine {
	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// 全局中间件
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger API 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 初始化Service
	authService := service.NewAuthService(&cfg.OAuth, sessions)
	repositoryService := service.NewRepositoryService(logger)
	projectService := service.NewProjectService(logger)
	chatService := service.NewChatService(&cfg.Chat)
	commitService := service.NewCommitService()

	// 初始化Handler
	authHandler := handler.NewAuthHandler(authService)
	repositoryHandler := handler.NewRepositoryHandler(repositoryService)
	projectHandler := handler.NewProjectHandler(projectService)
	chatHandler := handler.NewChatHandler(chatService)
	commitHandler := handler.NewCommitHandler(commitService)

	// API v1
	v1 := r.Group("/api/v1")
	{
		// 认证相关(无需会话)
		authGroup := v1.Group("/auth")
		{
			authGroup.GET("/github/url", authHandler.GetAuthorizeURL)
			authGroup.POST("/github/callback", authHandler.Callback)
		}

		// 需要会话的路由
		authed := v1.Group("")
		authed.Use(middleware.AuthMiddleware(sessions))
		{
			// 会话信息
			authed.GET("/auth/me", authHandler.GetMe)
			authed.POST("/auth/logout", authHandler.Logout)

			// 仓库浏览
			groupRepository := authed.Group("/repository")
			groupRepositories := authed.Group("/repositories")
			{
				groupRepositories.GET("", repositoryHandler.List)                 // 仓库列表
				groupRepository.GET("/branches", repositoryHandler.ListBranches)  // 分支列表
				groupRepository.GET("/file", repositoryHandler.ReadFile)          // 读取文件
				groupRepository.GET("/contents", repositoryHandler.ListDirectory) // 列出目录
				groupRepository.GET("/scan", repositoryHandler.Scan)              // 临时扫描
			}

			// 项目管理
			groupProjects := authed.Group("/projects")
			{
				groupProjects.POST("", projectHandler.Create)                  // 创建项目
				groupProjects.GET("", projectHandler.List)                     // 项目列表
				groupProjects.GET("/:id", projectHandler.GetByID)              // 项目详情
				groupProjects.POST("/:id/analyze", projectHandler.Analyze)     // 扫描仓库
				groupProjects.GET("/:id/analysis", projectHandler.GetAnalysis) // 资源图
			}

			// AI对话
			authed.POST("/chat", chatHandler.Chat)

			// 提交流程
			authed.POST("/commit/diff", commitHandler.Diff)    // 变更预览
			authed.POST("/commit", commitHandler.Commit)       // 提交修改
			authed.POST("/branch", commitHandler.CreateBranch) // 创建分支
		}
	}

	return r
}
