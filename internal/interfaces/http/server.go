// Package http 实现面向本机 UI 的 HTTP / WebSocket 接口层
package http

import (
	"context"
	"net/http"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/paynless/daemon/internal/infrastructure/config"
	"github.com/paynless/daemon/internal/infrastructure/log"
	"github.com/paynless/daemon/internal/interfaces/http/handler"
	"github.com/paynless/daemon/internal/interfaces/http/middleware"

	_ "github.com/paynless/daemon/docs" // Swagger docs
)

// HTTPServer HTTP 服务器
type HTTPServer struct {
	router   *gin.Engine
	httpPort string
	server   *http.Server
	logger   *slog.Logger
}

// NewServer 创建 HTTP 服务器
func NewServer(
	cfg *config.ServerConfig,
	dialecticHandler *handler.DialecticHandler,
	walletHandler *handler.WalletHandler,
	chatHandler *handler.ChatHandler,
	wsHandler *handler.WSHandler,
) *HTTPServer {
	router := gin.Default()
	router.Use(middleware.CORS())

	logger := log.NewModuleLogger("http", "server")

	// 注册路由
	api := router.Group("/api/v1")
	{
		// 辩证状态相关路由
		dialectic := api.Group("/dialectic")
		{
			dialectic.GET("/projects", dialecticHandler.Projects)
			dialectic.POST("/projects", dialecticHandler.CreateProject)
			dialectic.POST("/projects/refresh", dialecticHandler.RefreshProjects)
			dialectic.DELETE("/projects/create-error", dialecticHandler.ResetCreateProjectError)
			dialectic.GET("/project-detail", dialecticHandler.ProjectDetail)
			dialectic.POST("/projects/:project_id/fetch", dialecticHandler.FetchProjectDetail)
			dialectic.GET("/session-detail", dialecticHandler.SessionDetail)
			dialectic.POST("/sessions/:session_id/fetch", dialecticHandler.FetchSessionDetail)
			dialectic.POST("/contributions/:contribution_id/fetch", dialecticHandler.FetchContributionContent)
			dialectic.GET("/contributions/:contribution_id/content", dialecticHandler.ContributionContent)
			dialectic.DELETE("/contributions/:contribution_id/content", dialecticHandler.InvalidateContributionContent)
			dialectic.PUT("/contributions/:contribution_id/content", dialecticHandler.PrimeContributionContent)
			dialectic.GET("/context", dialecticHandler.ActiveContext)
			dialectic.PUT("/context/stage", dialecticHandler.SetActiveStage)
			dialectic.POST("/deeplink", dialecticHandler.ActivateDeepLink)
		}

		// 钱包相关路由
		wallet := api.Group("/wallet")
		{
			wallet.GET("/active", walletHandler.Active)
			wallet.POST("/load", walletHandler.Load)
			wallet.GET("/personal", walletHandler.Personal)
			wallet.GET("/orgs/:org_id", walletHandler.Organization)
		}

		// 聊天上下文相关路由
		chat := api.Group("/chat")
		{
			chat.GET("/context", chatHandler.Context)
			chat.PUT("/context", chatHandler.SetContext)
			chat.POST("/affordability", chatHandler.CheckMessage)
		}
	}

	// 状态推送 WebSocket
	router.GET("/ws", wsHandler.Serve)

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return &HTTPServer{
		router:   router,
		httpPort: cfg.HTTPPort,
		logger:   logger,
	}
}

// Start 启动服务器
func (s *HTTPServer) Start() error {
	s.server = &http.Server{
		Addr:    s.httpPort,
		Handler: s.router,
	}

	s.logger.Info("HTTP server starting",
		"port", s.httpPort,
	)

	return s.server.ListenAndServe()
}

// Shutdown 优雅关闭
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Stop 停止服务器
func (s *HTTPServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}
