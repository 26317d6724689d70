package wire

import (
	"context"

	"log/slog"

	appChat "github.com/paynless/daemon/internal/application/chat"
	appDialectic "github.com/paynless/daemon/internal/application/dialectic"
	appWallet "github.com/paynless/daemon/internal/application/wallet"
	"github.com/paynless/daemon/internal/domain/events"
	"github.com/paynless/daemon/internal/infrastructure/config"
	"github.com/paynless/daemon/internal/infrastructure/gateway"
	applog "github.com/paynless/daemon/internal/infrastructure/log"
	"github.com/paynless/daemon/internal/infrastructure/watcher"
	"github.com/paynless/daemon/internal/infrastructure/websocket"
	"github.com/paynless/daemon/internal/interfaces"
)

// App 应用主结构，组合所有服务
type App struct {
	HTTPServer     *interfaces.HTTPServer
	wsHub          *websocket.Hub
	eventBus       events.EventBus
	sessionWatcher *watcher.SessionWatcher
	store          *appDialectic.Store
	walletService  *appWallet.Service
	contextStore   *appChat.ContextStore
	logger         *slog.Logger
}

// NewApp 创建应用实例
func NewApp(
	httpServer *interfaces.HTTPServer,
	wsHub *websocket.Hub,
	eventBus events.EventBus,
	gatewayClient *gateway.Client,
	gatewayCfg *config.GatewayConfig,
	store *appDialectic.Store,
	walletService *appWallet.Service,
	contextStore *appChat.ContextStore,
) *App {
	logger := applog.NewModuleLogger("app", "main")

	// 会话令牌监听器：UI 登录流写令牌文件，网关客户端热更新令牌
	sessionWatcher := watcher.NewSessionWatcher(
		gatewayCfg.ResolveTokenFile(),
		gatewayClient,
		eventBus,
	)

	return &App{
		HTTPServer:     httpServer,
		wsHub:          wsHub,
		eventBus:       eventBus,
		sessionWatcher: sessionWatcher,
		store:          store,
		walletService:  walletService,
		contextStore:   contextStore,
		logger:         logger,
	}
}

// Start 启动所有服务
func (a *App) Start() error {
	a.logger.Info("Starting paynless daemon")

	// 注册事件订阅者（状态变更 -> WebSocket 推送）
	a.setupEventSubscribers()

	// 启动会话令牌监听
	if err := a.sessionWatcher.Start(); err != nil {
		a.logger.Error("Failed to start session watcher",
			"error", err,
		)
	}

	// 启动 WebSocket Hub
	a.wsHub.Start()

	// 启动 HTTP 服务器（goroutine）
	go func() {
		if err := a.HTTPServer.Start(); err != nil {
			a.logger.Error("Failed to start HTTP server",
				"error", err,
			)
		}
	}()

	// 预热：拉取项目列表并加载当前上下文的钱包
	// 失败会记录进各自的槽位，不阻塞启动
	go func() {
		_, _ = a.store.ListProjects(context.Background())
	}()
	go a.walletService.EnsureActiveLoaded(context.Background())

	a.logger.Info("Paynless daemon started successfully")
	return nil
}

// setupEventSubscribers 注册事件订阅者
// 所有领域事件原样广播给已连接的 UI 客户端
func (a *App) setupEventSubscribers() {
	if a.eventBus == nil {
		return
	}

	forwarded := []events.EventType{
		events.ProjectsUpdated,
		events.ProjectDetailUpdated,
		events.SessionDetailUpdated,
		events.ContributionContentUpdated,
		events.ActiveContextChanged,
		events.WalletUpdated,
		events.ChatContextChanged,
		events.AuthTokenUpdated,
	}

	a.eventBus.SubscribeMultiple(forwarded, events.HandlerFunc(func(event events.Event) error {
		return a.wsHub.Broadcast(string(event.Type()), event)
	}))

	// 上下文切换后惰性加载对应钱包，切换期间判定保持 loading
	a.eventBus.Subscribe(events.ChatContextChanged, events.HandlerFunc(func(event events.Event) error {
		a.walletService.EnsureActiveLoaded(context.Background())
		return nil
	}))

	a.logger.Info("Event subscribers registered")
}

// Stop 停止所有服务
func (a *App) Stop() error {
	a.logger.Info("Stopping paynless daemon")

	// 停止会话令牌监听
	if a.sessionWatcher != nil {
		a.sessionWatcher.Stop()
		a.logger.Info("Session watcher stopped")
	}

	// 关闭事件总线
	if a.eventBus != nil {
		a.eventBus.Close()
		a.logger.Info("Event bus closed")
	}

	if err := a.HTTPServer.Stop(); err != nil {
		a.logger.Error("Failed to stop HTTP server",
			"error", err,
		)
		return err
	}

	a.logger.Info("Paynless daemon stopped successfully")
	return nil
}
