package watcher

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"log/slog"

	"github.com/fsnotify/fsnotify"

	"github.com/paynless/daemon/internal/domain/events"
	"github.com/paynless/daemon/internal/infrastructure/log"
)

// TokenSink 访问令牌接收方（网关客户端实现）
type TokenSink interface {
	// SetToken 更新访问令牌
	SetToken(token string)
}

// sessionFile 令牌文件结构
// 由 UI 登录流写入 ~/.paynless/session.json，认证本身不在本进程范围内
type sessionFile struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at,omitempty"`
}

// SessionWatcher 会话令牌文件监听器
// 监听令牌文件变更，热更新网关客户端的访问令牌
type SessionWatcher struct {
	tokenFile string
	sink      TokenSink
	bus       events.EventBus
	watcher   *fsnotify.Watcher
	done      chan struct{}
	logger    *slog.Logger
}

// NewSessionWatcher 创建会话令牌监听器
func NewSessionWatcher(tokenFile string, sink TokenSink, bus events.EventBus) *SessionWatcher {
	return &SessionWatcher{
		tokenFile: tokenFile,
		sink:      sink,
		bus:       bus,
		done:      make(chan struct{}),
		logger:    log.NewModuleLogger("watcher", "session"),
	}
}

// Start 启动监听
// 先做一次初始加载（令牌文件可能在守护进程启动前已存在），再监听后续变更
func (w *SessionWatcher) Start() error {
	w.loadToken()

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = fsWatcher

	// 监听令牌文件所在目录：登录流通常以"写临时文件再改名"的方式落盘，
	// 直接监听文件本身会在改名后丢失句柄
	dir := filepath.Dir(w.tokenFile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		_ = fsWatcher.Close()
		return err
	}
	if err := fsWatcher.Add(dir); err != nil {
		_ = fsWatcher.Close()
		return err
	}

	go w.run()

	w.logger.Info("Session watcher started",
		"token_file", w.tokenFile,
	)
	return nil
}

// run 事件循环
func (w *SessionWatcher) run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.tokenFile) {
				continue
			}
			if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Rename) {
				w.loadToken()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Session watcher error",
				"error", err,
			)

		case <-w.done:
			return
		}
	}
}

// loadToken 读取令牌文件并下发给接收方
func (w *SessionWatcher) loadToken() {
	data, err := os.ReadFile(w.tokenFile)
	if err != nil {
		if !os.IsNotExist(err) {
			w.logger.Warn("Failed to read session file",
				"error", err,
			)
		}
		return
	}

	var session sessionFile
	if err := json.Unmarshal(data, &session); err != nil {
		w.logger.Warn("Failed to parse session file",
			"error", err,
		)
		return
	}
	if session.AccessToken == "" {
		return
	}

	w.sink.SetToken(session.AccessToken)
	if w.bus != nil {
		w.bus.Publish(&events.AuthTokenEvent{EventTime: time.Now()})
	}

	w.logger.Info("Gateway access token updated")
}

// Stop 停止监听
func (w *SessionWatcher) Stop() {
	close(w.done)
	if w.watcher != nil {
		_ = w.watcher.Close()
	}
}
