package handler

import (
	"net/http"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"

	"github.com/paynless/daemon/internal/infrastructure/config"
	"github.com/paynless/daemon/internal/infrastructure/log"
	"github.com/paynless/daemon/internal/infrastructure/websocket"
)

const (
	// writeWait 单条消息写超时
	writeWait = 10 * time.Second
	// pongWait 等待 pong 的最长时间
	pongWait = 60 * time.Second
	// pingPeriod ping 间隔，必须小于 pongWait
	pingPeriod = 54 * time.Second
)

// WSHandler WebSocket 推送处理器
// UI 连上后持续接收状态变更事件，无需轮询各个槽位
type WSHandler struct {
	hub      *websocket.Hub
	upgrader gorilla.Upgrader
	logger   *slog.Logger
}

// NewWSHandler 创建 WebSocket 处理器
func NewWSHandler(hub *websocket.Hub, cfg *config.WebSocketConfig) *WSHandler {
	return &WSHandler{
		hub: hub,
		upgrader: gorilla.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			// 只服务本机 UI，来源检查放行
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: log.NewModuleLogger("http", "ws"),
	}
}

// Serve 升级连接并开始推送
// @Summary 状态推送 WebSocket
// @Tags 推送
// @Router /ws [get]
func (h *WSHandler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed",
			"error", err,
		)
		return
	}

	client := &websocket.Connection{
		Send: make(chan []byte, 64),
	}
	h.hub.Register(client)

	go h.writePump(conn, client)
	go h.readPump(conn, client)
}

// writePump 把 Hub 广播写到连接，并定期发 ping
func (h *WSHandler) writePump(conn *gorilla.Conn, client *websocket.Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case data, ok := <-client.Send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub 已注销该连接
				_ = conn.WriteMessage(gorilla.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(gorilla.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(gorilla.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump 消费入站消息以驱动连接关闭与 pong 检测
// 推送通道是单向的，入站消息一律丢弃
func (h *WSHandler) readPump(conn *gorilla.Conn, client *websocket.Connection) {
	defer func() {
		h.hub.Unregister(client)
		_ = conn.Close()
	}()

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
