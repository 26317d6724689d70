// Package websocket 管理推送到本机 UI 的 WebSocket 连接
package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"log/slog"

	"github.com/paynless/daemon/internal/infrastructure/log"
)

// Hub WebSocket 连接管理中心
// 守护进程是单用户的，所有已连接的 UI 客户端收到同样的状态推送
type Hub struct {
	// 已连接的客户端
	clients map[*Connection]bool
	// 注册连接
	register chan *Connection
	// 注销连接
	unregister chan *Connection
	// 广播消息
	broadcast chan []byte
	mu        sync.RWMutex
	logger    *slog.Logger
}

// Connection WebSocket 连接
type Connection struct {
	Send chan []byte
}

// pushMessage 推送消息信封
type pushMessage struct {
	Type    string      `json:"type"`    // 事件类型
	Payload interface{} `json:"payload"` // 事件负载
	Ts      int64       `json:"ts"`      // 毫秒时间戳
}

// NewHub 创建 Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan []byte, 64),
		logger:     log.NewModuleLogger("websocket", "hub"),
	}
}

// Run 运行 Hub（需要在 goroutine 中运行）
func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()
			h.logger.Debug("Client registered",
				"clients", h.clientCount(),
			)

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				close(conn.Send)
			}
			h.mu.Unlock()
			h.logger.Debug("Client unregistered",
				"clients", h.clientCount(),
			)

		case data := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				select {
				case conn.Send <- data:
				default:
					// 发送缓冲已满的慢客户端直接断开
					close(conn.Send)
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Start 启动 Hub（启动后台 goroutine）
func (h *Hub) Start() {
	go h.Run()
}

// Register 注册连接
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister 注销连接
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// Broadcast 向所有客户端广播事件
func (h *Hub) Broadcast(eventType string, payload interface{}) error {
	jsonData, err := json.Marshal(pushMessage{
		Type:    eventType,
		Payload: payload,
		Ts:      time.Now().UnixMilli(),
	})
	if err != nil {
		return err
	}
	h.broadcast <- jsonData
	return nil
}

// clientCount 当前客户端数量
func (h *Hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
