package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_BroadcastToAllClients(t *testing.T) {
	hub := NewHub()
	hub.Start()

	conn1 := &Connection{Send: make(chan []byte, 8)}
	conn2 := &Connection{Send: make(chan []byte, 8)}
	hub.Register(conn1)
	hub.Register(conn2)

	require.NoError(t, hub.Broadcast("wallet.updated", map[string]string{"org_id": "o1"}))

	for _, conn := range []*Connection{conn1, conn2} {
		select {
		case data := <-conn.Send:
			var msg struct {
				Type    string          `json:"type"`
				Payload json.RawMessage `json:"payload"`
				Ts      int64           `json:"ts"`
			}
			require.NoError(t, json.Unmarshal(data, &msg))
			assert.Equal(t, "wallet.updated", msg.Type)
			assert.NotZero(t, msg.Ts)
			assert.Contains(t, string(msg.Payload), "o1")
		case <-time.After(time.Second):
			t.Fatal("broadcast not delivered")
		}
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	hub.Start()

	conn := &Connection{Send: make(chan []byte, 8)}
	hub.Register(conn)
	hub.Unregister(conn)

	select {
	case _, ok := <-conn.Send:
		assert.False(t, ok, "send channel should be closed after unregister")
	case <-time.After(time.Second):
		t.Fatal("send channel not closed")
	}

	// 注销后的广播不会到达
	require.NoError(t, hub.Broadcast("dialectic.projects.updated", nil))
}

func TestHub_SlowClientDropped(t *testing.T) {
	hub := NewHub()
	hub.Start()

	// 缓冲为 1 且不消费的慢客户端
	conn := &Connection{Send: make(chan []byte, 1)}
	hub.Register(conn)

	require.NoError(t, hub.Broadcast("e1", nil))
	require.NoError(t, hub.Broadcast("e2", nil))

	// 第二条消息塞不进缓冲，连接被断开
	deadline := time.After(time.Second)
	for {
		if hub.clientCount() == 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("slow client not dropped")
		case <-time.After(5 * time.Millisecond):
		}
	}
}
