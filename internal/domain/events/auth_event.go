package events

import "time"

// AuthTokenEvent 网关访问令牌更新事件
// 令牌本身不进入事件，订阅者只需知道令牌已轮换
type AuthTokenEvent struct {
	// EventTime 事件发生时间
	EventTime time.Time
}

// Type 实现 Event 接口
func (e *AuthTokenEvent) Type() EventType {
	return AuthTokenUpdated
}

// Timestamp 实现 Event 接口
func (e *AuthTokenEvent) Timestamp() time.Time {
	return e.EventTime
}
