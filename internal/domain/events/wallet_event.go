package events

import "time"

// WalletEvent 钱包槽位变更事件
type WalletEvent struct {
	// Kind 事件类型（WalletUpdated / ChatContextChanged）
	Kind EventType
	// ContextType 上下文类型（personal / organization）
	ContextType string
	// OrgID 组织 ID（组织上下文）
	OrgID string
	// EventTime 事件发生时间
	EventTime time.Time
}

// Type 实现 Event 接口
func (e *WalletEvent) Type() EventType {
	return e.Kind
}

// Timestamp 实现 Event 接口
func (e *WalletEvent) Timestamp() time.Time {
	return e.EventTime
}
