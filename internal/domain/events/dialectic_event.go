package events

import "time"

// DialecticStateEvent 辩证状态槽位变更事件
// Store 的每一次槽位转换（loading / success / error）都会发布一条
type DialecticStateEvent struct {
	// Kind 事件类型（ProjectsUpdated / ProjectDetailUpdated / ...）
	Kind EventType
	// ProjectID 相关项目 ID（可为空）
	ProjectID string
	// SessionID 相关会话 ID（可为空）
	SessionID string
	// ContributionID 相关贡献 ID（仅内容缓存事件）
	ContributionID string
	// Loading 槽位当前是否处于加载中
	Loading bool
	// Err 槽位当前错误信息，空表示无错误
	Err string
	// EventTime 事件发生时间
	EventTime time.Time
}

// Type 实现 Event 接口
func (e *DialecticStateEvent) Type() EventType {
	return e.Kind
}

// Timestamp 实现 Event 接口
func (e *DialecticStateEvent) Timestamp() time.Time {
	return e.EventTime
}
