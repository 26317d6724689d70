// Package events 定义领域事件类型和接口
// 用于把 Store / 钱包状态变更推送给订阅者（如 WebSocket Hub）
package events

import "time"

// EventType 事件类型标识
type EventType string

// 辩证状态相关事件类型
const (
	// ProjectsUpdated 项目列表槽位变更（加载中/成功/失败）
	ProjectsUpdated EventType = "dialectic.projects.updated"
	// ProjectDetailUpdated 项目详情槽位变更
	ProjectDetailUpdated EventType = "dialectic.project_detail.updated"
	// SessionDetailUpdated 会话详情槽位变更
	SessionDetailUpdated EventType = "dialectic.session_detail.updated"
	// ContributionContentUpdated 贡献正文缓存条目变更
	ContributionContentUpdated EventType = "dialectic.contribution_content.updated"
	// ActiveContextChanged 激活上下文（项目/会话/阶段）变更
	ActiveContextChanged EventType = "dialectic.context.changed"
)

// 钱包相关事件类型
const (
	// WalletUpdated 钱包槽位变更（个人或组织）
	WalletUpdated EventType = "wallet.updated"
	// ChatContextChanged 聊天计费上下文切换
	ChatContextChanged EventType = "chat.context.changed"
)

// 认证相关事件类型
const (
	// AuthTokenUpdated 网关访问令牌已更新（UI 登录流写入令牌文件后）
	AuthTokenUpdated EventType = "auth.token.updated"
)

// Event 领域事件接口
// 所有事件类型都必须实现此接口
type Event interface {
	// Type 返回事件类型
	Type() EventType
	// Timestamp 返回事件发生时间
	Timestamp() time.Time
}
