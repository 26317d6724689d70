package wallet

import (
	"strconv"
	"time"
)

// ContextType 聊天上下文类型
type ContextType string

const (
	// ContextPersonal 个人上下文（使用个人钱包计费）
	ContextPersonal ContextType = "personal"
	// ContextOrganization 组织上下文（使用组织钱包计费）
	ContextOrganization ContextType = "organization"
)

// ChatContext 聊天计费上下文
// 决定 AI 操作计入哪个钱包：个人或某个具体组织
type ChatContext struct {
	Type  ContextType `json:"type"`             // personal 或 organization
	OrgID string      `json:"org_id,omitempty"` // 组织 ID（仅组织上下文）
}

// NewPersonalContext 创建个人上下文
func NewPersonalContext() ChatContext {
	return ChatContext{Type: ContextPersonal}
}

// NewOrganizationContext 创建组织上下文
func NewOrganizationContext(orgID string) ChatContext {
	return ChatContext{Type: ContextOrganization, OrgID: orgID}
}

// IsPersonal 是否为个人上下文
func (c ChatContext) IsPersonal() bool {
	return c.Type == ContextPersonal
}

// Validate 验证上下文
func (c ChatContext) Validate() error {
	switch c.Type {
	case ContextPersonal:
		return nil
	case ContextOrganization:
		if c.OrgID == "" {
			return ErrMissingOrgID
		}
		return nil
	default:
		return ErrUnknownContextType
	}
}

// TokenWallet 代币钱包
// 余额以字符串表示，避免大数精度丢失（与网关 API 一致）
type TokenWallet struct {
	WalletID  string    `json:"wallet_id"`  // 钱包 ID (UUID)
	UserID    string    `json:"user_id"`    // 所属用户 ID（个人钱包）
	OrgID     string    `json:"org_id"`     // 所属组织 ID（组织钱包）
	Balance   string    `json:"balance"`    // 代币余额（十进制字符串）
	Currency  string    `json:"currency"`   // 计价单位，如 "AI_TOKEN"
	CreatedAt time.Time `json:"created_at"` // 创建时间
	UpdatedAt time.Time `json:"updated_at"` // 更新时间
}

// BalanceValue 解析余额为整数
// 余额非法时返回 ErrInvalidBalance
func (w *TokenWallet) BalanceValue() (int64, error) {
	v, err := strconv.ParseInt(w.Balance, 10, 64)
	if err != nil {
		return 0, ErrInvalidBalance
	}
	return v, nil
}

// WalletRecord 网关返回的钱包信息
// 组织上下文附带成员聊天策略；个人上下文策略字段恒为允许
type WalletRecord struct {
	Wallet            *TokenWallet `json:"wallet"`              // 钱包，上下文尚无钱包时为 nil
	MemberChatAllowed bool         `json:"member_chat_allowed"` // 组织是否允许成员创建聊天
	IsPrivileged      bool         `json:"is_privileged"`       // 当前用户是否为特权角色（admin）
}

// WalletStatus 钱包就绪判定状态
type WalletStatus string

const (
	// StatusLoading 相关钱包尚未完成首次加载
	StatusLoading WalletStatus = "loading"
	// StatusOK 钱包已加载且可用，允许发送
	StatusOK WalletStatus = "ok"
	// StatusNotReady 钱包已加载但不可用（无钱包或策略禁止），不是错误
	StatusNotReady WalletStatus = "not_ready"
	// StatusError 钱包加载本身失败
	StatusError WalletStatus = "error"
)

// ActiveWalletInfo 派生的钱包就绪判定
// 每次读取时重新计算，从不落盘，避免上下文切换后的陈旧门禁
type ActiveWalletInfo struct {
	Status   WalletStatus `json:"status"`              // 判定状态
	Type     ContextType  `json:"type,omitempty"`      // 上下文类型
	OrgID    string       `json:"org_id,omitempty"`    // 组织 ID（组织上下文）
	WalletID string       `json:"wallet_id,omitempty"` // 钱包 ID
	Balance  string       `json:"balance,omitempty"`   // 余额（十进制字符串）
	Message  string       `json:"message,omitempty"`   // 人类可读说明
}

// CanSend 判定是否允许发送聊天
func (i ActiveWalletInfo) CanSend() bool {
	return i.Status == StatusOK
}
