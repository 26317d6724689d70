package wallet

import "errors"

// 上下文相关错误
var (
	// ErrUnknownContextType 未知的上下文类型
	ErrUnknownContextType = errors.New("unknown chat context type")
	// ErrMissingOrgID 组织上下文缺少组织 ID
	ErrMissingOrgID = errors.New("organization context requires an org id")
)

// 钱包相关错误
var (
	// ErrInvalidBalance 余额不是合法的十进制整数
	ErrInvalidBalance = errors.New("wallet balance is not a valid decimal integer")
	// ErrInsufficientBalance 余额不足以覆盖本次发送
	ErrInsufficientBalance = errors.New("wallet balance is insufficient for this message")
)
