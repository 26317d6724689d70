package dialectic

import "errors"

// 深链激活相关错误
var (
	// ErrMissingProjectID 深链缺少项目 ID
	ErrMissingProjectID = errors.New("missing project identifier for deep link activation")
	// ErrMissingSessionID 深链缺少会话 ID
	ErrMissingSessionID = errors.New("missing session identifier for deep link activation")
	// ErrDeepLinkActivationFailed 深链激活失败（详情见 Store 错误槽）
	ErrDeepLinkActivationFailed = errors.New("deep link activation failed")
)

// 项目相关错误
var (
	// ErrProjectNameRequired 项目名称必填
	ErrProjectNameRequired = errors.New("project name is required")
	// ErrDomainRequired 领域标签必填
	ErrDomainRequired = errors.New("domain is required")
	// ErrProjectNotFound 项目不存在
	ErrProjectNotFound = errors.New("project not found")
	// ErrSessionNotFound 会话不存在
	ErrSessionNotFound = errors.New("session not found")
	// ErrContributionNotFound 贡献不存在
	ErrContributionNotFound = errors.New("contribution not found")
)

// 内容缓存相关错误
var (
	// ErrMissingContributionID 贡献 ID 为空
	ErrMissingContributionID = errors.New("contribution id is required")
)
