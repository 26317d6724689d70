package dialectic

import (
	"fmt"
	"time"
)

// ProjectStatus 项目生命周期状态
type ProjectStatus string

const (
	// ProjectStatusDraft 草稿状态（已创建，未启动会话）
	ProjectStatusDraft ProjectStatus = "draft"
	// ProjectStatusActive 活跃状态（至少一个会话在进行）
	ProjectStatusActive ProjectStatus = "active"
	// ProjectStatusArchived 归档状态（客户端不删除项目，归档即终态）
	ProjectStatusArchived ProjectStatus = "archived"
)

// DialecticProject 辩证项目
// 一个项目包含一个初始提示词和若干会话，由多个 AI 模型共同探索
type DialecticProject struct {
	ID                string        `json:"id"`                  // 项目 ID (UUID)
	UserID            string        `json:"user_id"`             // 所属用户 ID
	ProjectName       string        `json:"project_name"`        // 显示名称
	InitialUserPrompt string        `json:"initial_user_prompt"` // 初始提示词
	Status            ProjectStatus `json:"status"`              // 生命周期状态
	SelectedDomainID  string        `json:"selected_domain_id"`  // 领域标签 ID
	DomainName        string        `json:"domain_name"`         // 领域显示名称
	SessionIDs        []string      `json:"session_ids"`         // 会话 ID 列表（有序）
	CreatedAt         time.Time     `json:"created_at"`          // 创建时间
	UpdatedAt         time.Time     `json:"updated_at"`          // 更新时间
}

// SessionStatus 会话状态
type SessionStatus string

const (
	// SessionStatusPending 会话已创建，尚未开始生成
	SessionStatusPending SessionStatus = "pending"
	// SessionStatusGenerating 会话正在生成贡献
	SessionStatusGenerating SessionStatus = "generating"
	// SessionStatusAwaitingReview 等待用户审阅当前阶段
	SessionStatusAwaitingReview SessionStatus = "awaiting_review"
	// SessionStatusCompleted 会话已完成所有阶段
	SessionStatusCompleted SessionStatus = "completed"
	// SessionStatusFailed 会话失败
	SessionStatusFailed SessionStatus = "failed"
)

// DialecticStage 流程阶段
type DialecticStage struct {
	Slug        string `json:"slug"`         // 阶段标识，如 "thesis", "antithesis"
	DisplayName string `json:"display_name"` // 阶段显示名称
}

// DialecticSession 辩证会话
// 项目内的一次分阶段运行，按序推进各个阶段
type DialecticSession struct {
	ID              string        `json:"id"`               // 会话 ID (UUID)
	ProjectID       string        `json:"project_id"`       // 所属项目 ID
	Description     string        `json:"description"`      // 会话描述
	Status          SessionStatus `json:"status"`           // 会话状态
	IterationCount  int           `json:"iteration_count"`  // 当前迭代次数
	CurrentStage    string        `json:"current_stage"`    // 当前阶段 slug
	CompletedStages []string      `json:"completed_stages"` // 已完成阶段（有序）
	CreatedAt       time.Time     `json:"created_at"`       // 创建时间
	UpdatedAt       time.Time     `json:"updated_at"`       // 更新时间
}

// DialecticContribution 模型贡献
// 会话某一阶段中单个模型的产出物引用
// 服务端创建后不可变，客户端只读，正文内容单独拉取并缓存
type DialecticContribution struct {
	ID              string    `json:"id"`               // 贡献 ID (UUID)
	SessionID       string    `json:"session_id"`       // 所属会话 ID
	ModelID         string    `json:"model_id"`         // 产出模型 ID
	ModelName       string    `json:"model_name"`       // 产出模型显示名称
	Stage           string    `json:"stage"`            // 所属阶段 slug
	IterationNumber int       `json:"iteration_number"` // 迭代编号
	MimeType        string    `json:"mime_type"`        // 正文 MIME 类型
	ContentRef      string    `json:"content_ref"`      // 正文存储引用（非正文本身）
	CreatedAt       time.Time `json:"created_at"`       // 创建时间
}

// ProjectDetail 项目详情（项目 + 其会话列表）
type ProjectDetail struct {
	DialecticProject
	Sessions []DialecticSession `json:"sessions"` // 会话列表（有序）
}

// SessionDetail 会话详情（会话 + 其贡献列表 + 当前阶段）
type SessionDetail struct {
	Session       DialecticSession        `json:"session"`                 // 会话
	Contributions []DialecticContribution `json:"contributions"`           // 贡献列表
	CurrentStage  *DialecticStage         `json:"current_stage,omitempty"` // 当前阶段详情
}

// ContributionContent 贡献正文（按需拉取的内容）
type ContributionContent struct {
	Content   string `json:"content"`    // 正文
	MimeType  string `json:"mime_type"`  // MIME 类型
	SizeBytes int64  `json:"size_bytes"` // 大小（字节）
	FileName  string `json:"file_name"`  // 文件名
}

// CreateProjectPayload 创建项目请求
type CreateProjectPayload struct {
	ProjectName       string `json:"project_name"`        // 项目名称（必填）
	InitialUserPrompt string `json:"initial_user_prompt"` // 初始提示词
	SelectedDomainID  string `json:"selected_domain_id"`  // 领域标签 ID（必填）
	IdempotencyKey    string `json:"idempotency_key"`     // 幂等键（由 Store 生成）
}

// Validate 验证创建项目请求
func (p *CreateProjectPayload) Validate() error {
	if p.ProjectName == "" {
		return ErrProjectNameRequired
	}
	if p.SelectedDomainID == "" {
		return ErrDomainRequired
	}
	return nil
}

// FindSession 在项目详情中查找会话
func (d *ProjectDetail) FindSession(sessionID string) *DialecticSession {
	for i := range d.Sessions {
		if d.Sessions[i].ID == sessionID {
			return &d.Sessions[i]
		}
	}
	return nil
}

// UpsertSession 合并会话到项目详情
// 已存在则整体替换，不存在则追加到末尾
func (d *ProjectDetail) UpsertSession(session DialecticSession) {
	for i := range d.Sessions {
		if d.Sessions[i].ID == session.ID {
			d.Sessions[i] = session
			return
		}
	}
	d.Sessions = append(d.Sessions, session)
}

// ActiveContext 当前激活的 UI 上下文（项目/会话/阶段）
type ActiveContext struct {
	ProjectID string `json:"project_id"` // 激活的项目 ID，空表示无
	SessionID string `json:"session_id"` // 激活的会话 ID，空表示无
	Stage     string `json:"stage"`      // 激活的阶段 slug，空表示无
}

// String 便于日志输出
func (c ActiveContext) String() string {
	return fmt.Sprintf("project=%s session=%s stage=%s", c.ProjectID, c.SessionID, c.Stage)
}
