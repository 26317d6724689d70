package dialectic

import (
	"context"

	domain "github.com/paynless/daemon/internal/domain/dialectic"
)

// Gateway 远程网关的辩证操作契约
// 传输失败与应用层失败统一为 error 返回
type Gateway interface {
	// ListProjects 拉取项目列表
	ListProjects(ctx context.Context) ([]domain.DialecticProject, error)
	// CreateProject 创建项目
	CreateProject(ctx context.Context, payload domain.CreateProjectPayload) (*domain.DialecticProject, error)
	// GetProjectDetails 拉取项目详情（含会话列表）
	GetProjectDetails(ctx context.Context, projectID string) (*domain.ProjectDetail, error)
	// GetSessionDetails 拉取会话详情（含贡献列表）
	GetSessionDetails(ctx context.Context, sessionID string) (*domain.SessionDetail, error)
	// GetContributionContent 拉取贡献正文
	GetContributionContent(ctx context.Context, contributionID string) (*domain.ContributionContent, error)
}
