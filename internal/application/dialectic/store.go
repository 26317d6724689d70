// Package dialectic 实现辩证状态的应用层：状态仓库、正文缓存与深链激活
package dialectic

import (
	"context"
	"sync"
	"time"

	"log/slog"

	"github.com/google/uuid"

	domain "github.com/paynless/daemon/internal/domain/dialectic"
	"github.com/paynless/daemon/internal/domain/events"
	"github.com/paynless/daemon/internal/infrastructure/log"
)

// Store 辩证状态仓库
// 网关侧项目/会话状态的进程内权威镜像
// 每类操作持有独立的 loading/error 槽位：列表、创建、项目详情、会话详情
// 互不遮蔽，读失败不会被写失败覆盖，反之亦然
type Store struct {
	mu sync.RWMutex

	// 项目列表槽位
	projects        []domain.DialecticProject
	projectsLoading bool
	projectsError   string

	// 创建项目独立错误槽位
	createProjectError string

	// 项目详情槽位
	currentProjectDetail *domain.ProjectDetail
	projectDetailLoading bool
	projectDetailError   string

	// 会话详情槽位
	activeSessionDetail  *domain.SessionDetail
	sessionDetailLoading bool
	sessionDetailError   string

	// activeContext 当前激活的项目/会话/阶段
	activeContext domain.ActiveContext

	cache   *ContentCache
	gateway Gateway
	bus     events.EventBus
	logger  *slog.Logger
}

// NewStore 创建辩证状态仓库
func NewStore(gateway Gateway, cache *ContentCache, bus events.EventBus) *Store {
	return &Store{
		cache:   cache,
		gateway: gateway,
		bus:     bus,
		logger:  log.NewModuleLogger("dialectic", "store"),
	}
}

// ListProjects 拉取并整体替换项目列表
// 允许并发调用竞争，最后落定的响应获胜（列表端点是幂等权威源，无需取消）
// 双通道契约：结果既返回给调用方，也记录进列表槽位
func (s *Store) ListProjects(ctx context.Context) ([]domain.DialecticProject, error) {
	s.mu.Lock()
	s.projectsLoading = true
	s.mu.Unlock()
	s.publishProjects()

	projects, err := s.gateway.ListProjects(ctx)

	s.mu.Lock()
	s.projectsLoading = false
	if err != nil {
		// 列表失败时清空集合，避免错误横幅下仍渲染陈旧列表
		s.projects = nil
		s.projectsError = err.Error()
	} else {
		s.projects = projects
		s.projectsError = ""
	}
	s.mu.Unlock()
	s.publishProjects()

	if err != nil {
		s.logger.Warn("List projects failed",
			"error", err,
		)
		return nil, err
	}
	return s.Projects(), nil
}

// CreateProject 创建项目
// 失败只写入 createProjectError，不触碰列表集合与列表错误槽位
// 成功时把新项目插到列表头部，并设为当前项目详情
func (s *Store) CreateProject(ctx context.Context, payload domain.CreateProjectPayload) (*domain.DialecticProject, error) {
	if payload.IdempotencyKey == "" {
		payload.IdempotencyKey = uuid.New().String()
	}

	if err := payload.Validate(); err != nil {
		s.mu.Lock()
		s.createProjectError = err.Error()
		s.mu.Unlock()
		s.publishProjects()
		return nil, err
	}

	project, err := s.gateway.CreateProject(ctx, payload)

	s.mu.Lock()
	if err != nil {
		s.createProjectError = err.Error()
		s.mu.Unlock()
		s.publishProjects()
		s.logger.Warn("Create project failed",
			"project_name", payload.ProjectName,
			"error", err,
		)
		return nil, err
	}

	s.createProjectError = ""
	s.projects = append([]domain.DialecticProject{*project}, s.projects...)
	s.currentProjectDetail = &domain.ProjectDetail{DialecticProject: *project}
	s.projectDetailError = ""
	s.activeContext = domain.ActiveContext{ProjectID: project.ID}
	s.mu.Unlock()

	s.publishProjects()
	s.publishProjectDetail(project.ID)
	s.publishActiveContext()

	s.logger.Info("Project created",
		"project_id", project.ID,
		"project_name", project.ProjectName,
	)
	result := *project
	return &result, nil
}

// FetchProjectDetails 拉取单个项目详情（含会话列表）到详情槽位
// 详情槽位与列表集合相互独立，互不遮蔽
func (s *Store) FetchProjectDetails(ctx context.Context, projectID string) (*domain.ProjectDetail, error) {
	if projectID == "" {
		s.recordProjectDetailError(domain.ErrMissingProjectID.Error())
		return nil, domain.ErrMissingProjectID
	}

	s.mu.Lock()
	s.projectDetailLoading = true
	s.mu.Unlock()
	s.publishProjectDetail(projectID)

	detail, err := s.gateway.GetProjectDetails(ctx, projectID)

	s.mu.Lock()
	s.projectDetailLoading = false
	if err != nil {
		s.projectDetailError = err.Error()
		s.mu.Unlock()
		s.publishProjectDetail(projectID)
		s.logger.Warn("Fetch project details failed",
			"project_id", projectID,
			"error", err,
		)
		return nil, err
	}

	s.projectDetailError = ""
	s.currentProjectDetail = detail
	s.activeContext.ProjectID = detail.ID
	// 激活的会话不属于该项目时清除，防止跨项目悬挂
	if s.activeContext.SessionID != "" && detail.FindSession(s.activeContext.SessionID) == nil {
		s.activeContext.SessionID = ""
		s.activeContext.Stage = ""
	}
	result := copyProjectDetail(detail)
	s.mu.Unlock()

	s.publishProjectDetail(projectID)
	s.publishActiveContext()
	return result, nil
}

// FetchSessionDetails 拉取单个会话详情（含贡献列表）到会话槽位
// 成功时把会话并入已加载的项目详情，并更新激活上下文到该会话与其当前阶段
func (s *Store) FetchSessionDetails(ctx context.Context, sessionID string) (*domain.SessionDetail, error) {
	if sessionID == "" {
		s.recordSessionDetailError(domain.ErrMissingSessionID.Error())
		return nil, domain.ErrMissingSessionID
	}

	s.mu.Lock()
	s.sessionDetailLoading = true
	s.mu.Unlock()
	s.publishSessionDetail(sessionID)

	detail, err := s.gateway.GetSessionDetails(ctx, sessionID)

	s.mu.Lock()
	s.sessionDetailLoading = false
	if err != nil {
		s.sessionDetailError = err.Error()
		s.mu.Unlock()
		s.publishSessionDetail(sessionID)
		s.logger.Warn("Fetch session details failed",
			"session_id", sessionID,
			"error", err,
		)
		return nil, err
	}

	s.sessionDetailError = ""
	s.activeSessionDetail = detail

	// 项目详情已加载且匹配时，把最新会话状态并入其会话列表
	if s.currentProjectDetail != nil && s.currentProjectDetail.ID == detail.Session.ProjectID {
		s.currentProjectDetail.UpsertSession(detail.Session)
	}

	s.activeContext.ProjectID = detail.Session.ProjectID
	s.activeContext.SessionID = detail.Session.ID
	if detail.CurrentStage != nil {
		s.activeContext.Stage = detail.CurrentStage.Slug
	} else {
		s.activeContext.Stage = detail.Session.CurrentStage
	}
	result := copySessionDetail(detail)
	s.mu.Unlock()

	s.publishSessionDetail(sessionID)
	s.publishActiveContext()
	return result, nil
}

// FetchContributionContent 拉取贡献正文
// 委托给正文缓存，消费方通过 Store 单一入口访问
func (s *Store) FetchContributionContent(ctx context.Context, contributionID string) {
	s.cache.FetchContent(ctx, contributionID)
}

// ContentEntry 读取贡献正文缓存条目
func (s *Store) ContentEntry(contributionID string) (domain.ContentCacheEntry, bool) {
	return s.cache.Entry(contributionID)
}

// Cache 暴露正文缓存（Invalidate / Prime 等显式缓存操作）
func (s *Store) Cache() *ContentCache {
	return s.cache
}

// Projects 读取项目列表副本
func (s *Store) Projects() []domain.DialecticProject {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.DialecticProject, len(s.projects))
	copy(result, s.projects)
	return result
}

// ProjectsLoading 项目列表是否加载中
func (s *Store) ProjectsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projectsLoading
}

// ProjectsError 项目列表错误槽位
func (s *Store) ProjectsError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projectsError
}

// CreateProjectError 创建项目错误槽位
func (s *Store) CreateProjectError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.createProjectError
}

// ProjectDetail 读取当前项目详情副本，未加载时返回 nil
func (s *Store) ProjectDetail() *domain.ProjectDetail {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyProjectDetail(s.currentProjectDetail)
}

// ProjectDetailLoading 项目详情是否加载中
func (s *Store) ProjectDetailLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projectDetailLoading
}

// ProjectDetailError 项目详情错误槽位
func (s *Store) ProjectDetailError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projectDetailError
}

// SessionDetail 读取当前会话详情副本，未加载时返回 nil
func (s *Store) SessionDetail() *domain.SessionDetail {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySessionDetail(s.activeSessionDetail)
}

// SessionDetailLoading 会话详情是否加载中
func (s *Store) SessionDetailLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionDetailLoading
}

// SessionDetailError 会话详情错误槽位
func (s *Store) SessionDetailError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionDetailError
}

// ActiveContext 读取激活上下文
func (s *Store) ActiveContext() domain.ActiveContext {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeContext
}

// SetActiveStage 切换激活阶段（UI 标签页切换）
func (s *Store) SetActiveStage(stage string) {
	s.mu.Lock()
	s.activeContext.Stage = stage
	s.mu.Unlock()
	s.publishActiveContext()
}

// ResetCreateProjectError 清除创建项目错误槽位（表单重新打开时）
func (s *Store) ResetCreateProjectError() {
	s.mu.Lock()
	s.createProjectError = ""
	s.mu.Unlock()
	s.publishProjects()
}

// ResetProjectDetailError 清除项目详情错误槽位
func (s *Store) ResetProjectDetailError() {
	s.mu.Lock()
	s.projectDetailError = ""
	s.mu.Unlock()
	s.publishProjectDetail(s.ActiveContext().ProjectID)
}

// ResetSessionDetailError 清除会话详情错误槽位
func (s *Store) ResetSessionDetailError() {
	s.mu.Lock()
	s.sessionDetailError = ""
	s.mu.Unlock()
	s.publishSessionDetail(s.ActiveContext().SessionID)
}

// recordProjectDetailError 把本地校验失败记入项目详情槽位
// 本地失败与远端失败走同一条上报路径，消费方无需区分来源
func (s *Store) recordProjectDetailError(msg string) {
	s.mu.Lock()
	s.projectDetailLoading = false
	s.projectDetailError = msg
	s.mu.Unlock()
	s.publishProjectDetail("")
}

// recordSessionDetailError 把本地校验失败记入会话详情槽位
func (s *Store) recordSessionDetailError(msg string) {
	s.mu.Lock()
	s.sessionDetailLoading = false
	s.sessionDetailError = msg
	s.mu.Unlock()
	s.publishSessionDetail("")
}

// publishProjects 发布项目列表槽位变更事件
func (s *Store) publishProjects() {
	if s.bus == nil {
		return
	}
	s.mu.RLock()
	loading, errMsg := s.projectsLoading, s.projectsError
	if errMsg == "" {
		errMsg = s.createProjectError
	}
	s.mu.RUnlock()

	s.bus.Publish(&events.DialecticStateEvent{
		Kind:      events.ProjectsUpdated,
		Loading:   loading,
		Err:       errMsg,
		EventTime: time.Now(),
	})
}

// publishProjectDetail 发布项目详情槽位变更事件
func (s *Store) publishProjectDetail(projectID string) {
	if s.bus == nil {
		return
	}
	s.mu.RLock()
	loading, errMsg := s.projectDetailLoading, s.projectDetailError
	s.mu.RUnlock()

	s.bus.Publish(&events.DialecticStateEvent{
		Kind:      events.ProjectDetailUpdated,
		ProjectID: projectID,
		Loading:   loading,
		Err:       errMsg,
		EventTime: time.Now(),
	})
}

// publishSessionDetail 发布会话详情槽位变更事件
func (s *Store) publishSessionDetail(sessionID string) {
	if s.bus == nil {
		return
	}
	s.mu.RLock()
	loading, errMsg := s.sessionDetailLoading, s.sessionDetailError
	s.mu.RUnlock()

	s.bus.Publish(&events.DialecticStateEvent{
		Kind:      events.SessionDetailUpdated,
		SessionID: sessionID,
		Loading:   loading,
		Err:       errMsg,
		EventTime: time.Now(),
	})
}

// publishActiveContext 发布激活上下文变更事件
func (s *Store) publishActiveContext() {
	if s.bus == nil {
		return
	}
	ac := s.ActiveContext()
	s.bus.Publish(&events.DialecticStateEvent{
		Kind:      events.ActiveContextChanged,
		ProjectID: ac.ProjectID,
		SessionID: ac.SessionID,
		EventTime: time.Now(),
	})
}

// copyProjectDetail 深拷贝项目详情
func copyProjectDetail(detail *domain.ProjectDetail) *domain.ProjectDetail {
	if detail == nil {
		return nil
	}
	result := *detail
	result.Sessions = make([]domain.DialecticSession, len(detail.Sessions))
	copy(result.Sessions, detail.Sessions)
	result.SessionIDs = make([]string, len(detail.SessionIDs))
	copy(result.SessionIDs, detail.SessionIDs)
	return &result
}

// copySessionDetail 深拷贝会话详情
func copySessionDetail(detail *domain.SessionDetail) *domain.SessionDetail {
	if detail == nil {
		return nil
	}
	result := *detail
	result.Contributions = make([]domain.DialecticContribution, len(detail.Contributions))
	copy(result.Contributions, detail.Contributions)
	if detail.CurrentStage != nil {
		stage := *detail.CurrentStage
		result.CurrentStage = &stage
	}
	return &result
}
