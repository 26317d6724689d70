package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	appDialectic "github.com/paynless/daemon/internal/application/dialectic"
	domain "github.com/paynless/daemon/internal/domain/dialectic"
	"github.com/paynless/daemon/internal/interfaces/http/response"
)

// DialecticHandler 辩证状态处理器
type DialecticHandler struct {
	store     *appDialectic.Store
	activator *appDialectic.DeepLinkActivator
}

// NewDialecticHandler 创建辩证状态处理器
func NewDialecticHandler(store *appDialectic.Store, activator *appDialectic.DeepLinkActivator) *DialecticHandler {
	return &DialecticHandler{store: store, activator: activator}
}

// ProjectsState 项目列表槽位视图
type ProjectsState struct {
	Projects           []domain.DialecticProject `json:"projects"`             // 项目列表
	IsLoading          bool                      `json:"is_loading"`           // 是否加载中
	Error              string                    `json:"error,omitempty"`      // 列表错误槽位
	CreateProjectError string                    `json:"create_project_error,omitempty"` // 创建错误槽位（独立）
}

// DetailState 详情槽位视图
type DetailState struct {
	Detail    interface{} `json:"detail"`          // 详情，未加载时为 null
	IsLoading bool        `json:"is_loading"`      // 是否加载中
	Error     string      `json:"error,omitempty"` // 错误槽位
}

// DeepLinkRequest 深链激活请求
type DeepLinkRequest struct {
	ProjectID string `json:"project_id"` // 项目 ID
	SessionID string `json:"session_id"` // 会话 ID
}

// StageRequest 切换激活阶段请求
type StageRequest struct {
	Stage string `json:"stage"` // 阶段 slug
}

// Projects 读取项目列表槽位
// @Summary 读取项目列表状态
// @Tags 辩证
// @Produce json
// @Success 200 {object} response.Response
// @Router /dialectic/projects [get]
func (h *DialecticHandler) Projects(c *gin.Context) {
	response.Success(c, ProjectsState{
		Projects:           h.store.Projects(),
		IsLoading:          h.store.ProjectsLoading(),
		Error:              h.store.ProjectsError(),
		CreateProjectError: h.store.CreateProjectError(),
	})
}

// RefreshProjects 拉取并替换项目列表
// @Summary 刷新项目列表
// @Tags 辩证
// @Produce json
// @Success 200 {object} response.Response
// @Failure 502 {object} response.ErrorResponse
// @Router /dialectic/projects/refresh [post]
func (h *DialecticHandler) RefreshProjects(c *gin.Context) {
	projects, err := h.store.ListProjects(c.Request.Context())
	if err != nil {
		// 错误已记录进列表槽位，响应里原样带出
		response.ErrorWithDetail(c, http.StatusBadGateway, 200001, "拉取项目列表失败", err.Error())
		return
	}
	response.Success(c, projects)
}

// CreateProject 创建项目
// @Summary 创建项目
// @Tags 辩证
// @Accept json
// @Produce json
// @Param body body dialectic.CreateProjectPayload true "创建请求"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Router /dialectic/projects [post]
func (h *DialecticHandler) CreateProject(c *gin.Context) {
	var payload domain.CreateProjectPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, http.StatusBadRequest, 100001, "参数错误")
		return
	}

	project, err := h.store.CreateProject(c.Request.Context(), payload)
	if err != nil {
		response.ErrorWithDetail(c, http.StatusBadGateway, 200002, "创建项目失败", err.Error())
		return
	}
	response.Success(c, project)
}

// ResetCreateProjectError 清除创建项目错误槽位
// @Summary 清除创建错误
// @Tags 辩证
// @Produce json
// @Success 200 {object} response.Response
// @Router /dialectic/projects/create-error [delete]
func (h *DialecticHandler) ResetCreateProjectError(c *gin.Context) {
	h.store.ResetCreateProjectError()
	response.Success(c, nil)
}

// ProjectDetail 读取项目详情槽位
// @Summary 读取项目详情状态
// @Tags 辩证
// @Produce json
// @Success 200 {object} response.Response
// @Router /dialectic/project-detail [get]
func (h *DialecticHandler) ProjectDetail(c *gin.Context) {
	var detail interface{}
	if d := h.store.ProjectDetail(); d != nil {
		detail = d
	}
	response.Success(c, DetailState{
		Detail:    detail,
		IsLoading: h.store.ProjectDetailLoading(),
		Error:     h.store.ProjectDetailError(),
	})
}

// FetchProjectDetail 拉取项目详情
// @Summary 拉取项目详情
// @Tags 辩证
// @Produce json
// @Param project_id path string true "项目 ID"
// @Success 200 {object} response.Response
// @Failure 502 {object} response.ErrorResponse
// @Router /dialectic/projects/{project_id}/fetch [post]
func (h *DialecticHandler) FetchProjectDetail(c *gin.Context) {
	detail, err := h.store.FetchProjectDetails(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		response.ErrorWithDetail(c, http.StatusBadGateway, 200003, "拉取项目详情失败", err.Error())
		return
	}
	response.Success(c, detail)
}

// SessionDetail 读取会话详情槽位
// @Summary 读取会话详情状态
// @Tags 辩证
// @Produce json
// @Success 200 {object} response.Response
// @Router /dialectic/session-detail [get]
func (h *DialecticHandler) SessionDetail(c *gin.Context) {
	var detail interface{}
	if d := h.store.SessionDetail(); d != nil {
		detail = d
	}
	response.Success(c, DetailState{
		Detail:    detail,
		IsLoading: h.store.SessionDetailLoading(),
		Error:     h.store.SessionDetailError(),
	})
}

// FetchSessionDetail 拉取会话详情
// @Summary 拉取会话详情
// @Tags 辩证
// @Produce json
// @Param session_id path string true "会话 ID"
// @Success 200 {object} response.Response
// @Failure 502 {object} response.ErrorResponse
// @Router /dialectic/sessions/{session_id}/fetch [post]
func (h *DialecticHandler) FetchSessionDetail(c *gin.Context) {
	detail, err := h.store.FetchSessionDetails(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		response.ErrorWithDetail(c, http.StatusBadGateway, 200004, "拉取会话详情失败", err.Error())
		return
	}
	response.Success(c, detail)
}

// FetchContributionContent 触发贡献正文拉取
// 触发即返回，结果通过 WebSocket 推送与条目查询观察
// @Summary 触发正文拉取
// @Tags 辩证
// @Produce json
// @Param contribution_id path string true "贡献 ID"
// @Success 200 {object} response.Response
// @Router /dialectic/contributions/{contribution_id}/fetch [post]
func (h *DialecticHandler) FetchContributionContent(c *gin.Context) {
	contributionID := c.Param("contribution_id")

	// 请求上下文随响应结束，在途拉取用独立上下文
	go h.store.FetchContributionContent(context.Background(), contributionID)

	entry, _ := h.store.ContentEntry(contributionID)
	response.Success(c, entry)
}

// ContributionContent 读取贡献正文缓存条目
// @Summary 读取正文缓存条目
// @Tags 辩证
// @Produce json
// @Param contribution_id path string true "贡献 ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /dialectic/contributions/{contribution_id}/content [get]
func (h *DialecticHandler) ContributionContent(c *gin.Context) {
	entry, ok := h.store.ContentEntry(c.Param("contribution_id"))
	if !ok {
		response.Error(c, http.StatusNotFound, 100002, "缓存条目不存在")
		return
	}
	response.Success(c, entry)
}

// InvalidateContributionContent 移除贡献正文缓存条目
// @Summary 失效正文缓存
// @Tags 辩证
// @Produce json
// @Param contribution_id path string true "贡献 ID"
// @Success 200 {object} response.Response
// @Router /dialectic/contributions/{contribution_id}/content [delete]
func (h *DialecticHandler) InvalidateContributionContent(c *gin.Context) {
	h.store.Cache().Invalidate(c.Param("contribution_id"))
	response.Success(c, nil)
}

// PrimeContributionContent 直接写入贡献正文（编辑保存后）
// @Summary 写入正文缓存
// @Tags 辩证
// @Accept json
// @Produce json
// @Param contribution_id path string true "贡献 ID"
// @Param body body dialectic.ContributionContent true "正文"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Router /dialectic/contributions/{contribution_id}/content [put]
func (h *DialecticHandler) PrimeContributionContent(c *gin.Context) {
	var content domain.ContributionContent
	if err := c.ShouldBindJSON(&content); err != nil {
		response.Error(c, http.StatusBadRequest, 100001, "参数错误")
		return
	}

	h.store.Cache().Prime(c.Param("contribution_id"), content)
	response.Success(c, nil)
}

// ActiveContext 读取激活上下文
// @Summary 读取激活上下文
// @Tags 辩证
// @Produce json
// @Success 200 {object} response.Response
// @Router /dialectic/context [get]
func (h *DialecticHandler) ActiveContext(c *gin.Context) {
	response.Success(c, h.store.ActiveContext())
}

// SetActiveStage 切换激活阶段
// @Summary 切换激活阶段
// @Tags 辩证
// @Accept json
// @Produce json
// @Param body body StageRequest true "阶段"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Router /dialectic/context/stage [put]
func (h *DialecticHandler) SetActiveStage(c *gin.Context) {
	var req StageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, 100001, "参数错误")
		return
	}

	h.store.SetActiveStage(req.Stage)
	response.Success(c, h.store.ActiveContext())
}

// ActivateDeepLink 深链激活项目与会话
// @Summary 深链激活
// @Tags 辩证
// @Accept json
// @Produce json
// @Param body body DeepLinkRequest true "深链目标"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /dialectic/deeplink [post]
func (h *DialecticHandler) ActivateDeepLink(c *gin.Context) {
	var req DeepLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, 100001, "参数错误")
		return
	}

	if err := h.activator.ActivateProjectAndSession(c.Request.Context(), req.ProjectID, req.SessionID); err != nil {
		httpCode := http.StatusBadGateway
		if err == domain.ErrMissingProjectID || err == domain.ErrMissingSessionID {
			httpCode = http.StatusBadRequest
		}
		response.ErrorWithDetail(c, httpCode, 200005, "深链激活失败", err.Error())
		return
	}
	response.Success(c, h.store.ActiveContext())
}
