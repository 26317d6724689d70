package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	appChat "github.com/paynless/daemon/internal/application/chat"
	appWallet "github.com/paynless/daemon/internal/application/wallet"
	domain "github.com/paynless/daemon/internal/domain/wallet"
	"github.com/paynless/daemon/internal/interfaces/http/response"
)

// ChatHandler 聊天上下文与发送前检查处理器
type ChatHandler struct {
	contextStore *appChat.ContextStore
	checker      *appChat.AffordabilityChecker
	walletSvc    *appWallet.Service
}

// NewChatHandler 创建聊天处理器
func NewChatHandler(
	contextStore *appChat.ContextStore,
	checker *appChat.AffordabilityChecker,
	walletSvc *appWallet.Service,
) *ChatHandler {
	return &ChatHandler{
		contextStore: contextStore,
		checker:      checker,
		walletSvc:    walletSvc,
	}
}

// SetContextRequest 切换上下文请求
type SetContextRequest struct {
	Type  domain.ContextType `json:"type"`             // personal 或 organization
	OrgID string             `json:"org_id,omitempty"` // 组织 ID（组织上下文）
}

// CheckMessageRequest 发送前检查请求
type CheckMessageRequest struct {
	Message string `json:"message"` // 待发送消息
}

// Context 读取当前聊天上下文
// @Summary 读取聊天上下文
// @Tags 聊天
// @Produce json
// @Success 200 {object} response.Response
// @Router /chat/context [get]
func (h *ChatHandler) Context(c *gin.Context) {
	response.Success(c, h.contextStore.CurrentContext())
}

// SetContext 切换聊天上下文
// 切换后惰性触发新上下文的钱包加载，判定在加载完成前保持 loading
// @Summary 切换聊天上下文
// @Tags 聊天
// @Accept json
// @Produce json
// @Param body body SetContextRequest true "目标上下文"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Router /chat/context [put]
func (h *ChatHandler) SetContext(c *gin.Context) {
	var req SetContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, 100001, "参数错误")
		return
	}

	chatCtx := domain.ChatContext{Type: req.Type, OrgID: req.OrgID}
	if err := h.contextStore.SetContext(chatCtx); err != nil {
		response.ErrorWithDetail(c, http.StatusBadRequest, 100001, "参数错误", err.Error())
		return
	}

	go h.walletSvc.EnsureActiveLoaded(context.Background())

	response.Success(c, gin.H{
		"context": h.contextStore.CurrentContext(),
		"wallet":  h.walletSvc.ActiveWalletInfo(),
	})
}

// CheckMessage 发送前余额检查
// @Summary 发送前检查
// @Tags 聊天
// @Accept json
// @Produce json
// @Param body body CheckMessageRequest true "待发送消息"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Router /chat/affordability [post]
func (h *ChatHandler) CheckMessage(c *gin.Context) {
	var req CheckMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, 100001, "参数错误")
		return
	}

	response.Success(c, h.checker.CheckMessage(req.Message))
}
