package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appWallet "github.com/paynless/daemon/internal/application/wallet"
	domain "github.com/paynless/daemon/internal/domain/wallet"
	"github.com/paynless/daemon/internal/interfaces/http/response"
)

// WalletHandler 钱包处理器
type WalletHandler struct {
	service *appWallet.Service
}

// NewWalletHandler 创建钱包处理器
func NewWalletHandler(service *appWallet.Service) *WalletHandler {
	return &WalletHandler{service: service}
}

// LoadWalletRequest 加载钱包请求
type LoadWalletRequest struct {
	Type  domain.ContextType `json:"type"`             // personal 或 organization
	OrgID string             `json:"org_id,omitempty"` // 组织 ID（组织上下文）
}

// Active 读取当前上下文的钱包就绪判定
// 每次请求重新派生，从不返回缓存的判定
// @Summary 读取钱包就绪判定
// @Tags 钱包
// @Produce json
// @Success 200 {object} response.Response
// @Router /wallet/active [get]
func (h *WalletHandler) Active(c *gin.Context) {
	response.Success(c, h.service.ActiveWalletInfo())
}

// Load 加载指定上下文的钱包
// @Summary 加载钱包
// @Tags 钱包
// @Accept json
// @Produce json
// @Param body body LoadWalletRequest true "上下文"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /wallet/load [post]
func (h *WalletHandler) Load(c *gin.Context) {
	var req LoadWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, 100001, "参数错误")
		return
	}

	chatCtx := domain.ChatContext{Type: req.Type, OrgID: req.OrgID}
	if err := chatCtx.Validate(); err != nil {
		response.ErrorWithDetail(c, http.StatusBadRequest, 100001, "参数错误", err.Error())
		return
	}

	if err := h.service.LoadWallet(c.Request.Context(), chatCtx); err != nil {
		// 错误已记录进对应槽位
		response.ErrorWithDetail(c, http.StatusBadGateway, 300001, "加载钱包失败", err.Error())
		return
	}
	response.Success(c, h.service.ActiveWalletInfo())
}

// Personal 读取个人钱包槽位
// @Summary 读取个人钱包槽位
// @Tags 钱包
// @Produce json
// @Success 200 {object} response.Response
// @Router /wallet/personal [get]
func (h *WalletHandler) Personal(c *gin.Context) {
	response.Success(c, h.service.PersonalWallet())
}

// Organization 读取组织钱包槽位
// @Summary 读取组织钱包槽位
// @Tags 钱包
// @Produce json
// @Param org_id path string true "组织 ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /wallet/orgs/{org_id} [get]
func (h *WalletHandler) Organization(c *gin.Context) {
	slot, ok := h.service.OrgWallet(c.Param("org_id"))
	if !ok {
		response.Error(c, http.StatusNotFound, 100002, "该组织尚未加载钱包")
		return
	}
	response.Success(c, slot)
}
