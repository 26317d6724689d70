// Package wallet 实现钱包状态仓库与聊天就绪判定引擎
package wallet

import (
	"context"
	"sync"
	"time"

	"log/slog"

	domain "github.com/paynless/daemon/internal/domain/wallet"
	"github.com/paynless/daemon/internal/domain/events"
	"github.com/paynless/daemon/internal/infrastructure/log"
)

// Service 钱包状态仓库
// 持有个人钱包槽位与按组织 ID 分槽的组织钱包，各槽位的
// loading/error 状态相互独立；就绪判定由纯引擎在读取时派生
type Service struct {
	mu sync.RWMutex

	// personal 个人钱包槽位
	personal Slot
	// orgs 按组织 ID 分槽的组织钱包
	orgs map[string]Slot

	gateway  Gateway
	provider ContextProvider
	bus      events.EventBus
	logger   *slog.Logger
}

// NewService 创建钱包状态仓库
func NewService(gateway Gateway, provider ContextProvider, bus events.EventBus) *Service {
	return &Service{
		orgs:     make(map[string]Slot),
		gateway:  gateway,
		provider: provider,
		bus:      bus,
		logger:   log.NewModuleLogger("wallet", "service"),
	}
}

// LoadWallet 按上下文加载对应钱包槽位
// 双通道契约：错误既返回给调用方，也记录进槽位
func (s *Service) LoadWallet(ctx context.Context, chatCtx domain.ChatContext) error {
	if err := chatCtx.Validate(); err != nil {
		return err
	}
	if chatCtx.IsPersonal() {
		return s.loadPersonal(ctx)
	}
	return s.loadOrg(ctx, chatCtx.OrgID)
}

// LoadActiveWallet 加载当前上下文对应的钱包
func (s *Service) LoadActiveWallet(ctx context.Context) error {
	return s.LoadWallet(ctx, s.provider.CurrentContext())
}

// EnsureActiveLoaded 确保当前上下文的钱包已有加载动作
// 已加载或在途时是 no-op，用于上下文切换后的惰性触发
func (s *Service) EnsureActiveLoaded(ctx context.Context) {
	chatCtx := s.provider.CurrentContext()

	s.mu.RLock()
	slot := s.slotFor(chatCtx)
	s.mu.RUnlock()

	if slot.Loading || slot.Loaded || slot.Error != "" {
		return
	}
	_ = s.LoadWallet(ctx, chatCtx)
}

// loadPersonal 加载个人钱包
func (s *Service) loadPersonal(ctx context.Context) error {
	s.mu.Lock()
	s.personal.Loading = true
	s.mu.Unlock()
	s.publish(domain.NewPersonalContext())

	record, err := s.gateway.GetWalletInfo(ctx, domain.NewPersonalContext())

	s.mu.Lock()
	s.personal.Loading = false
	if err != nil {
		s.personal.Error = err.Error()
	} else {
		s.personal.Record = record
		s.personal.Loaded = true
		s.personal.Error = ""
	}
	s.mu.Unlock()
	s.publish(domain.NewPersonalContext())

	if err != nil {
		s.logger.Warn("Personal wallet load failed",
			"error", err,
		)
	}
	return err
}

// loadOrg 加载指定组织的钱包
func (s *Service) loadOrg(ctx context.Context, orgID string) error {
	chatCtx := domain.NewOrganizationContext(orgID)

	s.mu.Lock()
	slot := s.orgs[orgID]
	slot.Loading = true
	s.orgs[orgID] = slot
	s.mu.Unlock()
	s.publish(chatCtx)

	record, err := s.gateway.GetWalletInfo(ctx, chatCtx)

	s.mu.Lock()
	slot = s.orgs[orgID]
	slot.Loading = false
	if err != nil {
		slot.Error = err.Error()
	} else {
		slot.Record = record
		slot.Loaded = true
		slot.Error = ""
	}
	s.orgs[orgID] = slot
	s.mu.Unlock()
	s.publish(chatCtx)

	if err != nil {
		s.logger.Warn("Organization wallet load failed",
			"org_id", orgID,
			"error", err,
		)
	}
	return err
}

// ActiveWalletInfo 读取当前上下文的钱包就绪判定
// 每次读取重新派生，从不缓存判定结果
func (s *Service) ActiveWalletInfo() domain.ActiveWalletInfo {
	chatCtx := s.provider.CurrentContext()

	s.mu.RLock()
	personal := copySlot(s.personal)
	orgs := make(map[string]Slot, len(s.orgs))
	for id, slot := range s.orgs {
		orgs[id] = copySlot(slot)
	}
	s.mu.RUnlock()

	return DetermineActiveWalletInfo(chatCtx, personal, orgs)
}

// PersonalWallet 读取个人钱包槽位副本
func (s *Service) PersonalWallet() Slot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlot(s.personal)
}

// OrgWallet 读取组织钱包槽位副本
// 第二个返回值表示该组织是否已有槽位
func (s *Service) OrgWallet(orgID string) (Slot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slot, ok := s.orgs[orgID]
	return copySlot(slot), ok
}

// ResetOrgWallet 清除组织钱包槽位（离开组织后）
func (s *Service) ResetOrgWallet(orgID string) {
	s.mu.Lock()
	delete(s.orgs, orgID)
	s.mu.Unlock()
	s.publish(domain.NewOrganizationContext(orgID))
}

// slotFor 读取上下文对应槽位（调用方负责持锁）
func (s *Service) slotFor(chatCtx domain.ChatContext) Slot {
	if chatCtx.IsPersonal() {
		return s.personal
	}
	return s.orgs[chatCtx.OrgID]
}

// publish 发布钱包槽位变更事件
func (s *Service) publish(chatCtx domain.ChatContext) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(&events.WalletEvent{
		Kind:        events.WalletUpdated,
		ContextType: string(chatCtx.Type),
		OrgID:       chatCtx.OrgID,
		EventTime:   time.Now(),
	})
}

// copySlot 拷贝槽位，内部记录按值复制
func copySlot(slot Slot) Slot {
	result := slot
	if slot.Record != nil {
		record := *slot.Record
		if slot.Record.Wallet != nil {
			wallet := *slot.Record.Wallet
			record.Wallet = &wallet
		}
		result.Record = &record
	}
	return result
}
