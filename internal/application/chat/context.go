// Package chat 实现聊天计费上下文仓库与发送前的余额检查
package chat

import (
	"sync"
	"time"

	"log/slog"

	"github.com/paynless/daemon/internal/domain/events"
	domain "github.com/paynless/daemon/internal/domain/wallet"
	"github.com/paynless/daemon/internal/infrastructure/log"
)

// ContextStore 聊天计费上下文仓库
// 持有当前上下文（个人或某个组织），钱包判定引擎读取它但不拥有它
type ContextStore struct {
	mu      sync.RWMutex
	current domain.ChatContext
	bus     events.EventBus
	logger  *slog.Logger
}

// NewContextStore 创建上下文仓库，初始为个人上下文
func NewContextStore(bus events.EventBus) *ContextStore {
	return &ContextStore{
		current: domain.NewPersonalContext(),
		bus:     bus,
		logger:  log.NewModuleLogger("chat", "context_store"),
	}
}

// CurrentContext 读取当前上下文
func (s *ContextStore) CurrentContext() domain.ChatContext {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SetContext 切换上下文
// 切换本身立即生效，新上下文的钱包是否就绪由判定引擎在读取时派生
func (s *ContextStore) SetContext(chatCtx domain.ChatContext) error {
	if err := chatCtx.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.current == chatCtx {
		s.mu.Unlock()
		return nil
	}
	s.current = chatCtx
	s.mu.Unlock()

	s.logger.Info("Chat context switched",
		"type", chatCtx.Type,
		"org_id", chatCtx.OrgID,
	)

	if s.bus != nil {
		s.bus.Publish(&events.WalletEvent{
			Kind:        events.ChatContextChanged,
			ContextType: string(chatCtx.Type),
			OrgID:       chatCtx.OrgID,
			EventTime:   time.Now(),
		})
	}
	return nil
}

// SetPersonal 切换到个人上下文
func (s *ContextStore) SetPersonal() error {
	return s.SetContext(domain.NewPersonalContext())
}

// SetOrganization 切换到组织上下文
func (s *ContextStore) SetOrganization(orgID string) error {
	return s.SetContext(domain.NewOrganizationContext(orgID))
}
