package wallet

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/paynless/daemon/internal/domain/wallet"
)

// fakeWalletGateway 可编程的钱包网关桩
type fakeWalletGateway struct {
	calls atomic.Int64
	fn    func(chatCtx domain.ChatContext) (*domain.WalletRecord, error)
}

func (g *fakeWalletGateway) GetWalletInfo(ctx context.Context, chatCtx domain.ChatContext) (*domain.WalletRecord, error) {
	g.calls.Add(1)
	if g.fn != nil {
		return g.fn(chatCtx)
	}
	return walletRecord("100"), nil
}

// fakeContextProvider 可切换的上下文桩
type fakeContextProvider struct {
	mu      sync.Mutex
	current domain.ChatContext
}

func (p *fakeContextProvider) CurrentContext() domain.ChatContext {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

func (p *fakeContextProvider) set(chatCtx domain.ChatContext) {
	p.mu.Lock()
	p.current = chatCtx
	p.mu.Unlock()
}

func TestService_LoadPersonalWallet(t *testing.T) {
	gw := &fakeWalletGateway{}
	provider := &fakeContextProvider{current: domain.NewPersonalContext()}
	service := NewService(gw, provider, nil)

	// 加载前判定为 loading
	assert.Equal(t, domain.StatusLoading, service.ActiveWalletInfo().Status)

	err := service.LoadWallet(context.Background(), domain.NewPersonalContext())
	require.NoError(t, err)

	info := service.ActiveWalletInfo()
	assert.Equal(t, domain.StatusOK, info.Status)
	assert.Equal(t, "100", info.Balance)
	assert.Equal(t, "w1", info.WalletID)
	assert.True(t, info.CanSend())
}

func TestService_LoadFailureRecordedInSlot(t *testing.T) {
	gw := &fakeWalletGateway{
		fn: func(domain.ChatContext) (*domain.WalletRecord, error) {
			return nil, errors.New("gateway down")
		},
	}
	provider := &fakeContextProvider{current: domain.NewPersonalContext()}
	service := NewService(gw, provider, nil)

	err := service.LoadWallet(context.Background(), domain.NewPersonalContext())
	require.Error(t, err)

	// 双通道：错误同时出现在槽位与判定里
	slot := service.PersonalWallet()
	assert.Equal(t, "gateway down", slot.Error)
	assert.False(t, slot.Loading)

	info := service.ActiveWalletInfo()
	assert.Equal(t, domain.StatusError, info.Status)
	assert.Equal(t, "gateway down", info.Message)
}

func TestService_OrgSwitchYieldsLoadingNotStaleOK(t *testing.T) {
	gw := &fakeWalletGateway{
		fn: func(chatCtx domain.ChatContext) (*domain.WalletRecord, error) {
			return walletRecord("50"), nil
		},
	}
	provider := &fakeContextProvider{current: domain.NewOrganizationContext("o1")}
	service := NewService(gw, provider, nil)

	require.NoError(t, service.LoadWallet(context.Background(), domain.NewOrganizationContext("o1")))
	assert.Equal(t, domain.StatusOK, service.ActiveWalletInfo().Status)

	// 切到 o2：o2 的钱包未到达前判定立即变 loading，而不是沿用 o1 的 ok
	provider.set(domain.NewOrganizationContext("o2"))
	info := service.ActiveWalletInfo()
	assert.Equal(t, domain.StatusLoading, info.Status)
	assert.Equal(t, "o2", info.OrgID)

	// o2 的钱包到达后才变 ok
	require.NoError(t, service.LoadWallet(context.Background(), domain.NewOrganizationContext("o2")))
	assert.Equal(t, domain.StatusOK, service.ActiveWalletInfo().Status)

	// 切回 o1 仍是 ok，槽位相互独立
	provider.set(domain.NewOrganizationContext("o1"))
	assert.Equal(t, domain.StatusOK, service.ActiveWalletInfo().Status)
}

func TestService_EnsureActiveLoaded(t *testing.T) {
	gw := &fakeWalletGateway{}
	provider := &fakeContextProvider{current: domain.NewPersonalContext()}
	service := NewService(gw, provider, nil)

	service.EnsureActiveLoaded(context.Background())
	assert.Equal(t, int64(1), gw.calls.Load())

	// 已加载后为 no-op
	service.EnsureActiveLoaded(context.Background())
	service.EnsureActiveLoaded(context.Background())
	assert.Equal(t, int64(1), gw.calls.Load())
}

func TestService_InvalidContext(t *testing.T) {
	gw := &fakeWalletGateway{}
	provider := &fakeContextProvider{current: domain.NewPersonalContext()}
	service := NewService(gw, provider, nil)

	err := service.LoadWallet(context.Background(), domain.ChatContext{Type: domain.ContextOrganization})
	require.ErrorIs(t, err, domain.ErrMissingOrgID)
	assert.Equal(t, int64(0), gw.calls.Load())
}

func TestService_ResetOrgWallet(t *testing.T) {
	gw := &fakeWalletGateway{}
	provider := &fakeContextProvider{current: domain.NewOrganizationContext("o1")}
	service := NewService(gw, provider, nil)

	require.NoError(t, service.LoadWallet(context.Background(), domain.NewOrganizationContext("o1")))
	_, ok := service.OrgWallet("o1")
	require.True(t, ok)

	service.ResetOrgWallet("o1")
	_, ok = service.OrgWallet("o1")
	assert.False(t, ok)
	assert.Equal(t, domain.StatusLoading, service.ActiveWalletInfo().Status)
}
