package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/paynless/daemon/internal/domain/wallet"
)

func walletRecord(balance string) *domain.WalletRecord {
	return &domain.WalletRecord{
		Wallet:            &domain.TokenWallet{WalletID: "w1", Balance: balance},
		MemberChatAllowed: true,
	}
}

func TestDetermineActiveWalletInfo_Matrix(t *testing.T) {
	tests := []struct {
		name       string
		chatCtx    domain.ChatContext
		personal   Slot
		orgs       map[string]Slot
		wantStatus domain.WalletStatus
		wantBal    string
	}{
		{
			name:       "个人钱包加载中",
			chatCtx:    domain.NewPersonalContext(),
			personal:   Slot{Loading: true},
			wantStatus: domain.StatusLoading,
		},
		{
			name:       "个人钱包尚未触发加载",
			chatCtx:    domain.NewPersonalContext(),
			personal:   Slot{},
			wantStatus: domain.StatusLoading,
		},
		{
			name:       "个人钱包就绪",
			chatCtx:    domain.NewPersonalContext(),
			personal:   Slot{Record: walletRecord("100"), Loaded: true},
			wantStatus: domain.StatusOK,
			wantBal:    "100",
		},
		{
			name:    "组织钱包就绪",
			chatCtx: domain.NewOrganizationContext("o1"),
			orgs: map[string]Slot{
				"o1": {Record: walletRecord("50"), Loaded: true},
			},
			wantStatus: domain.StatusOK,
			wantBal:    "50",
		},
		{
			name:       "切到未加载的组织立即为 loading",
			chatCtx:    domain.NewOrganizationContext("o2"),
			personal:   Slot{Record: walletRecord("100"), Loaded: true},
			orgs: map[string]Slot{
				"o1": {Record: walletRecord("50"), Loaded: true},
			},
			wantStatus: domain.StatusLoading,
		},
		{
			name:    "加载失败为 error",
			chatCtx: domain.NewOrganizationContext("o1"),
			orgs: map[string]Slot{
				"o1": {Error: "fetch failed"},
			},
			wantStatus: domain.StatusError,
		},
		{
			name:       "上下文无钱包为 not_ready",
			chatCtx:    domain.NewPersonalContext(),
			personal:   Slot{Record: &domain.WalletRecord{}, Loaded: true},
			wantStatus: domain.StatusNotReady,
		},
		{
			name:    "组织禁止成员聊天为 not_ready",
			chatCtx: domain.NewOrganizationContext("o1"),
			orgs: map[string]Slot{
				"o1": {
					Record: &domain.WalletRecord{
						Wallet:            &domain.TokenWallet{WalletID: "w1", Balance: "50"},
						MemberChatAllowed: false,
					},
					Loaded: true,
				},
			},
			wantStatus: domain.StatusNotReady,
		},
		{
			name:    "特权用户绕过组织策略",
			chatCtx: domain.NewOrganizationContext("o1"),
			orgs: map[string]Slot{
				"o1": {
					Record: &domain.WalletRecord{
						Wallet:            &domain.TokenWallet{WalletID: "w1", Balance: "50"},
						MemberChatAllowed: false,
						IsPrivileged:      true,
					},
					Loaded: true,
				},
			},
			wantStatus: domain.StatusOK,
			wantBal:    "50",
		},
		{
			name:       "余额不可解析为 not_ready",
			chatCtx:    domain.NewPersonalContext(),
			personal:   Slot{Record: walletRecord("NaN"), Loaded: true},
			wantStatus: domain.StatusNotReady,
		},
		{
			name:       "零余额仍视为就绪",
			chatCtx:    domain.NewPersonalContext(),
			personal:   Slot{Record: walletRecord("0"), Loaded: true},
			wantStatus: domain.StatusOK,
			wantBal:    "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := DetermineActiveWalletInfo(tt.chatCtx, tt.personal, tt.orgs)
			assert.Equal(t, tt.wantStatus, info.Status)
			assert.Equal(t, tt.wantBal, info.Balance)
			assert.Equal(t, tt.chatCtx.Type, info.Type)
			if tt.wantStatus != domain.StatusOK {
				// 非就绪状态都带说明
				assert.NotEmpty(t, info.Message)
			}
		})
	}
}

func TestDetermineActiveWalletInfo_ErrorVsNotReady(t *testing.T) {
	// error 与 not_ready 绝不混同：无钱包是门禁状态，不是失败
	noWallet := DetermineActiveWalletInfo(
		domain.NewPersonalContext(),
		Slot{Record: &domain.WalletRecord{}, Loaded: true},
		nil,
	)
	failed := DetermineActiveWalletInfo(
		domain.NewPersonalContext(),
		Slot{Error: "network down"},
		nil,
	)

	assert.Equal(t, domain.StatusNotReady, noWallet.Status)
	assert.Equal(t, domain.StatusError, failed.Status)
	assert.Equal(t, "network down", failed.Message)
	assert.False(t, noWallet.CanSend())
	assert.False(t, failed.CanSend())
}
