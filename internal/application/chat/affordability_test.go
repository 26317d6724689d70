package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/paynless/daemon/internal/domain/wallet"
)

// fakeWalletInfoProvider 固定判定的钱包信息桩
type fakeWalletInfoProvider struct {
	info domain.ActiveWalletInfo
}

func (p *fakeWalletInfoProvider) ActiveWalletInfo() domain.ActiveWalletInfo {
	return p.info
}

func TestAffordability_EstimateTokens(t *testing.T) {
	checker := NewAffordabilityChecker(&fakeWalletInfoProvider{})

	assert.Equal(t, int64(0), checker.EstimateTokens(""))

	// 非空文本至少估出一个 Token
	count := checker.EstimateTokens("Hello, how are you today?")
	assert.Greater(t, count, int64(0))

	// 更长的文本估值更大
	longer := checker.EstimateTokens("Hello, how are you today? I have a much longer question about dialectic projects.")
	assert.Greater(t, longer, count)
}

func TestAffordability_SufficientBalance(t *testing.T) {
	checker := NewAffordabilityChecker(&fakeWalletInfoProvider{
		info: domain.ActiveWalletInfo{
			Status:  domain.StatusOK,
			Balance: "100000",
		},
	})

	verdict := checker.CheckMessage("short message")
	assert.True(t, verdict.CanSend)
	assert.Greater(t, verdict.EstimatedTokens, int64(0))
	assert.Empty(t, verdict.Reason)
}

func TestAffordability_InsufficientBalance(t *testing.T) {
	checker := NewAffordabilityChecker(&fakeWalletInfoProvider{
		info: domain.ActiveWalletInfo{
			Status:  domain.StatusOK,
			Balance: "1",
		},
	})

	verdict := checker.CheckMessage("this message is long enough to cost more than one token for sure")
	require.False(t, verdict.CanSend)
	assert.Contains(t, verdict.Reason, "insufficient")
}

func TestAffordability_WalletNotReady(t *testing.T) {
	checker := NewAffordabilityChecker(&fakeWalletInfoProvider{
		info: domain.ActiveWalletInfo{
			Status:  domain.StatusNotReady,
			Message: "no wallet found for the current context",
		},
	})

	verdict := checker.CheckMessage("hello")
	require.False(t, verdict.CanSend)
	assert.Equal(t, "no wallet found for the current context", verdict.Reason)
}

func TestAffordability_WalletLoading(t *testing.T) {
	checker := NewAffordabilityChecker(&fakeWalletInfoProvider{
		info: domain.ActiveWalletInfo{Status: domain.StatusLoading},
	})

	verdict := checker.CheckMessage("hello")
	assert.False(t, verdict.CanSend)
	assert.NotEmpty(t, verdict.Reason)
}
