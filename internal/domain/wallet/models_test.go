package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatContext_Validate(t *testing.T) {
	assert.NoError(t, NewPersonalContext().Validate())
	assert.NoError(t, NewOrganizationContext("o1").Validate())
	assert.ErrorIs(t, ChatContext{Type: ContextOrganization}.Validate(), ErrMissingOrgID)
	assert.ErrorIs(t, ChatContext{Type: "team"}.Validate(), ErrUnknownContextType)
}

func TestTokenWallet_BalanceValue(t *testing.T) {
	w := &TokenWallet{Balance: "12345"}
	v, err := w.BalanceValue()
	require.NoError(t, err)
	assert.Equal(t, int64(12345), v)

	w.Balance = "not-a-number"
	_, err = w.BalanceValue()
	assert.ErrorIs(t, err, ErrInvalidBalance)

	w.Balance = ""
	_, err = w.BalanceValue()
	assert.ErrorIs(t, err, ErrInvalidBalance)
}

func TestActiveWalletInfo_CanSend(t *testing.T) {
	assert.True(t, ActiveWalletInfo{Status: StatusOK}.CanSend())
	assert.False(t, ActiveWalletInfo{Status: StatusLoading}.CanSend())
	assert.False(t, ActiveWalletInfo{Status: StatusNotReady}.CanSend())
	assert.False(t, ActiveWalletInfo{Status: StatusError}.CanSend())
}
