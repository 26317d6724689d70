package application

import (
	"github.com/google/wire"

	"github.com/paynless/daemon/internal/application/chat"
	"github.com/paynless/daemon/internal/application/dialectic"
	"github.com/paynless/daemon/internal/application/wallet"
)

// ProviderSet Application 层总 ProviderSet
var ProviderSet = wire.NewSet(
	dialectic.ProviderSet,
	wallet.ProviderSet,
	chat.ProviderSet,
)
