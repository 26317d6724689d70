package wallet

import (
	domain "github.com/paynless/daemon/internal/domain/wallet"
)

// 判定说明文案
const (
	msgWalletLoading      = "wallet information is loading"
	msgNoWallet           = "no wallet found for the current context"
	msgMemberChatDisabled = "this organization does not allow members to start AI chats"
	msgInvalidBalance     = "wallet balance could not be read"
)

// Slot 单个钱包槽位（个人或某个组织）
// Loading / Loaded / Error 相互独立，首次加载前 Loaded 为 false
type Slot struct {
	Record  *domain.WalletRecord // 网关返回的钱包信息
	Loading bool                 // 是否有在途加载
	Loaded  bool                 // 是否完成过至少一次成功加载
	Error   string               // 最近一次加载失败原因
}

// DetermineActiveWalletInfo 钱包就绪判定引擎
// 纯派生：输入当前聊天上下文与个人/组织钱包槽位快照，输出就绪判定
// 没有存储的"当前判定"，每次读取重算，上下文切换到未加载组织时立即得到 loading
func DetermineActiveWalletInfo(chatCtx domain.ChatContext, personal Slot, orgs map[string]Slot) domain.ActiveWalletInfo {
	info := domain.ActiveWalletInfo{Type: chatCtx.Type}
	if !chatCtx.IsPersonal() {
		info.OrgID = chatCtx.OrgID
	}

	var slot Slot
	if chatCtx.IsPersonal() {
		slot = personal
	} else {
		// 尚无该组织的槽位视为未加载
		slot = orgs[chatCtx.OrgID]
	}

	// 加载失败是 error；未就绪（无钱包/策略禁止）是独立的门禁状态，绝不混同
	if slot.Error != "" {
		info.Status = domain.StatusError
		info.Message = slot.Error
		return info
	}

	if slot.Loading || !slot.Loaded {
		info.Status = domain.StatusLoading
		info.Message = msgWalletLoading
		return info
	}

	record := slot.Record
	if record == nil || record.Wallet == nil {
		info.Status = domain.StatusNotReady
		info.Message = msgNoWallet
		return info
	}

	if !chatCtx.IsPersonal() && !record.MemberChatAllowed && !record.IsPrivileged {
		info.Status = domain.StatusNotReady
		info.Message = msgMemberChatDisabled
		return info
	}

	if _, err := record.Wallet.BalanceValue(); err != nil {
		info.Status = domain.StatusNotReady
		info.Message = msgInvalidBalance
		return info
	}

	// 余额可解析即就绪，花费是否足够在发送时另行检查
	info.Status = domain.StatusOK
	info.WalletID = record.Wallet.WalletID
	info.Balance = record.Wallet.Balance
	return info
}
