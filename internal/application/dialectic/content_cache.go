package dialectic

import (
	"context"
	"sync"
	"time"

	"log/slog"

	domain "github.com/paynless/daemon/internal/domain/dialectic"
	"github.com/paynless/daemon/internal/domain/events"
	"github.com/paynless/daemon/internal/infrastructure/log"
)

// ContentCache 贡献正文缓存
// 按贡献 ID 缓存按需拉取的正文，进程生命周期内常驻
// 并发触发去重：同一贡献 ID 至多一个在途请求，命中与错误条目不再重拉
type ContentCache struct {
	// entries 按贡献 ID 存储的缓存条目
	entries map[string]*domain.ContentCacheEntry
	// mu 保护 entries 的互斥锁
	mu sync.Mutex
	// gateway 远程网关
	gateway Gateway
	// bus 领域事件总线
	bus events.EventBus
	// logger 日志记录器
	logger *slog.Logger
}

// NewContentCache 创建贡献正文缓存
func NewContentCache(gateway Gateway, bus events.EventBus) *ContentCache {
	return &ContentCache{
		entries: make(map[string]*domain.ContentCacheEntry),
		gateway: gateway,
		bus:     bus,
		logger:  log.NewModuleLogger("dialectic", "content_cache"),
	}
}

// FetchContent 拉取贡献正文
// 可重复安全调用：已有在途请求、已有正文或已有错误的条目都是 no-op
// 网络与解析失败写入条目的 error 字段，从不向调用方抛出
func (c *ContentCache) FetchContent(ctx context.Context, contributionID string) {
	if contributionID == "" {
		c.logger.Warn("Ignoring content fetch with empty contribution id")
		return
	}

	// 占位并判重必须在同一临界区内完成，否则并发触发会重复发请求
	c.mu.Lock()
	if entry, ok := c.entries[contributionID]; ok && entry.Attempted() {
		c.mu.Unlock()
		return
	}
	c.entries[contributionID] = &domain.ContentCacheEntry{IsLoading: true}
	c.mu.Unlock()

	c.publish(contributionID, true, "")

	content, err := c.gateway.GetContributionContent(ctx, contributionID)

	c.mu.Lock()
	entry := c.entries[contributionID]
	if entry == nil {
		// 在途期间被 Invalidate，丢弃结果
		c.mu.Unlock()
		return
	}
	if err != nil {
		*entry = domain.ContentCacheEntry{Error: err.Error()}
	} else {
		*entry = domain.ContentCacheEntry{
			HasContent: true,
			Content:    content.Content,
			MimeType:   content.MimeType,
			SizeBytes:  content.SizeBytes,
			FileName:   content.FileName,
		}
	}
	errMsg := entry.Error
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("Contribution content fetch failed",
			"contribution_id", contributionID,
			"error", err,
		)
	}
	c.publish(contributionID, false, errMsg)
}

// Entry 读取缓存条目副本
// 第二个返回值表示条目是否存在
func (c *ContentCache) Entry(contributionID string) (domain.ContentCacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[contributionID]
	if !ok {
		return domain.ContentCacheEntry{}, false
	}
	return *entry, true
}

// Entries 读取全部缓存条目副本
func (c *ContentCache) Entries() map[string]domain.ContentCacheEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make(map[string]domain.ContentCacheEntry, len(c.entries))
	for id, entry := range c.entries {
		result[id] = *entry
	}
	return result
}

// Invalidate 移除缓存条目，下次 FetchContent 会重新发起请求
func (c *ContentCache) Invalidate(contributionID string) {
	c.mu.Lock()
	_, existed := c.entries[contributionID]
	delete(c.entries, contributionID)
	c.mu.Unlock()

	if existed {
		c.publish(contributionID, false, "")
	}
}

// Prime 直接写入正文，跳过网络拉取
// 用于编辑保存成功后立即渲染新版本
func (c *ContentCache) Prime(contributionID string, content domain.ContributionContent) {
	if contributionID == "" {
		return
	}

	c.mu.Lock()
	c.entries[contributionID] = &domain.ContentCacheEntry{
		HasContent: true,
		Content:    content.Content,
		MimeType:   content.MimeType,
		SizeBytes:  content.SizeBytes,
		FileName:   content.FileName,
	}
	c.mu.Unlock()

	c.publish(contributionID, false, "")
}

// Reset 清空全部缓存条目
func (c *ContentCache) Reset() {
	c.mu.Lock()
	c.entries = make(map[string]*domain.ContentCacheEntry)
	c.mu.Unlock()
}

// publish 发布缓存条目变更事件
func (c *ContentCache) publish(contributionID string, loading bool, errMsg string) {
	if c.bus == nil {
		return
	}
	c.bus.Publish(&events.DialecticStateEvent{
		Kind:           events.ContributionContentUpdated,
		ContributionID: contributionID,
		Loading:        loading,
		Err:            errMsg,
		EventTime:      time.Now(),
	})
}
