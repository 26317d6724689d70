package dialectic

// ContentCacheEntry 贡献正文缓存条目
// 以贡献 ID 为键，进程生命周期内常驻（正文服务端不可变，无需淘汰）
// 不变量：IsLoading、HasContent、Error 三者同一时刻至多一个成立
type ContentCacheEntry struct {
	IsLoading  bool   `json:"is_loading"`           // 是否有在途请求
	HasContent bool   `json:"has_content"`          // 正文是否已加载
	Content    string `json:"content,omitempty"`    // 正文
	MimeType   string `json:"mime_type,omitempty"`  // MIME 类型
	SizeBytes  int64  `json:"size_bytes,omitempty"` // 正文大小（字节）
	FileName   string `json:"file_name,omitempty"`  // 文件名
	Error      string `json:"error,omitempty"`      // 拉取失败原因
}

// Attempted 该条目是否已经发起过（或正在发起）拉取
// 已有正文、已有错误或在途中的条目都不再触发新的网络请求
func (e *ContentCacheEntry) Attempted() bool {
	return e.IsLoading || e.HasContent || e.Error != ""
}
