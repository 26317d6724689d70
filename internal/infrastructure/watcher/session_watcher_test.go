package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink 记录最近一次下发的令牌
type recordingSink struct {
	mu    sync.Mutex
	token string
}

func (s *recordingSink) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *recordingSink) current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func writeSession(t *testing.T, path, token string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(`{"access_token":"`+token+`"}`), 0600))
}

func TestSessionWatcher_InitialLoad(t *testing.T) {
	dir := t.TempDir()
	tokenFile := filepath.Join(dir, "session.json")
	writeSession(t, tokenFile, "initial-token")

	sink := &recordingSink{}
	w := NewSessionWatcher(tokenFile, sink, nil)
	require.NoError(t, w.Start())
	defer w.Stop()

	// 启动时同步加载已存在的令牌
	assert.Equal(t, "initial-token", sink.current())
}

func TestSessionWatcher_ReloadOnChange(t *testing.T) {
	dir := t.TempDir()
	tokenFile := filepath.Join(dir, "session.json")
	writeSession(t, tokenFile, "old-token")

	sink := &recordingSink{}
	w := NewSessionWatcher(tokenFile, sink, nil)
	require.NoError(t, w.Start())
	defer w.Stop()

	writeSession(t, tokenFile, "new-token")

	deadline := time.After(3 * time.Second)
	for sink.current() != "new-token" {
		select {
		case <-deadline:
			t.Fatalf("token not reloaded, still %q", sink.current())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestSessionWatcher_MissingFileIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	tokenFile := filepath.Join(dir, "session.json")

	sink := &recordingSink{}
	w := NewSessionWatcher(tokenFile, sink, nil)
	require.NoError(t, w.Start())
	defer w.Stop()

	assert.Empty(t, sink.current())

	// 令牌文件随后出现时被捕获
	writeSession(t, tokenFile, "late-token")
	deadline := time.After(3 * time.Second)
	for sink.current() != "late-token" {
		select {
		case <-deadline:
			t.Fatal("late token not picked up")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestSessionWatcher_IgnoresMalformedFile(t *testing.T) {
	dir := t.TempDir()
	tokenFile := filepath.Join(dir, "session.json")
	writeSession(t, tokenFile, "good-token")

	sink := &recordingSink{}
	w := NewSessionWatcher(tokenFile, sink, nil)
	require.NoError(t, w.Start())
	defer w.Stop()
	require.Equal(t, "good-token", sink.current())

	// 写入坏内容不清空已下发的令牌
	require.NoError(t, os.WriteFile(tokenFile, []byte("not json"), 0600))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, "good-token", sink.current())
}
