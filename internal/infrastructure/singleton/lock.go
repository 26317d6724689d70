// Package singleton 通过端口占用保证单实例运行
package singleton

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
	"time"
)

const (
	// DefaultPort 默认监听端口
	DefaultPort = ":19970"
	// HealthCheckTimeout 健康检查超时时间
	HealthCheckTimeout = 2 * time.Second
)

// CheckAndLock 尝试占用端口作为单实例锁
// 端口可用时返回 listener；已有健康实例运行时返回 (nil, nil)，调用者应退出；
// 端口被占用但健康检查失败时返回错误
func CheckAndLock(port string) (net.Listener, error) {
	listener, err := net.Listen("tcp", port)
	if err == nil {
		return listener, nil
	}

	if isAddrInUse(err) {
		if isInstanceRunning(port) {
			return nil, nil
		}
		return nil, fmt.Errorf("port %s is in use but the health check failed", port)
	}

	return nil, fmt.Errorf("failed to listen on %s: %w", port, err)
}

// isAddrInUse 判断错误是否为地址已被占用
func isAddrInUse(err error) bool {
	if errors.Is(err, syscall.EADDRINUSE) {
		return true
	}

	// Windows 上 errno 不映射到 EADDRINUSE，回退到错误文本
	var sysErr *net.OpError
	if errors.As(err, &sysErr) {
		msg := sysErr.Err.Error()
		return msg == "address already in use" ||
			msg == "Only one usage of each socket address (protocol/network address/port) is normally permitted"
	}
	return false
}

// isInstanceRunning 通过健康检查确认已有实例存活
func isInstanceRunning(port string) bool {
	client := &http.Client{
		Timeout: HealthCheckTimeout,
	}

	resp, err := client.Get(fmt.Sprintf("http://localhost%s/health", port))
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
