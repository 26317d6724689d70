package dialectic

import (
	"context"
	"fmt"
	"strings"

	"log/slog"

	"github.com/sourcegraph/conc/pool"

	domain "github.com/paynless/daemon/internal/domain/dialectic"
	"github.com/paynless/daemon/internal/infrastructure/log"
)

// DeepLinkActivator 深链激活器
// 把裸 (projectID, sessionID) 解析为完全加载的激活上下文
// 深链进入时不能假设列表或会话已加载，两个详情都要现场拉取
type DeepLinkActivator struct {
	store  *Store
	logger *slog.Logger
}

// NewDeepLinkActivator 创建深链激活器
func NewDeepLinkActivator(store *Store) *DeepLinkActivator {
	return &DeepLinkActivator{
		store:  store,
		logger: log.NewModuleLogger("dialectic", "deeplink"),
	}
}

// ActivateProjectAndSession 激活深链指向的项目与会话
// 先校验两个 ID，任一缺失立即失败，不发起任何网关请求
// 两个详情拉取相互独立，并发执行；成败以 Store 错误槽位为准而非调用返回值，
// 这样调用方之后任何时刻都能重查状态，应用层失败与传输失败也统一在一处判定
func (a *DeepLinkActivator) ActivateProjectAndSession(ctx context.Context, projectID, sessionID string) error {
	if projectID == "" {
		a.store.recordProjectDetailError(domain.ErrMissingProjectID.Error())
		return domain.ErrMissingProjectID
	}
	if sessionID == "" {
		a.store.recordSessionDetailError(domain.ErrMissingSessionID.Error())
		return domain.ErrMissingSessionID
	}

	a.logger.Info("Activating deep link",
		"project_id", projectID,
		"session_id", sessionID,
	)

	p := pool.New().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		_, _ = a.store.FetchProjectDetails(ctx, projectID)
		return nil
	})
	p.Go(func(ctx context.Context) error {
		_, _ = a.store.FetchSessionDetails(ctx, sessionID)
		return nil
	})
	_ = p.Wait()

	var failures []string
	if msg := a.store.ProjectDetailError(); msg != "" {
		failures = append(failures, "project: "+msg)
	}
	if msg := a.store.SessionDetailError(); msg != "" {
		failures = append(failures, "session: "+msg)
	}

	if len(failures) > 0 {
		a.logger.Warn("Deep link activation failed",
			"project_id", projectID,
			"session_id", sessionID,
			"failures", strings.Join(failures, "; "),
		)
		return fmt.Errorf("%w: %s", domain.ErrDeepLinkActivationFailed, strings.Join(failures, "; "))
	}
	return nil
}
