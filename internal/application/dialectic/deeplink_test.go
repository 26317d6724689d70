package dialectic

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/paynless/daemon/internal/domain/dialectic"
)

func TestDeepLink_MissingProjectID(t *testing.T) {
	gw := &fakeGateway{}
	store := newTestStore(gw)
	activator := NewDeepLinkActivator(store)

	err := activator.ActivateProjectAndSession(context.Background(), "", "s1")
	require.ErrorIs(t, err, domain.ErrMissingProjectID)

	// 快速失败，不发起任何网关调用
	assert.Equal(t, int64(0), gw.projectCalls.Load())
	assert.Equal(t, int64(0), gw.sessionCalls.Load())
	// 失败同样记入槽位，供之后重查
	assert.Equal(t, domain.ErrMissingProjectID.Error(), store.ProjectDetailError())
}

func TestDeepLink_MissingSessionID(t *testing.T) {
	gw := &fakeGateway{}
	store := newTestStore(gw)
	activator := NewDeepLinkActivator(store)

	err := activator.ActivateProjectAndSession(context.Background(), "p1", "")
	require.ErrorIs(t, err, domain.ErrMissingSessionID)
	assert.Equal(t, int64(0), gw.projectCalls.Load())
	assert.Equal(t, int64(0), gw.sessionCalls.Load())
	assert.Equal(t, domain.ErrMissingSessionID.Error(), store.SessionDetailError())
}

func TestDeepLink_Success(t *testing.T) {
	gw := &fakeGateway{
		projectFn: func(projectID string) (*domain.ProjectDetail, error) {
			return &domain.ProjectDetail{
				DialecticProject: domain.DialecticProject{ID: projectID},
				Sessions:         []domain.DialecticSession{{ID: "s1", ProjectID: projectID}},
			}, nil
		},
		sessionFn: func(sessionID string) (*domain.SessionDetail, error) {
			return &domain.SessionDetail{
				Session: domain.DialecticSession{ID: sessionID, ProjectID: "p1", CurrentStage: "thesis"},
			}, nil
		},
	}
	store := newTestStore(gw)
	activator := NewDeepLinkActivator(store)

	err := activator.ActivateProjectAndSession(context.Background(), "p1", "s1")
	require.NoError(t, err)

	// 两个详情都已拉取
	assert.Equal(t, int64(1), gw.projectCalls.Load())
	assert.Equal(t, int64(1), gw.sessionCalls.Load())

	ac := store.ActiveContext()
	assert.Equal(t, "p1", ac.ProjectID)
	assert.Equal(t, "s1", ac.SessionID)
}

func TestDeepLink_PartialFailure(t *testing.T) {
	gw := &fakeGateway{
		projectFn: func(projectID string) (*domain.ProjectDetail, error) {
			return &domain.ProjectDetail{DialecticProject: domain.DialecticProject{ID: projectID}}, nil
		},
		sessionFn: func(string) (*domain.SessionDetail, error) {
			return nil, errors.New("session not found")
		},
	}
	store := newTestStore(gw)
	activator := NewDeepLinkActivator(store)

	// 成败以槽位为准：会话槽位有错误即整体失败
	err := activator.ActivateProjectAndSession(context.Background(), "p1", "missing")
	require.ErrorIs(t, err, domain.ErrDeepLinkActivationFailed)
	assert.Contains(t, err.Error(), "session not found")

	assert.Empty(t, store.ProjectDetailError())
	assert.Equal(t, "session not found", store.SessionDetailError())
}

func TestDeepLink_BothFail(t *testing.T) {
	gw := &fakeGateway{
		projectFn: func(string) (*domain.ProjectDetail, error) {
			return nil, errors.New("project gone")
		},
		sessionFn: func(string) (*domain.SessionDetail, error) {
			return nil, errors.New("session gone")
		},
	}
	store := newTestStore(gw)
	activator := NewDeepLinkActivator(store)

	err := activator.ActivateProjectAndSession(context.Background(), "p1", "s1")
	require.ErrorIs(t, err, domain.ErrDeepLinkActivationFailed)
	assert.Contains(t, err.Error(), "project gone")
	assert.Contains(t, err.Error(), "session gone")
}
