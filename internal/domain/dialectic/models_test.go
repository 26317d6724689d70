package dialectic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProjectPayload_Validate(t *testing.T) {
	payload := CreateProjectPayload{}
	assert.ErrorIs(t, payload.Validate(), ErrProjectNameRequired)

	payload.ProjectName = "P"
	assert.ErrorIs(t, payload.Validate(), ErrDomainRequired)

	payload.SelectedDomainID = "d1"
	assert.NoError(t, payload.Validate())
}

func TestProjectDetail_UpsertSession(t *testing.T) {
	detail := &ProjectDetail{
		DialecticProject: DialecticProject{ID: "p1"},
		Sessions: []DialecticSession{
			{ID: "s1", Status: SessionStatusPending},
		},
	}

	// 已存在则整体替换
	detail.UpsertSession(DialecticSession{ID: "s1", Status: SessionStatusGenerating})
	require.Len(t, detail.Sessions, 1)
	assert.Equal(t, SessionStatusGenerating, detail.Sessions[0].Status)

	// 不存在则追加
	detail.UpsertSession(DialecticSession{ID: "s2"})
	require.Len(t, detail.Sessions, 2)
	assert.Equal(t, "s2", detail.Sessions[1].ID)

	assert.NotNil(t, detail.FindSession("s2"))
	assert.Nil(t, detail.FindSession("missing"))
}

func TestContentCacheEntry_Attempted(t *testing.T) {
	assert.False(t, (&ContentCacheEntry{}).Attempted())
	assert.True(t, (&ContentCacheEntry{IsLoading: true}).Attempted())
	assert.True(t, (&ContentCacheEntry{HasContent: true}).Attempted())
	assert.True(t, (&ContentCacheEntry{Error: "boom"}).Attempted())
}
