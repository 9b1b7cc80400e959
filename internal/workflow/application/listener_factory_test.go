package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	wfDomain "github.com/davicafu/wfstatus/internal/workflow/domain"
	"github.com/davicafu/wfstatus/tests/mocks"
)

func TestNewStatusListener(t *testing.T) {
	registry := mocks.StaticRegistry{Queue: mocks.NewRecordingQueue("status")}

	l, err := NewStatusListener("event_queue_publisher", registry, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &StatusPublisher{}, l)

	l, err = NewStatusListener("stub", registry, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &StubListener{}, l)

	l, err = NewStatusListener("", nil, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &StubListener{}, l)

	_, err = NewStatusListener("archive", registry, zap.NewNop())
	assert.ErrorIs(t, err, wfDomain.ErrUnknownListenerType)

	_, err = NewStatusListener("event_queue_publisher", nil, zap.NewNop())
	assert.Error(t, err)
}
