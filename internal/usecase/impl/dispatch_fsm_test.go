package impl

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchMachine_CompletedRunHasNoReason(t *testing.T) {
	m := newDispatchMachine(newDiscardLogger())
	ctx := context.Background()

	for _, event := range []string{eventEnumerate, eventProcess, eventSummarize, eventComplete} {
		require.NoError(t, m.advance(ctx, event))
	}

	assert.Equal(t, stateCompleted, m.Current())
	assert.NoError(t, m.Reason())
}

func TestDispatchMachine_FailRecordsReason(t *testing.T) {
	m := newDispatchMachine(newDiscardLogger())
	ctx := context.Background()
	reason := errors.New("list vehicles: unavailable")

	require.NoError(t, m.advance(ctx, eventEnumerate))
	m.fail(ctx, reason)

	assert.Equal(t, stateFailed, m.Current())
	assert.Equal(t, reason, m.Reason())
}

func TestDispatchMachine_FailAfterCompletionStillRecordsReason(t *testing.T) {
	m := newDispatchMachine(newDiscardLogger())
	ctx := context.Background()
	reason := errors.New("late failure")

	for _, event := range []string{eventEnumerate, eventProcess, eventSummarize, eventComplete} {
		require.NoError(t, m.advance(ctx, event))
	}
	m.fail(ctx, reason)

	assert.Equal(t, stateCompleted, m.Current())
	assert.Equal(t, reason, m.Reason())
}

func TestDispatchMachine_CancelledContextStillTransitions(t *testing.T) {
	m := newDispatchMachine(newDiscardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, m.advance(ctx, eventEnumerate))

	assert.Equal(t, stateEnumerating, m.Current())
}
