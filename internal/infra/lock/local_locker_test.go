package lock

import (
	"context"
	"testing"

	"fuelwatch/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker(t *testing.T) {
	ctx := context.Background()
	locker := NewLocalLocker()

	release, err := locker.TryAcquire(ctx, "check-reminders")
	require.NoError(t, err)

	_, err = locker.TryAcquire(ctx, "check-reminders")
	assert.ErrorIs(t, err, service.ErrLockNotAcquired)

	other, err := locker.TryAcquire(ctx, "something-else")
	require.NoError(t, err)
	require.NoError(t, other(ctx))

	require.NoError(t, release(ctx))
	require.NoError(t, release(ctx))

	again, err := locker.TryAcquire(ctx, "check-reminders")
	require.NoError(t, err)
	assert.NoError(t, again(ctx))
}
