package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCleaner struct {
	deleted int64
	err     error
}

func (c stubCleaner) Cleanup(context.Context) (int64, error) {
	return c.deleted, c.err
}

func TestOtpReaper(t *testing.T) {
	deleted, err := newOtpReaper(stubCleaner{deleted: 12}).Reap(context.Background(), "scheduler")
	require.NoError(t, err)
	assert.Equal(t, int64(12), deleted)

	_, err = newOtpReaper(stubCleaner{err: errors.New("lock wait timeout")}).Reap(context.Background(), "scheduler")
	assert.ErrorContains(t, err, "lock wait timeout")
}
