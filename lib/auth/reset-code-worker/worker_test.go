package resetcodeworker

import (
	usersstore "attachment-portal-backend/lib/users/store"
	baseworker "attachment-portal-backend/lib/utils/base-worker"
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	usersstore.Provider
	calledWith time.Time
	err        error
}

func (f *fakeStore) ClearExpiredResetCodes(now time.Time) (int64, error) {
	f.calledWith = now
	return 2, f.err
}

func TestHandle(t *testing.T) {
	now := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	t.Run(`clears codes expired at now`, func(t *testing.T) {
		store := &fakeStore{}
		i := impl{BaseImpl: *baseworker.NewInstance(workerName, 0, 0), store: store, now: func() time.Time { return now }}
		i.handle(context.Background())
		require.Equal(t, now, store.calledWith)
	})

	t.Run(`store error is swallowed`, func(t *testing.T) {
		store := &fakeStore{err: errors.New("db is down")}
		i := impl{BaseImpl: *baseworker.NewInstance(workerName, 0, 0), store: store, now: func() time.Time { return now }}
		require.NotPanics(t, func() { i.handle(context.Background()) })
	})
}
