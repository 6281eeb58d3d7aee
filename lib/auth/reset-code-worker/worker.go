package resetcodeworker

import (
	"attachment-portal-backend/db"
	usersstore "attachment-portal-backend/lib/users/store"
	baseworker "attachment-portal-backend/lib/utils/base-worker"
	"context"
	"time"
)

const (
	workerName    = "reset_code_cleanup"
	firstRunDelay = time.Minute
	runInterval   = time.Hour
)

// StartWorker clears expired password reset codes until ctx is done.
func StartWorker(ctx context.Context) {
	i := &impl{
		BaseImpl: *baseworker.NewInstance(workerName, firstRunDelay, runInterval),
		store:    usersstore.NewInstance(db.DB),
		now:      time.Now,
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
	store usersstore.Provider
	now   func() time.Time
}

func (i impl) handle(ctx context.Context) {
	count, err := i.store.ClearExpiredResetCodes(i.now())
	if err != nil {
		i.GetLogger().WithError(err).Error("expired reset codes cleanup failed")
		return
	}
	if count != 0 {
		i.GetLogger().Infof("%d expired reset codes cleared", count)
	}
}
