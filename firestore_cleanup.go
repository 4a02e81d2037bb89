package messagecleanup

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Sweeper は期限切れメッセージを定期的に削除します
type Sweeper struct {
	store MessageStore
	now   func() time.Time
}

func NewSweeper(store MessageStore) *Sweeper {
	return &Sweeper{store: store, now: time.Now}
}

// Sweep は全ユーザーの incoming を順番に走査し、expiresAt <= now のメッセージを削除します。
// 最初のエラーで中断し、それまでに削除した件数とエラーを返します（削除済みのものは戻さない）。
func (s *Sweeper) Sweep(ctx context.Context, now time.Time) (int, error) {
	userIDs, err := s.store.Partitions(ctx)
	if err != nil {
		return 0, err
	}

	var deletedCount int
	for _, userID := range userIDs {
		expired, err := s.store.ExpiredMessages(ctx, userID, now)
		if err != nil {
			return deletedCount, err
		}

		for _, ref := range expired {
			if err := s.store.DeleteMessage(ctx, ref); err != nil {
				return deletedCount, err
			}
			deletedCount++
		}
	}

	return deletedCount, nil
}

// Run はスケジューラーから呼ばれる本体です。エラーはログに記録して握りつぶし、
// 削除件数を返します。取りこぼしは次回の実行で削除されます。
func (s *Sweeper) Run(ctx context.Context) int {
	deletedCount, err := s.Sweep(ctx, s.now())
	if err != nil {
		WithFields(logrus.Fields{
			"deleted": deletedCount,
			"error":   err.Error(),
		}).Error("Error cleaning up expired messages")
		return deletedCount
	}

	if deletedCount > 0 {
		WithField("deleted", deletedCount).Infof("Deleted %d expired messages", deletedCount)
	} else {
		Info("No expired messages found")
	}

	return deletedCount
}
