package messagecleanup

import (
	"context"
	"time"

	"cloud.google.com/go/functions/metadata"
	"github.com/sirupsen/logrus"
)

// DefaultDeliveryGrace は配信済みになってから削除するまでの待ち時間です。
// クライアントが delivered の同期を読み終える猶予で、確認応答を待つわけではありません。
const DefaultDeliveryGrace = 2 * time.Second

// Reaper は配信済みになったメッセージを少し待ってから削除します
type Reaper struct {
	store MessageStore
	grace time.Duration
	sleep func(time.Duration)
}

// NewReaper は grace が0以下の場合 DefaultDeliveryGrace を使います
func NewReaper(store MessageStore, grace time.Duration) *Reaper {
	if grace <= 0 {
		grace = DefaultDeliveryGrace
	}
	return &Reaper{store: store, grace: grace, sleep: time.Sleep}
}

// IsDeliveryTransition は delivered が明示的に false から true になった更新だけを true とします
func IsDeliveryTransition(before, after Snapshot) bool {
	if before.Delivered == nil || after.Delivered == nil {
		return false
	}
	return !*before.Delivered && *after.Delivered
}

// Reap は更新イベント1件を処理します。削除した場合に true を返します。
// 待機中にキャンセルはできないため、処理時間は最低でも grace になります。
func (r *Reaper) Reap(ctx context.Context, ref MessageRef, before, after Snapshot) bool {
	if !IsDeliveryTransition(before, after) {
		return false
	}

	r.sleep(r.grace)

	if err := r.store.DeleteMessage(ctx, ref); err != nil {
		// 削除できなくても expiresAt を過ぎれば Sweeper が削除する
		WithFields(logrus.Fields{
			"user":      ref.UserID,
			"messageId": ref.MessageID,
			"error":     err.Error(),
		}).Error("Error deleting delivered message")
		return false
	}

	WithFields(logrus.Fields{
		"user":      ref.UserID,
		"messageId": ref.MessageID,
	}).Infof("Deleted delivered message %s", ref.MessageID)
	return true
}

// HandleFirestoreUpdate はFirestoreの更新イベントを Reaper に渡します
func (h *Handlers) HandleFirestoreUpdate(ctx context.Context, e FirestoreEvent) bool {
	fields := logrus.Fields{"document": e.Value.Name}
	if meta, err := metadata.FromContext(ctx); err == nil {
		fields["eventId"] = meta.EventID
	}

	ref, err := parseMessagePath(e.Value.Name, h.Config.RootCollection, h.Config.InboxCollection)
	if err != nil {
		fields["error"] = err.Error()
		WithFields(fields).Warn("Ignoring update for unexpected document")
		return false
	}

	return h.Reaper.Reap(ctx, ref, e.OldValue.Snapshot(), e.Value.Snapshot())
}
