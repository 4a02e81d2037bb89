package messagecleanup

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
)

// ScheduledCleanupHandler はEventBridge（CloudWatch Events）のスケジュールから呼び出されます。
// 掃除に失敗してもエラーは返しません（次回の実行で削除される）。
func (h *Handlers) ScheduledCleanupHandler(ctx context.Context, event events.CloudWatchEvent) error {
	WithField("eventId", event.ID).Info("Scheduled cleanup triggered by CloudWatch Event")

	deletedCount := h.Sweeper.Run(ctx)

	WithField("deleted", deletedCount).Info("Scheduled cleanup completed")
	return nil
}

// ManualCleanupHandler は手動でクリーンアップを実行するためのハンドラーです
func (h *Handlers) ManualCleanupHandler(ctx context.Context) error {
	Info("Manual cleanup started")

	deletedCount := h.Sweeper.Run(ctx)

	WithField("deleted", deletedCount).Info("Manual cleanup completed")
	return nil
}
