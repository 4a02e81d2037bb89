package messagecleanup

import (
	"context"
)

// SourceAttribute は掃除リクエストの発行元を示すPub/Sub属性です
const SourceAttribute = "source"

// PubSubMessage はPub/Subトリガーのペイロードです
type PubSubMessage struct {
	Data       []byte            `json:"data"`
	Attributes map[string]string `json:"attributes"`
}

// HandleSweepMessage はPub/Subで届いた掃除リクエストを処理し、削除件数を返します
func (h *Handlers) HandleSweepMessage(ctx context.Context, m PubSubMessage) int {
	source := m.Attributes[SourceAttribute]
	if source == "" {
		source = "scheduler"
	}
	WithField("source", source).Info("Cleanup of expired messages triggered")

	return h.Sweeper.Run(ctx)
}
