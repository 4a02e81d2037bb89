package messagecleanup

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Handlers はプロセス内で共有するクライアントと両ハンドラーをまとめたものです
type Handlers struct {
	Config  Config
	Sweeper *Sweeper
	Reaper  *Reaper
}

// NewHandlers はFirestoreクライアントを作成し、両ハンドラーに渡します
func NewHandlers(ctx context.Context, cfg Config) (*Handlers, error) {
	ConfigureLogging(cfg.LogLevel, cfg.LogFormat)

	client, err := NewFirestoreClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return NewHandlersWithStore(NewFirestoreStore(client, cfg), cfg), nil
}

// NewHandlersWithStore は任意の MessageStore でハンドラーを組み立てます
func NewHandlersWithStore(store MessageStore, cfg Config) *Handlers {
	return &Handlers{
		Config:  cfg,
		Sweeper: NewSweeper(store),
		Reaper:  NewReaper(store, cfg.DeliveryGrace),
	}
}

// Cloud Functionsのインスタンスごとに一度だけ初期化する
var (
	handlersOnce sync.Once
	handlers     *Handlers
	handlersErr  error
)

func loadHandlers() (*Handlers, error) {
	handlersOnce.Do(func() {
		cfg, err := LoadConfig()
		if err != nil {
			handlersErr = err
			return
		}
		// クライアントは呼び出しをまたいで使うので呼び出し側のctxは使わない
		handlers, handlersErr = NewHandlers(context.Background(), cfg)
	})
	return handlers, handlersErr
}

// CleanupExpiredMessages はCloud Scheduler（every 1 hours）からPub/Sub経由で呼ばれます。
// 失敗してもエラーは返しません。
func CleanupExpiredMessages(ctx context.Context, m PubSubMessage) error {
	h, err := loadHandlers()
	if err != nil {
		WithField("error", err.Error()).Error("Failed to initialize handlers")
		return nil
	}

	h.HandleSweepMessage(ctx, m)
	return nil
}

// OnMessageDelivered は messages/{userId}/incoming/{messageId} の更新ごとに呼ばれます
func OnMessageDelivered(ctx context.Context, e FirestoreEvent) error {
	h, err := loadHandlers()
	if err != nil {
		WithFields(logrus.Fields{
			"document": e.Value.Name,
			"error":    err.Error(),
		}).Error("Failed to initialize handlers")
		return nil
	}

	h.HandleFirestoreUpdate(ctx, e)
	return nil
}
