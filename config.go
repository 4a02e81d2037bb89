package messagecleanup

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// defaultLogFormat はビルドタグ（config_local.go / config_prod.go）で切り替わります
var defaultLogFormat string

// Config は両ハンドラーが共有する設定です
type Config struct {
	ProjectID       string        `envconfig:"GCP_PROJECT"`
	CredentialsJSON string        `envconfig:"GOOGLE_APPLICATION_CREDENTIALS_JSON"`
	RootCollection  string        `envconfig:"MESSAGES_COLLECTION" default:"messages"`
	InboxCollection string        `envconfig:"INCOMING_COLLECTION" default:"incoming"`
	DeliveryGrace   time.Duration `envconfig:"DELIVERY_GRACE" default:"2s"`
	SweepTopic      string        `envconfig:"SWEEP_TOPIC" default:"cleanup-expired-messages"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"LOG_FORMAT"`
}

// LoadConfig は.envと環境変数から設定を読み込みます
func LoadConfig() (Config, error) {
	_ = godotenv.Load() // .envファイルはローカル開発でのみ使用。エラーは無視。

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("設定の読み込みに失敗しました: %w", err)
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = defaultLogFormat
	}
	if cfg.DeliveryGrace < 0 {
		return Config{}, fmt.Errorf("DELIVERY_GRACE must not be negative: %s", cfg.DeliveryGrace)
	}

	return cfg, nil
}
