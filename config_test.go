package messagecleanup

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv はテスト終了時に元の値へ戻した上で環境変数を削除します
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GCP_PROJECT", "demo")
	unsetEnv(t, "MESSAGES_COLLECTION", "INCOMING_COLLECTION", "DELIVERY_GRACE", "SWEEP_TOPIC", "LOG_FORMAT")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.ProjectID)
	assert.Equal(t, "messages", cfg.RootCollection)
	assert.Equal(t, "incoming", cfg.InboxCollection)
	assert.Equal(t, 2*time.Second, cfg.DeliveryGrace)
	assert.Equal(t, "cleanup-expired-messages", cfg.SweepTopic)
	assert.Equal(t, defaultLogFormat, cfg.LogFormat)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("MESSAGES_COLLECTION", "messages_test")
	t.Setenv("DELIVERY_GRACE", "500ms")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "messages_test", cfg.RootCollection)
	assert.Equal(t, 500*time.Millisecond, cfg.DeliveryGrace)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadConfigRejectsBadGrace(t *testing.T) {
	t.Setenv("DELIVERY_GRACE", "soon")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("DELIVERY_GRACE", "-1s")
	_, err = LoadConfig()
	assert.Error(t, err)
}
