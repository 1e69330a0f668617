package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"push": map[string]any{
			"vapidPrivateKey": "",
			"vapidPublicKey":  "",
		},
		"reminder": map[string]any{
			"cooldownHours":        48,
			"subscriptionCacheTtl": "10m",
		},
		"pubsub": map[string]any{
			"topicId": "",
		},
		"mongo": map[string]any{
			"uri": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "PUSH_VAPIDPRIVATEKEY", want: "push.vapidPrivateKey"},
		{envKey: "PUSH_VAPID_PUBLIC_KEY", want: "push.vapid.public.key"},
		{envKey: "REMINDER_COOLDOWNHOURS", want: "reminder.cooldownHours"},
		{envKey: "REMINDER_SUBSCRIPTIONCACHETTL", want: "reminder.subscriptionCacheTtl"},
		{envKey: "PUBSUB_TOPICID", want: "pubsub.topicId"},
		{envKey: "MONGO_URI", want: "mongo.uri"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{Redis: &RedisConfig{Addr: "localhost:6379"}, Metrics: &MetricsConfig{Enabled: true}, Cron: &CronConfig{Enabled: true}}

	ApplyDefaults(cfg)

	assert.Equal(t, "firestore", cfg.Store.Provider)
	assert.Equal(t, "webpush", cfg.Push.Provider)
	assert.Equal(t, 48, cfg.Reminder.CooldownHours)
	assert.Equal(t, 48*time.Hour, cfg.Reminder.Cooldown())
	assert.Equal(t, int64(1000), cfg.Reminder.ThresholdDistance)
	assert.Equal(t, 15, cfg.Reminder.ThresholdDays)
	assert.Equal(t, 10*time.Minute, cfg.Reminder.SubscriptionCacheTTL)
	assert.Equal(t, 1, cfg.Reminder.VehicleConcurrency)
	assert.Equal(t, 15*time.Minute, cfg.Redis.LockTTL)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "0 9 * * *", cfg.Cron.Schedule)
	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Reminder.CooldownHours = 24
	cfg.Reminder.ThresholdDays = 7
	cfg.Store.Provider = "mongo"

	ApplyDefaults(cfg)

	assert.Equal(t, 24, cfg.Reminder.CooldownHours)
	assert.Equal(t, 7, cfg.Reminder.ThresholdDays)
	assert.Equal(t, "mongo", cfg.Store.Provider)
}
