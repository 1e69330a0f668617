package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"

	defaultCooldownHours        = 48
	defaultThresholdDistance    = 1000
	defaultThresholdDays        = 15
	defaultSubscriptionCacheTTL = 10 * time.Minute
	defaultSendTimeout          = 10 * time.Second
	defaultStoreTimeout         = 5 * time.Second
	defaultVehicleConcurrency   = 1
	defaultSendConcurrency      = 16
	defaultPushTTLSeconds       = 86400
	defaultLockTTL              = 15 * time.Minute
	defaultCronSchedule         = "0 9 * * *"
	defaultPushIcon             = "/icon-192x192.png"
	defaultAudience             = "fleet"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Store selects the document store backend
	Store StoreConfig `json:"store" yaml:"store"`

	// Firestore configuration, used when store.provider is "firestore"
	Firestore *FirestoreConfig `json:"firestore" yaml:"firestore"`

	// Mongo configuration, used when store.provider is "mongo"
	Mongo *MongoConfig `json:"mongo" yaml:"mongo"`

	// Push configuration for the notification transport
	Push PushConfig `json:"push" yaml:"push"`

	// Reminder holds the evaluation and dispatch tunables
	Reminder ReminderConfig `json:"reminder" yaml:"reminder"`

	// Cron configuration for the scheduled reminder check
	Cron *CronConfig `json:"cron" yaml:"cron"`

	// Redis configuration for the distributed run lock
	Redis *RedisConfig `json:"redis" yaml:"redis"`

	// PubSub configuration for alert event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	Metrics *MetricsConfig `json:"metrics" yaml:"metrics"`

	// Auth configuration for user-facing routes
	Auth *AuthConfig `json:"auth" yaml:"auth"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// StoreConfig defines which document store backs the repositories
type StoreConfig struct {
	// Provider type: "firestore" or "mongo"
	Provider string `json:"provider" yaml:"provider"`
}

// FirestoreConfig defines the Firebase project used for Firestore, FCM and ID token verification
type FirestoreConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`
}

// MongoConfig defines the MongoDB connection
type MongoConfig struct {
	URI      string `json:"uri" yaml:"uri"`
	Database string `json:"database" yaml:"database"`
}

// PushConfig defines the push transport
type PushConfig struct {
	// Provider type: "webpush" (VAPID) or "fcm"
	Provider        string `json:"provider" yaml:"provider"`
	VAPIDPublicKey  string `json:"vapidPublicKey" yaml:"vapidPublicKey"`
	VAPIDPrivateKey string `json:"vapidPrivateKey" yaml:"vapidPrivateKey"`
	Subscriber      string `json:"subscriber" yaml:"subscriber"`
	TTLSeconds      int    `json:"ttlSeconds" yaml:"ttlSeconds"`
	DefaultIcon     string `json:"defaultIcon" yaml:"defaultIcon"`
}

// ReminderConfig defines thresholds, cooldown and resource bounds for a dispatch run
type ReminderConfig struct {
	CooldownHours        int           `json:"cooldownHours" yaml:"cooldownHours"`
	ThresholdDistance    int64         `json:"thresholdDistance" yaml:"thresholdDistance"`
	ThresholdDays        int           `json:"thresholdDays" yaml:"thresholdDays"`
	SubscriptionCacheTTL time.Duration `json:"subscriptionCacheTtl" yaml:"subscriptionCacheTtl"`
	SendTimeout          time.Duration `json:"sendTimeout" yaml:"sendTimeout"`
	StoreTimeout         time.Duration `json:"storeTimeout" yaml:"storeTimeout"`
	VehicleConcurrency   int           `json:"vehicleConcurrency" yaml:"vehicleConcurrency"`
	SendConcurrency      int           `json:"sendConcurrency" yaml:"sendConcurrency"`

	// Audience of scheduled alerts: "fleet" (every subscription) or "owner" (the vehicle owner's only)
	Audience string `json:"audience" yaml:"audience"`
}

// Cooldown returns the configured cooldown as a duration
func (r ReminderConfig) Cooldown() time.Duration {
	return time.Duration(r.CooldownHours) * time.Hour
}

// CronConfig defines the scheduled trigger
type CronConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Schedule in robfig/cron syntax, e.g. "0 9 * * *" or "@daily"
	Schedule string `json:"schedule" yaml:"schedule"`

	// Secret expected in the X-Cron-Secret header of the HTTP trigger, empty disables the check
	Secret string `json:"secret" yaml:"secret"`
}

// RedisConfig defines the Redis connection used for the run lock
type RedisConfig struct {
	Addr     string        `json:"addr" yaml:"addr"`
	Password string        `json:"password" yaml:"password"`
	DB       int           `json:"db" yaml:"db"`
	LockTTL  time.Duration `json:"lockTtl" yaml:"lockTtl"`
}

// PubSubConfig defines Pub/Sub configuration for alert event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path" yaml:"path"`
}

// AuthConfig defines authentication for the user-facing API
type AuthConfig struct {
	// Disabled skips ID token verification and trusts the X-User-Id header (development only)
	Disabled bool `json:"disabled" yaml:"disabled"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Align each segment with existing YAML keys.
			// Example: PUSH_VAPIDPRIVATEKEY -> push.vapidPrivateKey
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	// A missing .env file is not an error; deployments inject env vars directly.
	_ = godotenv.Load()

	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	ApplyDefaults(cfg)

	return cfg, nil
}

// ApplyDefaults fills zero values with the documented defaults
func ApplyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.Store.Provider == "" {
		cfg.Store.Provider = "firestore"
	}

	if cfg.Push.Provider == "" {
		cfg.Push.Provider = "webpush"
	}
	if cfg.Push.TTLSeconds <= 0 {
		cfg.Push.TTLSeconds = defaultPushTTLSeconds
	}
	if cfg.Push.DefaultIcon == "" {
		cfg.Push.DefaultIcon = defaultPushIcon
	}

	r := &cfg.Reminder
	if r.CooldownHours <= 0 {
		r.CooldownHours = defaultCooldownHours
	}
	if r.ThresholdDistance <= 0 {
		r.ThresholdDistance = defaultThresholdDistance
	}
	if r.ThresholdDays <= 0 {
		r.ThresholdDays = defaultThresholdDays
	}
	if r.SubscriptionCacheTTL <= 0 {
		r.SubscriptionCacheTTL = defaultSubscriptionCacheTTL
	}
	if r.SendTimeout <= 0 {
		r.SendTimeout = defaultSendTimeout
	}
	if r.StoreTimeout <= 0 {
		r.StoreTimeout = defaultStoreTimeout
	}
	if r.VehicleConcurrency <= 0 {
		r.VehicleConcurrency = defaultVehicleConcurrency
	}
	if r.SendConcurrency <= 0 {
		r.SendConcurrency = defaultSendConcurrency
	}
	if r.Audience == "" {
		r.Audience = defaultAudience
	}

	if cfg.Cron != nil && strings.TrimSpace(cfg.Cron.Schedule) == "" {
		cfg.Cron.Schedule = defaultCronSchedule
	}

	if cfg.Redis != nil && cfg.Redis.LockTTL <= 0 {
		cfg.Redis.LockTTL = defaultLockTTL
	}

	if cfg.Metrics != nil && cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
