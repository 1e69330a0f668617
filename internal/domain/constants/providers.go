package constants

// Environments
const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

// Pub/Sub providers
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Document store providers
const (
	StoreProviderFirestore = "firestore"
	StoreProviderMongo     = "mongo"
)

// Push transport providers
const (
	PushProviderWebPush = "webpush"
	PushProviderFCM     = "fcm"
)
