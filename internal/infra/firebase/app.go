// Package firebaseapp initializes the Firebase app shared by Firestore, FCM and ID token verification.
package firebaseapp

import (
	"context"
	"log/slog"
	"sync"

	"fuelwatch/config"

	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/option"
)

// AppProvider creates the Firebase app on first use. Deployments that use neither Firestore,
// FCM nor ID tokens never need Google credentials.
type AppProvider struct {
	cfg    *config.FirestoreConfig
	logger *slog.Logger

	once sync.Once
	app  *firebase.App
	err  error
}

// AppProviderParams holds dependencies for AppProvider, injected by Fx
type AppProviderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewAppProvider creates a lazy Firebase app provider
func NewAppProvider(params AppProviderParams) *AppProvider {
	cfg := params.Config.Firestore
	if cfg == nil {
		cfg = &config.FirestoreConfig{}
	}

	return &AppProvider{cfg: cfg, logger: params.Logger}
}

// App returns the Firebase app, initializing it once
func (p *AppProvider) App(ctx context.Context) (*firebase.App, error) {
	p.once.Do(func() {
		var opts []option.ClientOption
		if p.cfg.CredentialsPath != "" {
			opts = append(opts, option.WithCredentialsFile(p.cfg.CredentialsPath))
		}

		var appCfg *firebase.Config
		if p.cfg.ProjectID != "" {
			appCfg = &firebase.Config{ProjectID: p.cfg.ProjectID}
		}

		p.app, p.err = firebase.NewApp(ctx, appCfg, opts...)
		if p.err != nil {
			p.err = errors.Wrap(p.err, "failed to initialize Firebase app")

			return
		}

		p.logger.Info("Firebase app initialized", slog.String("project_id", p.cfg.ProjectID))
	})

	return p.app, p.err
}
