// Package firestore implements the persistence layer on Cloud Firestore.
//
// Layout: vehicles/{id}, vehicles/{id}/fuel_records/{id}, vehicles/{id}/service_reminders/{id}
// and a top-level subscriptions/{id} collection.
package firestore

import (
	"context"
	"log/slog"

	firebaseapp "fuelwatch/internal/infra/firebase"
	"fuelwatch/internal/infra/persistence/document"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Open creates a Firestore client from the shared Firebase app
func Open(ctx context.Context, apps *firebaseapp.AppProvider) (*firestore.Client, error) {
	app, err := apps.App(ctx)
	if err != nil {
		return nil, err
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Firestore client")
	}

	return client, nil
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// collect drains a query, skipping documents that fail to decode
func collect[T any](logger *slog.Logger, it *firestore.DocumentIterator, decode func(id string, f document.Fields) (T, error)) ([]T, error) {
	defer it.Stop()

	var out []T
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return out, nil
		}
		if err != nil {
			return nil, errors.WithStack(err)
		}

		item, err := decode(snap.Ref.ID, snap.Data())
		if err != nil {
			logger.Warn("[Firestore] Skipping malformed document",
				slog.String("path", snap.Ref.Path),
				slog.Any("error", err),
			)

			continue
		}
		out = append(out, item)
	}
}
