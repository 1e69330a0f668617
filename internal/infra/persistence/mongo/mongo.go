// Package mongo implements the persistence layer on MongoDB, for deployments outside Google Cloud.
//
// Collections mirror the Firestore layout, with fuel_records and service_reminders
// flattened into top-level collections keyed by vehicleId.
package mongo

import (
	"context"
	"log/slog"

	"fuelwatch/config"
	"fuelwatch/internal/domain/lifecycle"
	"fuelwatch/internal/infra/persistence/document"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Open connects to MongoDB and returns the configured database
func Open(ctx context.Context, cfg *config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	if cfg == nil || cfg.URI == "" {
		return nil, nil, errors.New("mongo.uri is required for the mongo store")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to connect to MongoDB")
	}

	pingCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)

		return nil, nil, errors.Wrap(err, "failed to ping MongoDB")
	}

	return client, client.Database(cfg.Database), nil
}

// idFilter matches a document id stored either as a string or as an ObjectID
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{id, oid}}}
	}

	return bson.M{"_id": id}
}

// docID renders a document's _id as a string
func docID(f document.Fields) string {
	switch v := f["_id"].(type) {
	case string:
		return v
	case primitive.ObjectID:
		return v.Hex()
	default:
		return ""
	}
}

// collect drains a cursor, skipping documents that fail to decode
func collect[T any](ctx context.Context, logger *slog.Logger, cursor *mongo.Cursor, decode func(id string, f document.Fields) (T, error)) ([]T, error) {
	defer cursor.Close(ctx)

	var out []T
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			logger.Warn("[Mongo] Skipping undecodable document", slog.Any("error", err))

			continue
		}

		f := document.Fields(raw)
		item, err := decode(docID(f), f)
		if err != nil {
			logger.Warn("[Mongo] Skipping malformed document",
				slog.String("id", docID(f)),
				slog.Any("error", err),
			)

			continue
		}
		out = append(out, item)
	}

	if err := cursor.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	return out, nil
}
