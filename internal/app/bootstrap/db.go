// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"github.com/mergington/activities/internal/app/store/registry"
	"github.com/mergington/activities/internal/app/store/resettoken"
	"github.com/mergington/activities/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB builds the document store backend selected by configuration.
//
// With the memory backend the registry is entirely in process and the app
// has no external dependencies. With the mongo backend the client is
// connected and pinged here so a bad URI fails startup instead of the first
// request.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	deps := DBDeps{
		ResetTokens: resettoken.New(appCfg.ResetTokenTTL),
	}

	switch appCfg.Backend {
	case "memory":
		logger.Info("using in-memory document store backend")
		deps.Registry = registry.NewMemory(logger)
		return deps, nil

	case "mongo":
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(appCfg.MongoURI))
		if err != nil {
			return DBDeps{}, fmt.Errorf("connect to MongoDB: %w", err)
		}

		pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
		defer cancel()
		if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
			_ = client.Disconnect(ctx)
			return DBDeps{}, fmt.Errorf("ping MongoDB: %w", err)
		}

		db := client.Database(appCfg.MongoDatabase)
		logger.Info("connected to MongoDB",
			zap.String("database", appCfg.MongoDatabase))

		deps.MongoClient = client
		deps.MongoDatabase = db
		deps.Registry = registry.NewMongo(db, logger)
		return deps, nil

	default:
		return DBDeps{}, fmt.Errorf("unknown db_backend %q", appCfg.Backend)
	}
}

// EnsureSchema sets up indexes or schema as needed.
//
// Documents are keyed by natural identifiers (activity name, teacher
// username, student email) stored in _id, which MongoDB indexes by default,
// so no additional indexes are required yet.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return nil
}
