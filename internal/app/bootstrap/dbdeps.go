// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/mergington/activities/internal/app/store/registry"
	"github.com/mergington/activities/internal/app/store/resettoken"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
//
// Registry is always populated. The Mongo fields are nil when the memory
// backend is active.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	Registry    *registry.Registry
	ResetTokens *resettoken.Store
}
