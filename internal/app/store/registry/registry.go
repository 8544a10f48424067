// internal/app/store/registry/registry.go
package registry

// Registry owns the three application collections (activities, teachers,
// students) and is the only writer to them. Handlers never hold references
// to stored documents: every read through a Collection returns a detached
// copy, so stored state can only change through the update operators.

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/mergington/activities/internal/app/store/docstore"
	"github.com/mergington/activities/internal/app/store/memdb"
	"github.com/mergington/activities/internal/app/store/mongodb"
)

// Collection names, shared by both backends.
const (
	CollActivities = "activities"
	CollTeachers   = "teachers"
	CollStudents   = "students"
)

// Registry bundles the application's collections behind one object with an
// explicit lifecycle: constructed at process start, seeded once, torn down
// at process exit.
type Registry struct {
	Activities docstore.Collection
	Teachers   docstore.Collection
	Students   docstore.Collection

	log *zap.Logger
}

// NewMemory creates a registry backed by the in-memory emulation. State is
// not persisted; a restart is a full reset.
func NewMemory(logger *zap.Logger) *Registry {
	return &Registry{
		Activities: memdb.New(CollActivities),
		Teachers:   memdb.New(CollTeachers),
		Students:   memdb.New(CollStudents),
		log:        logger,
	}
}

// NewMongo creates a registry backed by live MongoDB collections.
func NewMongo(db *mongo.Database, logger *zap.Logger) *Registry {
	return &Registry{
		Activities: mongodb.New(db.Collection(CollActivities)),
		Teachers:   mongodb.New(db.Collection(CollTeachers)),
		Students:   mongodb.New(db.Collection(CollStudents)),
		log:        logger,
	}
}

// SeedIfEmpty populates each collection from the fixed initial payload if it
// currently holds zero documents. Calling it again after a successful seed is
// a no-op, so repeated startups (or repeated calls) leave contents identical.
// This is the only place seed credentials are hashed; passwords never reach a
// collection in clear form.
func (r *Registry) SeedIfEmpty(ctx context.Context) error {
	if err := r.seedCollection(ctx, r.Activities, CollActivities, seedActivities); err != nil {
		return err
	}
	if err := r.seedCollection(ctx, r.Teachers, CollTeachers, seedTeachers); err != nil {
		return err
	}
	return r.seedCollection(ctx, r.Students, CollStudents, seedStudents)
}

func (r *Registry) seedCollection(ctx context.Context, c docstore.Collection, name string, payload func() ([]docstore.Document, error)) error {
	n, err := c.Count(ctx)
	if err != nil {
		return fmt.Errorf("count %s: %w", name, err)
	}
	if n > 0 {
		return nil
	}

	docs, err := payload()
	if err != nil {
		return fmt.Errorf("build %s seed: %w", name, err)
	}
	for _, doc := range docs {
		if _, err := c.InsertOne(ctx, doc); err != nil {
			return fmt.Errorf("seed %s: %w", name, err)
		}
	}

	if r.log != nil {
		r.log.Info("seeded collection",
			zap.String("collection", name),
			zap.Int("documents", len(docs)))
	}
	return nil
}
