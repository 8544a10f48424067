// internal/app/store/mongodb/collection.go
package mongodb

// mongodb adapts a live *mongo.Collection to the docstore.Collection
// contract. The typed predicates and update operators compile to the
// equivalent BSON filter/update documents, so the handlers behave
// identically whether this backend or the in-memory emulation is active.

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mergington/activities/internal/app/store/docstore"
)

// Collection wraps a MongoDB collection.
type Collection struct {
	c *mongo.Collection
}

// New creates a Collection over the given MongoDB collection.
func New(c *mongo.Collection) *Collection {
	return &Collection{c: c}
}

// Find returns every document matching pred. Documents come back as plain
// maps with the key in "_id", same as the in-memory backend.
func (c *Collection) Find(ctx context.Context, pred docstore.Predicate) ([]docstore.Document, error) {
	cur, err := c.c.Find(ctx, compileFilter(pred))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []bson.M
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	out := make([]docstore.Document, 0, len(rows))
	for _, row := range rows {
		out = append(out, docstore.Document(row))
	}
	return out, nil
}

// FindOne returns the first match of pred, or (nil, nil) when nothing matches.
func (c *Collection) FindOne(ctx context.Context, pred docstore.Predicate) (docstore.Document, error) {
	var row bson.M
	err := c.c.FindOne(ctx, compileFilter(pred)).Decode(&row)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return docstore.Document(row), nil
}

// Get is a direct _id lookup. Returns (nil, nil) when the key is absent.
func (c *Collection) Get(ctx context.Context, key string) (docstore.Document, error) {
	var row bson.M
	err := c.c.FindOne(ctx, bson.M{docstore.KeyField: key}).Decode(&row)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return docstore.Document(row), nil
}

// UpdateOne applies one field mutation to the document at key.
func (c *Collection) UpdateOne(ctx context.Context, key string, u docstore.Update) (int64, error) {
	res, err := c.c.UpdateOne(ctx, bson.M{docstore.KeyField: key}, compileUpdate(u))
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// InsertOne stores the document under its "_id", overwriting any existing
// document at that key (upsert-replace, to match the emulation's overwrite
// semantics). A document without a key is ignored.
func (c *Collection) InsertOne(ctx context.Context, doc docstore.Document) (string, error) {
	key, ok := doc[docstore.KeyField].(string)
	if !ok || key == "" {
		return "", nil
	}

	stored := doc.Clone()
	delete(stored, docstore.KeyField)

	_, err := c.c.ReplaceOne(ctx,
		bson.M{docstore.KeyField: key},
		bson.M(stored),
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return "", err
	}
	return key, nil
}

// DistinctValues returns the deduplicated, ascending elements of the
// sequence at the dotted path across all documents.
func (c *Collection) DistinctValues(ctx context.Context, path string) ([]string, error) {
	raw, err := c.c.Distinct(ctx, path, bson.M{})
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Count returns the number of stored documents.
func (c *Collection) Count(ctx context.Context) (int64, error) {
	return c.c.CountDocuments(ctx, bson.M{})
}

// compileFilter translates a typed predicate into a BSON filter document.
func compileFilter(pred docstore.Predicate) bson.M {
	filter := bson.M{}
	for _, cond := range pred {
		switch cond.Op {
		case docstore.OpEq:
			filter[cond.Path] = cond.Value
		case docstore.OpIn:
			filter[cond.Path] = bson.M{"$in": cond.Values}
		case docstore.OpGte:
			mergeRange(filter, cond.Path, "$gte", cond.Value)
		case docstore.OpLte:
			mergeRange(filter, cond.Path, "$lte", cond.Value)
		}
	}
	return filter
}

// mergeRange folds a range bound into any operator document already present
// on the path, so Gte and Lte on the same field combine instead of clobbering.
func mergeRange(filter bson.M, path, op string, value any) {
	if existing, ok := filter[path].(bson.M); ok {
		existing[op] = value
		return
	}
	filter[path] = bson.M{op: value}
}

// compileUpdate translates a typed update operator into a BSON update document.
func compileUpdate(u docstore.Update) bson.M {
	switch u.Op {
	case docstore.OpPush:
		return bson.M{"$push": bson.M{u.Field: u.Value}}
	case docstore.OpPull:
		return bson.M{"$pull": bson.M{u.Field: u.Value}}
	default:
		return bson.M{"$set": bson.M{u.Field: u.Value}}
	}
}
