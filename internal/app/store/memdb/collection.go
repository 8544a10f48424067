// internal/app/store/memdb/collection.go
package memdb

// memdb emulates a document-database collection on top of an in-process map.
// It exists so the application can run with no database at all: the same
// Collection contract is otherwise served by the mongodb adapter. All state
// is lost on restart; that is a deliberate property of this backend, not an
// oversight.

import (
	"context"
	"sort"
	"sync"

	"github.com/mergington/activities/internal/app/store/docstore"
)

// Collection is an in-memory, mutex-protected document collection.
// Documents are stored without their key; the key is attached as "_id"
// on every read. Iteration follows insertion order.
type Collection struct {
	name string

	mu   sync.RWMutex
	docs map[string]docstore.Document
	keys []string // insertion order; keys are never reused
}

// New creates an empty collection with the given name.
func New(name string) *Collection {
	return &Collection{
		name: name,
		docs: make(map[string]docstore.Document),
	}
}

// Name returns the collection name.
func (c *Collection) Name() string { return c.name }

// Find returns detached copies of every document matching pred, in insertion
// order. A nil predicate matches everything. The result is re-evaluated
// against current state on every call.
func (c *Collection) Find(ctx context.Context, pred docstore.Predicate) ([]docstore.Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []docstore.Document
	for _, key := range c.keys {
		doc := c.docs[key]
		if pred.Matches(doc) {
			out = append(out, withKey(doc, key))
		}
	}
	return out, nil
}

// FindOne returns the first match of pred in insertion order, or (nil, nil).
// Callers must not assume a stronger ordering guarantee than insertion order.
func (c *Collection) FindOne(ctx context.Context, pred docstore.Predicate) (docstore.Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, key := range c.keys {
		doc := c.docs[key]
		if pred.Matches(doc) {
			return withKey(doc, key), nil
		}
	}
	return nil, nil
}

// Get is a direct key lookup. Returns (nil, nil) when the key is absent.
func (c *Collection) Get(ctx context.Context, key string) (docstore.Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	doc, ok := c.docs[key]
	if !ok {
		return nil, nil
	}
	return withKey(doc, key), nil
}

// UpdateOne applies one field mutation to the document at key and reports the
// modified count (0 or 1). Unknown keys modify nothing. A pull that removes
// no element reports 0, matching what a real $pull would modify.
func (c *Collection) UpdateOne(ctx context.Context, key string, u docstore.Update) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc, ok := c.docs[key]
	if !ok {
		return 0, nil
	}

	switch u.Op {
	case docstore.OpPush:
		switch seq := doc[u.Field].(type) {
		case []any:
			doc[u.Field] = append(seq, u.Value)
		case []string:
			// Promote to []any so mixed pushes stay well-defined.
			out := make([]any, 0, len(seq)+1)
			for _, s := range seq {
				out = append(out, s)
			}
			doc[u.Field] = append(out, u.Value)
		default:
			doc[u.Field] = []any{u.Value}
		}
		return 1, nil

	case docstore.OpPull:
		return pull(doc, u.Field, u.Value), nil

	case docstore.OpSet:
		doc[u.Field] = u.Value
		return 1, nil

	default:
		return 0, nil
	}
}

func pull(doc docstore.Document, field string, value any) int64 {
	switch seq := doc[field].(type) {
	case []any:
		for i, e := range seq {
			if e == value {
				doc[field] = append(seq[:i:i], seq[i+1:]...)
				return 1
			}
		}
	case []string:
		s, ok := value.(string)
		if !ok {
			return 0
		}
		for i, e := range seq {
			if e == s {
				doc[field] = append(seq[:i:i], seq[i+1:]...)
				return 1
			}
		}
	}
	return 0
}

// InsertOne stores the document under its "_id", overwriting any existing
// document at that key. Overwrite protection, where required, is the
// caller's responsibility. A document without a key is ignored and the
// returned key is empty.
func (c *Collection) InsertOne(ctx context.Context, doc docstore.Document) (string, error) {
	key, ok := doc[docstore.KeyField].(string)
	if !ok || key == "" {
		return "", nil
	}

	stored := doc.Clone()
	delete(stored, docstore.KeyField)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.docs[key]; !exists {
		c.keys = append(c.keys, key)
	}
	c.docs[key] = stored
	return key, nil
}

// DistinctValues scans every document, collects the elements of the sequence
// at the dotted path, and returns them deduplicated in ascending order.
// This is the one aggregation shape the application needs (the unique
// schedule days list).
func (c *Collection) DistinctValues(ctx context.Context, path string) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, key := range c.keys {
		v, ok := c.docs[key].Lookup(path)
		if !ok {
			continue
		}
		for _, s := range stringElems(v) {
			seen[s] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out, nil
}

func stringElems(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Count returns the number of stored documents.
func (c *Collection) Count(ctx context.Context) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return int64(len(c.docs)), nil
}

func withKey(doc docstore.Document, key string) docstore.Document {
	out := doc.Clone()
	out[docstore.KeyField] = key
	return out
}
