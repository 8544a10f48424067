// internal/app/store/docstore/docstore.go
package docstore

// Terminology: Documents and Keys
//   - Document: a schemaless field→value record, as stored (no key field)
//   - Key / _id: the unique external identifier a document is addressed by;
//     attached as the "_id" field on every document returned from a read

import (
	"context"
	"reflect"
	"strings"
)

// KeyField is the document field that carries the collection key on reads.
const KeyField = "_id"

// Document is a schemaless record. Values are scalars, sequences ([]any or
// []string), or one level of nested Document / map[string]any.
type Document map[string]any

// Clone returns a deep copy so callers can never reach stored state.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Document:
		return t.Clone()
	case map[string]any:
		return Document(t).Clone()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	default:
		return v
	}
}

// Lookup resolves a dotted path ("schedule_details.start_time") against the
// document. A missing parent or leaf yields (nil, false), never an error.
func (d Document) Lookup(path string) (any, bool) {
	cur := any(d)
	for _, part := range strings.Split(path, ".") {
		var m Document
		switch t := cur.(type) {
		case Document:
			m = t
		case map[string]any:
			m = Document(t)
		default:
			return nil, false
		}
		v, ok := m[part]
		if !ok {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

// String returns the named top-level field as a string ("" if absent or not a string).
func (d Document) String(field string) string {
	s, _ := d[field].(string)
	return s
}

// StringSlice returns the named top-level field as a string slice. It accepts
// both []string and []any-of-string storage, which show up interchangeably
// after JSON or BSON round-trips.
func (d Document) StringSlice(field string) []string {
	return toStringSlice(d[field])
}

// Int returns the named top-level field as an int, tolerating the numeric
// types JSON and BSON decoding produce.
func (d Document) Int(field string) (int, bool) {
	switch t := d[field].(type) {
	case int:
		return t, true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	default:
		return 0, false
	}
}

func toStringSlice(v any) []string {
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

/*─────────────────────────────────────────────────────────────────────────────*
| Predicates                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// CondOp enumerates the supported comparison operators.
type CondOp int

const (
	OpEq  CondOp = iota // direct equality
	OpIn                // membership in a value set
	OpGte               // greater-or-equal (lexicographic for strings)
	OpLte               // less-or-equal (lexicographic for strings)
)

// Cond is a single field constraint on a dotted path.
type Cond struct {
	Path   string
	Op     CondOp
	Value  any   // Eq / Gte / Lte
	Values []any // In
}

// Predicate is a conjunction of conditions. A nil or empty predicate matches
// every document.
type Predicate []Cond

// Eq matches documents whose value at path equals v.
func Eq(path string, v any) Cond { return Cond{Path: path, Op: OpEq, Value: v} }

// In matches documents whose value at path is one of vs. When the stored
// value is itself a sequence, the document matches if any element is in vs.
func In(path string, vs ...any) Cond { return Cond{Path: path, Op: OpIn, Values: vs} }

// Gte matches documents whose value at path is >= v.
func Gte(path string, v any) Cond { return Cond{Path: path, Op: OpGte, Value: v} }

// Lte matches documents whose value at path is <= v.
func Lte(path string, v any) Cond { return Cond{Path: path, Op: OpLte, Value: v} }

// Matches reports whether every condition holds for d. A condition on an
// absent path never matches.
func (p Predicate) Matches(d Document) bool {
	for _, c := range p {
		if !c.matches(d) {
			return false
		}
	}
	return true
}

func (c Cond) matches(d Document) bool {
	v, ok := d.Lookup(c.Path)
	if !ok {
		return false
	}
	switch c.Op {
	case OpEq:
		return valuesEqual(v, c.Value)
	case OpIn:
		// Sequence fields match on any element, scalar fields on the value
		// itself. Matches $in over array fields in the emulated database.
		if elems := toStringSlice(v); elems != nil {
			for _, e := range elems {
				if containsValue(c.Values, e) {
					return true
				}
			}
			return false
		}
		return containsValue(c.Values, v)
	case OpGte:
		cmp, ok := compareValues(v, c.Value)
		return ok && cmp >= 0
	case OpLte:
		cmp, ok := compareValues(v, c.Value)
		return ok && cmp <= 0
	default:
		return false
	}
}

func containsValue(set []any, v any) bool {
	for _, s := range set {
		if valuesEqual(v, s) {
			return true
		}
	}
	return false
}

func valuesEqual(a, b any) bool {
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			return af == bf
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

// compareValues orders two values of the same kind. Strings compare
// lexicographically, which is order-equivalent to time-of-day for the
// fixed "HH:MM" schedule format.
func compareValues(a, b any) (int, bool) {
	if as, ok := a.(string); ok {
		bs, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(as, bs), true
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if !aok || !bok {
		return 0, false
	}
	switch {
	case af < bf:
		return -1, true
	case af > bf:
		return 1, true
	default:
		return 0, true
	}
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	default:
		return 0, false
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Update operators                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

// UpdateOp enumerates the supported field mutations.
type UpdateOp int

const (
	OpPush UpdateOp = iota // append to a sequence field, creating it if absent
	OpPull                 // remove the first equal element from a sequence field
	OpSet                  // overwrite a field, creating it if absent
)

// Update mutates exactly one field of exactly one document.
type Update struct {
	Op    UpdateOp
	Field string
	Value any
}

// Push appends v to the sequence at field.
func Push(field string, v any) Update { return Update{Op: OpPush, Field: field, Value: v} }

// Pull removes the first occurrence of v from the sequence at field.
func Pull(field string, v any) Update { return Update{Op: OpPull, Field: field, Value: v} }

// Set overwrites field with v.
func Set(field string, v any) Update { return Update{Op: OpSet, Field: field, Value: v} }

/*─────────────────────────────────────────────────────────────────────────────*
| Collection contract                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

// Collection is the document-store surface the handlers program against.
// It is implemented by the in-memory emulation (memdb) and by the MongoDB
// adapter (mongodb); both give the same semantics:
//
//   - reads return detached copies with the key attached as "_id"
//   - absent documents are (nil, nil), never an error
//   - UpdateOne addresses documents by exact key and reports how many
//     documents changed (0 or 1)
//   - InsertOne overwrites any existing document at the same key; uniqueness,
//     where required, is checked by the caller before inserting
type Collection interface {
	Find(ctx context.Context, pred Predicate) ([]Document, error)
	FindOne(ctx context.Context, pred Predicate) (Document, error)
	Get(ctx context.Context, key string) (Document, error)
	UpdateOne(ctx context.Context, key string, u Update) (int64, error)
	InsertOne(ctx context.Context, doc Document) (string, error)
	DistinctValues(ctx context.Context, path string) ([]string, error)
	Count(ctx context.Context) (int64, error)
}
