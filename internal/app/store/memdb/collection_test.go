// internal/app/store/memdb/collection_test.go
package memdb_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/mergington/activities/internal/app/store/docstore"
	"github.com/mergington/activities/internal/app/store/memdb"
)

func newTestCollection(t *testing.T) *memdb.Collection {
	t.Helper()

	c := memdb.New("activities")
	docs := []docstore.Document{
		{
			docstore.KeyField: "Chess Club",
			"schedule_details": docstore.Document{
				"days": []string{"Monday", "Friday"}, "start_time": "15:15", "end_time": "16:45",
			},
			"max_participants": 2,
			"participants":     []string{"alex@mergington.edu"},
		},
		{
			docstore.KeyField: "Math Club",
			"schedule_details": docstore.Document{
				"days": []string{"Tuesday"}, "start_time": "07:15", "end_time": "08:00",
			},
			"max_participants": 10,
			"participants":     []string{},
		},
		{
			docstore.KeyField: "Drama Club",
			"schedule_details": docstore.Document{
				"days": []string{"Monday", "Wednesday"}, "start_time": "15:30", "end_time": "17:30",
			},
			"max_participants": 20,
			"participants":     []string{"ella@mergington.edu"},
		},
	}
	for _, d := range docs {
		if _, err := c.InsertOne(context.Background(), d); err != nil {
			t.Fatalf("insert %v: %v", d[docstore.KeyField], err)
		}
	}
	return c
}

func TestFind_InsertionOrder(t *testing.T) {
	c := newTestCollection(t)

	docs, err := c.Find(context.Background(), nil)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}

	var names []string
	for _, d := range docs {
		names = append(names, d.String(docstore.KeyField))
	}
	want := []string{"Chess Club", "Math Club", "Drama Club"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Find order = %v, want %v", names, want)
	}
}

func TestFind_PredicateFilters(t *testing.T) {
	c := newTestCollection(t)

	pred := docstore.Predicate{docstore.In("schedule_details.days", "Monday")}
	docs, err := c.Find(context.Background(), pred)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("Monday activities = %d, want 2", len(docs))
	}

	pred = append(pred, docstore.Gte("schedule_details.start_time", "15:30"))
	docs, err = c.Find(context.Background(), pred)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(docs) != 1 || docs[0].String(docstore.KeyField) != "Drama Club" {
		t.Errorf("Monday>=15:30 = %v, want just Drama Club", docs)
	}
}

func TestGet_AbsentKeyIsNilNil(t *testing.T) {
	c := newTestCollection(t)

	doc, err := c.Get(context.Background(), "No Such Club")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if doc != nil {
		t.Errorf("Get(absent) = %v, want nil", doc)
	}
}

func TestGet_ReturnsDetachedCopy(t *testing.T) {
	c := newTestCollection(t)

	doc, err := c.Get(context.Background(), "Chess Club")
	if err != nil || doc == nil {
		t.Fatalf("Get: %v, %v", doc, err)
	}

	// Mutating the returned document must not change stored state.
	doc["max_participants"] = 999
	details := doc["schedule_details"].(docstore.Document)
	details["start_time"] = "00:00"

	again, err := c.Get(context.Background(), "Chess Club")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if n, _ := again.Int("max_participants"); n != 2 {
		t.Errorf("stored max_participants changed to %d", n)
	}
	if v, _ := again.Lookup("schedule_details.start_time"); v != "15:15" {
		t.Errorf("stored start_time changed to %v", v)
	}
}

func TestUpdateOne_PushThenPullRestores(t *testing.T) {
	c := newTestCollection(t)
	ctx := context.Background()

	before, _ := c.Get(ctx, "Chess Club")
	orig := before.StringSlice("participants")

	n, err := c.UpdateOne(ctx, "Chess Club", docstore.Push("participants", "new@mergington.edu"))
	if err != nil || n != 1 {
		t.Fatalf("push = %d, %v", n, err)
	}

	mid, _ := c.Get(ctx, "Chess Club")
	if got := mid.StringSlice("participants"); len(got) != len(orig)+1 {
		t.Fatalf("after push participants = %v", got)
	}

	n, err = c.UpdateOne(ctx, "Chess Club", docstore.Pull("participants", "new@mergington.edu"))
	if err != nil || n != 1 {
		t.Fatalf("pull = %d, %v", n, err)
	}

	after, _ := c.Get(ctx, "Chess Club")
	if got := after.StringSlice("participants"); !reflect.DeepEqual(got, orig) {
		t.Errorf("after push+pull participants = %v, want %v", got, orig)
	}
}

func TestUpdateOne_PullNothingReportsZero(t *testing.T) {
	c := newTestCollection(t)
	ctx := context.Background()

	n, err := c.UpdateOne(ctx, "Chess Club", docstore.Pull("participants", "ghost@mergington.edu"))
	if err != nil || n != 0 {
		t.Errorf("pull of absent value = %d, %v, want 0", n, err)
	}

	n, err = c.UpdateOne(ctx, "Chess Club", docstore.Pull("no_such_field", "x"))
	if err != nil || n != 0 {
		t.Errorf("pull on absent field = %d, %v, want 0", n, err)
	}

	n, err = c.UpdateOne(ctx, "No Such Club", docstore.Pull("participants", "x"))
	if err != nil || n != 0 {
		t.Errorf("pull on absent key = %d, %v, want 0", n, err)
	}
}

func TestUpdateOne_PushOntoAbsentFieldCreatesIt(t *testing.T) {
	c := newTestCollection(t)
	ctx := context.Background()

	n, err := c.UpdateOne(ctx, "Math Club", docstore.Push("waitlist", "sam@mergington.edu"))
	if err != nil || n != 1 {
		t.Fatalf("push = %d, %v", n, err)
	}

	doc, _ := c.Get(ctx, "Math Club")
	if got := doc.StringSlice("waitlist"); len(got) != 1 || got[0] != "sam@mergington.edu" {
		t.Errorf("waitlist = %v", got)
	}
}

func TestUpdateOne_SetReplacesField(t *testing.T) {
	c := newTestCollection(t)
	ctx := context.Background()

	n, err := c.UpdateOne(ctx, "Math Club", docstore.Set("max_participants", 5))
	if err != nil || n != 1 {
		t.Fatalf("set = %d, %v", n, err)
	}

	doc, _ := c.Get(ctx, "Math Club")
	if got, _ := doc.Int("max_participants"); got != 5 {
		t.Errorf("max_participants = %d, want 5", got)
	}

	n, err = c.UpdateOne(ctx, "No Such Club", docstore.Set("max_participants", 5))
	if err != nil || n != 0 {
		t.Errorf("set on absent key = %d, %v, want 0", n, err)
	}
}

func TestInsertOne_OverwritesExistingKey(t *testing.T) {
	c := newTestCollection(t)
	ctx := context.Background()

	key, err := c.InsertOne(ctx, docstore.Document{
		docstore.KeyField: "Chess Club",
		"description":     "replacement",
	})
	if err != nil || key != "Chess Club" {
		t.Fatalf("insert = %q, %v", key, err)
	}

	doc, _ := c.Get(ctx, "Chess Club")
	if doc.String("description") != "replacement" {
		t.Errorf("description = %q after overwrite", doc.String("description"))
	}
	if _, ok := doc["max_participants"]; ok {
		t.Errorf("overwrite kept old fields: %v", doc)
	}

	n, _ := c.Count(ctx)
	if n != 3 {
		t.Errorf("Count after overwrite = %d, want 3", n)
	}
}

func TestInsertOne_MissingKeyIsIgnored(t *testing.T) {
	c := newTestCollection(t)
	ctx := context.Background()

	key, err := c.InsertOne(ctx, docstore.Document{"description": "orphan"})
	if err != nil || key != "" {
		t.Errorf("insert without key = %q, %v", key, err)
	}
	n, _ := c.Count(ctx)
	if n != 3 {
		t.Errorf("Count = %d after keyless insert, want 3", n)
	}
}

func TestInsertOne_StoredCopyIsDetached(t *testing.T) {
	c := memdb.New("t")
	ctx := context.Background()

	src := docstore.Document{
		docstore.KeyField: "k",
		"participants":    []string{"a"},
	}
	if _, err := c.InsertOne(ctx, src); err != nil {
		t.Fatalf("insert: %v", err)
	}

	src["participants"] = append(src["participants"].([]string), "b")

	doc, _ := c.Get(ctx, "k")
	if got := doc.StringSlice("participants"); len(got) != 1 {
		t.Errorf("caller mutation leaked into stored doc: %v", got)
	}
}

func TestDistinctValues_SortedDeduplicated(t *testing.T) {
	c := newTestCollection(t)

	days, err := c.DistinctValues(context.Background(), "schedule_details.days")
	if err != nil {
		t.Fatalf("DistinctValues: %v", err)
	}
	want := []string{"Friday", "Monday", "Tuesday", "Wednesday"}
	if !reflect.DeepEqual(days, want) {
		t.Errorf("days = %v, want %v", days, want)
	}
}

func TestDistinctValues_AbsentPathIsEmpty(t *testing.T) {
	c := newTestCollection(t)

	vals, err := c.DistinctValues(context.Background(), "no.such.path")
	if err != nil {
		t.Fatalf("DistinctValues: %v", err)
	}
	if len(vals) != 0 {
		t.Errorf("vals = %v, want empty", vals)
	}
}

func TestFindOne_FirstMatchOrNil(t *testing.T) {
	c := newTestCollection(t)
	ctx := context.Background()

	doc, err := c.FindOne(ctx, docstore.Predicate{docstore.In("schedule_details.days", "Monday")})
	if err != nil || doc == nil {
		t.Fatalf("FindOne: %v, %v", doc, err)
	}
	if doc.String(docstore.KeyField) != "Chess Club" {
		t.Errorf("FindOne = %q, want first inserted match Chess Club", doc.String(docstore.KeyField))
	}

	doc, err = c.FindOne(ctx, docstore.Predicate{docstore.Eq("no_field", "x")})
	if err != nil || doc != nil {
		t.Errorf("FindOne(no match) = %v, %v, want nil, nil", doc, err)
	}
}
