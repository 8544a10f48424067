// internal/app/store/mongodb/collection_test.go
package mongodb

// Compilation of typed predicates and updates to BSON is pure, so it is
// tested directly; the driver round-trip is covered by integration use.

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/mergington/activities/internal/app/store/docstore"
)

func TestCompileFilter_EmptyPredicate(t *testing.T) {
	got := compileFilter(nil)
	if len(got) != 0 {
		t.Errorf("compileFilter(nil) = %v, want empty filter", got)
	}
}

func TestCompileFilter_EqAndIn(t *testing.T) {
	pred := docstore.Predicate{
		docstore.Eq("role", "teacher"),
		docstore.In("schedule_details.days", "Monday"),
	}
	got := compileFilter(pred)

	want := bson.M{
		"role":                  "teacher",
		"schedule_details.days": bson.M{"$in": []any{"Monday"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("compileFilter = %v, want %v", got, want)
	}
}

func TestCompileFilter_RangeBoundsCombine(t *testing.T) {
	pred := docstore.Predicate{
		docstore.Gte("schedule_details.start_time", "07:00"),
		docstore.Lte("schedule_details.start_time", "09:00"),
	}
	got := compileFilter(pred)

	want := bson.M{
		"schedule_details.start_time": bson.M{"$gte": "07:00", "$lte": "09:00"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("compileFilter = %v, want combined range %v", got, want)
	}
}

func TestCompileFilter_RangesOnDistinctPaths(t *testing.T) {
	pred := docstore.Predicate{
		docstore.Gte("schedule_details.start_time", "15:00"),
		docstore.Lte("schedule_details.end_time", "18:00"),
	}
	got := compileFilter(pred)

	want := bson.M{
		"schedule_details.start_time": bson.M{"$gte": "15:00"},
		"schedule_details.end_time":   bson.M{"$lte": "18:00"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("compileFilter = %v, want %v", got, want)
	}
}

func TestCompileUpdate_Operators(t *testing.T) {
	cases := []struct {
		name string
		u    docstore.Update
		want bson.M
	}{
		{"push", docstore.Push("participants", "a@mergington.edu"),
			bson.M{"$push": bson.M{"participants": "a@mergington.edu"}}},
		{"pull", docstore.Pull("participants", "a@mergington.edu"),
			bson.M{"$pull": bson.M{"participants": "a@mergington.edu"}}},
		{"set", docstore.Set("password", "record"),
			bson.M{"$set": bson.M{"password": "record"}}},
	}
	for _, tc := range cases {
		if got := compileUpdate(tc.u); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%s: compileUpdate = %v, want %v", tc.name, got, tc.want)
		}
	}
}
