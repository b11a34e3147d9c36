package typeexpr_test

import (
	"testing"

	"github.com/reoring/schematype/typeexpr"
)

func TestNewUnion_CollapsesSingletonsAndDuplicates(t *testing.T) {
	str := &typeexpr.Primitive{Name: typeexpr.String}
	num := &typeexpr.Primitive{Name: typeexpr.Number}

	if got := typeexpr.NewUnion(str); got != str {
		t.Fatalf("single member should collapse to the member")
	}
	got := typeexpr.NewUnion(str, &typeexpr.Primitive{Name: typeexpr.String}, num)
	u, ok := got.(*typeexpr.Union)
	if !ok || len(u.Members) != 2 {
		t.Fatalf("duplicates should collapse, got %s", typeexpr.Sprint(got))
	}
	if !typeexpr.Equal(u.Members[0], str) || !typeexpr.Equal(u.Members[1], num) {
		t.Fatalf("union must keep first-occurrence order")
	}
	if _, ok := typeexpr.NewUnion().(*typeexpr.Unresolved); !ok {
		t.Fatalf("empty union should degrade to unresolved")
	}
}

func TestEqual_Records(t *testing.T) {
	a := &typeexpr.Record{Name: "User", Fields: []typeexpr.Field{
		{Name: "id", Type: &typeexpr.Primitive{Name: typeexpr.String}, Required: true},
	}}
	b := &typeexpr.Record{Name: "User", Fields: []typeexpr.Field{
		{Name: "id", Type: &typeexpr.Primitive{Name: typeexpr.String}, Required: true},
	}}
	if !typeexpr.Equal(a, b) {
		t.Fatalf("equal records not recognized")
	}
	b.Fields[0].Required = false
	if typeexpr.Equal(a, b) {
		t.Fatalf("required flag must participate in equality")
	}
	b.Fields[0].Required = true
	b.Open = true
	if typeexpr.Equal(a, b) {
		t.Fatalf("open tag must participate in equality")
	}
}

func TestEqual_MixedKinds(t *testing.T) {
	if typeexpr.Equal(&typeexpr.Primitive{Name: typeexpr.String}, &typeexpr.Literal{Value: "x"}) {
		t.Fatalf("different kinds can never be equal")
	}
	if !typeexpr.Equal(&typeexpr.Unresolved{Reason: "a"}, &typeexpr.Unresolved{Reason: "a"}) {
		t.Fatalf("unresolved compares by reason")
	}
}

func TestSprint(t *testing.T) {
	rec := &typeexpr.Record{Name: "User", Open: true, Fields: []typeexpr.Field{
		{Name: "id", Type: &typeexpr.Primitive{Name: typeexpr.String}, Required: true},
		{Name: "age", Type: &typeexpr.Primitive{Name: typeexpr.Integer}},
	}}
	got := typeexpr.Sprint(rec)
	want := "User{id: string, age?: integer}+"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}

	u := typeexpr.NewUnion(&typeexpr.Literal{Value: "x"}, &typeexpr.Primitive{Name: typeexpr.Null})
	if s := typeexpr.Sprint(u); s != `"x" | null` {
		t.Fatalf("union rendering changed: %q", s)
	}

	arr := &typeexpr.Array{Elem: &typeexpr.Unresolved{Reason: "unspecified items"}}
	if s := typeexpr.Sprint(arr); s != "array<<unresolved: unspecified items>>" {
		t.Fatalf("array rendering changed: %q", s)
	}
}
