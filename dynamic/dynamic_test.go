package dynamic_test

import (
	"testing"

	schematype "github.com/reoring/schematype"
	"github.com/reoring/schematype/dynamic"
	"github.com/reoring/schematype/translate"
	"github.com/reoring/schematype/typeexpr"
)

func userExpr(t *testing.T) typeexpr.Expr {
	t.Helper()
	node, err := schematype.DecodeJSON([]byte(`{
		"type": "object",
		"properties": {
			"id": {"type": "string"},
			"age": {"type": "integer"},
			"tags": {"type": "array", "items": {"type": "string"}},
			"state": {"enum": ["open", "closed"]}
		},
		"required": ["id"]
	}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	expr, err := translate.Translate(node)
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	return expr
}

func TestCheck_AcceptsConformingValue(t *testing.T) {
	v := map[string]any{
		"id":    "u-1",
		"age":   42,
		"tags":  []any{"a", "b"},
		"state": "open",
	}
	if iss := dynamic.Check(userExpr(t), v); len(iss) != 0 {
		t.Fatalf("unexpected issues: %v", iss)
	}
}

func TestCheck_MissingRequiredField(t *testing.T) {
	iss := dynamic.Check(userExpr(t), map[string]any{"age": 1})
	if len(iss) != 1 || iss[0].Code != schematype.CodeRequired || iss[0].Path != "/id" {
		t.Fatalf("expected required issue at /id, got %v", iss)
	}
}

func TestCheck_OptionalFieldMayBeAbsent(t *testing.T) {
	if iss := dynamic.Check(userExpr(t), map[string]any{"id": "x"}); len(iss) != 0 {
		t.Fatalf("optional fields must not be demanded: %v", iss)
	}
}

func TestCheck_PrimitiveMismatchCarriesPath(t *testing.T) {
	iss := dynamic.Check(userExpr(t), map[string]any{"id": "x", "tags": []any{"ok", 3}})
	if len(iss) != 1 || iss[0].Code != schematype.CodeInvalidType || iss[0].Path != "/tags/1" {
		t.Fatalf("expected invalid_type at /tags/1, got %v", iss)
	}
}

func TestCheck_IntegerRejectsFractions(t *testing.T) {
	if iss := dynamic.Check(userExpr(t), map[string]any{"id": "x", "age": 1.5}); len(iss) == 0 {
		t.Fatalf("fractional value should not pass an integer field")
	}
	if iss := dynamic.Check(userExpr(t), map[string]any{"id": "x", "age": 2.0}); len(iss) != 0 {
		t.Fatalf("integral float should pass: %v", iss)
	}
}

func TestCheck_LiteralUnion(t *testing.T) {
	if iss := dynamic.Check(userExpr(t), map[string]any{"id": "x", "state": "paused"}); len(iss) == 0 {
		t.Fatalf("value outside the enum should fail")
	}
}

func TestCheck_UnresolvedAcceptsAnything(t *testing.T) {
	un := &typeexpr.Unresolved{Reason: typeexpr.SelfReference}
	for _, v := range []any{nil, "x", 1, map[string]any{"k": true}} {
		if iss := dynamic.Check(un, v); len(iss) != 0 {
			t.Fatalf("unresolved must accept %v: %v", v, iss)
		}
	}
}

func TestCheck_NonObjectAgainstRecord(t *testing.T) {
	iss := dynamic.Check(userExpr(t), "not an object")
	if len(iss) != 1 || iss[0].Code != schematype.CodeInvalidType || iss[0].Path != "/" {
		t.Fatalf("expected invalid_type at /, got %v", iss)
	}
}

func TestOptional_ClearsRequiredRecursively(t *testing.T) {
	expr := userExpr(t)
	opt := dynamic.Optional(expr)
	rec, ok := opt.(*typeexpr.Record)
	if !ok {
		t.Fatalf("expected record, got %s", typeexpr.Sprint(opt))
	}
	for _, f := range rec.Fields {
		if f.Required {
			t.Fatalf("field %s should be optional", f.Name)
		}
	}
	// the original expression is untouched
	orig := expr.(*typeexpr.Record)
	if f, _ := orig.Field("id"); !f.Required {
		t.Fatalf("Optional must copy, not mutate")
	}

	if iss := dynamic.Check(opt, map[string]any{}); len(iss) != 0 {
		t.Fatalf("empty value should pass the optional view: %v", iss)
	}
}
