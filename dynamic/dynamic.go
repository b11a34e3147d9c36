// Package dynamic checks runtime values against a translated type expression.
// It is the optional runtime-facing counterpart of the static translation: the
// same expression that types a record statically can validate field presence
// and primitive kinds on live data. The translation core knows nothing about
// this package.
package dynamic

import (
	"encoding/json"
	"fmt"

	schematype "github.com/reoring/schematype"
	"github.com/reoring/schematype/typeexpr"
)

// Check validates v against expr and reports issues with JSON Pointer paths.
// Unresolved expressions accept anything, mirroring how hosts render them as
// untyped placeholders.
func Check(expr typeexpr.Expr, v any) schematype.Issues {
	var iss schematype.Issues
	check(expr, v, "", &iss)
	return iss
}

// Valid reports whether v conforms to expr.
func Valid(expr typeexpr.Expr, v any) bool { return len(Check(expr, v)) == 0 }

func check(expr typeexpr.Expr, v any, path string, iss *schematype.Issues) {
	switch x := expr.(type) {
	case nil, *typeexpr.Unresolved:
		return
	case *typeexpr.Primitive:
		checkPrimitive(x, v, path, iss)
	case *typeexpr.Literal:
		if !literalMatches(x.Value, v) {
			*iss = schematype.AppendIssues(*iss, schematype.Issue{
				Path: ptr(path), Code: schematype.CodeInvalidType,
				Message: fmt.Sprintf("expected literal %v", x.Value),
			})
		}
	case *typeexpr.Union:
		for _, m := range x.Members {
			if len(Check(m, v)) == 0 {
				return
			}
		}
		*iss = schematype.AppendIssues(*iss, schematype.Issue{
			Path: ptr(path), Code: schematype.CodeInvalidType, Message: "no union member matches",
		})
	case *typeexpr.Array:
		arr, ok := v.([]any)
		if !ok {
			*iss = schematype.AppendIssues(*iss, schematype.Issue{
				Path: ptr(path), Code: schematype.CodeInvalidType, Message: "expected array",
			})
			return
		}
		for i, it := range arr {
			check(x.Elem, it, fmt.Sprintf("%s/%d", path, i), iss)
		}
	case *typeexpr.Record:
		m, ok := v.(map[string]any)
		if !ok {
			*iss = schematype.AppendIssues(*iss, schematype.Issue{
				Path: ptr(path), Code: schematype.CodeInvalidType, Message: "expected object",
			})
			return
		}
		for _, f := range x.Fields {
			fv, present := m[f.Name]
			if !present {
				if f.Required {
					*iss = schematype.AppendIssues(*iss, schematype.Issue{
						Path: path + "/" + f.Name, Code: schematype.CodeRequired,
						Message: "required property missing",
					})
				}
				continue
			}
			check(f.Type, fv, path+"/"+f.Name, iss)
		}
	}
}

func checkPrimitive(p *typeexpr.Primitive, v any, path string, iss *schematype.Issues) {
	ok := false
	switch p.Name {
	case typeexpr.String:
		_, ok = v.(string)
	case typeexpr.Boolean:
		_, ok = v.(bool)
	case typeexpr.Null:
		ok = v == nil
	case typeexpr.Number, typeexpr.Integer:
		ok = isNumeric(v)
		if ok && p.Name == typeexpr.Integer {
			ok = isIntegral(v)
		}
	}
	if !ok {
		*iss = schematype.AppendIssues(*iss, schematype.Issue{
			Path: ptr(path), Code: schematype.CodeInvalidType,
			Message: "expected " + string(p.Name),
		})
	}
}

func isNumeric(v any) bool {
	switch v.(type) {
	case json.Number, schematype.Number, float64, float32, int, int32, int64:
		return true
	}
	return false
}

func isIntegral(v any) bool {
	switch n := v.(type) {
	case int, int32, int64:
		return true
	case float64:
		return n == float64(int64(n))
	case float32:
		return float64(n) == float64(int64(n))
	case json.Number:
		_, err := n.Int64()
		return err == nil
	case schematype.Number:
		_, err := json.Number(n).Int64()
		return err == nil
	}
	return false
}

func literalMatches(want, got any) bool {
	if want == nil || got == nil {
		return want == nil && got == nil
	}
	switch w := want.(type) {
	case string:
		g, ok := got.(string)
		return ok && g == w
	case bool:
		g, ok := got.(bool)
		return ok && g == w
	case schematype.Number:
		return numbersEqual(string(w), got)
	case json.Number:
		return numbersEqual(string(w), got)
	default:
		return false
	}
}

func numbersEqual(want string, got any) bool {
	switch g := got.(type) {
	case json.Number:
		return string(g) == want
	case schematype.Number:
		return string(g) == want
	case float64:
		return fmt.Sprintf("%v", g) == want
	case int:
		return fmt.Sprintf("%d", g) == want
	case int64:
		return fmt.Sprintf("%d", g) == want
	default:
		return false
	}
}

func ptr(path string) string {
	if path == "" {
		return "/"
	}
	return path
}

// Optional returns a copy of a record expression with every field marked
// optional, recursively. Non-record expressions come back unchanged.
func Optional(expr typeexpr.Expr) typeexpr.Expr {
	rec, ok := expr.(*typeexpr.Record)
	if !ok {
		return expr
	}
	out := &typeexpr.Record{Name: rec.Name, Open: rec.Open}
	for _, f := range rec.Fields {
		out.Fields = append(out.Fields, typeexpr.Field{
			Name:     f.Name,
			Type:     Optional(f.Type),
			Required: false,
		})
	}
	return out
}
