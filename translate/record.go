package translate

import (
	"strconv"
	"strings"
	"unicode"

	schematype "github.com/reoring/schematype"
	"github.com/reoring/schematype/typeexpr"
)

// synthesizeRecord turns an object schema into a structural record. Field
// order follows the properties declaration order; required flags come from the
// required array. Additional properties cannot be modelled, so their presence
// only tags the record as open.
func (s *session) synthesizeRecord(node *schematype.Node) (typeexpr.Expr, error) {
	rec := &typeexpr.Record{Name: s.allocName(node.StringProp("title"))}

	props, hasProps := node.Prop("properties")
	rec.Open = isOpen(node, hasProps)
	if !hasProps || props.Kind != schematype.KindObject {
		return rec, nil
	}

	required := requiredSet(node)
	for _, name := range props.Keys {
		sub, _ := props.Prop(name)
		prev := s.hint
		s.hint = prev + exportName(name)
		ft, err := s.translate(sub)
		s.hint = prev
		if err != nil {
			return nil, err
		}
		rec.Fields = append(rec.Fields, typeexpr.Field{
			Name:     name,
			Type:     ft,
			Required: required[name],
		})
	}
	return rec, nil
}

// isOpen reports whether the object schema admits members beyond the declared
// properties: additionalProperties anything but false, or no properties at all.
func isOpen(node *schematype.Node, hasProps bool) bool {
	ap, ok := node.Prop("additionalProperties")
	if ok {
		return !(ap.Kind == schematype.KindBool && !ap.Bool)
	}
	return !hasProps
}

func requiredSet(node *schematype.Node) map[string]bool {
	out := map[string]bool{}
	req, ok := node.Prop("required")
	if !ok || req.Kind != schematype.KindArray {
		return out
	}
	for _, it := range req.Items {
		if it.Kind == schematype.KindString {
			out[it.Str] = true
		}
	}
	return out
}

// allocName picks a record name: the sanitized title when present, else the
// positional hint, with a numeric suffix when the name is already taken in
// this translation unit.
func (s *session) allocName(title string) string {
	name := sanitizeName(title)
	if name == "" {
		name = s.hint
	}
	s.names[name]++
	if n := s.names[name]; n > 1 {
		return name + strconv.Itoa(n)
	}
	return name
}

// sanitizeName converts a schema title into a valid identifier:
// "order-item list" -> "OrderItemList".
func sanitizeName(title string) string {
	b := &strings.Builder{}
	upper := true
	for _, r := range title {
		switch {
		case unicode.IsLetter(r):
			if upper {
				r = unicode.ToUpper(r)
				upper = false
			}
			b.WriteRune(r)
		case unicode.IsDigit(r):
			if b.Len() == 0 {
				continue // identifiers cannot start with a digit
			}
			b.WriteRune(r)
			upper = true
		default:
			upper = true
		}
	}
	return b.String()
}

// exportName renders a field name as a positional name fragment.
func exportName(field string) string { return sanitizeName(field) }
