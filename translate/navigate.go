package translate

import (
	"strings"

	schematype "github.com/reoring/schematype"
	"github.com/reoring/schematype/i18n"
)

// ElementSegment is the reserved key-path token naming the element of an
// array schema rather than a property.
const ElementSegment = "#"

// Navigate descends from the document root through properties (and through
// items for array schemas) to the subschema the key path names. An empty path
// returns root unchanged.
func Navigate(root *schematype.Node, path []string) (*schematype.Node, error) {
	cur := root
	for i, seg := range path {
		// Array schemas are transparent: step into their element schema
		// before applying the segment.
		for isArraySchema(cur) {
			items, ok := cur.Prop("items")
			if !ok {
				return nil, pathErr(path[:i], seg, "array schema without items")
			}
			cur = items
		}
		if seg == ElementSegment {
			continue
		}
		props, ok := cur.Prop("properties")
		if !ok {
			return nil, pathErr(path[:i], seg, "not an object schema")
		}
		next, ok := props.Prop(seg)
		if !ok {
			return nil, pathErr(path[:i], seg, "no such property")
		}
		cur = next
	}
	return cur, nil
}

func isArraySchema(n *schematype.Node) bool {
	if n == nil || n.Kind != schematype.KindObject {
		return false
	}
	if n.StringProp("type") == "array" {
		return true
	}
	return !n.Has("type") && n.Has("items") && !n.Has("properties")
}

func pathErr(prefix []string, seg, hint string) error {
	return schematype.Issues{schematype.Issue{
		Path:    "/" + strings.Join(prefix, "/"),
		Code:    schematype.CodePath,
		Message: i18n.T(schematype.CodePath, nil),
		Hint:    hint + ": '" + seg + "'",
		Params:  map[string]any{"segment": seg, "prefix": strings.Join(prefix, ".")},
	}}
}
