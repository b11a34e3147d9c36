package translate

import (
	schematype "github.com/reoring/schematype"
	"github.com/reoring/schematype/typeexpr"
)

// session carries the state of one top-level translation: the document root
// for $ref resolution, the active reference chain, record name allocation,
// and the positional name hint for untitled records.
type session struct {
	root   *schematype.Node
	stack  refStack
	names  map[string]int
	hint   string
	extern ExternFunc
}

func newSession(root *schematype.Node, base string, extern ExternFunc) *session {
	if base == "" {
		base = "Schema"
	}
	return &session{root: root, names: map[string]int{}, hint: base, extern: extern}
}

// translate walks one schema node and always yields some expression for
// syntactically valid input; only unresolvable $refs are hard errors.
func (s *session) translate(node *schematype.Node) (typeexpr.Expr, error) {
	if node == nil {
		return &typeexpr.Unresolved{Reason: "missing schema"}, nil
	}
	if node.Kind == schematype.KindBool {
		// Boolean schemas accept everything or nothing; neither is expressible.
		return &typeexpr.Unresolved{Reason: "boolean schema"}, nil
	}
	if node.Kind != schematype.KindObject {
		return &typeexpr.Unresolved{Reason: "non-object schema node"}, nil
	}

	// An $id opens a resolution scope. Seeing the same scope again means the
	// document re-entered itself through a $ref.
	if scope := node.StringProp("$id"); scope != "" {
		if s.stack.contains(scope) {
			return &typeexpr.Unresolved{Reason: typeexpr.SelfReference}, nil
		}
		s.stack.push(scope)
		defer s.stack.pop()
	}

	typ, hasType := node.Prop("type")
	if !hasType {
		return s.translateUntyped(node)
	}

	switch typ.Kind {
	case schematype.KindString:
		return s.translateTyped(node, typ.Str)
	case schematype.KindArray:
		// "type": ["string", "number"] is a union over the per-type views of
		// the same node, duplicates collapsed.
		members := make([]typeexpr.Expr, 0, len(typ.Items))
		for _, t := range typ.Items {
			if t.Kind != schematype.KindString {
				members = append(members, &typeexpr.Unresolved{Reason: "non-string type entry"})
				continue
			}
			m, err := s.translateTyped(node, t.Str)
			if err != nil {
				return nil, err
			}
			members = append(members, m)
		}
		return typeexpr.NewUnion(members...), nil
	default:
		return &typeexpr.Unresolved{Reason: "malformed type keyword"}, nil
	}
}

// translateUntyped infers the effective shape when the type keyword is absent.
func (s *session) translateUntyped(node *schematype.Node) (typeexpr.Expr, error) {
	switch {
	case node.Has("$ref"):
		return s.translateRef(node.StringProp("$ref"))
	case node.Has("allOf"):
		return s.translateAllOf(node)
	case node.Has("anyOf"):
		return s.translateBranches(node, "anyOf")
	case node.Has("oneOf"):
		return s.translateBranches(node, "oneOf")
	case node.Has("enum"):
		return s.translateEnum(node), nil
	case node.Has("const"):
		return s.translateConst(node), nil
	case node.Has("properties"):
		return s.synthesizeRecord(node)
	case node.Has("items"):
		return s.translateArray(node)
	default:
		return &typeexpr.Unresolved{Reason: "no type keyword"}, nil
	}
}

// translateTyped maps one named type of the node. Enum values take precedence
// over the declared type, matching common validator behavior.
func (s *session) translateTyped(node *schematype.Node, typ string) (typeexpr.Expr, error) {
	if node.Has("enum") {
		return s.translateEnum(node), nil
	}
	switch typ {
	case "integer":
		return &typeexpr.Primitive{Name: typeexpr.Integer}, nil
	case "number":
		return &typeexpr.Primitive{Name: typeexpr.Number}, nil
	case "string":
		return &typeexpr.Primitive{Name: typeexpr.String}, nil
	case "boolean":
		if c, ok := node.Prop("const"); ok && c.Kind == schematype.KindBool {
			return &typeexpr.Literal{Value: c.Bool}, nil
		}
		return &typeexpr.Primitive{Name: typeexpr.Boolean}, nil
	case "null":
		return &typeexpr.Primitive{Name: typeexpr.Null}, nil
	case "array":
		return s.translateArray(node)
	case "object":
		return s.synthesizeRecord(node)
	default:
		return &typeexpr.Unresolved{Reason: "unknown type: " + typ}, nil
	}
}

func (s *session) translateRef(ref string) (typeexpr.Expr, error) {
	if s.stack.contains(ref) {
		return &typeexpr.Unresolved{Reason: typeexpr.SelfReference}, nil
	}
	target, err := resolveRef(s.root, ref, s.extern)
	if err != nil {
		return nil, err
	}
	// The ref stays on the stack only while its subtree is active, so sibling
	// references to the same target do not trip cycle detection.
	s.stack.push(ref)
	defer s.stack.pop()
	return s.translate(target)
}

func (s *session) translateBranches(node *schematype.Node, keyword string) (typeexpr.Expr, error) {
	branches, _ := node.Prop(keyword)
	if branches == nil || branches.Kind != schematype.KindArray {
		return &typeexpr.Unresolved{Reason: "malformed " + keyword}, nil
	}
	members := make([]typeexpr.Expr, 0, len(branches.Items))
	for _, b := range branches.Items {
		m, err := s.translate(b)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return typeexpr.NewUnion(members...), nil
}

// translateAllOf merges record branches into one record, later branches
// overriding earlier ones on field name collision. Any non-record branch makes
// the whole construct inexpressible.
func (s *session) translateAllOf(node *schematype.Node) (typeexpr.Expr, error) {
	branches, _ := node.Prop("allOf")
	if branches == nil || branches.Kind != schematype.KindArray {
		return &typeexpr.Unresolved{Reason: "malformed allOf"}, nil
	}
	merged := &typeexpr.Record{Name: s.allocName(node.StringProp("title"))}
	index := map[string]int{}
	for _, b := range branches.Items {
		m, err := s.translate(b)
		if err != nil {
			return nil, err
		}
		rec, ok := m.(*typeexpr.Record)
		if !ok {
			return &typeexpr.Unresolved{Reason: "allOf with non-record branch"}, nil
		}
		for _, f := range rec.Fields {
			if at, seen := index[f.Name]; seen {
				merged.Fields[at] = f // last wins
				continue
			}
			index[f.Name] = len(merged.Fields)
			merged.Fields = append(merged.Fields, f)
		}
		if rec.Open {
			merged.Open = true
		}
	}
	return merged, nil
}

// translateEnum produces a union of literals; a single value collapses to one
// literal. Non-scalar members are inexpressible and degrade per member.
func (s *session) translateEnum(node *schematype.Node) typeexpr.Expr {
	values, _ := node.Prop("enum")
	if values == nil || values.Kind != schematype.KindArray {
		return &typeexpr.Unresolved{Reason: "malformed enum"}
	}
	members := make([]typeexpr.Expr, 0, len(values.Items))
	for _, v := range values.Items {
		members = append(members, literalOf(v))
	}
	return typeexpr.NewUnion(members...)
}

func (s *session) translateConst(node *schematype.Node) typeexpr.Expr {
	v, _ := node.Prop("const")
	return literalOf(v)
}

func literalOf(v *schematype.Node) typeexpr.Expr {
	if v == nil {
		return &typeexpr.Unresolved{Reason: "missing literal value"}
	}
	switch v.Kind {
	case schematype.KindNull:
		return &typeexpr.Literal{Value: nil}
	case schematype.KindBool:
		return &typeexpr.Literal{Value: v.Bool}
	case schematype.KindNumber:
		return &typeexpr.Literal{Value: schematype.Number(v.Num)}
	case schematype.KindString:
		return &typeexpr.Literal{Value: v.Str}
	default:
		return &typeexpr.Unresolved{Reason: "non-scalar enum member"}
	}
}

func (s *session) translateArray(node *schematype.Node) (typeexpr.Expr, error) {
	items, ok := node.Prop("items")
	if !ok {
		return &typeexpr.Array{Elem: &typeexpr.Unresolved{Reason: "unspecified items"}}, nil
	}
	switch items.Kind {
	case schematype.KindBool:
		if items.Bool {
			return &typeexpr.Array{Elem: &typeexpr.Unresolved{Reason: "unconstrained items"}}, nil
		}
		return &typeexpr.Unresolved{Reason: "items: false"}, nil
	case schematype.KindArray:
		// Tuple validation has no counterpart in the target type system.
		return &typeexpr.Unresolved{Reason: "tuple items"}, nil
	default:
		prev := s.hint
		s.hint = prev + "Item"
		elem, err := s.translate(items)
		s.hint = prev
		if err != nil {
			return nil, err
		}
		return &typeexpr.Array{Elem: elem}, nil
	}
}
