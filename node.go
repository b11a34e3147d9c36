package schematype

// NodeKind identifies the JSON kind of one schema fragment.
type NodeKind int

const (
	KindNull NodeKind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k NodeKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Node is one parsed schema fragment. It is immutable once decoding finishes;
// every component after the loader borrows it read-only. Object members keep
// their declaration order (Keys), which downstream record synthesis relies on.
type Node struct {
	Kind NodeKind

	Bool bool   // valid when Kind == KindBool
	Num  string // number as text; interpretation is left to consumers
	Str  string // valid when Kind == KindString

	Items []*Node // valid when Kind == KindArray

	Keys  []string // object member names in declaration order
	props map[string]*Node
}

// NewNull returns a null node.
func NewNull() *Node { return &Node{Kind: KindNull} }

// NewBool returns a boolean node.
func NewBool(b bool) *Node { return &Node{Kind: KindBool, Bool: b} }

// NewNumber returns a number node from its textual form.
func NewNumber(text string) *Node { return &Node{Kind: KindNumber, Num: text} }

// NewString returns a string node.
func NewString(s string) *Node { return &Node{Kind: KindString, Str: s} }

// NewArray returns an array node over the given items.
func NewArray(items ...*Node) *Node { return &Node{Kind: KindArray, Items: items} }

// NewObject returns an empty object node. Populate it with Set.
func NewObject() *Node { return &Node{Kind: KindObject, props: map[string]*Node{}} }

// Set inserts or replaces an object member. First insertion fixes the member's
// position in Keys. Returns n for chaining.
func (n *Node) Set(key string, v *Node) *Node {
	if n.props == nil {
		n.props = map[string]*Node{}
	}
	if _, seen := n.props[key]; !seen {
		n.Keys = append(n.Keys, key)
	}
	n.props[key] = v
	return n
}

// Prop looks up an object member by name. The second result reports presence;
// it is false for non-object nodes.
func (n *Node) Prop(key string) (*Node, bool) {
	if n == nil || n.Kind != KindObject {
		return nil, false
	}
	v, ok := n.props[key]
	return v, ok
}

// Has reports whether the object member exists.
func (n *Node) Has(key string) bool {
	_, ok := n.Prop(key)
	return ok
}

// StringProp returns the member's string value, or "" when the member is
// missing or not a string.
func (n *Node) StringProp(key string) string {
	v, ok := n.Prop(key)
	if !ok || v == nil || v.Kind != KindString {
		return ""
	}
	return v.Str
}

// Len returns the number of array items or object members.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	switch n.Kind {
	case KindArray:
		return len(n.Items)
	case KindObject:
		return len(n.Keys)
	default:
		return 0
	}
}

// Value converts the subtree into plain Go values: nil, bool, json-style
// number text, string, []any, map[string]any. Object order is lost; use this
// only where order does not matter (enum/const literal payloads).
func (n *Node) Value() any {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case KindNull:
		return nil
	case KindBool:
		return n.Bool
	case KindNumber:
		return Number(n.Num)
	case KindString:
		return n.Str
	case KindArray:
		out := make([]any, 0, len(n.Items))
		for _, it := range n.Items {
			out = append(out, it.Value())
		}
		return out
	case KindObject:
		out := make(map[string]any, len(n.Keys))
		for _, k := range n.Keys {
			out[k] = n.props[k].Value()
		}
		return out
	default:
		return nil
	}
}

// Number is a JSON number kept in its textual form, mirroring json.Number.
type Number string

// String returns the literal text of the number.
func (n Number) String() string { return string(n) }
