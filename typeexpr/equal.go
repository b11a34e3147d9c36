package typeexpr

// Equal reports structural equality of two expressions. Records compare by
// name, field order, required flags, and open tag; unions compare member-wise
// in order.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case *Primitive:
		y := b.(*Primitive)
		return x.Name == y.Name
	case *Literal:
		y := b.(*Literal)
		return x.Value == y.Value
	case *Union:
		y := b.(*Union)
		if len(x.Members) != len(y.Members) {
			return false
		}
		for i := range x.Members {
			if !Equal(x.Members[i], y.Members[i]) {
				return false
			}
		}
		return true
	case *Array:
		y := b.(*Array)
		return Equal(x.Elem, y.Elem)
	case *Record:
		y := b.(*Record)
		if x.Name != y.Name || x.Open != y.Open || len(x.Fields) != len(y.Fields) {
			return false
		}
		for i := range x.Fields {
			xf, yf := x.Fields[i], y.Fields[i]
			if xf.Name != yf.Name || xf.Required != yf.Required || !Equal(xf.Type, yf.Type) {
				return false
			}
		}
		return true
	case *Unresolved:
		y := b.(*Unresolved)
		return x.Reason == y.Reason
	default:
		return false
	}
}
