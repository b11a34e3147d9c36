package typeexpr

import (
	"fmt"
	"strings"
)

// Sprint renders an expression as a compact, human-readable type. The output
// is for diagnostics and the CLI; hosts render their own representation.
func Sprint(e Expr) string {
	b := &strings.Builder{}
	write(b, e)
	return b.String()
}

func write(b *strings.Builder, e Expr) {
	switch x := e.(type) {
	case nil:
		b.WriteString("<nil>")
	case *Primitive:
		b.WriteString(string(x.Name))
	case *Literal:
		switch v := x.Value.(type) {
		case nil:
			b.WriteString("null")
		case string:
			fmt.Fprintf(b, "%q", v)
		default:
			fmt.Fprintf(b, "%v", v)
		}
	case *Union:
		for i, m := range x.Members {
			if i > 0 {
				b.WriteString(" | ")
			}
			write(b, m)
		}
	case *Array:
		b.WriteString("array<")
		write(b, x.Elem)
		b.WriteString(">")
	case *Record:
		if x.Name != "" {
			b.WriteString(x.Name)
		}
		b.WriteString("{")
		for i, f := range x.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Name)
			if !f.Required {
				b.WriteString("?")
			}
			b.WriteString(": ")
			write(b, f.Type)
		}
		b.WriteString("}")
		if x.Open {
			b.WriteString("+")
		}
	case *Unresolved:
		b.WriteString("<unresolved")
		if x.Reason != "" {
			b.WriteString(": " + x.Reason)
		}
		b.WriteString(">")
	default:
		b.WriteString("<unknown>")
	}
}
