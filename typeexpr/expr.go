// Package typeexpr defines the host-independent type expression tree produced
// by translation. The host's plugin adapter renders these nodes into native
// type objects; nothing in this package depends on any particular checker.
package typeexpr

// Kind identifies an expression node type.
type Kind int

const (
	KindPrimitive Kind = iota
	KindLiteral
	KindUnion
	KindArray
	KindRecord
	KindUnresolved
)

// Expr is the root expression interface.
type Expr interface {
	Kind() Kind
}

// PrimName names a JSON Schema primitive type.
type PrimName string

const (
	Integer PrimName = "integer"
	Number  PrimName = "number"
	String  PrimName = "string"
	Boolean PrimName = "boolean"
	Null    PrimName = "null"
)

// Primitive represents one of the scalar primitive types.
type Primitive struct {
	Name PrimName
}

func (p *Primitive) Kind() Kind { return KindPrimitive }

// Literal represents a single constant value, from a one-element enum or const.
// Value holds nil, bool, string, or number text.
type Literal struct {
	Value any
}

func (l *Literal) Kind() Kind { return KindLiteral }

// Union represents an ordered, structurally deduplicated set of alternatives.
type Union struct {
	Members []Expr
}

func (u *Union) Kind() Kind { return KindUnion }

// Array represents a homogeneous array.
type Array struct {
	Elem Expr
}

func (a *Array) Kind() Kind { return KindArray }

// Field is one named record member.
type Field struct {
	Name     string
	Type     Expr
	Required bool
}

// Record represents a structural record type. Fields keep the declaration
// order of the schema's properties. Open marks records whose schema allowed
// additional properties; the flag is informational, the record stays closed in
// the target type system.
type Record struct {
	Name   string
	Fields []Field
	Open   bool
}

func (o *Record) Kind() Kind { return KindRecord }

// Field returns the named field, if present.
func (o *Record) Field(name string) (Field, bool) {
	for _, f := range o.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Unresolved is the placeholder for constructs the translation cannot express:
// self-references, unsupported keyword combinations. Hosts render it as an
// open/untyped value rather than failing.
type Unresolved struct {
	Reason string
}

func (u *Unresolved) Kind() Kind { return KindUnresolved }

// SelfReference is the Reason used for $ref cycles.
const SelfReference = "self-reference"

// NewUnion flattens singletons: zero members yield Unresolved, one member
// yields the member itself, otherwise a Union with structural duplicates
// collapsed (first occurrence wins the position).
func NewUnion(members ...Expr) Expr {
	dedup := make([]Expr, 0, len(members))
	for _, m := range members {
		if m == nil {
			continue
		}
		seen := false
		for _, d := range dedup {
			if Equal(d, m) {
				seen = true
				break
			}
		}
		if !seen {
			dedup = append(dedup, m)
		}
	}
	switch len(dedup) {
	case 0:
		return &Unresolved{Reason: "empty union"}
	case 1:
		return dedup[0]
	default:
		return &Union{Members: dedup}
	}
}
