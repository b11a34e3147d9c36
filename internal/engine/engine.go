package engine

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is the minimal interface the document builder requires.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64 // byte offset; -1 if unknown
}
