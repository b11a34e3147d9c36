// Package gojson adapts goccy/go-json's token stream to the engine's
// TokenSource, preserving object key order and number text.
package gojson

import (
	"bytes"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	eng "github.com/reoring/schematype/internal/engine"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

type source struct {
	dec   *j.Decoder
	stack []frame
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON.
func NewReader(r io.Reader) eng.TokenSource {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &source{dec: dec}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

// Location is unknown for the go-json decoder; offsets stay best-effort.
func (s *source) Location() int64 { return -1 }

func (s *source) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		if err == io.EOF {
			return eng.Token{}, io.EOF
		}
		return eng.Token{}, err
	}

	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{kind: kindObject, expectingKey: true})
			return eng.Token{Kind: eng.KindBeginObject, Offset: -1}, nil
		case '}':
			s.pop()
			s.valueDone()
			return eng.Token{Kind: eng.KindEndObject, Offset: -1}, nil
		case '[':
			s.stack = append(s.stack, frame{kind: kindArray})
			return eng.Token{Kind: eng.KindBeginArray, Offset: -1}, nil
		case ']':
			s.pop()
			s.valueDone()
			return eng.Token{Kind: eng.KindEndArray, Offset: -1}, nil
		}
	case string:
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				top.expectingKey = false
				return eng.Token{Kind: eng.KindKey, String: v, Offset: -1}, nil
			}
		}
		s.valueDone()
		return eng.Token{Kind: eng.KindString, String: v, Offset: -1}, nil
	case bool:
		s.valueDone()
		return eng.Token{Kind: eng.KindBool, Bool: v, Offset: -1}, nil
	case j.Number:
		s.valueDone()
		return eng.Token{Kind: eng.KindNumber, Number: string(v), Offset: -1}, nil
	case float64:
		s.valueDone()
		return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: -1}, nil
	case nil:
		s.valueDone()
		return eng.Token{Kind: eng.KindNull, Offset: -1}, nil
	}
	return eng.Token{}, io.ErrUnexpectedEOF
}

func (s *source) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
}

// valueDone flips the enclosing object frame back to expecting a key after a
// value has been consumed.
func (s *source) valueDone() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}
