package schematype

import (
	"io"

	yaml "gopkg.in/yaml.v3"

	eng "github.com/reoring/schematype/internal/engine"
	"github.com/reoring/schematype/source/gojson"
)

// DecodeJSON parses a JSON schema document into a Node tree, preserving object
// member order. Malformed input yields Issues with code parse_error.
func DecodeJSON(b []byte) (*Node, error) { return DecodeFrom(gojson.NewBytes(b)) }

// DecodeJSONReader parses a JSON schema document from a reader.
func DecodeJSONReader(r io.Reader) (*Node, error) { return DecodeFrom(gojson.NewReader(r)) }

// DecodeFrom folds a token stream into a Node tree.
func DecodeFrom(src eng.TokenSource) (*Node, error) {
	tok, err := src.NextToken()
	if err != nil {
		return nil, decodeErr(err)
	}
	n, err := decodeValue(src, tok)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func decodeErr(err error) error {
	if err == io.EOF {
		return SingleIssue(CodeParseError, "unexpected end of document")
	}
	return Issues{Issue{Path: "/", Code: CodeParseError, Message: "malformed document", Cause: err}}
}

func decodeValue(src eng.TokenSource, tok eng.Token) (*Node, error) {
	switch tok.Kind {
	case eng.KindBeginObject:
		return decodeObject(src)
	case eng.KindBeginArray:
		return decodeArray(src)
	case eng.KindString:
		return NewString(tok.String), nil
	case eng.KindNumber:
		return NewNumber(tok.Number), nil
	case eng.KindBool:
		return NewBool(tok.Bool), nil
	case eng.KindNull:
		return NewNull(), nil
	default:
		return nil, SingleIssue(CodeParseError, "unexpected token")
	}
}

func decodeObject(src eng.TokenSource) (*Node, error) {
	obj := NewObject()
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, decodeErr(err)
		}
		if tok.Kind == eng.KindEndObject {
			return obj, nil
		}
		if tok.Kind != eng.KindKey {
			return nil, SingleIssue(CodeParseError, "expected object key")
		}
		key := tok.String
		if obj.Has(key) {
			return nil, Issues{Issue{Path: "/" + key, Code: CodeDuplicateKey, Message: "duplicate key", Hint: key}}
		}
		vt, err := src.NextToken()
		if err != nil {
			return nil, decodeErr(err)
		}
		v, err := decodeValue(src, vt)
		if err != nil {
			return nil, err
		}
		obj.Set(key, v)
	}
}

func decodeArray(src eng.TokenSource) (*Node, error) {
	arr := NewArray()
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, decodeErr(err)
		}
		if tok.Kind == eng.KindEndArray {
			return arr, nil
		}
		v, err := decodeValue(src, tok)
		if err != nil {
			return nil, err
		}
		arr.Items = append(arr.Items, v)
	}
}

// ---- YAML documents ----

// DecodeYAML parses a YAML schema document into a Node tree. yaml.Node keeps
// mapping order, so member order survives the same way it does for JSON.
func DecodeYAML(b []byte) (*Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(b, &root); err != nil {
		return nil, Issues{Issue{Path: "/", Code: CodeParseError, Message: "malformed document", Cause: err}}
	}
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return NewNull(), nil
		}
		return fromYAML(root.Content[0])
	}
	return fromYAML(&root)
}

func fromYAML(y *yaml.Node) (*Node, error) {
	switch y.Kind {
	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(y.Content); i += 2 {
			k := y.Content[i]
			if obj.Has(k.Value) {
				return nil, Issues{Issue{Path: "/" + k.Value, Code: CodeDuplicateKey, Message: "duplicate key", Hint: k.Value}}
			}
			v, err := fromYAML(y.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(k.Value, v)
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := NewArray()
		for _, c := range y.Content {
			v, err := fromYAML(c)
			if err != nil {
				return nil, err
			}
			arr.Items = append(arr.Items, v)
		}
		return arr, nil
	case yaml.AliasNode:
		return fromYAML(y.Alias)
	case yaml.ScalarNode:
		switch y.Tag {
		case "!!null":
			return NewNull(), nil
		case "!!bool":
			return NewBool(y.Value == "true"), nil
		case "!!int", "!!float":
			return NewNumber(y.Value), nil
		default:
			return NewString(y.Value), nil
		}
	default:
		return nil, SingleIssue(CodeParseError, "unsupported YAML node")
	}
}
