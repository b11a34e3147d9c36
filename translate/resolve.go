package translate

import (
	"strconv"
	"strings"

	schematype "github.com/reoring/schematype"
	"github.com/reoring/schematype/i18n"
)

// refStack tracks the chain of $ref targets currently being resolved within
// one top-level translation. A ref already on the stack marks a cycle.
type refStack struct {
	refs []string
}

func (s *refStack) contains(ref string) bool {
	for _, r := range s.refs {
		if r == ref {
			return true
		}
	}
	return false
}

func (s *refStack) push(ref string) { s.refs = append(s.refs, ref) }

func (s *refStack) pop() {
	if n := len(s.refs); n > 0 {
		s.refs = s.refs[:n-1]
	}
}

// Resolve returns the subtree the local reference points at. Only fragment
// references ("#", "#/a/b") resolve against root; anything else is handed to
// the external resolver when one is configured.
func Resolve(root *schematype.Node, ref string) (*schematype.Node, error) {
	return resolveRef(root, ref, nil)
}

func resolveRef(root *schematype.Node, ref string, extern ExternFunc) (*schematype.Node, error) {
	if !strings.HasPrefix(ref, "#") {
		if extern != nil {
			return extern(ref)
		}
		return nil, schematype.Issues{schematype.Issue{
			Path:    "/",
			Code:    schematype.CodeResolution,
			Message: i18n.T(schematype.CodeResolution, nil),
			Hint:    "external reference unsupported: " + ref,
			Params:  map[string]any{"ref": ref},
		}}
	}
	cur := root
	frag := strings.TrimPrefix(ref, "#")
	frag = strings.TrimPrefix(frag, "/")
	if frag == "" {
		return cur, nil
	}
	for _, seg := range strings.Split(frag, "/") {
		seg = unescapePointer(seg)
		switch cur.Kind {
		case schematype.KindObject:
			next, ok := cur.Prop(seg)
			if !ok {
				return nil, badRef(ref, seg)
			}
			cur = next
		case schematype.KindArray:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(cur.Items) {
				return nil, badRef(ref, seg)
			}
			cur = cur.Items[idx]
		default:
			return nil, badRef(ref, seg)
		}
	}
	return cur, nil
}

// unescapePointer applies JSON Pointer unescaping: ~1 -> "/" then ~0 -> "~".
func unescapePointer(seg string) string {
	seg = strings.ReplaceAll(seg, "~1", "/")
	return strings.ReplaceAll(seg, "~0", "~")
}

func badRef(ref, seg string) error {
	return schematype.Issues{schematype.Issue{
		Path:    "/",
		Code:    schematype.CodeResolution,
		Message: i18n.T(schematype.CodeResolution, nil),
		Hint:    ref,
		Params:  map[string]any{"ref": ref, "segment": seg},
	}}
}
