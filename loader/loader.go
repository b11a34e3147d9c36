// Package loader reads schema documents from files or in-process variable
// references and hands them to the translation core together with their
// identity and staleness marker. All file I/O of the module lives here.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	schematype "github.com/reoring/schematype"
	"github.com/reoring/schematype/translate"
)

// Document is one loaded schema: the parsed tree, its identity, and the
// modification marker the translation cache compares for staleness.
type Document struct {
	Node     *schematype.Node
	Identity schematype.Identity
	Marker   string
}

// VarScheme prefixes in-process variable references: "var:module:name".
const VarScheme = "var:"

// LoadFile reads and parses a schema file. The extension picks the decoder:
// .yaml/.yml go through the YAML path, everything else is JSON.
func LoadFile(path string) (Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Document{}, fmt.Errorf("resolve path: %w", err)
	}
	b, err := os.ReadFile(abs)
	if err != nil {
		return Document{}, schematype.Issues{schematype.Issue{
			Path: "/", Code: schematype.CodeParseError, Message: "cannot read schema file", Hint: abs, Cause: err,
		}}
	}
	var node *schematype.Node
	switch strings.ToLower(filepath.Ext(abs)) {
	case ".yaml", ".yml":
		node, err = schematype.DecodeYAML(b)
	default:
		node, err = schematype.DecodeJSON(b)
	}
	if err != nil {
		return Document{}, err
	}
	id := schematype.FileIdentity(abs)
	return Document{Node: node, Identity: id, Marker: FileMarker(id)}, nil
}

// FileMarker renders the file's mtime as the staleness marker. Missing files
// yield an empty marker, which never matches a cached entry.
func FileMarker(id schematype.Identity) string {
	if id.Kind != schematype.SourceFile {
		return ""
	}
	st, err := os.Stat(id.Source)
	if err != nil {
		return ""
	}
	return strconv.FormatInt(st.ModTime().UnixNano(), 10)
}

// Registry holds schema documents referenced by in-process variables, the
// "var:module:name" form of schema identity.
type Registry struct {
	mu   sync.RWMutex
	vars map[string][]byte
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return &Registry{vars: map[string][]byte{}} }

// Register stores raw JSON schema bytes under module:name. Re-registering
// replaces the previous bytes.
func (r *Registry) Register(module, name string, schema []byte) {
	r.mu.Lock()
	r.vars[module+":"+name] = schema
	r.mu.Unlock()
}

// LoadVar parses the registered schema for module:name.
func (r *Registry) LoadVar(module, name string) (Document, error) {
	r.mu.RLock()
	b, ok := r.vars[module+":"+name]
	r.mu.RUnlock()
	if !ok {
		return Document{}, schematype.Issues{schematype.Issue{
			Path: "/", Code: schematype.CodeResolution, Message: "unregistered schema variable", Hint: module + ":" + name,
		}}
	}
	node, err := schematype.DecodeJSON(b)
	if err != nil {
		return Document{}, err
	}
	return Document{Node: node, Identity: schematype.VarIdentity(module, name)}, nil
}

// Load dispatches on the reference form: "var:module:name" hits the registry,
// anything else is a file path.
func (r *Registry) Load(ref string) (Document, error) {
	if strings.HasPrefix(ref, VarScheme) {
		rest := strings.TrimPrefix(ref, VarScheme)
		module, name, ok := strings.Cut(rest, ":")
		if !ok {
			return Document{}, schematype.Issues{schematype.Issue{
				Path: "/", Code: schematype.CodeResolution, Message: "malformed variable reference", Hint: ref,
			}}
		}
		return r.LoadVar(module, name)
	}
	return LoadFile(ref)
}

// Extern returns a resolver for external $refs of the form
// "other.schema.json#/definitions/x", loading the target document relative to
// baseDir and descending into its fragment.
func (r *Registry) Extern(baseDir string) translate.ExternFunc {
	return func(ref string) (*schematype.Node, error) {
		target, frag, _ := strings.Cut(ref, "#")
		if target == "" {
			return nil, schematype.Issues{schematype.Issue{
				Path: "/", Code: schematype.CodeResolution, Message: "empty external reference", Hint: ref,
			}}
		}
		if !strings.HasPrefix(target, VarScheme) && !filepath.IsAbs(target) {
			target = filepath.Join(baseDir, target)
		}
		doc, err := r.Load(target)
		if err != nil {
			return nil, err
		}
		if frag == "" {
			return doc.Node, nil
		}
		return translate.Resolve(doc.Node, "#"+frag)
	}
}
