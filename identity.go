package schematype

// SourceKind distinguishes where a schema document came from.
type SourceKind int

const (
	SourceFile     SourceKind = iota // a schema file on disk
	SourceVariable                   // an in-process variable reference ("module:name")
)

func (k SourceKind) String() string {
	switch k {
	case SourceFile:
		return "file"
	case SourceVariable:
		return "var"
	default:
		return "unknown"
	}
}

// Identity uniquely names a loaded schema document. Two translations with the
// same Identity and key path must yield structurally identical expressions for
// the process lifetime; the translation cache partitions on Identity.Key().
type Identity struct {
	Kind   SourceKind
	Source string // absolute file path, or "module:name" for variable refs
	Module string // declaring module for variable refs; empty for files
}

// FileIdentity names a schema loaded from disk.
func FileIdentity(path string) Identity {
	return Identity{Kind: SourceFile, Source: path}
}

// VarIdentity names a schema held by an in-process variable.
func VarIdentity(module, name string) Identity {
	return Identity{Kind: SourceVariable, Source: module + ":" + name, Module: module}
}

// Key renders the identity as a stable cache partition key.
func (id Identity) Key() string {
	return id.Kind.String() + "://" + id.Source
}

// IsZero reports whether the identity is unset.
func (id Identity) IsZero() bool { return id.Source == "" }
