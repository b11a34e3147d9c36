package schematype

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeParseError    = "parse_error"      // malformed schema document
	CodeResolution    = "resolution_error" // $ref pointing nowhere
	CodePath          = "path_error"       // key path segment that does not resolve
	CodeUnsupported   = "unsupported"      // construct the target type system cannot express
	CodeSelfReference = "self_reference"   // $ref cycle detected during resolution
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeDuplicateKey  = "duplicate_key"
)

// Issue represents a single diagnostic entry.
type Issue struct {
	Path    string // JSON Pointer into the schema document (for example: /properties/user).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, the offending $ref, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"ref":"#/defs/x", "segment":"b"})
	// for i18n and host-side diagnostics.
	Params map[string]any
}

// Issues is a collection of diagnostics that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. resolution_error at /properties/user
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// SingleIssue builds an Issues error carrying one entry at the document root.
func SingleIssue(code, msg string) Issues {
	return Issues{Issue{Path: "/", Code: code, Message: msg}}
}
