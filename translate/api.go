// Package translate is the schema-to-type translation core: it walks a parsed
// schema document and produces a typeexpr tree, resolving local $refs with
// cycle detection, synthesizing records for object schemas, navigating key
// paths to nested subschemas, and memoizing results per (identity, key path).
//
// The package performs no I/O. Callers hand it a decoded document (see the
// root package and loader) and render the resulting expression themselves.
package translate

import (
	schematype "github.com/reoring/schematype"
	"github.com/reoring/schematype/typeexpr"
)

// ExternFunc loads the target of a non-local $ref. It is supplied by the
// loader collaborator; when absent, external references fail with a
// resolution_error.
type ExternFunc func(ref string) (*schematype.Node, error)

// Options bundles translation configuration.
type Options struct {
	// Identity partitions the cache. Required when Cache is set.
	Identity schematype.Identity
	// KeyPath selects a nested subschema before translation. Empty means the
	// document root. The reserved segment "#" names an array element.
	KeyPath []string
	// Cache memoizes the translation when non-nil.
	Cache *Cache
	// Bypass skips the cache for this call, for hosts whose own caching layer
	// serves stale results after schema file changes.
	Bypass bool
	// Extern resolves external references.
	Extern ExternFunc
}

// Option mutates Options.
type Option func(*Options)

// WithIdentity sets the schema identity used as the cache partition key.
func WithIdentity(id schematype.Identity) Option {
	return func(o *Options) { o.Identity = id }
}

// WithKeyPath selects a nested subschema by key path.
func WithKeyPath(path ...string) Option {
	return func(o *Options) { o.KeyPath = path }
}

// WithCache memoizes translations in the given cache.
func WithCache(c *Cache) Option {
	return func(o *Options) { o.Cache = c }
}

// WithBypass disables cache lookups for this call.
func WithBypass(bypass bool) Option {
	return func(o *Options) { o.Bypass = bypass }
}

// WithExtern installs a resolver for external references.
func WithExtern(fn ExternFunc) Option {
	return func(o *Options) { o.Extern = fn }
}

// Translate converts the schema document (or the subschema its key path names)
// into a type expression. Inexpressible constructs degrade to Unresolved;
// only malformed references and key paths return errors.
func Translate(root *schematype.Node, opts ...Option) (typeexpr.Expr, error) {
	var o Options
	for _, fn := range opts {
		fn(&o)
	}

	compute := func() (typeexpr.Expr, error) {
		node, err := Navigate(root, o.KeyPath)
		if err != nil {
			return nil, err
		}
		sess := newSession(root, baseName(root, o.KeyPath), o.Extern)
		return sess.translate(node)
	}

	if o.Cache != nil && !o.Bypass {
		return o.Cache.GetOrCompute(o.Identity, o.KeyPath, compute)
	}
	return compute()
}

// At is shorthand for Translate with a key path.
func At(root *schematype.Node, path []string, opts ...Option) (typeexpr.Expr, error) {
	return Translate(root, append(opts, WithKeyPath(path...))...)
}

// baseName derives the positional name base for untitled records: the
// sanitized document title plus the traversed key path segments.
func baseName(root *schematype.Node, path []string) string {
	base := sanitizeName(root.StringProp("title"))
	if base == "" {
		base = "Schema"
	}
	for _, seg := range path {
		if seg == ElementSegment {
			continue
		}
		base += sanitizeName(seg)
	}
	return base
}
