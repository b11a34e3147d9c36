// Package schematype translates JSON Schema documents into static structural
// type descriptions (record types with required/optional fields, unions,
// literals) for consumption by a type checker's plugin layer.
//
// - Node: the parsed, order-preserving schema document tree
// - typeexpr: the host-independent Type Expression output (Primitive/Literal/Union/Array/Record/Unresolved)
// - translate: the core walker ($ref resolution, cycle handling, record synthesis, key-path navigation, caching)
// - loader: file and variable-reference loading with staleness markers
// - dynamic: optional runtime checking of values against a translated expression
//
// Design policy:
// - Keep only public types in the root package; put detailed implementations under internal/.
// - Place the translator under translate/, the output tree under typeexpr/, and the CLI under cmd/schematype.
// - The translation core performs no I/O; loading is isolated in loader/.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	doc, err := loader.LoadFile("order.schema.json")
//	expr, err := translate.Translate(doc.Node, translate.WithIdentity(doc.Identity))
//	fmt.Println(typeexpr.Sprint(expr))
//
// Anything the target type system cannot express degrades to an Unresolved
// placeholder rather than failing; only malformed documents produce errors.
package schematype
