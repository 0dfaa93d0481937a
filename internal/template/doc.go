// Package template applies named-placeholder substitution to template
// units: single lines of text, decoded JSON documents, and path segment
// lists.
//
// Placeholders are written as {name}. Literal braces are written twice,
// {{ and }}, which keeps JSON text inside command files readable:
//
//	tellraw @a {{"text":"{entry.title}"}}
//
// Values come from an explicit Context passed by value into each call:
//
//	ctx := template.Context{Namespace: "discs_dp", Entry: &entry}
//	line, err := template.Line("function {namespace}:{entry.id}/play", ctx)
//
// An unknown placeholder is an UnresolvedError, malformed braces are a
// SyntaxError, and a value that is not valid UTF-8 is an EncodingError.
package template
