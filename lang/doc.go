// Package lang implements the front end of the equipment description
// translator: tokenizing source text, parsing it into a syntax tree, and
// resolving the tree into a model with every name bound and every
// substitution applied.
//
// The pipeline is three calls:
//
//	toks, err := lang.Scan(src)
//	mod, err := lang.ParseString(ctx, src)
//	model, err := lang.Resolve(ctx, mod)
//
// Failures carry a stable kind, the source position, and structured
// attributes; match them with errors.Is against the exported sentinels.
package lang
