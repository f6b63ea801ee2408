// Package values implements the compact typed-value codec used for leaf data.
//
// Every value is written as "<prefix>:<payload>", where the prefix names the
// kind and the payload uses a small per-kind grammar: semicolons separate
// compound sub-fields, commas separate numeric tuples, "<" separates interval
// bounds and "x" separates width/height pairs.
//
// Basic usage:
//
//	codec := values.Default()
//
//	s, err := codec.Encode(values.Point3{X: 1, Y: 2, Z: 3})
//	// s == "pointXYZ:1,2,3"
//
//	v, err := codec.Decode("argb:64,255,0,128")
//	c, ok := values.As[values.Color](v)
//
// Decoding fails closed: a malformed, wrong-arity or out-of-range payload is
// reported as a *ParseError and is never clamped. Validate agrees with Decode
// for every input.
//
// Custom kinds can be added by building a new registry:
//
//	percent := values.Define("percent", "pct", formatPercent, parsePercent)
//	codec, err := values.NewRegistry(append(values.Builtins(), percent)...)
//
// Registries are immutable after construction and safe for concurrent use.
package values
