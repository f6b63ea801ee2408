// Package document defines the versioned canvas document and its records.
//
// A Document holds one Record per canvas node, the wiring between them and
// optional groups and metadata. It is encoded as JSON or YAML:
//
//	doc := document.New(document.WithGenerator("canvasdoc", "0.3.0"))
//	doc.Components = append(doc.Components, rec)
//	doc.Refresh()
//
//	err := document.Encode(os.Stdout, doc, document.FormatYAML)
//
// Validate checks structural invariants that a decoder alone cannot: unique
// instance ids, resolvable connection endpoints and decodable internalized
// data. All failures are reported at once through an *AggregateError.
package document
