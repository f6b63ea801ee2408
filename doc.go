/*
Package canvasdoc converts live visual-programming canvases into versioned
documents and back.

A canvas is a set of typed nodes with input and output parameters, wires
between them and per-node UI state. canvasdoc walks each node through a
registry of priority-ordered handlers; every handler owns one slice of the
node's state (identity, placement, parameter modifiers, internalized data,
slider values, script source, ...) and returns a patch. Patches are merged
first-wins, and two handlers that disagree about a field stop the record
with a *HandlerConflictError instead of silently overwriting each other.

Scalar and geometric values inside documents use a compact
"prefix:payload" encoding, for example "pointXYZ:1,2,3" or
"argb:255,0,128,64". See package pkg/values.

# Usage

	conv := canvasdoc.New(canvasdoc.WithGenerator("studio", "2.1.0"))

	doc, err := conv.SerializeCanvas(canvas)
	if err != nil {
		// Per-node failures; doc still holds every node that succeeded.
		log.Print(err)
	}

	restored := memhost.NewCanvas()
	report, err := conv.DeserializeDocument(doc, restored)

Documents can be written as JSON or YAML with pkg/document, and persisted
through any ports.DocumentStore (memory, file, redis), optionally wrapped in
the encryption, redaction and locking middleware. OpenStore assembles the
store described by a config.Config.
*/
package canvasdoc
