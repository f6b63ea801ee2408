/*
Package handler defines the extension point for record serialization.

A Handler owns one slice of a node's state: identity, placement, parameter
modifiers, or a kind-specific extension entry such as a slider's value. On
serialize it returns a fresh patch record holding only the fields it owns; the
runtime merges those patches in priority order and rejects disagreements. On
deserialize it applies its slice of a record back onto a live object.

Handlers run in ascending priority. Two bands are used by the built-ins:

  - PriorityStructural (0): identity, placement, flags, parameters.
  - PriorityExtension (100): per-kind extension entries, which may rely on the
    structural fields already being present.

Handlers whose state is reset by the host when an object is inserted also
implement PostPlacer; PostPlace runs after insertion, in the same order.

A Registry holds the handlers. It is safe for concurrent use and can populate
itself lazily through WithInitializer:

	reg := handler.NewRegistry(handler.WithInitializer(builtin.Register))
	reg.EnsureInitialized()
*/
package handler
