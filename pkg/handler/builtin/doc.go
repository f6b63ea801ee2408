// Package builtin provides the handlers registered by default.
//
// Structural handlers (priority 0) cover identity, placement, UI flags,
// parameter identity and modifiers, internalized data and runtime messages.
// Extension handlers (priority 100) each own one entry of the record's
// extension map, keyed by the object type ("gh.numberslider", "gh.panel",
// "gh.booleantoggle", "gh.colourswatch", "gh.script").
//
// Register installs all of them and matches the handler.WithInitializer
// signature:
//
//	reg := handler.NewRegistry(handler.WithInitializer(builtin.Register))
package builtin
