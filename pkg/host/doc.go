/*
Package host defines the narrow view of a live canvas that handlers work with.

Handlers never see concrete host classes. Each live node is an Object tagged
with a Kind discriminant, and its ports are Params. Anything the host does not
expose through these interfaces is reached by name through a PropertyBridge,
which is the only place allowed to fail soft and fall back across several
candidate names (see GetFirst).

# Key Interfaces

  - Object: one live node (component or floating parameter).
  - Param: one input or output port.
  - PropertyBridge: get/set of host properties by name.
  - Canvas and Factory: where objects live and how they are created.

The memhost subpackage provides an in-memory implementation used by tests and
the command line tool.
*/
package host
