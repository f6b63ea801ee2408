/*
Package ports defines the driven ports (interfaces) canvasdoc talks to.

These interfaces decouple document handling from storage backends, so the CLI
and library callers can swap an in-memory store for files or Redis without
touching the orchestrator.

# Key Interfaces

  - DocumentStore: persists and loads serialized canvas documents by id.
  - DistributedLocker: serializes writers to one document id across processes.

A reusable contract suite for DocumentStore implementations lives in the
tests subpackage.
*/
package ports
