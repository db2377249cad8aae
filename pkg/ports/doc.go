/*
Package ports defines the driven ports (interfaces) of the decomposition engine.

These interfaces decouple the core logic from external implementations, allowing
the engine to work with any text-generation provider and any cache backend.

# Key Interfaces

  - Oracle: the text-generation capability backing every semantic judgment.
  - DisambiguationCache: memoizes the per-story disambiguation pre-pass.
  - DistributedLocker: cross-process locking for shared result logs.
  - TaskRunner: the call surface adapters (HTTP, MCP) need from the engine.
*/
package ports
