/*
Package domain contains the core types of the belief-decomposition engine.

It defines the entities the recursive engine works with: agents, narrative
units, answer choices, the per-task execution state and the lifecycle
events emitted while a task runs. This package is kept pure and free of
external dependencies like I/O or persistence.

# Key Entities

  - Agent: a participant whose beliefs are modeled, or Narrator for ground truth.
  - Task: one story + question pair handed to the engine.
  - TaskState: the runtime snapshot of a task (stage, story, question, budget).
  - Layer: the trace of one peeled belief layer.
  - LifecycleHooks: observability callbacks for stages and oracle calls.
*/
package domain
