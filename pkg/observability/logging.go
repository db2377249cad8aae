package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/decompose/pkg/domain"
)

// LogHooks mirrors engine events into logger at Debug level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLayerEnter: func(ctx context.Context, e *domain.LayerEvent) {
			logger.DebugContext(ctx, "layer_enter",
				"task_id", e.TaskID, "depth", e.Depth, "agent", e.Agent, "question", e.Question)
		},
		OnOracleCall: func(ctx context.Context, e *domain.OracleEvent) {
			attrs := []any{"task_id", e.TaskID, "depth", e.Depth, "stage", e.Stage,
				"purpose", e.Purpose, "duration", e.Duration}
			if e.Err != nil {
				attrs = append(attrs, "error", e.Err)
			}
			logger.DebugContext(ctx, "oracle_call", attrs...)
		},
		OnKnowledgeDecision: func(ctx context.Context, e *domain.DecisionEvent) {
			logger.DebugContext(ctx, "knowledge_decision",
				"task_id", e.TaskID, "depth", e.Depth, "agent", e.Agent,
				"known", e.Known, "fallback", e.Fallback, "unit", e.Unit)
		},
		OnWorldUpdate: func(ctx context.Context, e *domain.WorldEvent) {
			logger.DebugContext(ctx, "world_update",
				"task_id", e.TaskID, "depth", e.Depth, "outcome", e.Outcome, "model", e.Model)
		},
		OnAnswer: func(ctx context.Context, e *domain.AnswerEvent) {
			logger.DebugContext(ctx, "answer",
				"task_id", e.TaskID, "agent", e.Agent, "label", e.Label)
		},
	}
}
