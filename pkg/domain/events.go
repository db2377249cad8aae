package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventLayerEnter        EventType = "layer_enter"
	EventOracleCall        EventType = "oracle_call"
	EventKnowledgeDecision EventType = "knowledge_decision"
	EventWorldUpdate       EventType = "world_update"
	EventAnswer            EventType = "answer"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	TaskID    string    `json:"task_id"`
	Depth     int       `json:"depth"`
}

// LayerEvent is emitted when the engine identifies the agent of a level.
type LayerEvent struct {
	EventBase
	Agent    Agent  `json:"agent"`
	Question string `json:"question"`
}

// OracleEvent is emitted after each oracle call.
type OracleEvent struct {
	EventBase
	Stage    Stage         `json:"stage"`
	Purpose  string        `json:"purpose"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// DecisionEvent is emitted for every knowledge-gating decision.
type DecisionEvent struct {
	EventBase
	Agent Agent  `json:"agent"`
	Unit  string `json:"unit"`
	Known bool   `json:"known"`

	// Fallback names the escalation step that produced the decision:
	// "token", "compress", "forced" or "default".
	Fallback string `json:"fallback"`
}

// WorldEvent is emitted when a world-model update is attempted.
type WorldEvent struct {
	EventBase
	Unit string `json:"unit"`

	// Outcome is "skipped", "applied" or "rejected".
	Outcome string `json:"outcome"`
	Model   string `json:"model"`
}

// AnswerEvent is emitted when a task produces its label.
type AnswerEvent struct {
	EventBase
	Agent Agent  `json:"agent"`
	Label string `json:"label"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnLayerEnter        func(context.Context, *LayerEvent)
	OnOracleCall        func(context.Context, *OracleEvent)
	OnKnowledgeDecision func(context.Context, *DecisionEvent)
	OnWorldUpdate       func(context.Context, *WorldEvent)
	OnAnswer            func(context.Context, *AnswerEvent)
}

// MergeHooks chains several hook sets; nil callbacks are skipped.
func MergeHooks(sets ...LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnLayerEnter: func(ctx context.Context, e *LayerEvent) {
			for _, s := range sets {
				if s.OnLayerEnter != nil {
					s.OnLayerEnter(ctx, e)
				}
			}
		},
		OnOracleCall: func(ctx context.Context, e *OracleEvent) {
			for _, s := range sets {
				if s.OnOracleCall != nil {
					s.OnOracleCall(ctx, e)
				}
			}
		},
		OnKnowledgeDecision: func(ctx context.Context, e *DecisionEvent) {
			for _, s := range sets {
				if s.OnKnowledgeDecision != nil {
					s.OnKnowledgeDecision(ctx, e)
				}
			}
		},
		OnWorldUpdate: func(ctx context.Context, e *WorldEvent) {
			for _, s := range sets {
				if s.OnWorldUpdate != nil {
					s.OnWorldUpdate(ctx, e)
				}
			}
		},
		OnAnswer: func(ctx context.Context, e *AnswerEvent) {
			for _, s := range sets {
				if s.OnAnswer != nil {
					s.OnAnswer(ctx, e)
				}
			}
		},
	}
}
