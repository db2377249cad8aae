package runtime

import (
	"context"
	"time"

	"github.com/aretw0/decompose/pkg/domain"
	"github.com/aretw0/decompose/pkg/mode"
	"github.com/aretw0/decompose/pkg/world"
)

func (r *taskRun) base(st *domain.TaskState, typ domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Type:      typ,
		TaskID:    r.task.ID,
		Depth:     st.Depth,
	}
}

func (r *taskRun) emitLayerEnter(ctx context.Context, st *domain.TaskState, agent domain.Agent) {
	r.logger.Debug("Entering layer", "depth", st.Depth, "agent", agent, "question", st.Question)
	if h := r.engine.hooks.OnLayerEnter; h != nil {
		h(ctx, &domain.LayerEvent{
			EventBase: r.base(st, domain.EventLayerEnter),
			Agent:     agent,
			Question:  st.Question,
		})
	}
}

func (r *taskRun) emitOracleCall(ctx context.Context, st *domain.TaskState, key mode.Key, d time.Duration, err error) {
	if h := r.engine.hooks.OnOracleCall; h != nil {
		h(ctx, &domain.OracleEvent{
			EventBase: r.base(st, domain.EventOracleCall),
			Stage:     st.Stage,
			Purpose:   string(key),
			Duration:  d,
			Err:       err,
		})
	}
}

func (r *taskRun) emitDecision(ctx context.Context, st *domain.TaskState, agent domain.Agent, unit string, known bool, fallback string) {
	if h := r.engine.hooks.OnKnowledgeDecision; h != nil {
		h(ctx, &domain.DecisionEvent{
			EventBase: r.base(st, domain.EventKnowledgeDecision),
			Agent:     agent,
			Unit:      unit,
			Known:     known,
			Fallback:  fallback,
		})
	}
}

func (r *taskRun) emitWorldUpdate(ctx context.Context, st *domain.TaskState, unit, outcome string, model world.Model) {
	if h := r.engine.hooks.OnWorldUpdate; h != nil {
		h(ctx, &domain.WorldEvent{
			EventBase: r.base(st, domain.EventWorldUpdate),
			Unit:      unit,
			Outcome:   outcome,
			Model:     model.String(),
		})
	}
}

func (r *taskRun) emitAnswer(ctx context.Context, st *domain.TaskState, label string) {
	if h := r.engine.hooks.OnAnswer; h != nil {
		h(ctx, &domain.AnswerEvent{
			EventBase: r.base(st, domain.EventAnswer),
			Agent:     st.LastAgent,
			Label:     label,
		})
	}
}
