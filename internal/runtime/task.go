package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/decompose/pkg/domain"
	"github.com/aretw0/decompose/pkg/mode"
)

// taskRun carries what one StartTask call owns: the call counter, the
// task-scoped logger and the disambiguation text of the input story.
// Nothing here is shared between tasks.
type taskRun struct {
	engine *Engine
	task   domain.Task
	logger *slog.Logger
	calls  int

	// disamb comes from the task's input story and is shared by every level.
	disamb string
}

// execute drives the Identify -> Simplify -> Filter -> (Recurse | Extract)
// loop. Every iteration peels exactly one belief layer.
func (r *taskRun) execute(ctx context.Context) (domain.Result, error) {
	st := domain.NewTaskState(r.task)

	disambText, err := r.engine.disambiguationText(ctx, r.task.Story)
	if err != nil {
		return domain.Result{}, &StageError{Stage: st.Stage, Depth: st.Depth, Err: err}
	}
	r.disamb = disambText

	// The outermost agent is also the perspective a narrator-level question
	// is answered from.
	agent, err := r.identify(ctx, st)
	if err != nil {
		return domain.Result{}, err
	}
	st.LastAgent = agent

	for {
		if st.Depth > 0 {
			st.Stage = domain.StageIdentify
			if agent, err = r.identify(ctx, st); err != nil {
				return domain.Result{Layers: st.Layers}, err
			}
		}
		r.emitLayerEnter(ctx, st, agent)

		if agent.IsNarrator() {
			return r.extract(ctx, st, false)
		}

		st.Stage = domain.StageSimplify
		simplified, err := r.simplify(ctx, st, agent)
		if err != nil {
			return domain.Result{Layers: st.Layers}, err
		}

		st.Stage = domain.StageFilter
		filtered, layer, err := r.filter(ctx, st, agent)
		if err != nil {
			return domain.Result{Layers: st.Layers}, err
		}
		layer.Simplified = simplified

		st.Stage = domain.StageRecurse
		if st.BudgetExhausted() {
			r.logger.Debug("Recursion budget exhausted", "depth", st.Depth, "agent", agent)
			st.Layers = append(st.Layers, layer)
			return r.extract(ctx, st, true)
		}

		answerContext := st.AnswerContext
		if r.engine.mode.TracksBeliefs() {
			answerContext += string(agent) + " believes: "
		}
		st = st.Descend(filtered, simplified, agent, answerContext, layer)
	}
}

// ask renders a template, calls the oracle and reports the call.
func (r *taskRun) ask(ctx context.Context, st *domain.TaskState, key mode.Key, data mode.PromptData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &StageError{Stage: st.Stage, Depth: st.Depth, Err: err}
	}

	prompt, err := r.engine.mode.Render(key, data)
	if err != nil {
		return "", &StageError{Stage: st.Stage, Depth: st.Depth, Err: err}
	}

	start := time.Now()
	resp, err := r.engine.oracle.Respond(ctx, prompt)
	r.calls++
	r.emitOracleCall(ctx, st, key, time.Since(start), err)
	if err != nil {
		return "", &StageError{Stage: st.Stage, Depth: st.Depth, Err: err}
	}
	return resp, nil
}
