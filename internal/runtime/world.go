package runtime

import (
	"context"
	"strings"

	"github.com/aretw0/decompose/pkg/answer"
	"github.com/aretw0/decompose/pkg/domain"
	"github.com/aretw0/decompose/pkg/mode"
	"github.com/aretw0/decompose/pkg/world"
)

// setupWorld builds the initial model for the story at this level: who is
// in the conversation at the start, or which locations exist.
func (r *taskRun) setupWorld(ctx context.Context, st *domain.TaskState) (world.Model, error) {
	resp, err := r.ask(ctx, st, mode.KeyWorldSetup, mode.PromptData{Story: st.Story})
	if err != nil {
		return world.Model{}, err
	}

	names := splitList(resp)
	if r.engine.mode.Conversational() {
		return world.NewConversation(names), nil
	}
	return world.NewLocations(names), nil
}

// updateWorld applies one unit to the model. Only units the gate prompt does
// not reject trigger a rewrite; a rewrite that fails to parse keeps the
// previous model.
func (r *taskRun) updateWorld(ctx context.Context, st *domain.TaskState, model world.Model, unit string) (world.Model, error) {
	gate, err := r.ask(ctx, st, mode.KeyWorldGate, mode.PromptData{Unit: unit})
	if err != nil {
		return model, err
	}
	if answer.Clean(gate) == "no" {
		r.emitWorldUpdate(ctx, st, unit, "skipped", model)
		return model, nil
	}

	resp, err := r.ask(ctx, st, mode.KeyWorldUpdate, mode.PromptData{World: model.String(), Unit: unit})
	if err != nil {
		return model, err
	}

	next, err := world.Find(resp)
	if err == nil && r.engine.mode.Conversational() && !next.IsConversational() {
		err = world.ErrMalformed
	}
	if err != nil {
		r.logger.Warn("Rejected world model update",
			"depth", st.Depth,
			"unit", unit,
			"response", resp,
			"error", err)
		r.emitWorldUpdate(ctx, st, unit, "rejected", model)
		return model, nil
	}

	r.emitWorldUpdate(ctx, st, unit, "applied", next)
	return next, nil
}

// splitList reads a comma separated oracle reply.
func splitList(resp string) []string {
	resp = strings.Trim(strings.TrimSpace(resp), ".")
	var out []string
	for _, part := range strings.Split(resp, ",") {
		part = strings.Trim(strings.TrimSpace(part), ".")
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
