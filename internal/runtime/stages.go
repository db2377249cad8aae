package runtime

import (
	"context"
	"strings"

	"github.com/aretw0/decompose/pkg/answer"
	"github.com/aretw0/decompose/pkg/domain"
	"github.com/aretw0/decompose/pkg/mode"
)

var narratorPronouns = map[string]bool{"you": true, "i": true, "we": true}

// identify asks which agent's belief the question is about.
func (r *taskRun) identify(ctx context.Context, st *domain.TaskState) (domain.Agent, error) {
	resp, err := r.ask(ctx, st, mode.KeyAgent, mode.PromptData{Question: st.Question})
	if err != nil {
		return "", err
	}

	name := strings.TrimSpace(resp)
	if len(strings.Split(name, " ")) > 1 {
		if name, err = r.ask(ctx, st, mode.KeyMultiwordAgent, mode.PromptData{Response: name}); err != nil {
			return "", err
		}
	}

	name = answer.Clean(name)
	if name == "" || narratorPronouns[name] {
		return domain.Narrator, nil
	}
	return domain.Agent(name), nil
}

// simplify removes the agent's perspective from the question.
func (r *taskRun) simplify(ctx context.Context, st *domain.TaskState, agent domain.Agent) (string, error) {
	resp, err := r.ask(ctx, st, mode.KeySimplify, mode.PromptData{Agent: string(agent), Question: st.Question})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp), nil
}

// filter keeps the units the agent could know about, walking the story in
// order while the world model evolves.
func (r *taskRun) filter(ctx context.Context, st *domain.TaskState, agent domain.Agent) (string, domain.Layer, error) {
	m := r.engine.mode
	units := m.Split(st.Story)

	model, err := r.setupWorld(ctx, st)
	if err != nil {
		return "", domain.Layer{}, err
	}

	var (
		prefix []string
		kept   []string
	)
	for _, unit := range units {
		known, err := r.decide(ctx, st, agent, mode.PromptData{
			Disambiguation: r.disamb,
			Story:          strings.Join(prefix, m.Separator()),
			Unit:           unit,
			Agent:          string(agent),
			World:          model.String(),
			Note:           r.task.Note,
		})
		if err != nil {
			return "", domain.Layer{}, err
		}

		if model, err = r.updateWorld(ctx, st, model, unit); err != nil {
			return "", domain.Layer{}, err
		}

		prefix = append(prefix, unit)
		if known {
			kept = append(kept, unit)
		}
	}

	filtered := m.Join(kept)
	r.logger.Debug("Story filtered",
		"depth", st.Depth,
		"agent", agent,
		"units", len(units),
		"known", len(kept))

	return filtered, domain.Layer{
		Depth:          st.Depth,
		Agent:          agent,
		Question:       st.Question,
		UnitsTotal:     len(units),
		UnitsKnown:     len(kept),
		FilteredStory:  filtered,
		WorldModelText: model.String(),
	}, nil
}

// decide runs the yes/no escalation for one unit: a literal "Answer: <word>"
// token, then a compress prompt, then a forced-choice prompt, then yes.
func (r *taskRun) decide(ctx context.Context, st *domain.TaskState, agent domain.Agent, data mode.PromptData) (bool, error) {
	reasoning, err := r.ask(ctx, st, mode.KeyKnowledge, data)
	if err != nil {
		return false, err
	}

	fallback := "token"
	decision, ok := answer.DecisionToken(reasoning)
	if !ok {
		fallback = "compress"
		resp, err := r.ask(ctx, st, mode.KeyCompressDecision, mode.PromptData{Response: reasoning})
		if err != nil {
			return false, err
		}
		decision = answer.Clean(resp)
	}

	known, ok := answer.YesNo(decision)
	if !ok {
		fallback = "forced"
		resp, err := r.ask(ctx, st, mode.KeyForcedDecision, mode.PromptData{Response: reasoning})
		if err != nil {
			return false, err
		}
		if known, ok = answer.YesNo(resp); !ok {
			fallback = "default"
			known = true
			r.logger.Debug("Ambiguous knowledge decision, defaulting to yes",
				"depth", st.Depth, "agent", agent, "unit", data.Unit)
		}
	}

	r.emitDecision(ctx, st, agent, data.Unit, known, fallback)
	return known, nil
}

// extract produces the final label from the perspective of the last agent.
func (r *taskRun) extract(ctx context.Context, st *domain.TaskState, truncated bool) (domain.Result, error) {
	st.Stage = domain.StageExtract

	reasoning, err := r.ask(ctx, st, mode.KeyAnswer, mode.PromptData{
		Disambiguation: r.disamb,
		Story:          st.Story,
		Agent:          string(st.LastAgent),
		AnswerContext:  st.AnswerContext,
		Note:           r.task.Note,
		Question:       st.Question,
		Choices:        r.task.Choices,
	})
	if err != nil {
		return domain.Result{Layers: st.Layers}, err
	}

	selection, err := r.ask(ctx, st, mode.KeyExtract, mode.PromptData{Response: reasoning})
	if err != nil {
		return domain.Result{Layers: st.Layers}, err
	}

	res := domain.Result{
		Label:     answer.Label(selection),
		Reasoning: reasoning,
		Agent:     st.LastAgent,
		Layers:    st.Layers,
		Truncated: truncated,
	}
	r.emitAnswer(ctx, st, res.Label)
	return res, nil
}
