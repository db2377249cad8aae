package domain

// Stage names a state of the decomposition machine.
type Stage string

const (
	StageIdentify Stage = "identify"
	StageSimplify Stage = "simplify"
	StageFilter   Stage = "filter"
	StageRecurse  Stage = "recurse"
	StageExtract  Stage = "extract"
)

// TaskState is the snapshot of one recursion level.
type TaskState struct {
	// Stage is the state the machine is currently in.
	Stage Stage

	// Story is the narrative visible at this level.
	Story string

	// Question is the belief question at this level.
	Question string

	// LastAgent is the agent whose filtered story this level sees.
	// Empty at the top level.
	LastAgent Agent

	// AnswerContext accumulates "X believes: " attributions (FANToM only).
	AnswerContext string

	// Remaining is the recursion budget left. Nil means unbounded.
	Remaining *int

	// Depth counts the layers peeled so far.
	Depth int

	// Layers is the trace of peeled layers.
	Layers []Layer
}

// Layer records one Identify -> Simplify -> Filter pass.
type Layer struct {
	Depth          int    `json:"depth"`
	Agent          Agent  `json:"agent"`
	Question       string `json:"question"`
	Simplified     string `json:"simplified"`
	UnitsTotal     int    `json:"units_total"`
	UnitsKnown     int    `json:"units_known"`
	FilteredStory  string `json:"filtered_story"`
	WorldModelText string `json:"world_model"`
}

// NewTaskState creates the top-level state for a task.
func NewTaskState(task Task) *TaskState {
	st := &TaskState{
		Stage:    StageIdentify,
		Story:    task.Story,
		Question: task.Question,
	}
	if task.MaxRecursion > 0 {
		budget := task.MaxRecursion
		st.Remaining = &budget
	}
	return st
}

// Descend returns the state for the next recursion level.
func (s *TaskState) Descend(story, question string, agent Agent, answerContext string, layer Layer) *TaskState {
	next := &TaskState{
		Stage:         StageIdentify,
		Story:         story,
		Question:      question,
		LastAgent:     agent,
		AnswerContext: answerContext,
		Depth:         s.Depth + 1,
		Layers:        append(append([]Layer(nil), s.Layers...), layer),
	}
	if s.Remaining != nil {
		left := *s.Remaining - 1
		next.Remaining = &left
	}
	return next
}

// BudgetExhausted reports whether a recursion budget is set and spent.
func (s *TaskState) BudgetExhausted() bool {
	return s.Remaining != nil && *s.Remaining <= 0
}
