/*
Package decompose answers nested theory-of-mind questions by peeling one
belief layer at a time.

A question such as "Where does Alice think Bob thinks the apple is?" is
reduced to "Where does Bob think the apple is?" over the part of the story
Alice could know, then to "Where is the apple?" over the part Bob could know
within that, and answered directly once no agent is left.

# Concept

Every semantic judgment (who the question is about, whether an agent knows a
sentence, how the world changed) is delegated to an injected text oracle.
The engine owns the control flow: the recursion, the per-task depth budget,
the world model that tracks where agents are, and the parsing that turns
free-form replies into decisions.

# Key Features

  - Closed mode set: HiToM stories, FANToM conversations, or a generic
    delimiter-split narrative with caller-supplied rules.
  - Fail-soft parsing: ambiguous yes/no replies escalate and default to yes;
    malformed world updates keep the previous model.
  - Observability: lifecycle hooks for layers, oracle calls, decisions and
    world updates.

# Usage

	oracle := openai.New(openai.Config{APIKey: key, Model: "gpt-4o"})
	eng, err := decompose.New(oracle, mode.Hitom())
	if err != nil {
		log.Fatal(err)
	}

	res, err := eng.StartTask(ctx, domain.Task{
		Story:    story,
		Question: "Where does Alice think Bob thinks the apple is?",
		Choices:  "A. green_box, B. red_crate",
	})
	fmt.Println(res.Label)
*/
package decompose
