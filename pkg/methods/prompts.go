package methods

import "text/template"

type promptSet struct {
	baseline    *template.Template
	cot         *template.Template
	cotExtract  *template.Template
	truth       *template.Template
	perspective *template.Template
	simulate    *template.Template
}

func mustPrompt(name, text string) *template.Template {
	return template.Must(template.New(name).Option("missingkey=error").Parse(text))
}

var characterPrompt = mustPrompt("characters", `{{.Story}}
What are the characters in this story?
Output only the character names, separated by commas. Don't output anything else
 Character Names: `)

const hitomRules = `Here are a few rules/assumptions:
1. A character knows about all events that they do.
2. If a character is in a certain room/location, that character knows about all other events that happens in the room. This includes other characters leaving or exiting the location, the locations of objects in that location, and whether somebody moves an object to another place.
3. If a character leaves a location, and is NOT in that location, they no longer know about any events that happen within that location. However, they can re-enter the location.
4. An agent A can infer another agent B's mental state only if A and B have been in the same location, or have private or public interactions.
`

var hitomPrompts = promptSet{
	baseline: mustPrompt("baseline", `Read the following story and answer the multiple-choice question. Please provide answer without explanations.

Story: {{.Story}}

{{.Question}}
Choices: {{.Choices}}

{{.Note}}

Answer with ONLY the correct choice. The answer should contain only a single word.

Format: <option_letter>: <answer>

Answer: `),

	cot: mustPrompt("cot", `Read the following story and answer the multiple-choice question. Think step-by-step and then provide the answer.

Story: {{.Story}}

{{.Question}}
Choices: {{.Choices}}

{{.Note}}

Provide the relevant label alongside the answer when providing your answer (<option_label>: <answer>).`),

	cotExtract: mustPrompt("cot_extract", `This is the provided explanation for a question: {{.Response}}
Provide the answer selected in the above solution. Answer with ONLY the correct choice. The answer should contain only a single word.
Format: <option_letter>: <answer>
Answer: `),

	truth: mustPrompt("truth", `{{.Story}}
Based on the above information, answer the following question:
{{.Question}}`),

	perspective: mustPrompt("perspective", `The following is a sequence of events about some characters, that takes place in multiple locations.
Your job is to output only the events that the specified character, {{.Character}}, knows about.
`+hitomRules+`5. Note that every agent tends to lie. What an agent A tells others doesn't affect A's actual belief. An agent tends to trust an agent that exited the room later than himself. The exit order is known to all agents.
6. Agents in private communications know that others won't hear them, but they know that anyone can hear any public claims.
Story:
{{.Disambiguated}}
{{.Story}}

What events does {{.Character}} know about? Only output the events according to the above rules, do not provide an explanation.`),

	simulate: mustPrompt("simulate", `Return a single word answer to the below scenario and question:

{{.Disambiguated}}
{{.Perspective}}

You are {{.Character}}.
Based on the above information, and the following rules, answer the following question:

`+hitomRules+`5. You, or another agent may lie. What an agent A (or you) tells others doesn't affect A's (or your's) actual belief. You can trust an agent that exited the room later than yourself. The exit order is known to all agents.
6. Agents in private communications know that others won't hear them, but they know that anyone can hear any public claims.

Question:
{{.Question}}

Answer with ONLY the correct choice. The answer should contain only a single word.

Format: <option_letter>: <answer>

Answer:
`),
}

var fantomPrompts = promptSet{
	baseline: mustPrompt("baseline", `Read the following sequence of dialogues and answer the multiple-choice question. Provide your answer without explanations.

Story: {{.Story}}

{{.Question}}
Choices:
{{.Choices}}

{{.Note}}

Answer with ONLY the correct choice. Format: (option_letter)

Answer: `),

	cot: mustPrompt("cot", `Read the following sequence of dialogues and answer the multiple-choice question. Think step-by-step and then provide the answer.

Story: {{.Story}}

{{.Question}}
Choices:
{{.Choices}}

Provide the relevant label alongside the answer when providing your answer`),

	cotExtract: mustPrompt("cot_extract", `This is the provided explanation for a question: {{.Response}}
Provide the answer selected in the above solution. Answer with ONLY the correct choice. The answer should contain only a single word.
Format: (option_letter)
Answer: `),

	truth: mustPrompt("truth", `{{.Story}}
Based on the above information, answer the following question:
{{.Question}}. Answer in the given format: Format: <option_letter>: <answer>. Answer:`),

	perspective: mustPrompt("perspective", `The following is a dialogue scenario some characters.
Your job is to output only the events that the specified character, {{.Character}}, knows about.
Here are a few rules/assumptions:
1. An agent knows a dialogue if they are in the same location or conversation.
2. An agent knows all dialogues they say themselves.
Story:

{{.Story}}

What events does {{.Character}} know about? Only output the events according to the above rules, do not provide an explanation.`),

	simulate: mustPrompt("simulate", `Return an answer to the below scenario and question:

{{.Perspective}}

You are {{.Character}}.
Based on the above information, and the following rules, answer the following question:

Here are a few rules/assumptions:
1. You don't know dialogues said before you enter a conversation, or after you exit a conversation (but you may re-join and become aware again)
2. You don't know the answer to the question if you don't see a reference to it in the story you know.
3. Choose one of the choices from the given options to return your answer. Return the associated letter label of your choice(from A,B) alongside your choice.

Question:
{{.Question}}

Answer in the given format:
Format: <option_letter>: <answer>

Answer:
`),
}
