package mode

// Built-in prompt texts. Fields refer to PromptData.
const (
	agentPrompt = `Based on the given question, which agent's belief or perspective do we want to find first? Use the given rules to name the agent:
Rules:
If the question does not mention the name of any agents, the answer should be Narrator
Otherwise, output the primary agent's name. (Pronouns such as you/I/we/they/us aren't agent names and should not be outputted)

Examples:

Question: Where does Alex think Raj looks for the jam?
Agent Name: Alex

Question: Where do I think Sam thinks the ladder is?
Agent Name: Sam

Question: Where does Ava think Sophie thinks Sam thinks Brad thinks the cookie is?
Agent Name: Ava

Question: Where is the ladder?
Agent Name: Narrator

Question: Where do they think the ladder is?
Agent Name: Narrator

Task:
Question: {{.Question}}
Agent Name:`

	multiwordAgentPrompt = `Answer in one word, what is the agent name mentioned in this response (can be Narrator)? {{.Response}} Answer:`

	simplifyPrompt = `Reframe the question's perspective as if it was being asked directly to {{.Agent}} by framing another agent as the subject of the question. Don't mention {{.Agent}}'s name or use pronouns referring to them, instead make the question direct by removing their perspective. If there are no agents that can be made the subject, make it a direct question (Example: Where is X?) Only use 'you' when it's necessary and there are no other agents that can be framed as the subject. Output just the question and nothing else.

Examples:

Question: Where does {{.Agent}} think Alex will look for the chocolate?
New Question: Where will Alex look for the chocolate?

Question: Where does {{.Agent}} find the apple?
New Question: Where is the apple?

Question: Where does {{.Agent}} think Brandon thinks Cody thinks the banana is?
New Question: Where does Brandon think Cody thinks the banana is?

Task:
Question: {{.Question}}
New Question:`

	compressDecisionPrompt = `Give a single word answer indicating the choice decided by this reasoning (yes/no):
 Reasoning: {{.Response}}
 Answer:`

	forcedDecisionPrompt = `Give a one word answer as to if this sentence indicates the answer is a yes or no. Answer in only yes/no:
{{.Response}}
Answer:`

	setupLocationsPrompt = `Here is a story:
{{.Story}}.
Take note of locations in the story where characters acting in the scenario enter and exit from. Note that locations may be abstract (and not physical locations) but should still be named relevantly (such that the name defines the key characteristic).
Output the answer in the format:
Location1, Location 2, ....
. Don't return any other text.

Answer:`

	hitomKnowledgePrompt = `This is a given story:
{{.Disambiguation}}
{{.Story}}

The story is sequential with each statement happening after the previous one (if the statement is an event).
This is the next statement in the story: Statement: {{.Unit}}.
Your task is to indicate whether {{.Agent}} knows about the statement happening, using the following rules:

Use the provided world state to check the location of {{.Agent}} and other agents that may be involved to determine knowledge of the given statement. It is formatted as Location 1: [Agents in location], Location 2:[] ...:
World State: {{.World}}

Rules:
The agent {{.Agent}} knows of any statement that mentions their own actions.
The agent {{.Agent}} knows of a statement if the statement happens in the same location as them.
The agent {{.Agent}} knows of statements that indicate another agent leaving a location.
The agent {{.Agent}} does NOT know of a statement if they have left the location where the event occurs or are not in the same location as the agent involved in the statement.
The agent {{.Agent}} only knows of a 'private communication' if they are involved in it : someone says something to someone else.
The agent {{.Agent}} is aware of all 'public communications' : when someone declares something to everyone.

If a statement can be interpreted ambiguously, then say yes.

Reason briefly using the rules, and indicate your answer about whether {{.Agent}} knows the next statement that occurs in the story in the format: Answer: <decision> (where decision is yes/no)
Answer:`

	hitomUpdatePrompt = `This is the current world state, that holds the current world location of all the agents:
World State: {{.World}}. Please update it relevantly (if needed) after the given statement: {{.Unit}}.

Follow the rules in completing the task:
No updates are needed if an agent does not enter or exit a location in the given statement.
An agent exits a location only when mentioned in the given statement. In that case, add the agent to the location "Unknown" and remove them from their original location.
In case an update isn't needed return the given world state. Only update the state for agents and not objects.
Ensure that no agent is in 2 locations, and only in the correct location.
The format looks like this: Location 1: [Agent 1, Agent 2] , Location 2: []  and so on ....
Use the square brackets appropriately to indicate the agents inside a location. Only return the world state in the given format and no other text.
Answer: World State:`

	hitomAnswerPrompt = `Read the following story and answer the question. Think step-by-step and then provide the answer.

Story:
{{.Disambiguation}}
{{.Story}}

You are {{.Agent}}. Based on the above information, and the following rules, answer the following question:

Rules:
{{.Note}}

Question: {{.Question}}
Choices: {{.Choices}}

Provide the relevant label alongside the answer when providing your answer (<option_label>: <answer>).`

	hitomExtractPrompt = `Provide the answer selected in the above solution. Answer with ONLY the correct choice. The answer should contain only a single word.

Format: <option_letter>: <answer> :

Examples:
The Answer: The answer is M: Chocolate
Choice: M: Chocolate
The Answer: lorem ipsum dolor sit amet ........ So, I choose xyz, option L,
Choice: L: xyz

Task:
The Answer: {{.Response}}.
Choice:`

	fantomKnowledgePrompt = `This is a given conversation:
{{.Story}}

The story is sequential with each dialogue happening after the previous one.
This is the next dialogue in the story: Dialogue: {{.Unit}}.
Your task is to indicate whether {{.Agent}} knows about the dialogue, using the following rules:

Use the provided world state to check the location of {{.Agent}} and other agents that may be involved to determine knowledge of the dialogue. It is formatted as Location 1: [Agents in location], Location 2:[] ...:
World State: {{.World}}

Rules:
The agent {{.Agent}} knows a dialogue if they are in the same location or conversation.
The agent {{.Agent}} knows all dialogues they say themselves.
If {{.Agent}}'s location is unclear or not provided, assume they know of the dialogue.

Give a single word yes/no answer
Answer:`

	fantomUpdatePrompt = `This is the current world state, that holds the current world location of all the agents:
World State: {{.World}}. Please update it relevantly (if needed) after the given dialogue: {{.Unit}}.

Follow the rules in completing the task:
No updates are needed if an agent does not enter or exit the conversation in the given statement.
An agent exits/enters a conversation only when they mention leaving/entering themselves in the given dialogue.
The agent does not exit a location themselves if they only indicate someone else may be leaving.
In case an update isn't needed return the given world state.
Ensure that no agent is in 2 locations, and only in the correct location.
The format looks like this: in_conversation: [Agent 1, Agent 2], out_of_conversation: [Agent 3, Agent 4] ....
Use the square brackets appropriately to indicate the agents inside a location. Only return the world state in the given format and no other text.
Answer: World State:`

	fantomAnswerPrompt = `You are {{.Agent}}. Here is a conversation between individuals who have just met from the perspective of the given agents:

{{.AnswerContext}}

{{.Story}}

Answer the following question about it shortly by using the given rules to guide your reasoning.

Question: {{.Question}}, Choices: {{.Choices}},

Rules:
You don't know dialogues said before you enter a conversation, or after you exit a conversation (but you may re-join and become aware again)
You don't know the answer to the question if you don't see a reference to it in the story you know.
Choose one of the choices from the given options to return your answer. Return the associated letter label of your choice(from A,B) alongside your choice.

Answer:`

	fantomExtractPrompt = `What selection (in A,B) does the given answer make? Return a single letter with no other text:

Examples:
The Answer: The answer is A. Choice: A
The Answer: lorem ipsum dolor sit amet ........ So, I choose B, Choice: B

Task:
The Answer: {{.Response}}. Choice:`

	genericKnowledgePrompt = `This is a given story:
{{.Disambiguation}}
{{.Story}}

The story is sequential with each statement happening after the previous one (if the statement is an event).
This is the next statement in the story: Statement: {{.Unit}}.
Your task is to indicate whether {{.Agent}} knows about the statement happening, using the following rules:

Use the provided world state to check the location of {{.Agent}} and other agents that may be involved to determine knowledge of the given statement. It is formatted as Location 1: [Agents in location], Location 2:[] ...:
World State: {{.World}}

Rules:
{{.Note}}

If a statement can be interpreted ambiguously, then say yes.

Reason briefly using the rules, and indicate your answer about whether {{.Agent}} knows the next statement that occurs in the story in the format: Answer: <decision> (where decision is yes/no)
Answer:`

	genericUpdatePrompt = `This is the current world state, that holds the current world location of all the agents:
World State: {{.World}}. Please update it relevantly (if needed) after the given statement: {{.Unit}}.

Follow the rules in completing the task:
No updates are needed if an agent does not enter or exit a location in the given statement.
An agent exits a location only when mentioned in the given statement. In that case, add the agent to the location "Unknown" and remove them from their original location.
In case an update isn't needed return the given world state. Only update the state for agents and not objects.
Ensure that no agent is in 2 locations, and only in the correct location.
The format looks like this: Location 1: [Agent 1, Agent 2] , Location 2: []  and so on ....
Use the square brackets appropriately to indicate the agents inside a location. Only return the world state in the given format and no other text.
Answer: World State:`

	genericAnswerPrompt = `Read the following story and answer the question. Think step-by-step and then provide the answer.

Story:
{{.Story}}

You are {{.Agent}}. Based on the above information, and the following rules, answer the following question:

Rules:
{{.Note}}

Question: {{.Question}}
Choices: {{.Choices}}

Provide the relevant label alongside the answer when providing your answer (<option_label>: <answer>).`

	genericExtractPrompt = `Provide the answer selected in the above solution. Answer with ONLY the correct choice.

Format: <option_letter>: <answer> :

Examples:
The Answer: The answer is M: Chocolate
Choice: M: Chocolate
The Answer: lorem ipsum dolor sit amet ........ So, I choose xyz, option L,
Choice: L: xyz

Task:
The Answer: {{.Response}}.
Choice:`

	conversationSetupPrompt = `Return a comma separated list of agents who are participating in the given conversation at the start (before anyone else enters the conversation)
Conversation: {{.Story}}`

	locationGatePrompt = `Does the given statement involve an agent (or multiple agents) entering or exiting a location?
 Statement: {{.Unit}}.
Answer in only yes/no with no other text
 Answer: : `

	conversationGatePrompt = `Does the given dialogue involve the speaker leaving the conversation?
 Dialogue: {{.Unit}}.
Answer in only yes/no with no other text
 Answer: : `
)
