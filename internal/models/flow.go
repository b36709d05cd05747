package models

// Flow is a conversation flow configured on the builder-bot platform. Only
// the fields the console displays are decoded; the platform returns many more.
type Flow struct {
	ID        string   `json:"id"`
	UUID      string   `json:"uuid"`
	Name      string   `json:"name"`
	Label     string   `json:"label"`
	Sort      int      `json:"sort"`
	Sensitive bool     `json:"sensitive"`
	Keyword   []string `json:"keyword"`
	BotID     string   `json:"botId"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
	Answers   []Answer `json:"answers"`
}

// Answer is a single step within a flow
type Answer struct {
	ID      string  `json:"id"`
	UUID    string  `json:"uuid"`
	Message string  `json:"message"`
	Type    string  `json:"type"`
	Sort    int     `json:"sort"`
	FlowID  string  `json:"flowId"`
	Plugins Plugins `json:"plugins"`
}

// Plugins holds the plugin configuration attached to an answer; only the
// OpenAI assistant settings are of interest to the console
type Plugins struct {
	OpenAI *OpenAISettings `json:"openai"`
}

// OpenAISettings is the assistant configuration of an answer
type OpenAISettings struct {
	AssistantID           string `json:"assistantId"`
	AssistantName         string `json:"assistantName"`
	AssistantInstructions string `json:"assistantInstructions"`
	AssistantModel        string `json:"assistantModel"`
	AssistantProvider     string `json:"assistantProvider"`
}

// FlowPrompt is a system prompt found inside a flow's answers
type FlowPrompt struct {
	FlowName string `json:"flowName" yaml:"flowName"`
	Prompt   string `json:"prompt" yaml:"prompt"`
}

// ExtractAssistantPrompts collects every OpenAI assistant instruction
// configured across the given flows, tagged with the flow it belongs to
func ExtractAssistantPrompts(flows []Flow) []FlowPrompt {
	var prompts []FlowPrompt
	for _, flow := range flows {
		for _, answer := range flow.Answers {
			if answer.Plugins.OpenAI != nil && answer.Plugins.OpenAI.AssistantInstructions != "" {
				prompts = append(prompts, FlowPrompt{
					FlowName: flow.Name,
					Prompt:   answer.Plugins.OpenAI.AssistantInstructions,
				})
			}
		}
	}
	return prompts
}
