package ai

import (
	"strings"

	"github.com/docwell/editor-server/internal/pkg/apierr"
)

// Action selects the writing-assistant instruction.
type Action string

const (
	ActionGenerate     Action = "generate"
	ActionRewrite      Action = "rewrite"
	ActionLonger       Action = "longer"
	ActionShorter      Action = "shorter"
	ActionFormal       Action = "formal"
	ActionCasual       Action = "casual"
	ActionProfessional Action = "professional"
	ActionFix          Action = "fix"
	ActionSummarize    Action = "summarize"
)

const genericInstruction = "You are a helpful writing assistant. Improve the following text and return only the result."

var actionInstructions = map[Action]string{
	ActionGenerate:     "You are a helpful writing assistant. Write content for the following request. Return only the content, without explanations.",
	ActionRewrite:      "Rewrite the following text to improve its clarity and flow while keeping the original meaning. Return only the rewritten text.",
	ActionLonger:       "Expand the following text with more detail and depth while keeping its tone and meaning. Return only the expanded text.",
	ActionShorter:      "Make the following text concise while preserving its key points. Return only the shortened text.",
	ActionFormal:       "Rewrite the following text in a formal tone. Return only the rewritten text.",
	ActionCasual:       "Rewrite the following text in a casual, friendly tone. Return only the rewritten text.",
	ActionProfessional: "Rewrite the following text in a polished, professional business tone. Return only the rewritten text.",
	ActionFix:          "Fix grammar, spelling and punctuation in the following text without changing its meaning. Return only the corrected text.",
	ActionSummarize:    "Summarize the following text in a few clear sentences. Return only the summary.",
}

// Actions lists the recognized actions in a stable order.
var Actions = []Action{
	ActionGenerate, ActionRewrite, ActionLonger, ActionShorter, ActionFormal,
	ActionCasual, ActionProfessional, ActionFix, ActionSummarize,
}

// ParseAction normalizes raw and reports whether it names a recognized action.
func ParseAction(raw string) (Action, bool) {
	a := Action(strings.ToLower(strings.TrimSpace(raw)))
	_, ok := actionInstructions[a]
	return a, ok
}

// Instruction returns the system instruction for a, or the generic one.
func (a Action) Instruction() string {
	if s, ok := actionInstructions[a]; ok {
		return s
	}
	return genericInstruction
}

// Prompt is a system instruction plus the user message it applies to.
type Prompt struct {
	System string
	User   string
}

// Input is the literal text sent to the model. There is no role separation.
func (p Prompt) Input() string {
	return p.System + "\n\n" + p.User
}

// ValidateWriterRequest rejects requests that cannot produce a prompt.
func ValidateWriterRequest(action, prompt, selectedText string) error {
	prompt, selectedText = strings.TrimSpace(prompt), strings.TrimSpace(selectedText)
	if prompt == "" && selectedText == "" {
		return apierr.Validation("Either prompt or selectedText is required")
	}
	a, known := ParseAction(action)
	if !known {
		return nil
	}
	if a == ActionGenerate && prompt == "" {
		return apierr.Validation("Prompt is required for the generate action")
	}
	if a != ActionGenerate && selectedText == "" {
		return apierr.Validation("Selected text is required for this action")
	}
	return nil
}

// BuildWriterPrompt maps an action and its inputs to the model prompt.
func BuildWriterPrompt(action, prompt, selectedText string) Prompt {
	a, known := ParseAction(action)
	switch {
	case !known:
		user := selectedText
		if strings.TrimSpace(user) == "" {
			user = prompt
		}
		return Prompt{System: genericInstruction, User: user}
	case a == ActionGenerate:
		return Prompt{System: a.Instruction(), User: prompt}
	default:
		return Prompt{System: a.Instruction(), User: selectedText}
	}
}
