package ai

import (
	"testing"

	"github.com/docwell/editor-server/internal/pkg/apierr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionInstructionsAreDistinct(t *testing.T) {
	seen := make(map[string]Action, len(Actions))
	for _, a := range Actions {
		inst := a.Instruction()
		require.NotEmpty(t, inst, a)
		assert.NotEqual(t, genericInstruction, inst, a)
		if prev, ok := seen[inst]; ok {
			t.Fatalf("%s and %s share an instruction", prev, a)
		}
		seen[inst] = a
	}
	assert.Len(t, seen, 9)
}

func TestBuildWriterPrompt(t *testing.T) {
	p := BuildWriterPrompt("shorter", "ignored", "A long sentence.")
	assert.Equal(t, ActionShorter.Instruction(), p.System)
	assert.Equal(t, "A long sentence.", p.User)
	assert.Equal(t, ActionShorter.Instruction()+"\n\nA long sentence.", p.Input())

	p = BuildWriterPrompt("generate", "A poem about tea", "")
	assert.Equal(t, ActionGenerate.Instruction(), p.System)
	assert.Equal(t, "A poem about tea", p.User)

	p = BuildWriterPrompt(" Formal ", "", "hey there")
	assert.Equal(t, ActionFormal.Instruction(), p.System)
}

func TestBuildWriterPromptUnknownAction(t *testing.T) {
	p := BuildWriterPrompt("haiku", "", "selected")
	assert.Equal(t, genericInstruction, p.System)
	assert.Equal(t, "selected", p.User)

	p = BuildWriterPrompt("", "only prompt", "")
	assert.Equal(t, genericInstruction, p.System)
	assert.Equal(t, "only prompt", p.User)

	p = BuildWriterPrompt("", "prompt", "selected")
	assert.Equal(t, "selected", p.User)
}

func TestValidateWriterRequest(t *testing.T) {
	tests := []struct {
		name         string
		action       string
		prompt       string
		selectedText string
		wantErr      bool
	}{
		{"both empty", "", "", "", true},
		{"generate without anything", "generate", "", "", true},
		{"generate with selection only", "generate", "", "text", true},
		{"generate with prompt", "generate", "write", "", false},
		{"rewrite without selection", "rewrite", "make it better", "", true},
		{"summarize with selection", "summarize", "", "text", false},
		{"blank strings count as empty", "fix", "  ", " \n", true},
		{"unknown action with prompt", "poem", "about cats", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWriterRequest(tt.action, tt.prompt, tt.selectedText)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apierr.IsKind(err, apierr.KindValidation))
		})
	}
}

func TestBuildTranslatePrompt(t *testing.T) {
	p := BuildTranslatePrompt("Hello", "", "es")
	assert.Contains(t, p.System, "detected source language")
	assert.Contains(t, p.System, "Spanish")
	assert.Equal(t, "Hello", p.User)

	p = BuildTranslatePrompt("Bonjour", "fr", "pt-BR")
	assert.Contains(t, p.System, "from French to Portuguese")

	p = BuildTranslatePrompt("x", "auto", "Klingon")
	assert.Contains(t, p.System, "detected source language")
	assert.Contains(t, p.System, "Klingon")
}
