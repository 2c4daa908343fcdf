package ai

import (
	"strings"
	"testing"

	"github.com/evateli/globetalk/internal/model/persona"
)

func TestPersonaSystemPrompt(t *testing.T) {
	p := persona.Persona{
		Country:    "Thailand",
		Gender:     "woman",
		Age:        29,
		Occupation: "tour guide",
		Hobbies:    []string{"cooking", "photography"},
	}

	prompt := PersonaSystemPrompt(p, "🇹🇭")

	for _, want := range []string{
		"29-year-old woman from Thailand",
		"tour guide",
		"cooking, photography",
		"🇹🇭",
		"Never break character",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}
