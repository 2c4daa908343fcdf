package ai

import (
	"fmt"
	"strings"

	"github.com/evateli/globetalk/internal/model/persona"
)

// Fixed instruction sets for the deterministic one-shot calls.
const (
	flagSystemPrompt = "Return only the flag emoji for the given country."

	verifySystemPrompt = `You are a helpful assistant that verifies country names.
If the input is a valid country name, respond with the country flag emoji followed by the name, like "🇹🇭 Thailand"
If it's misspelled, respond with "Did you mean: [flag emoji] [correct country name]?"
If it's not a country at all, respond with "Invalid country name."
Always include the appropriate flag emoji for valid country names.`

	capitalSystemPrompt = "Return only the name of the capital city for the given country. No punctuation, no extra words."

	summarySystemPrompt = `You are a concise geography reference. For the given country, reply with a short
factual summary covering population, official languages, currency and continent.
Keep it under five sentences.`
)

// PersonaSystemPrompt builds the opening system turn for a generated
// persona. The flag emoji is resolved separately so the greeting can open
// with it.
func PersonaSystemPrompt(p persona.Persona, flagEmoji string) string {
	return fmt.Sprintf(`STRICT CHARACTER INSTRUCTIONS: You are a %d-year-old %s from %s.

CHARACTER PROFILE:
- Age: %d years old (ALWAYS use this exact age)
- Job: %s
- Hobbies: %s

IMPORTANT: Greet the user in English with:
1. Start with "%s" followed by your country's traditional greeting and its English translation
2. Give yourself a common name from your country
3. Tell your age
4. Mention your occupation and something you enjoy doing
5. End with a friendly question

Keep all responses concise and natural. Never break character or mention being AI.`,
		p.Age, p.Gender, p.Country,
		p.Age,
		p.Occupation,
		strings.Join(p.Hobbies, ", "),
		flagEmoji,
	)
}
