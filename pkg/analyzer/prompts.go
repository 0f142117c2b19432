package analyzer

import "strings"

// Prompts are the fixed templates sent to the model. They are configuration:
// swapping the wording changes model behavior, never control flow. Substitution
// points are {text}, {characters}, and {name}.
type Prompts struct {
	System        string
	Characters    string
	Relationships string
	Traits        string
}

// DefaultPrompts returns the stock templates.
func DefaultPrompts() Prompts {
	return Prompts{
		System:        systemPrompt,
		Characters:    characterPrompt,
		Relationships: relationshipPrompt,
		Traits:        traitPrompt,
	}
}

func (p Prompts) renderCharacters(text string) string {
	return strings.ReplaceAll(p.Characters, "{text}", text)
}

func (p Prompts) renderRelationships(text string, characters []string) string {
	out := strings.ReplaceAll(p.Relationships, "{characters}", strings.Join(characters, ", "))
	return strings.ReplaceAll(out, "{text}", text)
}

func (p Prompts) renderTraits(text, name string) string {
	out := strings.ReplaceAll(p.Traits, "{name}", name)
	return strings.ReplaceAll(out, "{text}", text)
}

const systemPrompt = `You are a literary analysis expert specializing in character analysis.`

const characterPrompt = `Analyze the following text and extract all character names.

Rules:
1. Only include actual characters (people/beings), not places, titles, or organizations
2. Merge aliases and variations of the same character (e.g., "Hari" and "Hari Seldon" -> "Hari Seldon")
3. Exclude generic titles unless they refer to a specific unnamed character (e.g., "Master" if it's a specific person)
4. Provide a confidence score (0-1) for each character

Return the results as a JSON array with this structure:
[
  {
    "name": "Character Name",
    "aliases": ["alias1", "alias2"],
    "confidence": 0.95,
    "role": "protagonist/antagonist/supporting",
    "first_mention": "context of first appearance"
  }
]

Text to analyze:
{text}

Return only the JSON array, no additional commentary.`

const relationshipPrompt = `Analyze the relationships between these characters in the text:
{characters}

For each pair of characters that interact, provide:
1. Nature of relationship (allies, enemies, family, neutral, romantic, etc.)
2. Strength of relationship (1-10)
3. Key interactions or scenes
4. How relationship evolves

Return as JSON:
{
  "relationships": [
    {
      "character1": "Name1",
      "character2": "Name2",
      "type": "relationship type",
      "strength": 8,
      "description": "brief description",
      "key_scenes": ["scene1", "scene2"]
    }
  ]
}

Text to analyze:
{text}

Return only the JSON, no additional commentary.`

const traitPrompt = `Analyze the character "{name}" in the following text.

Provide:
1. Physical description (if mentioned)
2. Personality traits
3. Motivations and goals
4. Key actions and decisions
5. Character arc/development
6. Relationships with other characters

Return as JSON:
{
  "name": "{name}",
  "physical_description": "...",
  "personality": ["trait1", "trait2"],
  "motivations": ["goal1", "goal2"],
  "key_actions": ["action1", "action2"],
  "character_arc": "description of development",
  "relationships": {"character": "relationship type"}
}

Text:
{text}

Return only the JSON, no additional commentary.`
