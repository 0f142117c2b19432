package schema

// Character is one extracted character record. Name is the canonical display
// name and the identity key during cross-chunk merging; Aliases hold the other
// surface forms the model attributed to the same character.
type Character struct {
	Name         string   `json:"name" jsonschema_description:"Canonical character name"`
	Aliases      []string `json:"aliases,omitempty" jsonschema_description:"Alternative names or nicknames, excluding the canonical name itself"`
	Confidence   float64  `json:"confidence" jsonschema_description:"Model-reported certainty between 0 and 1"`
	Role         string   `json:"role,omitempty" jsonschema_description:"Narrative role such as protagonist, antagonist, or supporting"`
	FirstMention string   `json:"first_mention,omitempty" jsonschema_description:"Context snippet of the character's first appearance"`
}

// CharacterList wraps the character array for backends whose structured-output
// mode requires an object root.
type CharacterList struct {
	Characters []Character `json:"characters" jsonschema_description:"Characters extracted from the text"`
}

// Relationship describes one interaction pair. The pair is unordered; both
// names should reference known characters but the model is not forced to
// comply, so callers must treat them as unvalidated.
type Relationship struct {
	Character1  string   `json:"character1" jsonschema_description:"First character in the pair"`
	Character2  string   `json:"character2" jsonschema_description:"Second character in the pair"`
	Type        string   `json:"type" jsonschema_description:"Relationship category such as allies, enemies, family, romantic"`
	Strength    int      `json:"strength" jsonschema_description:"Relationship strength from 1 to 10"`
	Description string   `json:"description,omitempty" jsonschema_description:"Brief description of the relationship"`
	KeyScenes   []string `json:"key_scenes,omitempty" jsonschema_description:"Key interactions or scenes between the pair"`
}

// RelationshipSet is the root object returned by relationship analysis.
type RelationshipSet struct {
	Relationships []Relationship `json:"relationships" jsonschema_description:"Pairwise relationships between the named characters"`
}

// TraitProfile is a single-character deep dive. Error is set instead of the
// analysis fields when the model response could not be decoded.
type TraitProfile struct {
	Name                string            `json:"name" jsonschema_description:"Name of the analyzed character"`
	PhysicalDescription string            `json:"physical_description,omitempty" jsonschema_description:"Physical description if mentioned in the text"`
	Personality         []string          `json:"personality,omitempty" jsonschema_description:"Personality trait tags"`
	Motivations         []string          `json:"motivations,omitempty" jsonschema_description:"Motivations and goals"`
	KeyActions          []string          `json:"key_actions,omitempty" jsonschema_description:"Key actions and decisions"`
	CharacterArc        string            `json:"character_arc,omitempty" jsonschema_description:"Description of the character's development"`
	Relationships       map[string]string `json:"relationships,omitempty" jsonschema_description:"Other character name mapped to relationship type"`
	Error               string            `json:"error,omitempty"`
}
