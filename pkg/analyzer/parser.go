package analyzer

import (
	"encoding/json"

	"github.com/RichardScottOZ/Foundation-Character-Interactions/pkg/schema"
	"github.com/RichardScottOZ/Foundation-Character-Interactions/pkg/utils"
)

// The decoders below are the trust boundary with the model. They strip a
// markdown fence, attempt one strict parse, and fall back to a well-defined
// default for their shape. No repair of near-JSON text — a response that is
// almost valid is treated the same as garbage.

// DecodeCharacters parses raw as a character array. A {"characters": [...]}
// wrapper, as produced under structured outputs, is accepted too. ok is false
// when neither shape parses; the default is an empty record set.
func DecodeCharacters(raw string) ([]schema.Character, bool) {
	cleaned := utils.CleanJSON(raw)
	var chars []schema.Character
	if err := json.Unmarshal([]byte(cleaned), &chars); err == nil {
		return chars, true
	}
	var wrapped schema.CharacterList
	if err := json.Unmarshal([]byte(cleaned), &wrapped); err == nil && wrapped.Characters != nil {
		return wrapped.Characters, true
	}
	return nil, false
}

// DecodeRelationships parses raw as a relationship set. On failure it returns
// the empty set so a caller can always range over Relationships.
func DecodeRelationships(raw string) (schema.RelationshipSet, bool) {
	var set schema.RelationshipSet
	if err := json.Unmarshal([]byte(utils.CleanJSON(raw)), &set); err != nil {
		return schema.RelationshipSet{Relationships: []schema.Relationship{}}, false
	}
	if set.Relationships == nil {
		set.Relationships = []schema.Relationship{}
	}
	return set, true
}

// DecodeTraits parses raw as a trait profile for the named character. On
// failure the profile carries only the name and an error marker.
func DecodeTraits(raw, name string) (schema.TraitProfile, bool) {
	var profile schema.TraitProfile
	if err := json.Unmarshal([]byte(utils.CleanJSON(raw)), &profile); err != nil {
		return schema.TraitProfile{Name: name, Error: "could not parse response"}, false
	}
	if profile.Name == "" {
		profile.Name = name
	}
	return profile, true
}
