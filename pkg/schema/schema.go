package schema

import (
	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/v3"
)

func generateSchema[T any]() any {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return r.Reflect(v)
}

var (
	CharacterListSchema   = generateSchema[CharacterList]()
	RelationshipSetSchema = generateSchema[RelationshipSet]()
	TraitProfileSchema    = generateSchema[TraitProfile]()
)

func responseFormat(name, description string, schema any) openai.ChatCompletionNewParamsResponseFormatUnion {
	p := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        name,
		Description: openai.String(description),
		Schema:      schema,
		Strict:      openai.Bool(true),
	}
	return openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: p},
	}
}

// CharacterListResponseFormat constrains a completion to the character list
// shape. Backends that ignore response formats still receive the JSON-only
// instruction through the prompt, so decoding must not rely on this.
func CharacterListResponseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	return responseFormat("character_list", "Characters extracted from a literary text", CharacterListSchema)
}

// RelationshipSetResponseFormat constrains a completion to the relationship set shape.
func RelationshipSetResponseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	return responseFormat("relationship_set", "Pairwise character relationships found in a literary text", RelationshipSetSchema)
}

// TraitProfileResponseFormat constrains a completion to the trait profile shape.
func TraitProfileResponseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	return responseFormat("trait_profile", "Detailed traits of a single character", TraitProfileSchema)
}
