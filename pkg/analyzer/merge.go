package analyzer

import (
	"slices"

	"github.com/RichardScottOZ/Foundation-Character-Interactions/pkg/schema"
	"github.com/RichardScottOZ/Foundation-Character-Interactions/pkg/utils"
)

// MergeCharacters deduplicates records collected across chunks. Identity is
// exact string equality on Name — "Hari" and "Hari Seldon" stay distinct, and
// an empty name from a malformed record merges as its own entity. When two
// records collide, the strictly higher confidence wins wholesale (no
// field-level union); ties keep the earlier record. Output order is first
// appearance, so merging is a stable reduction: feeding the result back in
// changes nothing, and how the records were split across chunks does not
// affect the winners.
func MergeCharacters(records []schema.Character) []schema.Character {
	index := make(map[string]int, len(records))
	out := make([]schema.Character, 0, len(records))
	for _, ch := range records {
		if i, ok := index[ch.Name]; ok {
			if ch.Confidence > out[i].Confidence {
				out[i] = ch
			}
			continue
		}
		index[ch.Name] = len(out)
		out = append(out, ch)
	}
	return out
}

// MergeCharactersFuzzy is the alias-aware variant: a record joins the first
// earlier entity whose name is an exact match, a listed alias, or similar
// beyond threshold (Levenshtein-based, case-insensitive). The higher
// confidence record wins and the losing surface form is kept as an alias.
// threshold <= 0 falls back to the exact-match merge.
func MergeCharactersFuzzy(records []schema.Character, threshold float64) []schema.Character {
	if threshold <= 0 {
		return MergeCharacters(records)
	}
	out := make([]schema.Character, 0, len(records))
	for _, ch := range records {
		i := slices.IndexFunc(out, func(have schema.Character) bool {
			return sameEntity(have, ch, threshold)
		})
		if i < 0 {
			out = append(out, ch)
			continue
		}
		winner, loser := out[i], ch
		if ch.Confidence > out[i].Confidence {
			winner, loser = ch, out[i]
		}
		winner.Aliases = appendAlias(winner.Aliases, loser.Name, winner.Name)
		out[i] = winner
	}
	return out
}

func sameEntity(a, b schema.Character, threshold float64) bool {
	if a.Name == b.Name || slices.Contains(a.Aliases, b.Name) || slices.Contains(b.Aliases, a.Name) {
		return true
	}
	return utils.Similarity(a.Name, b.Name) >= threshold
}

// appendAlias records name as an alias unless it is empty, the entity's own
// name, or already listed.
func appendAlias(aliases []string, name, self string) []string {
	if name == "" || name == self || slices.Contains(aliases, name) {
		return aliases
	}
	return append(aliases, name)
}
