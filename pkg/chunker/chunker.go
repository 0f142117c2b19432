// Package chunker splits long texts into bounded chunks for per-chunk model
// calls. Splitting is sentence-aware in the loosest sense: the delimiter is a
// period followed by a space, which mis-splits abbreviations and decimals.
// That approximation is part of the contract — downstream merging assumes this
// exact segmentation, so it must not be "improved" silently.
package chunker

import "strings"

// ChunkText splits text into chunks of at most limit bytes, greedily packing
// sentence units and never breaking inside one. Every unit is re-terminated
// with ". " before accumulation; chunks are trimmed only at their boundaries.
// A single unit longer than limit still becomes its own oversized chunk.
//
// The same (text, limit) input always yields the same chunks.
func ChunkText(text string, limit int) []string {
	sentences := strings.Split(text, ". ")

	var chunks []string
	current := ""
	for _, sentence := range sentences {
		if len(current)+len(sentence)+2 <= limit {
			current += sentence + ". "
			continue
		}
		if current != "" {
			chunks = append(chunks, strings.TrimSpace(current))
		}
		current = sentence + ". "
	}
	if current != "" {
		chunks = append(chunks, strings.TrimSpace(current))
	}

	if len(chunks) == 0 {
		return []string{text}
	}
	return chunks
}
